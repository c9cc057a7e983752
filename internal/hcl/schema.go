package hcl

import "github.com/hashicorp/hcl/v2"

// hclPlanFile is the top-level structure of a single plan file for decoding.
type hclPlanFile struct {
	Targets []*hclTarget      `hcl:"target,block"`
	Locals  []*hclLocalsBlock `hcl:"locals,block"`
}

// hclTarget is the HCL-specific shape of a `target` block. run and env are
// captured as expressions and evaluated against the file's locals.
type hclTarget struct {
	Name      string         `hcl:"name,label"`
	Run       hcl.Expression `hcl:"run,optional"`
	Env       hcl.Expression `hcl:"env,optional"`
	DependsOn []string       `hcl:"depends_on,optional"`
}

// hclLocalsBlock captures a `locals` block body for attribute-wise evaluation.
type hclLocalsBlock struct {
	Body hcl.Body `hcl:",remain"`
}
