package hcl

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/specialistvlad/deptree/internal/ctxlog"
	"github.com/specialistvlad/deptree/internal/fsutil"
	"github.com/specialistvlad/deptree/internal/plan"
)

// Loader reads .hcl plan files into the agnostic plan model.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a Loader with a fresh parser cache.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// Load reads the plan at path, which may be a single .hcl file or a directory
// searched recursively. Files are loaded in lexical path order and their
// targets aggregated into one plan, so depends_on may reference targets from
// any file. The returned plan has been validated.
func (l *Loader) Load(ctx context.Context, path string) (*plan.Plan, error) {
	logger := ctxlog.FromContext(ctx)

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("plan path %s: %w", path, err)
	}

	files := []string{path}
	if info.IsDir() {
		files, err = fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("searching %s for plan files: %w", path, err)
		}
		sort.Strings(files)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl plan files found under %s", path)
	}
	logger.Debug("Loading plan files.", "count", len(files))

	p := &plan.Plan{}
	for _, f := range files {
		targets, err := l.loadFile(f)
		if err != nil {
			return nil, err
		}
		p.Targets = append(p.Targets, targets...)
	}

	if err := Validate(p); err != nil {
		return nil, err
	}
	logger.Debug("Plan loaded.", "targets", len(p.Targets))
	return p, nil
}

// loadFile parses one file: locals first, then every target evaluated against
// them.
func (l *Loader) loadFile(path string) ([]*plan.Target, error) {
	hclFile, diags := l.parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %w", path, diags)
	}

	var parsed hclPlanFile
	diags = gohcl.DecodeBody(hclFile.Body, nil, &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode %s: %w", path, diags)
	}

	evalCtx, err := localsContext(parsed.Locals, path)
	if err != nil {
		return nil, err
	}

	targets := make([]*plan.Target, 0, len(parsed.Targets))
	for _, ht := range parsed.Targets {
		t, err := newTarget(ht, evalCtx, path)
		if err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}
	return targets, nil
}

// localsContext evaluates every attribute in the file's locals blocks and
// exposes the results to target expressions as local.<name>. Locals are plain
// values and may not reference other locals.
func localsContext(blocks []*hclLocalsBlock, path string) (*hcl.EvalContext, error) {
	vals := map[string]cty.Value{}
	for _, b := range blocks {
		attrs, diags := b.Body.JustAttributes()
		if diags.HasErrors() {
			return nil, fmt.Errorf("invalid locals block in %s: %w", path, diags)
		}
		for name, attr := range attrs {
			v, diags := attr.Expr.Value(nil)
			if diags.HasErrors() {
				return nil, fmt.Errorf("evaluating local %q in %s: %w", name, path, diags)
			}
			vals[name] = v
		}
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"local": cty.ObjectVal(vals)},
	}, nil
}

// newTarget evaluates a decoded target block into the agnostic model.
func newTarget(ht *hclTarget, evalCtx *hcl.EvalContext, path string) (*plan.Target, error) {
	t := &plan.Target{Name: ht.Name, DependsOn: ht.DependsOn}

	if ht.Run != nil {
		v, diags := ht.Run.Value(evalCtx)
		if diags.HasErrors() {
			return nil, fmt.Errorf("evaluating run for target %q in %s: %w", ht.Name, path, diags)
		}
		if !v.IsNull() {
			s, err := convert.Convert(v, cty.String)
			if err != nil {
				return nil, fmt.Errorf("target %q in %s: run must be a string: %w", ht.Name, path, err)
			}
			t.Run = s.AsString()
		}
	}

	if ht.Env != nil {
		v, diags := ht.Env.Value(evalCtx)
		if diags.HasErrors() {
			return nil, fmt.Errorf("evaluating env for target %q in %s: %w", ht.Name, path, diags)
		}
		if !v.IsNull() {
			m, err := convert.Convert(v, cty.Map(cty.String))
			if err != nil {
				return nil, fmt.Errorf("target %q in %s: env must be a map of strings: %w", ht.Name, path, err)
			}
			t.Env = map[string]string{}
			for k, ev := range m.AsValueMap() {
				t.Env[k] = ev.AsString()
			}
		}
	}

	return t, nil
}
