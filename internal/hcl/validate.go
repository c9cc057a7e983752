package hcl

import (
	"fmt"

	"github.com/specialistvlad/deptree/internal/plan"
)

// Validate checks an aggregated plan for the mistakes a user can make in plan
// files: duplicate or empty names, dangling or self-referential depends_on
// entries, and dependency cycles. The engine downstream assumes an acyclic
// graph, so anything that gets past this function is trusted.
func Validate(p *plan.Plan) error {
	byName := make(map[string]*plan.Target, len(p.Targets))
	for _, t := range p.Targets {
		if t.Name == "" {
			return fmt.Errorf("plan contains a target with an empty name")
		}
		if _, dup := byName[t.Name]; dup {
			return fmt.Errorf("duplicate target name %q", t.Name)
		}
		byName[t.Name] = t
	}

	for _, t := range p.Targets {
		for _, dep := range t.DependsOn {
			if dep == t.Name {
				return fmt.Errorf("target %q depends on itself", t.Name)
			}
			if _, ok := byName[dep]; !ok {
				return fmt.Errorf("target %q depends on undefined target %q", t.Name, dep)
			}
		}
	}

	return detectCycles(p, byName)
}

// detectCycles runs a depth-first search with the classic three node sets:
// permanent (fully explored and known safe), temporary (on the current
// recursion stack), and unvisited.
func detectCycles(p *plan.Plan, byName map[string]*plan.Target) error {
	permanent := make(map[string]bool)
	temporary := make(map[string]bool)

	var visit func(t *plan.Target) error
	visit = func(t *plan.Target) error {
		if permanent[t.Name] {
			return nil
		}
		if temporary[t.Name] {
			// A node already on the recursion stack means we walked a loop.
			return fmt.Errorf("dependency cycle involving target %q", t.Name)
		}
		temporary[t.Name] = true

		for _, dep := range t.DependsOn {
			if err := visit(byName[dep]); err != nil {
				return err
			}
		}

		delete(temporary, t.Name)
		permanent[t.Name] = true
		return nil
	}

	for _, t := range p.Targets {
		if !permanent[t.Name] {
			if err := visit(t); err != nil {
				return err
			}
		}
	}
	return nil
}
