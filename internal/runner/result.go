package runner

import (
	"fmt"
	"sort"

	"github.com/hashicorp/go-multierror"

	"github.com/specialistvlad/deptree/internal/deptree"
)

// Result is the final account of a run.
type Result struct {
	// Done reports whether the tree reached its terminal condition: nothing
	// running, nothing ready. True even for runs stalled by a failure.
	Done bool
	// Finished lists every target that completed, in name order.
	Finished []string
	// Failed maps each failed target to the error its work returned.
	Failed map[string]error
	// Stalled lists targets that never became ready because something
	// upstream failed, in name order. They are victims, not causes.
	Stalled []string
}

// Err flattens the result into a single error, nil iff every target
// finished. Failures and stalls are listed in name order so the message is
// deterministic.
func (r *Result) Err() error {
	var merr *multierror.Error

	names := make([]string, 0, len(r.Failed))
	for name := range r.Failed {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		merr = multierror.Append(merr, fmt.Errorf("target %q: %w", name, r.Failed[name]))
	}
	for _, name := range r.Stalled {
		merr = multierror.Append(merr, fmt.Errorf("target %q: never became ready", name))
	}
	return merr.ErrorOrNil()
}

// collectResult reads the terminal state of every target out of the tree.
func (r *Runner) collectResult() *Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	res := &Result{
		Done:   r.tree.Done(),
		Failed: make(map[string]error),
	}
	for i := 0; i < r.tree.Len(); i++ {
		h := deptree.Handle(i)
		name := r.tree.Name(h)
		switch r.tree.State(h) {
		case deptree.Finished:
			res.Finished = append(res.Finished, name)
		case deptree.Failed:
			res.Failed[name] = r.failures[h]
		default:
			// Unstarted: stranded behind a failure or a cancelled run.
			res.Stalled = append(res.Stalled, name)
		}
	}
	sort.Strings(res.Finished)
	sort.Strings(res.Stalled)
	return res
}
