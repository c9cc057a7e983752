package runner

import (
	"context"
	"fmt"
	"sync"

	"github.com/specialistvlad/deptree/internal/ctxlog"
	"github.com/specialistvlad/deptree/internal/deptree"
	"github.com/specialistvlad/deptree/internal/plan"
)

// RunFunc executes the work for a single target. The runner calls it from a
// worker goroutine; a nil return reports the target finished, anything else
// fails it.
type RunFunc func(ctx context.Context, target *plan.Target) error

// outcome is a worker's completion report, consumed by the control loop.
type outcome struct {
	handle deptree.Handle
	err    error
}

// Runner executes one plan. Create it with New and use it for a single Run
// or Waves call; the underlying tree is consumed by either.
type Runner struct {
	run     RunFunc
	workers int

	// mu serializes every call into the tree, which is unsynchronized by
	// contract.
	mu       sync.Mutex
	tree     *deptree.Tree[plan.Target]
	failures map[deptree.Handle]error
}

// New builds the dependency tree for p and returns a runner over it. The
// builder phase happens here: all targets first, then all edges, so a target
// may depend on one defined later or in another file. Worker counts below
// one are treated as one.
func New(p *plan.Plan, workers int, run RunFunc) *Runner {
	if workers < 1 {
		workers = 1
	}
	r := &Runner{
		run:      run,
		workers:  workers,
		tree:     deptree.New[plan.Target](),
		failures: make(map[deptree.Handle]error),
	}

	byName := make(map[string]deptree.Handle, len(p.Targets))
	for _, t := range p.Targets {
		byName[t.Name] = r.tree.AddTargetAttribs(t.Name, t)
	}
	for _, t := range p.Targets {
		for _, dep := range t.DependsOn {
			r.tree.Depend(byName[t.Name], byName[dep])
		}
	}
	return r
}

// Run executes the plan and returns the final per-target account. It blocks
// until the tree can make no further progress and all in-flight work has
// drained. Cancelling the context stops new dispatches; work already running
// is failed with the context's error when it reports back.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Runner starting.", "targets", r.treeLen(), "workers", r.workers)

	sem := make(chan struct{}, r.workers)
	outcomes := make(chan outcome)
	inflight := 0

	for {
		if ctx.Err() == nil {
			for _, h := range r.pollReady() {
				target, err := r.startTarget(h)
				if err != nil {
					// Ready targets are unstarted by definition; this is a
					// runner bug, not a plan problem.
					return nil, fmt.Errorf("starting ready target: %w", err)
				}
				inflight++
				go r.dispatch(ctx, h, target, sem, outcomes)
			}
		}

		if inflight == 0 {
			break
		}

		o := <-outcomes
		inflight--
		r.settle(ctx, o)
	}

	res := r.collectResult()
	logger.Debug("Runner finished.",
		"done", res.Done, "finished", len(res.Finished), "failed", len(res.Failed), "stalled", len(res.Stalled))
	return res, nil
}

// Waves simulates the run without executing anything: each iteration starts
// and immediately finishes everything currently ready, yielding the wave
// order a fully parallel run would follow. The tree is consumed by the
// simulation, so use a fresh runner afterwards for a real run.
func (r *Runner) Waves() ([][]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var waves [][]string
	for !r.tree.Done() {
		ready := r.tree.Ready()
		if len(ready) == 0 {
			return nil, fmt.Errorf("plan stalled with nothing ready; is the graph acyclic?")
		}
		wave := make([]string, 0, len(ready))
		for _, h := range ready {
			wave = append(wave, r.tree.Name(h))
			if err := r.tree.Start(h); err != nil {
				return nil, err
			}
		}
		for _, h := range ready {
			if err := r.tree.Finish(h); err != nil {
				return nil, err
			}
		}
		waves = append(waves, wave)
	}
	return waves, nil
}

// dispatch runs one target on a pool slot and reports the outcome. It never
// touches the tree.
func (r *Runner) dispatch(ctx context.Context, h deptree.Handle, target *plan.Target, sem chan struct{}, outcomes chan<- outcome) {
	select {
	case sem <- struct{}{}:
	case <-ctx.Done():
		outcomes <- outcome{handle: h, err: ctx.Err()}
		return
	}
	defer func() { <-sem }()

	ctxlog.FromContext(ctx).Debug("Target dispatched.", "target", target.Name)
	outcomes <- outcome{handle: h, err: r.run(ctx, target)}
}

// pollReady snapshots the currently ready handles.
func (r *Runner) pollReady() []deptree.Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tree.Ready()
}

// startTarget marks h started and returns its payload for dispatch.
func (r *Runner) startTarget(h deptree.Handle) (*plan.Target, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.tree.Start(h); err != nil {
		return nil, err
	}
	return r.tree.Attribs(h), nil
}

// settle applies a worker's outcome to the tree.
func (r *Runner) settle(ctx context.Context, o outcome) {
	logger := ctxlog.FromContext(ctx)
	r.mu.Lock()
	defer r.mu.Unlock()

	name := r.tree.Name(o.handle)
	if o.err != nil {
		logger.Error("Target failed.", "target", name, "error", o.err)
		r.failures[o.handle] = o.err
		if err := r.tree.Fail(o.handle); err != nil {
			logger.Error("Could not record failure.", "target", name, "error", err)
		}
		return
	}

	logger.Debug("Target finished.", "target", name)
	if err := r.tree.Finish(o.handle); err != nil {
		logger.Error("Could not record finish.", "target", name, "error", err)
	}
}

func (r *Runner) treeLen() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tree.Len()
}
