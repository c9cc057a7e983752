package deptree

// Ready returns every root target still in the Unstarted state, in ascending
// handle order. Starting a target does not remove it from the root set; the
// state filter here is what keeps a started target from being returned again.
// Readiness is a pure poll: after starting everything currently ready, Ready
// returns nothing until a Finish unblocks fresh dependents.
func (t *Tree[A]) Ready() []Handle {
	ready := make(handleSet, len(t.roots))
	for h := range t.roots {
		if t.targets[h].state == Unstarted {
			ready.add(h)
		}
	}
	return ready.sorted()
}

// Start moves h from Unstarted to Started. The root set is untouched; Finish
// or Fail removes the target later.
func (t *Tree[A]) Start(h Handle) error {
	tg := t.target(h)
	switch tg.state {
	case Started:
		return t.transitionError(ErrAlreadyStarted, h)
	case Failed:
		return t.transitionError(ErrStartedFailed, h)
	case Finished:
		return t.transitionError(ErrStartedFinished, h)
	}
	tg.state = Started
	t.running++
	return nil
}

// Finish moves h from Started to Finished and promotes every dependent whose
// last unfinished dependency this was. The edge set is reduced first if it
// may contain redundant edges, so promotion fires along the tightest chain.
func (t *Tree[A]) Finish(h Handle) error {
	t.Simplify()
	tg := t.target(h)
	switch tg.state {
	case Unstarted:
		return t.transitionError(ErrNotYetStarted, h)
	case Finished:
		return t.transitionError(ErrAlreadyFinished, h)
	case Failed:
		return t.transitionError(ErrFinishFailed, h)
	}
	tg.state = Finished
	t.running--
	t.roots.remove(h)
	for d := range tg.down {
		t.resolveDependency(d)
	}
	return nil
}

// Fail moves h from Started to Failed. Dependents are not promoted: failure
// propagation belongs to the scheduler, so everything downstream of h stays
// un-ready until the caller decides otherwise.
func (t *Tree[A]) Fail(h Handle) error {
	tg := t.target(h)
	switch tg.state {
	case Unstarted:
		return t.transitionError(ErrUnstartedFailed, h)
	case Finished:
		return t.transitionError(ErrFinishFailed, h)
	case Failed:
		return t.transitionError(ErrAlreadyFailed, h)
	}
	tg.state = Failed
	t.running--
	t.roots.remove(h)
	return nil
}

// Running returns the number of targets currently in the Started state.
func (t *Tree[A]) Running() int {
	return t.running
}

// Done reports that the run can make no further progress: nothing is running
// and the root set is empty. A failed target strands its unstarted
// descendants without surfacing them here, so Done() == true does not mean
// every target finished; callers check per-target State to tell a clean run
// from a stall.
func (t *Tree[A]) Done() bool {
	return t.running == 0 && len(t.roots) == 0
}

// resolveDependency records that one more direct dependency of d is resolved,
// promoting d to the root set when none remain. Targets already in a terminal
// state are never re-promoted.
func (t *Tree[A]) resolveDependency(d Handle) {
	dep := t.targets[d]
	dep.waiting--
	if dep.waiting == 0 && !dep.state.Terminal() {
		t.roots.add(d)
	}
}
