// Package runner drives a dependency tree to completion. It owns the polling
// loop the engine is designed around: poll Ready, start each returned target
// immediately before dispatching its work to a bounded worker pool, and
// report Finish or Fail as outcomes arrive, until the tree reports done.
//
// The engine holds no locking of its own, so the runner serializes every
// tree call, reads included, behind one mutex. Worker
// goroutines never touch the tree; they only send outcomes back to the
// control loop.
//
// Failure is not propagated downstream: a failed target strands its
// transitive dependents in the unstarted state, and the final Result reports
// them as stalled, distinct from the targets that actually failed.
package runner
