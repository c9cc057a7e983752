// Package deptree tracks a set of work units ("targets"), the dependency
// edges between them, and each target's execution lifecycle. It answers one
// question for an external scheduler: which targets may start right now?
//
// # How It Is Used
//
// A run has two phases. In the builder phase the caller inserts targets with
// AddTarget/AddTargetAttribs and wires edges with Depend. In the run phase a
// scheduler loop polls Ready, calls Start on each returned handle immediately
// before dispatching its work, and reports the outcome with Finish or Fail.
// The loop ends when Done reports true.
//
// Finishing a target promotes any dependent whose last unfinished dependency
// it was. Failing a target promotes nothing: everything downstream stays
// un-ready forever, so Done() == true does not mean every target finished.
// Callers distinguish a clean run from a stall by inspecting per-target State.
//
// # Transitive Reduction
//
// Before a finish propagates readiness, the tree lazily reduces its edge set,
// removing every edge that duplicates a longer path between the same two
// targets (Simplify). DependsOn and DependedBy reflect the edge set as of the
// most recent reduction pass.
//
// # Contract
//
// The tree holds no internal synchronization; callers must serialize every
// call, including reads. Handles are plain integers valid only against the
// tree that issued them, and the graph must be acyclic: the tree performs no
// cycle detection, and a cyclic input makes the reduction pass recurse
// without bound. Plans loaded from files are validated for cycles one layer
// up, before they reach this package.
package deptree
