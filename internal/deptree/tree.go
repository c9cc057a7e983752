package deptree

import (
	"fmt"
	"sort"
)

// Handle identifies a target within the tree that issued it. Handles are
// stable for the life of the tree and never reused; they carry no provenance,
// so using one against any other tree is undefined.
type Handle int

// handleSet is a set of handles with idempotent insertion.
type handleSet map[Handle]struct{}

func (s handleSet) add(h Handle)    { s[h] = struct{}{} }
func (s handleSet) remove(h Handle) { delete(s, h) }

func (s handleSet) has(h Handle) bool {
	_, ok := s[h]
	return ok
}

func (s handleSet) sorted() []Handle {
	out := make([]Handle, 0, len(s))
	for h := range s {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// target is a single record in the arena. It is unexported so all access goes
// through the tree by handle.
type target[A any] struct {
	name    string
	state   State
	up      handleSet
	down    handleSet
	attribs *A
	// waiting counts direct dependencies that have not finished. The target
	// joins the root set when it reaches zero.
	waiting int
}

// Tree is a dependency graph of targets in an arena: one growable table
// indexed by handle, append-only, with no per-record removal. The whole
// structure is discarded as a unit by the caller.
//
// A is the caller-supplied payload type attached to targets; the tree never
// inspects it.
type Tree[A any] struct {
	targets []*target[A]
	roots   handleSet
	running int
	// simplified is true when the edge set is known to contain no redundant
	// edges. Any target or edge insertion resets it.
	simplified bool
}

// New creates an empty tree.
func New[A any]() *Tree[A] {
	return &Tree[A]{roots: make(handleSet)}
}

// AddTarget appends a new Unstarted target with no edges and returns its
// handle. The name is informational only and need not be unique.
func (t *Tree[A]) AddTarget(name string) Handle {
	return t.AddTargetAttribs(name, nil)
}

// AddTargetAttribs is AddTarget with an attached payload. attribs may be nil.
func (t *Tree[A]) AddTargetAttribs(name string, attribs *A) Handle {
	h := Handle(len(t.targets))
	t.targets = append(t.targets, &target[A]{
		name:    name,
		state:   Unstarted,
		up:      make(handleSet),
		down:    make(handleSet),
		attribs: attribs,
	})
	t.roots.add(h)
	t.simplified = false
	return h
}

// Depend records that dependent may not start until dependency has finished.
// Inserting an edge that already exists is a no-op. No cycle or self-loop
// check is performed; acyclic input is the caller's contract.
func (t *Tree[A]) Depend(dependent, dependency Handle) {
	dep := t.target(dependent)
	pre := t.target(dependency)
	if dep.up.has(dependency) {
		return
	}
	dep.up.add(dependency)
	pre.down.add(dependent)
	// An edge to an already-finished dependency is already resolved and must
	// not block the dependent.
	if pre.state != Finished {
		dep.waiting++
		t.roots.remove(dependent)
	}
	t.simplified = false
}

// target returns the record for h, panicking on an out-of-range handle.
// Invalid handles are caller bugs, not recoverable conditions.
func (t *Tree[A]) target(h Handle) *target[A] {
	if h < 0 || int(h) >= len(t.targets) {
		panic(fmt.Sprintf("deptree: invalid handle %d (tree has %d targets)", h, len(t.targets)))
	}
	return t.targets[h]
}

// Name returns the target's informational name.
func (t *Tree[A]) Name(h Handle) string {
	return t.target(h).name
}

// Attribs returns the payload attached at insertion, or nil if none was.
func (t *Tree[A]) Attribs(h Handle) *A {
	return t.target(h).attribs
}

// State returns the target's current lifecycle state.
func (t *Tree[A]) State(h Handle) State {
	return t.target(h).state
}

// Len returns the number of targets inserted so far.
func (t *Tree[A]) Len() int {
	return len(t.targets)
}

// DependsOn returns the direct dependencies of h as of the most recent
// reduction pass, in ascending handle order.
func (t *Tree[A]) DependsOn(h Handle) []Handle {
	return t.target(h).up.sorted()
}

// DependedBy returns the direct dependents of h as of the most recent
// reduction pass, in ascending handle order.
func (t *Tree[A]) DependedBy(h Handle) []Handle {
	return t.target(h).down.sorted()
}
