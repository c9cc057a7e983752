package deptree

// Simplify removes every edge that duplicates a longer existing path between
// the same two targets, leaving the transitive reduction of the inserted
// graph. It is a no-op when nothing was inserted since the last pass. Finish
// calls it implicitly; calling it directly is only needed to observe the
// reduced edge set before anything finishes.
//
// The pass runs depth-first from every current root, sharing one visited
// marker across all root traversals, which bounds total work to
// O(targets + edges) regardless of root count. A cyclic input graph makes it
// recurse without bound.
func (t *Tree[A]) Simplify() {
	if t.simplified {
		return
	}
	visited := make([]bool, len(t.targets))
	below := make([]handleSet, len(t.targets))
	for h := range t.roots {
		if !visited[h] {
			t.simplifyVisit(h, visited, below)
		}
	}
	t.simplified = true
}

// simplifyVisit computes the full downstream reachability of h ("below",
// including h itself), pruning any direct down-edge whose dependent is also
// reachable through a sibling branch, and returns below for further pruning
// upstream.
func (t *Tree[A]) simplifyVisit(h Handle, visited []bool, below []handleSet) handleSet {
	visited[h] = true
	tg := t.targets[h]

	// Children first, so every branch's reachability is complete before any
	// pruning decision is made at this level.
	for d := range tg.down {
		if !visited[d] {
			t.simplifyVisit(d, visited, below)
		}
	}

	// An edge h->d is redundant when some sibling branch already reaches d.
	// Iterate a snapshot: pruning mutates the down set. A pruned sibling's
	// below set is still a valid witness, since that sibling stays reachable
	// through whichever branch displaced it.
	for _, d := range tg.down.sorted() {
		for sibling := range tg.down {
			if sibling == d {
				continue
			}
			if below[sibling].has(d) {
				t.removeEdge(h, d)
				break
			}
		}
	}

	b := make(handleSet)
	b.add(h)
	for d := range tg.down {
		for x := range below[d] {
			b.add(x)
		}
	}
	below[h] = b
	return b
}

// removeEdge deletes a direct edge during reduction, keeping the dependent's
// unfinished-dependency count in step: an edge from an already-finished
// dependency was never counted, and a dependent left with nothing unresolved
// is promoted exactly as if the pruned edge had finished.
func (t *Tree[A]) removeEdge(from, to Handle) {
	t.targets[from].down.remove(to)
	t.targets[to].up.remove(from)
	if t.targets[from].state != Finished {
		t.resolveDependency(to)
	}
}
