package deptree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// diamond builds a, b, c with c depending on both b and a, where the c->a
// edge duplicates the longer a->b->c path.
func diamond(t *testing.T) (*Tree[struct{}], Handle, Handle, Handle) {
	t.Helper()
	tree := New[struct{}]()
	a := tree.AddTarget("a")
	b := tree.AddTarget("b")
	c := tree.AddTarget("c")
	tree.Depend(b, a)
	tree.Depend(c, b)
	tree.Depend(c, a)
	return tree, a, b, c
}

func TestSimplifyPrunesRedundantEdge(t *testing.T) {
	tree, a, b, c := diamond(t)

	assert.ElementsMatch(t, []Handle{a, b}, tree.DependsOn(c))
	assert.ElementsMatch(t, []Handle{b, c}, tree.DependedBy(a))

	tree.Simplify()

	assert.Equal(t, []Handle{b}, tree.DependsOn(c))
	assert.Equal(t, []Handle{b}, tree.DependedBy(a))
	assert.Equal(t, []Handle{a}, tree.DependsOn(b))
	assert.Equal(t, []Handle{c}, tree.DependedBy(b))
}

func TestSimplifyIsIdempotent(t *testing.T) {
	tree, a, b, c := diamond(t)

	tree.Simplify()
	wantUp := tree.DependsOn(c)
	wantDown := tree.DependedBy(a)

	tree.Simplify()
	assert.Equal(t, wantUp, tree.DependsOn(c))
	assert.Equal(t, wantDown, tree.DependedBy(a))
	assert.Equal(t, []Handle{a}, tree.DependsOn(b))
}

func TestFinishTriggersReduction(t *testing.T) {
	tree, a, b, c := diamond(t)

	require.NoError(t, tree.Start(a))
	require.NoError(t, tree.Finish(a))

	// The reduction ran just before a's finish propagated.
	assert.Equal(t, []Handle{b}, tree.DependsOn(c))
	assert.Equal(t, []Handle{b}, tree.Ready(), "c must wait for b despite its pruned edge to a")
}

func TestOrderedRunThroughDiamond(t *testing.T) {
	tree, a, b, c := diamond(t)

	assert.Equal(t, []Handle{a}, tree.Ready())
	require.NoError(t, tree.Start(a))
	assert.Empty(t, tree.Ready())
	require.NoError(t, tree.Finish(a))

	assert.Equal(t, []Handle{b}, tree.Ready())
	require.NoError(t, tree.Start(b))
	assert.Empty(t, tree.Ready())
	require.NoError(t, tree.Finish(b))

	assert.Equal(t, []Handle{c}, tree.Ready())
	require.NoError(t, tree.Start(c))
	assert.Empty(t, tree.Ready())
	require.NoError(t, tree.Finish(c))

	assert.True(t, tree.Done())
}

func TestSimplifyLongSpan(t *testing.T) {
	// A chain a->b->c->d with shortcut edges spanning one, two, and three
	// hops. Reduction must keep only the chain.
	tree := New[struct{}]()
	a := tree.AddTarget("a")
	b := tree.AddTarget("b")
	c := tree.AddTarget("c")
	d := tree.AddTarget("d")
	tree.Depend(b, a)
	tree.Depend(c, b)
	tree.Depend(d, c)
	tree.Depend(c, a)
	tree.Depend(d, a)
	tree.Depend(d, b)

	tree.Simplify()

	assert.Equal(t, []Handle{b}, tree.DependedBy(a))
	assert.Equal(t, []Handle{c}, tree.DependedBy(b))
	assert.Equal(t, []Handle{d}, tree.DependedBy(c))
	assert.Equal(t, []Handle{c}, tree.DependsOn(d))
}

func TestSimplifyKeepsIndependentEdges(t *testing.T) {
	// A genuine join: c depends on a and b, which are unrelated. Neither
	// edge duplicates a longer path, so both must survive.
	tree := New[struct{}]()
	a := tree.AddTarget("a")
	b := tree.AddTarget("b")
	c := tree.AddTarget("c")
	tree.Depend(c, a)
	tree.Depend(c, b)

	tree.Simplify()

	assert.ElementsMatch(t, []Handle{a, b}, tree.DependsOn(c))
}

func TestSimplifyAcrossMultipleRoots(t *testing.T) {
	// Two roots sharing a downstream region. The shared visited marker means
	// the second traversal stops at anything the first already covered, but
	// every redundant edge must still be found.
	tree := New[struct{}]()
	r1 := tree.AddTarget("r1")
	r2 := tree.AddTarget("r2")
	m := tree.AddTarget("m")
	s := tree.AddTarget("s")
	tree.Depend(m, r1)
	tree.Depend(m, r2)
	tree.Depend(s, m)
	tree.Depend(s, r1)
	tree.Depend(s, r2)

	tree.Simplify()

	assert.Equal(t, []Handle{m}, tree.DependsOn(s))
	assert.ElementsMatch(t, []Handle{r1, r2}, tree.DependsOn(m))
}

func TestInsertionDirtiesReducedTree(t *testing.T) {
	tree, a, b, c := diamond(t)

	tree.Simplify()
	require.Equal(t, []Handle{b}, tree.DependsOn(c))

	// A new redundant edge re-dirties the tree, and the next pass prunes it.
	d := tree.AddTarget("d")
	tree.Depend(d, c)
	tree.Depend(d, a)

	tree.Simplify()
	assert.Equal(t, []Handle{c}, tree.DependsOn(d))
	assert.Equal(t, []Handle{b}, tree.DependsOn(c))
}
