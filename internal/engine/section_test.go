package engine

import (
	"testing"

	"github.com/piwi3910/shelfpack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(h int, w, ht float64) Entry {
	return Entry{Handle: h, Size: model.NewSize(w, ht)}
}

func TestSection_PlaceIntoEmptySpace(t *testing.T) {
	tree := newSpace(model.NewSize(10, 10))

	next, ok := tree.place(entry(1, 4, 3))
	require.True(t, ok)
	require.True(t, next.occupied)

	assert.Equal(t, 1, next.entry.Handle)
	assert.Equal(t, model.NewSize(6, 3), next.right.space, "right child spans the rest of the row")
	assert.Equal(t, model.NewSize(10, 7), next.down.space, "down child keeps the full width")
	assert.False(t, next.right.occupied)
	assert.False(t, next.down.occupied)
}

func TestSection_PlaceDoesNotMutateReceiver(t *testing.T) {
	tree := newSpace(model.NewSize(10, 10))
	first, ok := tree.place(entry(1, 5, 5))
	require.True(t, ok)

	second, ok := first.place(entry(2, 5, 5))
	require.True(t, ok)

	assert.False(t, tree.occupied, "original space stays free")
	assert.Equal(t, 25.0, first.areaUsed())
	assert.Equal(t, 50.0, second.areaUsed())
	assert.Same(t, first.down, second.down, "untouched subtree is shared")
}

func TestSection_PlacePrefersRightOverDown(t *testing.T) {
	tree := newSpace(model.NewSize(10, 10))
	tree, _ = tree.place(entry(1, 5, 5))

	// Both the right (5x5) and down (10x5) spaces fit a 5x5 entry.
	tree, ok := tree.place(entry(2, 5, 5))
	require.True(t, ok)

	origin, found := tree.originOf(2, 0, 0)
	require.True(t, found)
	assert.Equal(t, model.Point{X: 5, Y: 0}, origin)
}

func TestSection_PlaceFallsBackToDown(t *testing.T) {
	tree := newSpace(model.NewSize(10, 10))
	tree, _ = tree.place(entry(1, 8, 4))

	// Right space is 2x4, so a 3x3 entry must go below.
	tree, ok := tree.place(entry(2, 3, 3))
	require.True(t, ok)

	origin, found := tree.originOf(2, 0, 0)
	require.True(t, found)
	assert.Equal(t, model.Point{X: 0, Y: 4}, origin)
}

func TestSection_PlaceFailsWhenNothingFits(t *testing.T) {
	tree := newSpace(model.NewSize(10, 10))

	_, ok := tree.place(entry(1, 11, 1))
	assert.False(t, ok, "too wide")

	_, ok = tree.place(entry(1, 1, 11))
	assert.False(t, ok, "too tall")

	full, ok := tree.place(entry(1, 10, 10))
	require.True(t, ok)
	_, ok = full.place(entry(2, 1, 1))
	assert.False(t, ok, "no room left")
}

func TestSection_ExactFit(t *testing.T) {
	tree := newSpace(model.NewSize(7, 3))
	next, ok := tree.place(entry(1, 7, 3))
	require.True(t, ok)
	assert.Equal(t, model.NewSize(0, 3), next.right.space)
	assert.Equal(t, model.NewSize(7, 0), next.down.space)
}

func TestSection_OriginOfNested(t *testing.T) {
	// C fills the top row, A goes below it, B lands right of A.
	tree := newSpace(model.NewSize(10, 10))
	var ok bool
	for _, e := range []Entry{entry(3, 10, 6), entry(1, 6, 4), entry(2, 4, 4)} {
		tree, ok = tree.place(e)
		require.True(t, ok, "entry %d", e.Handle)
	}

	cases := map[int]model.Point{
		3: {X: 0, Y: 0},
		1: {X: 0, Y: 6},
		2: {X: 6, Y: 6},
	}
	for h, want := range cases {
		got, found := tree.originOf(h, 0, 0)
		require.True(t, found, "handle %d", h)
		assert.Equal(t, want, got, "handle %d", h)
	}

	_, found := tree.originOf(99, 0, 0)
	assert.False(t, found)
}

func TestSection_OriginOfOnEmptySpace(t *testing.T) {
	_, found := newSpace(model.NewSize(5, 5)).originOf(0, 0, 0)
	assert.False(t, found)
}

func TestSection_AreaUsed(t *testing.T) {
	tree := newSpace(model.NewSize(10, 10))
	assert.Equal(t, 0.0, tree.areaUsed())

	tree, _ = tree.place(entry(1, 1, 1))
	assert.Equal(t, 1.0, tree.areaUsed())

	tree, _ = tree.place(entry(2, 3, 2))
	assert.Equal(t, 7.0, tree.areaUsed())

	tree, _ = tree.place(entry(3, 0, 0))
	assert.Equal(t, 7.0, tree.areaUsed(), "zero-area entry adds nothing")
}

func TestSection_EntriesPreOrder(t *testing.T) {
	tree := newSpace(model.NewSize(10, 10))
	for _, e := range []Entry{entry(1, 5, 5), entry(2, 5, 5), entry(3, 5, 5)} {
		tree, _ = tree.place(e)
	}

	var handles []int
	for _, e := range tree.entries(nil) {
		handles = append(handles, e.Handle)
	}
	assert.Equal(t, []int{1, 2, 3}, handles)
}
