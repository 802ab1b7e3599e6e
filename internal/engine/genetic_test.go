package engine

import (
	"math/rand"
	"testing"

	"github.com/piwi3910/shelfpack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTestEntries() []Entry {
	return []Entry{
		entry(0, 40, 30),
		entry(1, 20, 15),
		entry(2, 20, 15),
		entry(3, 50, 40),
	}
}

func makeTestSettings() model.PackSettings {
	s := model.DefaultSettings()
	s.Algorithm = model.AlgorithmGenetic
	return s
}

// packingScore mirrors the search score for a finished packing.
func packingScore(entries []Entry, container model.Size, p Packing) float64 {
	sizes := sizesByHandle(entries)
	var used float64
	for _, h := range p.Placed {
		used += sizes[h].Area()
	}
	return used/container.Area() - float64(len(p.Overflow))*overflowPenalty
}

func TestGeneticOptimizerPlacesAllEntries(t *testing.T) {
	entries := makeTestEntries()
	container := model.NewSize(244, 122)

	p, err := OptimizeGenetic(makeTestSettings(), entries, container)
	require.NoError(t, err)

	assert.Len(t, p.Placed, 4)
	assert.Empty(t, p.Overflow)
	assertValidPacking(t, entries, container, p)
}

func TestGeneticOptimizerEmptyInput(t *testing.T) {
	p, err := OptimizeGenetic(makeTestSettings(), nil, model.NewSize(10, 10))
	require.NoError(t, err)
	assert.Empty(t, p.Placed)
	assert.Empty(t, p.Overflow)
}

func TestGeneticOptimizerRejectsInvalidInput(t *testing.T) {
	_, err := OptimizeGenetic(makeTestSettings(), []Entry{entry(0, -1, 1)}, model.NewSize(10, 10))
	assert.ErrorIs(t, err, model.ErrNegativeSize)

	_, err = OptimizeGenetic(makeTestSettings(), []Entry{entry(0, 1, 1), entry(0, 1, 1)}, model.NewSize(10, 10))
	assert.ErrorIs(t, err, ErrDuplicateHandle)
}

func TestGeneticOptimizerEntryTooLarge(t *testing.T) {
	p, err := OptimizeGenetic(makeTestSettings(), []Entry{entry(0, 500, 300)}, model.NewSize(100, 50))
	require.NoError(t, err)
	assert.Empty(t, p.Placed)
	assert.Equal(t, []int{0}, p.Overflow)
}

func TestGeneticOptimizerDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	entries := randomEntries(rng, 25, 30)
	container := model.NewSize(80, 80)

	a, err := OptimizeGenetic(makeTestSettings(), entries, container)
	require.NoError(t, err)
	b, err := OptimizeGenetic(makeTestSettings(), entries, container)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestGeneticOptimizerAtLeastAsGoodAsShelf(t *testing.T) {
	container := model.NewSize(60, 60)

	for seed := int64(1); seed <= 5; seed++ {
		rng := rand.New(rand.NewSource(seed))
		entries := randomEntries(rng, 15, 25)

		for _, key := range model.SortKeys() {
			settings := makeTestSettings()
			settings.SortKey = key

			shelf, err := Pack(entries, container, key)
			require.NoError(t, err)
			genetic, err := OptimizeGenetic(settings, entries, container)
			require.NoError(t, err)

			assertValidPacking(t, entries, container, genetic)
			assert.GreaterOrEqual(t,
				packingScore(entries, container, genetic),
				packingScore(entries, container, shelf),
				"seed %d key %s", seed, key)
		}
	}
}

func TestSortedOrderMatchesPack(t *testing.T) {
	entries := []Entry{entry(0, 2, 3), entry(1, 8, 9), entry(2, 5, 3)}
	s := newOrderSearch(DefaultGeneticConfig(), model.SortHeight, entries, model.NewSize(20, 20), 1)

	o := s.sortedOrder()
	assert.Equal(t, []int{1, 0, 2}, o.perm)

	want, err := Pack(entries, model.NewSize(20, 20), model.SortHeight)
	require.NoError(t, err)
	assert.Equal(t, want, s.pack(o))
}

func TestOrderPacksInPermutationOrder(t *testing.T) {
	entries := []Entry{entry(0, 2, 3), entry(1, 8, 9), entry(2, 5, 3)}
	container := model.NewSize(12, 12)
	s := newOrderSearch(DefaultGeneticConfig(), model.SortArea, entries, container, 1)

	want, err := PackOrdered([]Entry{entries[2], entries[0], entries[1]}, container)
	require.NoError(t, err)
	assert.Equal(t, want, s.pack(order{perm: []int{2, 0, 1}}))
}

func TestCrossoverKeepsPermutation(t *testing.T) {
	entries := []Entry{entry(0, 1, 1), entry(1, 2, 2), entry(2, 3, 3), entry(3, 4, 4), entry(4, 5, 5)}
	s := newOrderSearch(DefaultGeneticConfig(), model.SortArea, entries, model.NewSize(20, 20), 123)

	a := order{perm: []int{0, 1, 2, 3, 4}}
	b := order{perm: []int{4, 3, 2, 1, 0}}

	for i := 0; i < 20; i++ {
		child := s.crossover(a, b)
		require.Len(t, child.perm, 5)
		assert.ElementsMatch(t, []int{0, 1, 2, 3, 4}, child.perm)
	}
}

func TestMutatePreservesPermutation(t *testing.T) {
	config := DefaultGeneticConfig()
	config.MutationRate = 1
	entries := make([]Entry, 8)
	for i := range entries {
		entries[i] = entry(i, 1, 1)
	}
	s := newOrderSearch(config, model.SortHeight, entries, model.NewSize(10, 10), 9)

	o := order{perm: []int{0, 1, 2, 3, 4, 5, 6, 7}}
	for i := 0; i < 50; i++ {
		s.mutate(&o)
	}
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, o.perm)
}

func TestGeneticViaOptimizerDispatch(t *testing.T) {
	items := []model.Item{
		model.NewItem("A", 40, 30, 1),
		model.NewItem("B", 20, 15, 2),
		model.NewItem("C", 50, 40, 1),
	}

	result, err := New(makeTestSettings()).Optimize(items, model.NewSize(244, 122))
	require.NoError(t, err)
	assert.Len(t, result.Placements, 4)
}

func TestScaledConfigGrowsWithInput(t *testing.T) {
	base := DefaultGeneticConfig()
	assert.Equal(t, base, base.scaled(20))
	assert.Equal(t, 150, base.scaled(21).Generations)
	big := base.scaled(51)
	assert.Equal(t, 200, big.Generations)
	assert.Equal(t, 80, big.PopulationSize)
}
