package engine

import (
	"cmp"
	"math/rand"
	"slices"

	"github.com/piwi3910/shelfpack/internal/model"
)

// GeneticConfig tunes the feed-order search.
type GeneticConfig struct {
	PopulationSize int
	Generations    int
	MutationRate   float64
	TournamentSize int
	EliteCount     int
}

// DefaultGeneticConfig returns the parameters used for small inputs.
func DefaultGeneticConfig() GeneticConfig {
	return GeneticConfig{
		PopulationSize: 50,
		Generations:    100,
		MutationRate:   0.15,
		TournamentSize: 3,
		EliteCount:     2,
	}
}

// scaled grows the search for larger inputs.
func (c GeneticConfig) scaled(n int) GeneticConfig {
	switch {
	case n > 50:
		c.Generations, c.PopulationSize = 200, 80
	case n > 20:
		c.Generations = 150
	}
	return c
}

// overflowPenalty is subtracted from the fill ratio per rejected entry.
const overflowPenalty = 0.01

// order is one candidate feed order, a permutation of entry indices, with
// its score once evaluated.
type order struct {
	perm  []int
	score float64
}

func (o order) clone() order {
	return order{perm: slices.Clone(o.perm), score: o.score}
}

// orderSearch evolves feed orders for the shelf packer.
type orderSearch struct {
	cfg       GeneticConfig
	key       model.SortKey
	entries   []Entry
	container model.Size
	rng       *rand.Rand
}

func newOrderSearch(cfg GeneticConfig, key model.SortKey, entries []Entry, container model.Size, seed int64) *orderSearch {
	return &orderSearch{cfg: cfg, key: key, entries: entries, container: container, rng: rand.New(rand.NewSource(seed))}
}

// run evolves the population and packs the best order found.
func (s *orderSearch) run() Packing {
	pop := s.firstGeneration()
	for range s.cfg.Generations {
		pop = s.nextGeneration(pop)
	}
	rank(pop)
	return s.pack(pop[0])
}

// firstGeneration is random permutations led by the plain sorted order, so
// the search can never end worse than Pack.
func (s *orderSearch) firstGeneration() []order {
	pop := make([]order, s.cfg.PopulationSize)
	for i := range pop {
		if i == 0 {
			pop[i] = s.sortedOrder()
		} else {
			pop[i] = order{perm: s.rng.Perm(len(s.entries))}
		}
		pop[i].score = s.score(pop[i])
	}
	return pop
}

func (s *orderSearch) nextGeneration(pop []order) []order {
	rank(pop)
	next := make([]order, 0, s.cfg.PopulationSize)
	for _, elite := range pop[:min(s.cfg.EliteCount, len(pop))] {
		next = append(next, elite.clone())
	}
	for len(next) < s.cfg.PopulationSize {
		child := s.crossover(s.tournament(pop), s.tournament(pop))
		s.mutate(&child)
		child.score = s.score(child)
		next = append(next, child)
	}
	return next
}

// rank sorts pop best first, keeping earlier orders ahead on ties.
func rank(pop []order) {
	slices.SortStableFunc(pop, func(a, b order) int { return cmp.Compare(b.score, a.score) })
}

// sortedOrder is the feed order Pack uses for the search's sort key.
func (s *orderSearch) sortedOrder() order {
	perm := make([]int, len(s.entries))
	for i := range perm {
		perm[i] = i
	}
	slices.SortStableFunc(perm, func(a, b int) int {
		return cmp.Compare(s.key.Value(s.entries[b].Size), s.key.Value(s.entries[a].Size))
	})
	return order{perm: perm}
}

// score is the filled share of the container minus a penalty per rejected
// entry.
func (s *orderSearch) score(o order) float64 {
	p := s.pack(o)
	area := s.container.Area()
	if area <= 0 {
		return -float64(len(p.Overflow)) * overflowPenalty
	}
	var used float64
	for _, i := range o.perm {
		if _, ok := p.Origins[s.entries[i].Handle]; ok {
			used += s.entries[i].Size.Area()
		}
	}
	return used/area - float64(len(p.Overflow))*overflowPenalty
}

// pack feeds the entries in o's order. Entries are validated up front, so the
// error is always nil.
func (s *orderSearch) pack(o order) Packing {
	feed := make([]Entry, len(o.perm))
	for i, idx := range o.perm {
		feed[i] = s.entries[idx]
	}
	p, _ := PackOrdered(feed, s.container)
	return p
}

// tournament returns a copy of the best of TournamentSize random picks.
func (s *orderSearch) tournament(pop []order) order {
	best := pop[s.rng.Intn(len(pop))]
	for range s.cfg.TournamentSize - 1 {
		if c := pop[s.rng.Intn(len(pop))]; c.score > best.score {
			best = c
		}
	}
	return best.clone()
}

// crossover is order crossover: a slice of a is kept in place and the
// remaining positions are filled with b's genes in b's order, starting after
// the slice and wrapping.
func (s *orderSearch) crossover(a, b order) order {
	n := len(a.perm)
	if n <= 2 {
		return a.clone()
	}
	lo, hi := s.rng.Intn(n), s.rng.Intn(n)
	if lo > hi {
		lo, hi = hi, lo
	}

	child := make([]int, n)
	taken := make([]bool, n)
	for i := lo; i <= hi; i++ {
		child[i] = a.perm[i]
		taken[a.perm[i]] = true
	}
	pos := (hi + 1) % n
	for _, g := range b.perm {
		if taken[g] {
			continue
		}
		child[pos] = g
		pos = (pos + 1) % n
	}
	return order{perm: child}
}

// mutate swaps two genes with probability MutationRate and reverses a run
// with half that probability.
func (s *orderSearch) mutate(o *order) {
	n := len(o.perm)
	if n < 2 {
		return
	}
	if s.rng.Float64() < s.cfg.MutationRate {
		i, j := s.rng.Intn(n), s.rng.Intn(n)
		o.perm[i], o.perm[j] = o.perm[j], o.perm[i]
	}
	if s.rng.Float64() < s.cfg.MutationRate/2 {
		i, j := s.rng.Intn(n), s.rng.Intn(n)
		if i > j {
			i, j = j, i
		}
		slices.Reverse(o.perm[i : j+1])
	}
}

// OptimizeGenetic searches feed orders with a genetic algorithm and returns
// the best packing found. The search is deterministic for a given
// settings.Seed and never does worse than Pack with settings.SortKey.
func OptimizeGenetic(settings model.PackSettings, entries []Entry, container model.Size) (Packing, error) {
	if err := validate(entries, container); err != nil {
		return Packing{}, err
	}
	if len(entries) == 0 {
		return Packing{Origins: map[int]model.Point{}}, nil
	}
	cfg := DefaultGeneticConfig().scaled(len(entries))
	return newOrderSearch(cfg, settings.SortKey, entries, container, settings.Seed).run(), nil
}
