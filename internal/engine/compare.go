package engine

import (
	"context"
	"fmt"

	"github.com/piwi3910/shelfpack/internal/model"
)

// ComparisonScenario is a named settings variant.
type ComparisonScenario struct {
	Name     string
	Settings model.PackSettings
}

// ComparisonResult is one scenario's packing with its headline numbers.
type ComparisonResult struct {
	Scenario   ComparisonScenario
	Result     model.PackResult
	Placed     int
	Overflow   int
	UsedArea   float64
	Efficiency float64
}

func newComparisonResult(s ComparisonScenario, r model.PackResult) ComparisonResult {
	return ComparisonResult{
		Scenario:   s,
		Result:     r,
		Placed:     len(r.Placements),
		Overflow:   len(r.Overflow),
		UsedArea:   r.UsedArea(),
		Efficiency: r.Efficiency(),
	}
}

// beats reports whether r should be preferred over other: fewer overflow
// copies first, then higher efficiency.
func (r ComparisonResult) beats(other ComparisonResult) bool {
	if r.Overflow != other.Overflow {
		return r.Overflow < other.Overflow
	}
	return r.Efficiency > other.Efficiency
}

// CompareScenarios packs the same items once per scenario, in scenario order.
func CompareScenarios(scenarios []ComparisonScenario, items []model.Item, container model.Size) ([]ComparisonResult, error) {
	return CompareScenariosContext(context.Background(), scenarios, items, container)
}

// CompareScenariosContext is CompareScenarios that stops between scenarios
// once ctx is done.
func CompareScenariosContext(ctx context.Context, scenarios []ComparisonScenario, items []model.Item, container model.Size) ([]ComparisonResult, error) {
	results := make([]ComparisonResult, 0, len(scenarios))
	for _, s := range scenarios {
		r, err := New(s.Settings).OptimizeContext(ctx, items, container)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
		}
		results = append(results, newComparisonResult(s, r))
	}
	return results, nil
}

// BuildDefaultScenarios returns base as "Current Settings", then base with
// each other sort key, then base with the other algorithm.
func BuildDefaultScenarios(base model.PackSettings) []ComparisonScenario {
	scenarios := []ComparisonScenario{{Name: "Current Settings", Settings: base}}

	for _, key := range model.SortKeys() {
		if key == base.SortKey {
			continue
		}
		s := base
		s.SortKey = key
		scenarios = append(scenarios, ComparisonScenario{Name: "Sort by " + key.String(), Settings: s})
	}

	alt := base
	name := "Genetic Algorithm"
	alt.Algorithm = model.AlgorithmGenetic
	if base.Algorithm == model.AlgorithmGenetic {
		name, alt.Algorithm = "Shelf Algorithm", model.AlgorithmShelf
	}
	return append(scenarios, ComparisonScenario{Name: name, Settings: alt})
}

// BestResult returns the index of the preferred result, the earliest on a
// tie, or -1 for an empty slice.
func BestResult(results []ComparisonResult) int {
	if len(results) == 0 {
		return -1
	}
	best := 0
	for i := 1; i < len(results); i++ {
		if results[i].beats(results[best]) {
			best = i
		}
	}
	return best
}
