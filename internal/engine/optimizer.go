package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/piwi3910/shelfpack/internal/model"
)

// ErrInvalidQuantity is returned for items with a quantity below one.
var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// Optimizer runs the 2D bin-packing algorithm for caller items.
type Optimizer struct {
	Settings model.PackSettings
}

func New(settings model.PackSettings) *Optimizer {
	return &Optimizer{Settings: settings}
}

// Optimize packs items into a container of the given size.
// Each item is expanded by its quantity into individual copies; every copy is
// placed or reported as overflow on its own. Placements are listed in
// placement order and overflow in rejection order.
func (o *Optimizer) Optimize(items []model.Item, container model.Size) (model.PackResult, error) {
	expanded, err := expandItems(items)
	if err != nil {
		return model.PackResult{}, err
	}

	entries := make([]Entry, len(expanded))
	for i, it := range expanded {
		entries[i] = Entry{Handle: i, Size: it.Size()}
	}

	var packing Packing
	if o.Settings.Algorithm == model.AlgorithmGenetic {
		packing, err = OptimizeGenetic(o.Settings, entries, container)
	} else {
		packing, err = Pack(entries, container, o.Settings.SortKey)
	}
	if err != nil {
		return model.PackResult{}, err
	}

	result := model.PackResult{
		Container:  container,
		Placements: make([]model.Placement, 0, len(packing.Placed)),
		Overflow:   make([]model.Item, 0, len(packing.Overflow)),
	}
	for _, h := range packing.Placed {
		origin := packing.Origins[h]
		result.Placements = append(result.Placements, model.Placement{
			Item: expanded[h],
			X:    origin.X,
			Y:    origin.Y,
		})
	}
	for _, h := range packing.Overflow {
		result.Overflow = append(result.Overflow, expanded[h])
	}
	return result, nil
}

// OptimizeContext runs Optimize on its own goroutine and gives up when ctx is
// done first. The packing itself is not interrupted; its result is discarded.
func (o *Optimizer) OptimizeContext(ctx context.Context, items []model.Item, container model.Size) (model.PackResult, error) {
	if err := ctx.Err(); err != nil {
		return model.PackResult{}, err
	}

	type outcome struct {
		result model.PackResult
		err    error
	}

	done := make(chan outcome, 1)
	go func() {
		r, err := o.Optimize(items, container)
		done <- outcome{result: r, err: err}
	}()

	select {
	case <-ctx.Done():
		return model.PackResult{}, ctx.Err()
	case out := <-done:
		return out.result, out.err
	}
}

// expandItems turns quantities into individual copies with Quantity=1.
// Items without an ID get a generated one so copies can be traced back.
func expandItems(items []model.Item) ([]model.Item, error) {
	var expanded []model.Item
	for _, it := range items {
		if it.Quantity < 1 {
			return nil, fmt.Errorf("item %q: %w", it.Label, ErrInvalidQuantity)
		}
		if it.ID == "" {
			it.ID = model.NewID()
		}
		for i := 0; i < it.Quantity; i++ {
			cp := it
			cp.Quantity = 1
			expanded = append(expanded, cp)
		}
	}
	return expanded, nil
}
