package engine

import (
	"errors"
	"fmt"
	"sort"

	"github.com/piwi3910/shelfpack/internal/model"
)

// ErrDuplicateHandle is returned when two entries share a handle.
var ErrDuplicateHandle = errors.New("duplicate entry handle")

// Packing is the outcome of a single packing call.
type Packing struct {
	Origins  map[int]model.Point // Origin per placed handle
	Placed   []int               // Placed handles in placement order
	Overflow []int               // Rejected handles in rejection order
}

// Pack sorts entries descending by key and feeds them one by one into a fresh
// shelf tree the size of container. Entries with equal keys keep their input
// order. Entries that find no space are returned as overflow; overflow is a
// normal outcome, not an error.
//
// Pack fails only on invalid input: a negative dimension anywhere or a
// repeated handle.
func Pack(entries []Entry, container model.Size, key model.SortKey) (Packing, error) {
	packing, _, err := pack(sortEntries(entries, key), container)
	return packing, err
}

// PackOrdered is Pack without the sort: entries are fed in the given order.
func PackOrdered(entries []Entry, container model.Size) (Packing, error) {
	packing, _, err := pack(entries, container)
	return packing, err
}

// sortEntries returns a copy of entries sorted descending by key.
func sortEntries(entries []Entry, key model.SortKey) []Entry {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return key.Value(sorted[i].Size) > key.Value(sorted[j].Size)
	})
	return sorted
}

func validate(entries []Entry, container model.Size) error {
	if err := container.Validate(); err != nil {
		return fmt.Errorf("invalid container: %w", err)
	}
	seen := make(map[int]bool, len(entries))
	for _, e := range entries {
		if err := e.Size.Validate(); err != nil {
			return fmt.Errorf("invalid entry %d: %w", e.Handle, err)
		}
		if seen[e.Handle] {
			return fmt.Errorf("%w: %d", ErrDuplicateHandle, e.Handle)
		}
		seen[e.Handle] = true
	}
	return nil
}

// pack runs the placement loop over already-ordered entries and also returns
// the final tree.
func pack(ordered []Entry, container model.Size) (Packing, *section, error) {
	if err := validate(ordered, container); err != nil {
		return Packing{}, nil, err
	}

	tree := newSpace(container)
	result := Packing{Origins: make(map[int]model.Point, len(ordered))}
	containerArea := container.Area()

	for i, e := range ordered {
		next, ok := tree.place(e)
		if ok {
			tree = next
			result.Placed = append(result.Placed, e.Handle)
			continue
		}

		result.Overflow = append(result.Overflow, e.Handle)
		if tree.areaUsed() >= containerArea {
			// Saturated: nothing with positive area can fit any more.
			for _, rest := range ordered[i+1:] {
				result.Overflow = append(result.Overflow, rest.Handle)
			}
			break
		}
	}

	for _, h := range result.Placed {
		origin, ok := tree.originOf(h, 0, 0)
		if !ok {
			panic(fmt.Sprintf("engine: placed entry %d missing from section tree", h))
		}
		result.Origins[h] = origin
	}

	return result, tree, nil
}
