package engine

import "github.com/piwi3910/shelfpack/internal/model"

// Entry is one item copy fed into the packer. Handle identifies the copy
// within a single packing call; the engine never looks at caller data.
type Entry struct {
	Handle int
	Size   model.Size
}

// section is a node of the shelf tree. A node is either free space of a given
// size, or an occupied slot holding one entry with two child sections:
// right (the rest of the row, as tall as the entry) and down (everything below
// the entry, as wide as the parent space).
//
// Nodes are never modified after construction. place returns a new tree that
// shares every untouched subtree with the receiver.
type section struct {
	occupied bool
	space    model.Size // valid when !occupied
	entry    Entry      // valid when occupied
	right    *section
	down     *section
}

func newSpace(size model.Size) *section {
	return &section{space: size}
}

// place searches depth-first, right before down, for the first free space that
// fits e. It returns the updated tree and true, or nil and false when no
// space in the tree can hold the entry.
func (s *section) place(e Entry) (*section, bool) {
	if !s.occupied {
		if !s.space.Fits(e.Size) {
			return nil, false
		}
		return s.split(e), true
	}

	if right, ok := s.right.place(e); ok {
		return &section{occupied: true, entry: s.entry, right: right, down: s.down}, true
	}
	if down, ok := s.down.place(e); ok {
		return &section{occupied: true, entry: s.entry, right: s.right, down: down}, true
	}
	return nil, false
}

// split turns a free space into an occupied node holding e.
func (s *section) split(e Entry) *section {
	return &section{
		occupied: true,
		entry:    e,
		right:    newSpace(model.Size{Width: s.space.Width - e.Size.Width, Height: e.Size.Height}),
		down:     newSpace(model.Size{Width: s.space.Width, Height: s.space.Height - e.Size.Height}),
	}
}

// originOf returns the absolute origin of the entry with the given handle.
// rightDistance and downDistance are the offsets of s itself.
func (s *section) originOf(handle int, rightDistance, downDistance float64) (model.Point, bool) {
	if !s.occupied {
		return model.Point{}, false
	}
	if s.entry.Handle == handle {
		return model.Point{X: rightDistance, Y: downDistance}, true
	}
	if p, ok := s.right.originOf(handle, rightDistance+s.entry.Size.Width, downDistance); ok {
		return p, true
	}
	return s.down.originOf(handle, rightDistance, downDistance+s.entry.Size.Height)
}

// areaUsed sums the areas of every placed entry.
func (s *section) areaUsed() float64 {
	var total float64
	for _, e := range s.entries(nil) {
		total += e.Size.Area()
	}
	return total
}

// entries appends every placed entry in pre-order (node, right, down).
func (s *section) entries(dst []Entry) []Entry {
	if !s.occupied {
		return dst
	}
	dst = append(dst, s.entry)
	dst = s.right.entries(dst)
	return s.down.entries(dst)
}
