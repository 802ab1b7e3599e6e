package ui

import (
	"slices"

	"github.com/piwi3910/shelfpack/internal/model"
)

const defaultMaxDepth = 50

// Snapshot is the editable part of a project: everything a packing result
// depends on.
type Snapshot struct {
	Items     []model.Item
	Container model.Size
	Settings  model.PackSettings
	Label     string // e.g. "Add Item"
}

// MakeSnapshot captures proj under label. Items are copied.
func MakeSnapshot(proj model.Project, label string) Snapshot {
	return Snapshot{
		Items:     slices.Clone(proj.Items),
		Container: proj.Container,
		Settings:  proj.Settings,
		Label:     label,
	}
}

// Apply restores the snapshot onto proj and drops the stale result.
func (s Snapshot) Apply(proj *model.Project) {
	proj.Items = slices.Clone(s.Items)
	proj.Container = s.Container
	proj.Settings = s.Settings
	proj.Result = nil
}

// snapshots is a LIFO stack.
type snapshots []Snapshot

func (st *snapshots) push(s Snapshot) { *st = append(*st, s) }

func (st *snapshots) pop() (Snapshot, bool) {
	n := len(*st)
	if n == 0 {
		return Snapshot{}, false
	}
	s := (*st)[n-1]
	*st = (*st)[:n-1]
	return s, true
}

// History is a bounded undo/redo log. Callers push the state before each
// change and hand in the current state when stepping.
type History struct {
	undoStack snapshots
	redoStack snapshots
	maxDepth  int
}

func NewHistory() *History {
	return &History{maxDepth: defaultMaxDepth}
}

// Push records s as the state before a change. It discards the redo stack
// and the oldest entries beyond the depth limit.
func (h *History) Push(s Snapshot) {
	h.undoStack.push(s)
	if extra := len(h.undoStack) - h.maxDepth; extra > 0 {
		h.undoStack = slices.Delete(h.undoStack, 0, extra)
	}
	h.redoStack = nil
}

// Undo returns the state to restore and moves current onto the redo stack.
func (h *History) Undo(current Snapshot) (Snapshot, bool) {
	return step(&h.undoStack, &h.redoStack, current)
}

// Redo is the inverse of Undo.
func (h *History) Redo(current Snapshot) (Snapshot, bool) {
	return step(&h.redoStack, &h.undoStack, current)
}

func step(from, to *snapshots, current Snapshot) (Snapshot, bool) {
	s, ok := from.pop()
	if ok {
		to.push(current)
	}
	return s, ok
}

func (h *History) CanUndo() bool { return len(h.undoStack) > 0 }

func (h *History) CanRedo() bool { return len(h.redoStack) > 0 }

// Clear forgets both stacks.
func (h *History) Clear() {
	h.undoStack, h.redoStack = nil, nil
}
