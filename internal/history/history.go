// Package history keeps bounded undo and redo stacks of whole-canvas
// snapshots.
package history

import "image"

// DefaultCapacity is the number of undo steps kept when no capacity is
// configured.
const DefaultCapacity = 3

// Surface is the raster whose state is captured and restored.
type Surface interface {
	Snapshot() *image.RGBA
	Restore(*image.RGBA)
}

// History owns the undo and redo stacks for a single surface. The undo stack
// never holds more than Capacity snapshots; saving beyond that evicts the
// oldest one. The redo stack is not capped on its own, but it only ever
// receives entries popped off the undo stack so it cannot outgrow it.
type History struct {
	surface  Surface
	capacity int
	undo     []*image.RGBA
	redo     []*image.RGBA
}

// New returns an empty history for s. A capacity below 1 selects
// DefaultCapacity.
func New(s Surface, capacity int) *History {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &History{surface: s, capacity: capacity}
}

// Capacity reports the maximum depth of the undo stack.
func (h *History) Capacity() int { return h.capacity }

// UndoLen reports how many undo steps are available.
func (h *History) UndoLen() int { return len(h.undo) }

// RedoLen reports how many redo steps are available.
func (h *History) RedoLen() int { return len(h.redo) }

func (h *History) CanUndo() bool { return len(h.undo) > 0 }

func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// SaveState records the current surface as an undo step and discards the
// redo stack. Call it once when an edit begins, before any pixel changes.
func (h *History) SaveState() {
	h.undo = h.pushUndo(h.surface.Snapshot())
	clearStack(h.redo)
	h.redo = h.redo[:0]
}

// Undo restores the most recent undo step, moving the current state onto
// the redo stack. It reports false and does nothing when there is nothing
// to undo.
func (h *History) Undo() bool {
	if len(h.undo) == 0 {
		return false
	}
	h.redo = append(h.redo, h.surface.Snapshot())
	prev := pop(&h.undo)
	h.surface.Restore(prev)
	return true
}

// Redo reapplies the most recently undone step, moving the current state
// back onto the undo stack.
func (h *History) Redo() bool {
	if len(h.redo) == 0 {
		return false
	}
	h.undo = h.pushUndo(h.surface.Snapshot())
	next := pop(&h.redo)
	h.surface.Restore(next)
	return true
}

// Clear drops every undo and redo step. It is used when the canvas changes
// dimensions and old snapshots no longer fit.
func (h *History) Clear() {
	clearStack(h.undo)
	clearStack(h.redo)
	h.undo = h.undo[:0]
	h.redo = h.redo[:0]
}

func (h *History) pushUndo(snap *image.RGBA) []*image.RGBA {
	stack := h.undo
	for len(stack) >= h.capacity {
		stack[0] = nil
		stack = stack[1:]
	}
	return append(stack, snap)
}

func pop(stack *[]*image.RGBA) *image.RGBA {
	s := *stack
	last := s[len(s)-1]
	s[len(s)-1] = nil
	*stack = s[:len(s)-1]
	return last
}

// clearStack drops references so evicted rasters can be collected.
func clearStack(stack []*image.RGBA) {
	for i := range stack {
		stack[i] = nil
	}
}
