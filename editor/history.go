package editor

import "erdraw/diagram"

// History is a linear undo/redo sequence of graph snapshots with a movable
// cursor. The store is copy-on-write, so snapshots are stored by reference
// without re-cloning; committed graphs must never be mutated afterwards.
// Snapshots are never merged: one commit is one undo step.
type History struct {
	states []*diagram.Graph
	cursor int
	max    int
}

// NewHistory creates a history holding at most max snapshots. Non-positive
// max defaults to 500.
func NewHistory(max int) *History {
	if max <= 0 {
		max = 500
	}
	return &History{
		states: make([]*diagram.Graph, 0, max),
		cursor: -1,
		max:    max,
	}
}

// Commit truncates any snapshots after the cursor, appends the new graph and
// advances the cursor to it. When the cap is exceeded the oldest snapshot is
// dropped.
func (h *History) Commit(g *diagram.Graph) {
	if h.cursor < len(h.states)-1 {
		h.states = h.states[:h.cursor+1]
	}
	h.states = append(h.states, g)
	h.cursor++

	if len(h.states) > h.max {
		h.states = h.states[1:]
		h.cursor--
	}
}

// CanUndo returns true if a prior snapshot exists.
func (h *History) CanUndo() bool {
	return h.cursor > 0
}

// CanRedo returns true if a later snapshot exists.
func (h *History) CanRedo() bool {
	return h.cursor < len(h.states)-1
}

// Undo moves the cursor back one snapshot and returns it, or nil when
// already at the oldest state.
func (h *History) Undo() *diagram.Graph {
	if !h.CanUndo() {
		return nil
	}
	h.cursor--
	return h.states[h.cursor]
}

// Redo moves the cursor forward one snapshot and returns it, or nil when
// already at the newest state.
func (h *History) Redo() *diagram.Graph {
	if !h.CanRedo() {
		return nil
	}
	h.cursor++
	return h.states[h.cursor]
}

// Current returns the snapshot under the cursor, or nil when empty.
func (h *History) Current() *diagram.Graph {
	if h.cursor < 0 {
		return nil
	}
	return h.states[h.cursor]
}

// Stats returns the 1-based cursor position and the total snapshot count.
func (h *History) Stats() (current, total int) {
	return h.cursor + 1, len(h.states)
}
