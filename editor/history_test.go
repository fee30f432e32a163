package editor

import (
	"testing"

	"erdraw/diagram"
)

func graphWithShapes(n int) *diagram.Graph {
	g := &diagram.Graph{}
	for i := 1; i <= n; i++ {
		g.Shapes = append(g.Shapes, diagram.Shape{
			ID: i, Kind: diagram.KindEntity, Width: 140, Height: 60,
		})
	}
	return g
}

func TestHistoryUndoRedo(t *testing.T) {
	h := NewHistory(10)
	for i := 0; i <= 3; i++ {
		h.Commit(graphWithShapes(i))
	}

	current, total := h.Stats()
	if current != 4 || total != 4 {
		t.Fatalf("Stats() = (%d, %d), want (4, 4)", current, total)
	}

	if !h.CanUndo() {
		t.Fatal("should be able to undo")
	}
	g := h.Undo()
	if g == nil || len(g.Shapes) != 2 {
		t.Fatalf("undo returned wrong snapshot: %+v", g)
	}

	if !h.CanRedo() {
		t.Fatal("should be able to redo after undo")
	}
	g = h.Redo()
	if g == nil || len(g.Shapes) != 3 {
		t.Fatalf("redo returned wrong snapshot: %+v", g)
	}
	if h.CanRedo() {
		t.Error("redo past the newest state should not be possible")
	}
}

func TestHistoryUndoAtOldestIsNoop(t *testing.T) {
	h := NewHistory(10)
	h.Commit(graphWithShapes(0))
	if h.CanUndo() {
		t.Error("single snapshot should not be undoable")
	}
	if g := h.Undo(); g != nil {
		t.Error("undo at the oldest state should return nil")
	}
}

func TestHistoryCommitTruncatesRedoTail(t *testing.T) {
	h := NewHistory(10)
	for i := 0; i <= 3; i++ {
		h.Commit(graphWithShapes(i))
	}

	h.Undo()
	h.Undo() // cursor at 1 shape
	h.Commit(graphWithShapes(9))

	if h.CanRedo() {
		t.Error("commit must truncate the redo tail")
	}
	current, total := h.Stats()
	if current != 3 || total != 3 {
		t.Errorf("Stats() = (%d, %d), want (3, 3)", current, total)
	}
	if g := h.Undo(); g == nil || len(g.Shapes) != 1 {
		t.Errorf("undo after truncation returned wrong snapshot: %+v", g)
	}
}

func TestHistoryCapDropsOldest(t *testing.T) {
	h := NewHistory(3)
	for i := 0; i <= 4; i++ {
		h.Commit(graphWithShapes(i))
	}

	_, total := h.Stats()
	if total != 3 {
		t.Fatalf("total = %d, want cap of 3", total)
	}

	// Undo to the oldest retained state.
	var g *diagram.Graph
	for h.CanUndo() {
		g = h.Undo()
	}
	if g == nil || len(g.Shapes) != 2 {
		t.Errorf("oldest retained snapshot has %d shapes, want 2", len(g.Shapes))
	}
}

func TestHistoryDefaultCap(t *testing.T) {
	h := NewHistory(0)
	if h.max != 500 {
		t.Errorf("default cap = %d, want 500", h.max)
	}
}
