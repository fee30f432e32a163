// Package editor implements the interaction controller: it translates pointer
// and key events into store mutations and selection-state transitions, and
// keeps the undo/redo history. Transient UI state (selection, pending drags,
// the rename buffer) lives here and is never part of a history snapshot.
package editor

import (
	"fmt"

	"erdraw/diagram"
	"erdraw/geometry"
	"erdraw/render"
	"erdraw/store"
)

// dragThreshold is how far the pointer must travel from the press position
// before a press turns into a drag instead of a click, in canvas units.
const dragThreshold = 1.0

// Editor is the interaction controller. It owns the store and history and
// drives a render.Renderer; the front-end feeds it pointer and key events.
type Editor struct {
	store    *store.Store
	history  *History
	renderer render.Renderer

	mode               Mode
	selectedShape      int // shape ID, -1 for none
	selectedConnection int // connection ID, -1 for none
	connectSource      int // pending connection source shape ID, -1 for none

	// Rename state.
	editingShape int
	textBuffer   []rune
	cursorPos    int

	// Drag state. A press on a shape arms a drag; it becomes one only after
	// the pointer moves past dragThreshold.
	dragArmed  bool
	dragShape  int
	dragStart  diagram.Point
	dragOffset diagram.Point // pointer offset from the shape origin at press
	dragPos    diagram.Point // live position, not committed until release

	notice   string
	modified bool
}

// New creates an editor over an empty graph.
func New(r render.Renderer, historyLimit int) *Editor {
	e := &Editor{
		store:              store.New(),
		history:            NewHistory(historyLimit),
		renderer:           r,
		mode:               ModeIdle,
		selectedShape:      -1,
		selectedConnection: -1,
		connectSource:      -1,
		editingShape:       -1,
		dragShape:          -1,
	}
	// Seed the initial empty snapshot.
	e.history.Commit(e.store.Graph())
	return e
}

// SetGraph replaces the current graph, e.g. after loading a file. The loaded
// state becomes a new history entry.
func (e *Editor) SetGraph(g *diagram.Graph) error {
	s, err := store.Load(g)
	if err != nil {
		return err
	}
	e.store = s
	e.clearSelection()
	e.mode = ModeIdle
	e.history.Commit(e.store.Graph())
	return nil
}

// Graph returns the current graph.
func (e *Editor) Graph() *diagram.Graph {
	return e.store.Graph()
}

// Mode returns the current interaction mode.
func (e *Editor) Mode() Mode {
	return e.mode
}

// SelectedShape returns the selected shape ID, or -1.
func (e *Editor) SelectedShape() int {
	return e.selectedShape
}

// SelectedConnection returns the selected connection ID, or -1.
func (e *Editor) SelectedConnection() int {
	return e.selectedConnection
}

// ConnectSource returns the pending connection source shape ID, or -1.
func (e *Editor) ConnectSource() int {
	return e.connectSource
}

// Notice returns and clears the last user-visible message.
func (e *Editor) Notice() string {
	n := e.notice
	e.notice = ""
	return n
}

// Modified reports whether the graph changed since the last MarkSaved.
func (e *Editor) Modified() bool {
	return e.modified
}

// MarkSaved clears the modified flag, e.g. after writing the file.
func (e *Editor) MarkSaved() {
	e.modified = false
}

// HistoryStats returns the history cursor position and snapshot count.
func (e *Editor) HistoryStats() (current, total int) {
	return e.history.Stats()
}

// commit records the current graph as one undo step.
func (e *Editor) commit() {
	e.history.Commit(e.store.Graph())
	e.modified = true
}

func (e *Editor) clearSelection() {
	e.selectedShape = -1
	e.selectedConnection = -1
}

// selectShape selects a shape, deselecting any connection.
func (e *Editor) selectShape(id int) {
	e.selectedShape = id
	e.selectedConnection = -1
}

// selectConnection selects a connection, deselecting any shape.
func (e *Editor) selectConnection(id int) {
	e.selectedConnection = id
	e.selectedShape = -1
}

// InsertShape adds a shape of the given kind at the given position, selects
// it and records one history entry.
func (e *Editor) InsertShape(kind diagram.ShapeKind, at diagram.Point) int {
	if e.mode == ModeEditing {
		e.CommitEdit()
	}
	id := e.store.AddShape(kind, at)
	e.commit()
	e.selectShape(id)
	return id
}

// ToggleConnectMode enters connection-creation mode from idle, or cancels it
// when already active.
func (e *Editor) ToggleConnectMode() {
	switch e.mode {
	case ModeIdle:
		e.mode = ModeConnectSource
		e.connectSource = -1
	case ModeConnectSource, ModeConnectTarget:
		e.cancelConnectMode()
	}
}

func (e *Editor) cancelConnectMode() {
	e.mode = ModeIdle
	e.connectSource = -1
}

// PointerDown handles a primary-button press at a canvas position.
func (e *Editor) PointerDown(p diagram.Point) {
	// A click anywhere blurs an active rename.
	if e.mode == ModeEditing {
		e.CommitEdit()
	}

	hit := e.renderer.HitTest(p)

	switch e.mode {
	case ModeConnectSource, ModeConnectTarget:
		e.connectClick(hit)
		return
	}

	switch hit.Kind {
	case render.HitShape:
		e.selectShape(hit.ID)
		e.armDrag(hit.ID, p)
	case render.HitConnection:
		e.selectConnection(hit.ID)
	case render.HitMarker:
		// Cycles in place; selection is untouched.
		if e.store.CycleCardinality(hit.ID, hit.End) {
			e.commit()
		}
	default:
		e.clearSelection()
	}
}

// connectClick advances the two-click connection flow.
func (e *Editor) connectClick(hit render.Hit) {
	switch hit.Kind {
	case render.HitShape:
		if e.mode == ModeConnectSource {
			e.connectSource = hit.ID
			e.mode = ModeConnectTarget
			return
		}
		if hit.ID == e.connectSource {
			// Clicking the source again is a no-op; keep waiting.
			return
		}
		e.completeConnection(hit.ID)
	case render.HitBackground:
		e.cancelConnectMode()
	}
	// Clicks on lines or markers while connecting are ignored.
}

func (e *Editor) completeConnection(target int) {
	id, err := e.store.AddConnection(e.connectSource, target)
	e.cancelConnectMode()
	if err != nil {
		e.notice = fmt.Sprintf("not connected: %v", err)
		return
	}
	if id == 0 {
		// An endpoint vanished between clicks; silently drop the attempt.
		return
	}
	e.commit()
}

func (e *Editor) armDrag(shapeID int, p diagram.Point) {
	shape, ok := e.store.Graph().FindShape(shapeID)
	if !ok {
		return
	}
	e.dragArmed = true
	e.dragShape = shapeID
	e.dragStart = p
	e.dragOffset = diagram.Point{X: p.X - shape.X, Y: p.Y - shape.Y}
	e.dragPos = diagram.Point{X: shape.X, Y: shape.Y}
}

// PointerMove handles pointer motion. During a drag the live position is
// updated and the next Render pass reroutes all touched connectors straight
// against the renderer; nothing is committed until release.
func (e *Editor) PointerMove(p diagram.Point) {
	if e.mode == ModeDragging {
		e.dragPos = diagram.Point{X: p.X - e.dragOffset.X, Y: p.Y - e.dragOffset.Y}
		return
	}
	if e.dragArmed && geometry.Distance(p, e.dragStart) > dragThreshold {
		e.mode = ModeDragging
		e.dragPos = diagram.Point{X: p.X - e.dragOffset.X, Y: p.Y - e.dragOffset.Y}
	}
}

// PointerUp handles a primary-button release. A completed drag commits
// exactly one move at the release position.
func (e *Editor) PointerUp(p diagram.Point) {
	if e.mode == ModeDragging {
		e.dragPos = diagram.Point{X: p.X - e.dragOffset.X, Y: p.Y - e.dragOffset.Y}
		if e.store.MoveShape(e.dragShape, e.dragPos) {
			e.commit()
		}
		e.mode = ModeIdle
	}
	e.dragArmed = false
	e.dragShape = -1
}

// DoubleClick opens the rename overlay over a shape.
func (e *Editor) DoubleClick(p diagram.Point) {
	if e.mode != ModeIdle {
		return
	}
	hit := e.renderer.HitTest(p)
	if hit.Kind != render.HitShape {
		return
	}
	shape, ok := e.store.Graph().FindShape(hit.ID)
	if !ok {
		return
	}
	e.selectShape(hit.ID)
	e.mode = ModeEditing
	e.editingShape = hit.ID
	e.textBuffer = []rune(shape.Name)
	e.cursorPos = len(e.textBuffer)
	e.dragArmed = false
}

// EditingShape returns the shape under rename, or false when not editing.
func (e *Editor) EditingShape() (diagram.Shape, bool) {
	if e.mode != ModeEditing {
		return diagram.Shape{}, false
	}
	return e.store.Graph().FindShape(e.editingShape)
}

// EditBuffer returns the rename buffer and cursor position.
func (e *Editor) EditBuffer() (string, int) {
	return string(e.textBuffer), e.cursorPos
}

// EditInsert inserts a rune at the cursor while renaming.
func (e *Editor) EditInsert(r rune) {
	if e.mode != ModeEditing {
		return
	}
	e.textBuffer = append(e.textBuffer[:e.cursorPos],
		append([]rune{r}, e.textBuffer[e.cursorPos:]...)...)
	e.cursorPos++
}

// EditBackspace deletes the rune before the cursor while renaming.
func (e *Editor) EditBackspace() {
	if e.mode != ModeEditing || e.cursorPos == 0 {
		return
	}
	e.textBuffer = append(e.textBuffer[:e.cursorPos-1], e.textBuffer[e.cursorPos:]...)
	e.cursorPos--
}

// EditMoveCursor moves the rename cursor by delta, clamped to the buffer.
func (e *Editor) EditMoveCursor(delta int) {
	if e.mode != ModeEditing {
		return
	}
	e.cursorPos += delta
	if e.cursorPos < 0 {
		e.cursorPos = 0
	}
	if e.cursorPos > len(e.textBuffer) {
		e.cursorPos = len(e.textBuffer)
	}
}

// CommitEdit applies the rename buffer and returns to idle. The empty string
// is an accepted name.
func (e *Editor) CommitEdit() {
	if e.mode != ModeEditing {
		return
	}
	if e.store.RenameShape(e.editingShape, string(e.textBuffer)) {
		e.commit()
	}
	e.stopEditing()
}

// CancelEdit discards the rename buffer and returns to idle.
func (e *Editor) CancelEdit() {
	if e.mode != ModeEditing {
		return
	}
	e.stopEditing()
}

func (e *Editor) stopEditing() {
	e.mode = ModeIdle
	e.editingShape = -1
	e.textBuffer = nil
	e.cursorPos = 0
}

// DeleteSelection deletes the selected shape (cascading its connections) or
// the selected connection in one history entry. Ignored while renaming.
func (e *Editor) DeleteSelection() {
	if e.mode == ModeEditing {
		return
	}
	switch {
	case e.selectedShape >= 0:
		if e.store.RemoveShape(e.selectedShape) {
			e.commit()
		}
		e.clearSelection()
	case e.selectedConnection >= 0:
		if e.store.RemoveConnection(e.selectedConnection) {
			e.commit()
		}
		e.clearSelection()
	}
}

// Undo steps back one history entry. Ignored while renaming.
func (e *Editor) Undo() {
	if e.mode == ModeEditing {
		return
	}
	if g := e.history.Undo(); g != nil {
		e.store.Replace(g)
		e.clearSelection()
		e.cancelConnectMode()
		e.modified = true
	}
}

// Redo steps forward one history entry. Ignored while renaming.
func (e *Editor) Redo() {
	if e.mode == ModeEditing {
		return
	}
	if g := e.history.Redo(); g != nil {
		e.store.Replace(g)
		e.clearSelection()
		e.cancelConnectMode()
		e.modified = true
	}
}

// shapeAt returns the shape by ID with the live drag position applied, so
// connectors reroute smoothly during a drag without store round-trips.
func (e *Editor) shapeAt(id int) (diagram.Shape, bool) {
	s, ok := e.store.Graph().FindShape(id)
	if !ok {
		return s, false
	}
	if e.mode == ModeDragging && id == e.dragShape {
		s.X = e.dragPos.X
		s.Y = e.dragPos.Y
	}
	return s, true
}

// Render draws the full scene: every connector rerouted from current shape
// positions, then every shape. Connector geometry is never cached across
// moves.
func (e *Editor) Render() {
	e.renderer.BeginFrame()
	g := e.store.Graph()

	for _, c := range g.Connections {
		from, okF := e.shapeAt(c.From)
		to, okT := e.shapeAt(c.To)
		if !okF || !okT {
			continue
		}
		rt := geometry.ConnectorRoute(from, to)
		st := render.Style{Selected: c.ID == e.selectedConnection}
		e.renderer.DrawLine(c.ID, rt.Start, rt.End, st)
		e.renderer.DrawMarker(c.ID, diagram.AtStart, rt.StartMarker, c.Start, st)
		e.renderer.DrawMarker(c.ID, diagram.AtEnd, rt.EndMarker, c.End, st)
	}

	for _, s := range g.Shapes {
		shape, ok := e.shapeAt(s.ID)
		if !ok {
			continue
		}
		st := render.Style{
			Selected: shape.ID == e.selectedShape,
			Pending:  shape.ID == e.connectSource,
		}
		e.renderer.DrawShape(shape, st)
		if e.mode == ModeEditing && shape.ID == e.editingShape {
			// The rename overlay owns this label while editing.
			continue
		}
		e.renderer.DrawLabel(shape.Name, shape.Bounds(), st)
	}
}
