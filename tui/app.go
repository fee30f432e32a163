package tui

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"erdraw/config"
	"erdraw/diagram"
	"erdraw/editor"
)

// App runs the interactive editor session over a tcell screen.
type App struct {
	screen   tcell.Screen
	renderer *ScreenRenderer
	editor   *editor.Editor
	cfg      config.Config

	filename string
	notice   string

	// Pointer state. tcell reports button masks, so press and release are
	// derived from mask transitions.
	buttonDown  bool
	lastPress   time.Time
	lastPressAt diagram.Point

	// Insertion point for keyboard-driven shape creation; follows the mouse.
	pointer diagram.Point

	quitWarned bool
}

// NewApp builds an app over an initialised screen.
func NewApp(screen tcell.Screen, cfg config.Config, filename string) *App {
	r := NewScreenRenderer(screen, cfg.CellWidth, cfg.CellHeight)
	a := &App{
		screen:   screen,
		renderer: r,
		editor:   editor.New(r, cfg.HistoryLimit),
		cfg:      cfg,
		filename: filename,
		pointer:  diagram.Point{X: 200, Y: 150},
	}
	return a
}

// Run opens the screen, loads the file if one was given and drives the event
// loop until quit.
func Run(cfg config.Config, filename string) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialise terminal: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	app := NewApp(screen, cfg, filename)
	if filename != "" {
		g, err := LoadGraphFile(filename)
		if err != nil {
			return err
		}
		if g != nil {
			if err := app.editor.SetGraph(g); err != nil {
				return fmt.Errorf("invalid diagram in %s: %w", filename, err)
			}
			app.editor.MarkSaved()
		}
	}
	return app.loop()
}

func (a *App) loop() error {
	for {
		a.draw()
		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			a.screen.Sync()
		case *tcell.EventMouse:
			a.handleMouse(ev)
		case *tcell.EventKey:
			if a.handleKey(ev) {
				return nil
			}
		}
	}
}

// draw renders the scene, then the rename overlay and status bar on top.
func (a *App) draw() {
	a.editor.Render()
	a.drawRenameOverlay()
	a.drawStatusBar()
	a.screen.Show()
}

// drawRenameOverlay paints the edit buffer over the shape being renamed and
// places the hardware cursor at the text cursor.
func (a *App) drawRenameOverlay() {
	shape, ok := a.editor.EditingShape()
	if !ok {
		a.screen.HideCursor()
		return
	}
	buf, cursor := a.editor.EditBuffer()
	style := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)

	cx, cy := a.renderer.ToCell(shape.Bounds().Center())
	runes := []rune(buf)
	start := cx - len(runes)/2
	for i, ch := range runes {
		a.renderer.set(start+i, cy, ch, style)
	}
	a.screen.ShowCursor(start+cursor, cy)
}

// drawStatusBar writes the bottom status line: file, counts, mode, history
// position and any pending notice.
func (a *App) drawStatusBar() {
	w, h := a.screen.Size()
	if h == 0 {
		return
	}
	row := h - 1
	style := tcell.StyleDefault.Reverse(true)
	for x := 0; x < w; x++ {
		a.screen.SetContent(x, row, ' ', nil, style)
	}

	name := a.filename
	if name == "" {
		name = "untitled"
	}
	dirty := ""
	if a.editor.Modified() {
		dirty = " *"
	}
	if n := a.editor.Notice(); n != "" {
		a.notice = n
	}
	g := a.editor.Graph()
	cur, total := a.editor.HistoryStats()
	line := fmt.Sprintf(" [ %s%s ]  shapes: %d  connections: %d  %s  undo %d/%d",
		name, dirty, len(g.Shapes), len(g.Connections), a.editor.Mode(), cur, total)
	if a.notice != "" {
		line += "  | " + a.notice
	}
	for i, ch := range []rune(line) {
		if i >= w {
			break
		}
		a.screen.SetContent(i, row, ch, nil, style)
	}
}

// handleMouse derives press, move and release events from tcell's button
// masks and feeds them to the editor in canvas units.
func (a *App) handleMouse(ev *tcell.EventMouse) {
	cx, cy := ev.Position()
	p := a.renderer.ToCanvas(cx, cy)
	a.pointer = p
	pressed := ev.Buttons()&tcell.Button1 != 0

	switch {
	case pressed && !a.buttonDown:
		a.buttonDown = true
		a.notice = ""
		now := ev.When()
		window := time.Duration(a.cfg.DoubleClickMs) * time.Millisecond
		if now.Sub(a.lastPress) <= window && a.renderer.sameCell(p, a.lastPressAt) {
			a.editor.DoubleClick(p)
			a.lastPress = time.Time{} // a third press starts fresh
		} else {
			a.editor.PointerDown(p)
			a.lastPress = now
			a.lastPressAt = p
		}
	case pressed && a.buttonDown:
		a.editor.PointerMove(p)
	case !pressed && a.buttonDown:
		a.buttonDown = false
		a.editor.PointerUp(p)
	}
}

// handleKey dispatches a key event; returns true when the app should quit.
func (a *App) handleKey(ev *tcell.EventKey) bool {
	if a.editor.Mode() == editor.ModeEditing {
		a.handleEditKey(ev)
		return false
	}

	switch ev.Key() {
	case tcell.KeyCtrlC:
		return true
	case tcell.KeyCtrlZ:
		// Terminals that report shift in control chords get redo here;
		// most collapse Ctrl+Shift+Z onto Ctrl+Z, hence Ctrl+Y below.
		if ev.Modifiers()&tcell.ModShift != 0 {
			a.editor.Redo()
		} else {
			a.editor.Undo()
		}
		return false
	case tcell.KeyCtrlY:
		a.editor.Redo()
		return false
	case tcell.KeyDelete, tcell.KeyBackspace, tcell.KeyBackspace2:
		a.editor.DeleteSelection()
		return false
	case tcell.KeyEscape:
		if a.editor.Mode() != editor.ModeIdle {
			a.editor.ToggleConnectMode()
		}
		return false
	}

	switch ev.Rune() {
	case 'q':
		if a.editor.Modified() && !a.quitWarned {
			a.notice = "unsaved changes, press q again to quit"
			a.quitWarned = true
			return false
		}
		return true
	case 'e':
		a.editor.InsertShape(diagram.KindEntity, a.pointer)
	case 'a':
		a.editor.InsertShape(diagram.KindAction, a.pointer)
	case 't':
		a.editor.InsertShape(diagram.KindAttribute, a.pointer)
	case 'c':
		a.editor.ToggleConnectMode()
	case 's':
		a.save()
	}
	a.quitWarned = false
	return false
}

// handleEditKey routes keystrokes into the rename buffer.
func (a *App) handleEditKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEnter:
		a.editor.CommitEdit()
	case tcell.KeyEscape:
		a.editor.CancelEdit()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		a.editor.EditBackspace()
	case tcell.KeyLeft:
		a.editor.EditMoveCursor(-1)
	case tcell.KeyRight:
		a.editor.EditMoveCursor(1)
	case tcell.KeyRune:
		a.editor.EditInsert(ev.Rune())
	}
}

func (a *App) save() {
	if a.filename == "" {
		a.notice = "no file name; start with one to save"
		return
	}
	if err := SaveGraphFile(a.filename, a.editor.Graph()); err != nil {
		a.notice = fmt.Sprintf("save failed: %v", err)
		return
	}
	a.editor.MarkSaved()
	a.notice = fmt.Sprintf("saved %s", a.filename)
}

// sameCell reports whether two canvas positions land on the same terminal
// cell, the tolerance used for double-click detection.
func (r *ScreenRenderer) sameCell(a, b diagram.Point) bool {
	ax, ay := r.ToCell(a)
	bx, by := r.ToCell(b)
	return ax == bx && ay == by
}
