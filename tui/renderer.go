// Package tui is the terminal front-end. It draws the diagram onto a tcell
// screen, maps mouse positions between terminal cells and canvas units, and
// runs the interactive event loop.
package tui

import (
	"errors"
	"math"

	"github.com/gdamore/tcell/v2"

	"erdraw/diagram"
	"erdraw/geometry"
	"erdraw/render"
)

// Hit tolerances in canvas units. Markers win over everything, lines get a
// wider band than their one-cell stroke so they are clickable.
const (
	markerHitRadius = 10.0
	lineHitDistance = 6.0
)

// ErrNoRasterSurface is returned by ExportRaster; the terminal has no pixel
// surface to encode.
var ErrNoRasterSurface = errors.New("terminal renderer has no raster surface")

// shapeRegion, lineRegion and markerRegion retain the last frame's geometry
// for hit testing. Hits resolve against what was drawn, not the live graph.
type shapeRegion struct {
	id     int
	bounds diagram.Rect
}

type lineRegion struct {
	id       int
	from, to diagram.Point
}

type markerRegion struct {
	connID int
	end    diagram.ConnectionEnd
	at     diagram.Point
}

// ScreenRenderer draws the diagram onto a tcell screen. Canvas units map to
// terminal cells by dividing by the configured cell extent, which roughly
// compensates for the 1:2 aspect of terminal glyphs.
type ScreenRenderer struct {
	screen     tcell.Screen
	cellW      float64
	cellH      float64
	canvasRows int // rows reserved for the canvas; the status bar sits below

	shapes  []shapeRegion
	lines   []lineRegion
	markers []markerRegion
}

// NewScreenRenderer wraps an initialised tcell screen.
func NewScreenRenderer(screen tcell.Screen, cellW, cellH float64) *ScreenRenderer {
	return &ScreenRenderer{screen: screen, cellW: cellW, cellH: cellH}
}

// ToCell converts a canvas position to a terminal cell.
func (r *ScreenRenderer) ToCell(p diagram.Point) (int, int) {
	return int(math.Floor(p.X / r.cellW)), int(math.Floor(p.Y / r.cellH))
}

// ToCanvas converts a terminal cell to the canvas position of its centre.
func (r *ScreenRenderer) ToCanvas(cx, cy int) diagram.Point {
	return diagram.Point{
		X: (float64(cx) + 0.5) * r.cellW,
		Y: (float64(cy) + 0.5) * r.cellH,
	}
}

// BeginFrame clears the canvas area and drops the retained hit regions.
func (r *ScreenRenderer) BeginFrame() {
	w, h := r.screen.Size()
	r.canvasRows = h - 1 // bottom row is the status bar
	if r.canvasRows < 0 {
		r.canvasRows = 0
	}
	blank := tcell.StyleDefault
	for y := 0; y < r.canvasRows; y++ {
		for x := 0; x < w; x++ {
			r.screen.SetContent(x, y, ' ', nil, blank)
		}
	}
	r.shapes = r.shapes[:0]
	r.lines = r.lines[:0]
	r.markers = r.markers[:0]
}

func (r *ScreenRenderer) style(st render.Style) tcell.Style {
	switch {
	case st.Pending:
		return tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	case st.Selected:
		return tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	default:
		return tcell.StyleDefault
	}
}

// set plots one rune, clipped to the canvas area.
func (r *ScreenRenderer) set(cx, cy int, ch rune, style tcell.Style) {
	w, _ := r.screen.Size()
	if cx < 0 || cy < 0 || cx >= w || cy >= r.canvasRows {
		return
	}
	r.screen.SetContent(cx, cy, ch, nil, style)
}

// DrawShape draws the outline for the shape's kind and retains its bounds.
func (r *ScreenRenderer) DrawShape(s diagram.Shape, st render.Style) {
	style := r.style(st)
	switch s.Kind {
	case diagram.KindAction:
		r.drawDiamond(s, style)
	case diagram.KindAttribute:
		r.drawEllipse(s, style)
	default:
		r.drawBox(s, style)
	}
	r.shapes = append(r.shapes, shapeRegion{id: s.ID, bounds: s.Bounds()})
}

// drawBox draws a rounded rectangle over the shape's bounding cells.
func (r *ScreenRenderer) drawBox(s diagram.Shape, style tcell.Style) {
	x0, y0 := r.ToCell(diagram.Point{X: s.X, Y: s.Y})
	x1, y1 := r.ToCell(diagram.Point{X: s.X + s.Width, Y: s.Y + s.Height})
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	for x := x0 + 1; x < x1; x++ {
		r.set(x, y0, '─', style)
		r.set(x, y1, '─', style)
	}
	for y := y0 + 1; y < y1; y++ {
		r.set(x0, y, '│', style)
		r.set(x1, y, '│', style)
	}
	r.set(x0, y0, '╭', style)
	r.set(x1, y0, '╮', style)
	r.set(x0, y1, '╰', style)
	r.set(x1, y1, '╯', style)
}

// drawDiamond draws four slope-rune edges between the bounding edge midpoints.
func (r *ScreenRenderer) drawDiamond(s diagram.Shape, style tcell.Style) {
	a := geometry.Anchors(s)
	top, right, bottom, left := a[0], a[1], a[2], a[3]
	r.plotLine(top, right, style)
	r.plotLine(right, bottom, style)
	r.plotLine(bottom, left, style)
	r.plotLine(left, top, style)
}

// drawEllipse samples the ellipse inscribed in the shape's bounds.
func (r *ScreenRenderer) drawEllipse(s diagram.Shape, style tcell.Style) {
	cx := s.X + s.Width/2
	cy := s.Y + s.Height/2
	rx := s.Width / 2
	ry := s.Height / 2
	const steps = 72
	for i := 0; i < steps; i++ {
		t := 2 * math.Pi * float64(i) / steps
		p := diagram.Point{X: cx + rx*math.Cos(t), Y: cy + ry*math.Sin(t)}
		px, py := r.ToCell(p)
		// Pick a rune hinting at the local tangent direction.
		ch := '·'
		switch {
		case math.Abs(math.Sin(t)) > 0.92:
			ch = '─'
		case math.Abs(math.Cos(t)) > 0.92:
			ch = '│'
		}
		r.set(px, py, ch, style)
	}
}

// DrawLabel draws text centred within the bounds, truncated to fit.
func (r *ScreenRenderer) DrawLabel(text string, bounds diagram.Rect, st render.Style) {
	style := r.style(st)
	x0, _ := r.ToCell(diagram.Point{X: bounds.X, Y: bounds.Y})
	x1, _ := r.ToCell(diagram.Point{X: bounds.X + bounds.Width, Y: bounds.Y})
	width := x1 - x0 - 1
	if width < 1 {
		width = 1
	}
	runes := []rune(text)
	if len(runes) > width {
		runes = runes[:width]
	}
	cx, cy := r.ToCell(bounds.Center())
	start := cx - len(runes)/2
	for i, ch := range runes {
		r.set(start+i, cy, ch, style)
	}
}

// DrawLine draws a connector and retains its segment for hit testing.
func (r *ScreenRenderer) DrawLine(connID int, from, to diagram.Point, st render.Style) {
	r.plotLine(from, to, r.style(st))
	r.lines = append(r.lines, lineRegion{id: connID, from: from, to: to})
}

// plotLine rasterises a canvas segment onto cells with direction-appropriate
// runes.
func (r *ScreenRenderer) plotLine(from, to diagram.Point, style tcell.Style) {
	x0, y0 := r.ToCell(from)
	x1, y1 := r.ToCell(to)

	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	ch := '·'
	switch {
	case dy == 0:
		ch = '─'
	case dx == 0:
		ch = '│'
	case (x1-x0 > 0) == (y1-y0 > 0):
		ch = '╲'
	default:
		ch = '╱'
	}

	// Bresenham over cells.
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy
	x, y := x0, y0
	for {
		r.set(x, y, ch, style)
		if x == x1 && y == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

// markerGlyph is the compact cell representation of each cardinality value.
func markerGlyph(v diagram.Cardinality) string {
	switch v {
	case diagram.ExactlyOne:
		return "‖"
	case diagram.ZeroOrOne:
		return "o|"
	case diagram.OneOrMore:
		return "|<"
	case diagram.ZeroOrMore:
		return "o<"
	case diagram.One:
		return "|"
	case diagram.Many:
		return "<"
	default:
		return "?"
	}
}

// DrawMarker places the glyph for the cardinality value at the marker pose
// and retains the position for hit testing. The angle only matters on pixel
// surfaces; cells are too coarse to rotate glyphs.
func (r *ScreenRenderer) DrawMarker(connID int, end diagram.ConnectionEnd, pose geometry.Pose, v diagram.Cardinality, st render.Style) {
	style := r.style(st)
	glyph := []rune(markerGlyph(v))
	cx, cy := r.ToCell(pose.At)
	start := cx - len(glyph)/2
	for i, ch := range glyph {
		r.set(start+i, cy, ch, style)
	}
	r.markers = append(r.markers, markerRegion{connID: connID, end: end, at: pose.At})
}

// HitTest resolves a canvas position against the last frame: markers first,
// then the topmost shape, then connector lines, else background.
func (r *ScreenRenderer) HitTest(p diagram.Point) render.Hit {
	for i := len(r.markers) - 1; i >= 0; i-- {
		m := r.markers[i]
		if geometry.Distance(p, m.at) <= markerHitRadius {
			return render.Hit{Kind: render.HitMarker, ID: m.connID, End: m.end}
		}
	}
	// Shapes draw in graph order, so the last region is the topmost.
	for i := len(r.shapes) - 1; i >= 0; i-- {
		if r.shapes[i].bounds.Contains(p) {
			return render.Hit{Kind: render.HitShape, ID: r.shapes[i].id}
		}
	}
	for i := len(r.lines) - 1; i >= 0; i-- {
		l := r.lines[i]
		if geometry.DistanceToSegment(p, l.from, l.to) <= lineHitDistance {
			return render.Hit{Kind: render.HitConnection, ID: l.id}
		}
	}
	return render.Hit{Kind: render.HitBackground, ID: -1}
}

// ExportRaster always fails; raster export goes through the image renderer.
func (r *ScreenRenderer) ExportRaster() ([]byte, error) {
	return nil, ErrNoRasterSurface
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

var _ render.Renderer = (*ScreenRenderer)(nil)
