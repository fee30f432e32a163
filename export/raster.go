package export

import (
	"bytes"
	"fmt"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"

	"erdraw/diagram"
	"erdraw/geometry"
	"erdraw/render"
)

// RasterOptions configures PNG rendering.
type RasterOptions struct {
	Padding  float64 // canvas units of whitespace around the diagram
	Scale    float64 // pixels per canvas unit
	FontSize float64
}

// DefaultRasterOptions returns sensible defaults for PNG rendering.
func DefaultRasterOptions() RasterOptions {
	return RasterOptions{
		Padding:  40,
		Scale:    1,
		FontSize: 13,
	}
}

// PNGExporter renders the graph to PNG bytes through an ImageRenderer.
type PNGExporter struct {
	opts RasterOptions
}

// NewPNGExporter creates a PNG exporter.
func NewPNGExporter(opts RasterOptions) *PNGExporter {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.FontSize <= 0 {
		opts.FontSize = 13
	}
	return &PNGExporter{opts: opts}
}

// Export rasterizes the graph. The image is sized to the diagram's bounds
// plus padding and carries no selection chrome.
func (e *PNGExporter) Export(g *diagram.Graph) ([]byte, error) {
	return Raster(g, e.opts)
}

// FileExtension returns "png".
func (e *PNGExporter) FileExtension() string { return "png" }

// FormatName returns the format name.
func (e *PNGExporter) FormatName() string { return "PNG" }

// Raster renders a graph to PNG bytes sized to its content.
func Raster(g *diagram.Graph, opts RasterOptions) ([]byte, error) {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, s := range g.Shapes {
		minX = math.Min(minX, s.X)
		minY = math.Min(minY, s.Y)
		maxX = math.Max(maxX, s.X+s.Width)
		maxY = math.Max(maxY, s.Y+s.Height)
	}
	if len(g.Shapes) == 0 {
		minX, minY, maxX, maxY = 0, 0, 200, 100
	}

	origin := diagram.Point{X: minX - opts.Padding, Y: minY - opts.Padding}
	w := int(math.Ceil((maxX - minX + 2*opts.Padding) * opts.Scale))
	h := int(math.Ceil((maxY - minY + 2*opts.Padding) * opts.Scale))

	ir, err := NewImageRenderer(w, h, origin, opts.Scale, opts.FontSize)
	if err != nil {
		return nil, err
	}
	DrawGraph(ir, g)
	return ir.ExportRaster()
}

// DrawGraph draws a complete scene onto a renderer with zero styles:
// connectors first, shapes and labels on top.
func DrawGraph(r render.Renderer, g *diagram.Graph) {
	r.BeginFrame()
	for _, c := range g.Connections {
		from, okF := g.FindShape(c.From)
		to, okT := g.FindShape(c.To)
		if !okF || !okT {
			continue
		}
		rt := geometry.ConnectorRoute(from, to)
		r.DrawLine(c.ID, rt.Start, rt.End, render.Style{})
		r.DrawMarker(c.ID, diagram.AtStart, rt.StartMarker, c.Start, render.Style{})
		r.DrawMarker(c.ID, diagram.AtEnd, rt.EndMarker, c.End, render.Style{})
	}
	for _, s := range g.Shapes {
		r.DrawShape(s, render.Style{})
		r.DrawLabel(s.Name, s.Bounds(), render.Style{})
	}
}

// ImageRenderer implements render.Renderer on a gg drawing context. Canvas
// coordinates map to pixels through a fixed origin and scale.
type ImageRenderer struct {
	dc     *gg.Context
	origin diagram.Point
	scale  float64

	// Hit regions retained from the last frame, in canvas units.
	shapes  []diagram.Shape
	lines   []hitLine
	markers []hitMarker
}

type hitLine struct {
	id       int
	from, to diagram.Point
}

type hitMarker struct {
	id   int
	end  diagram.ConnectionEnd
	at   diagram.Point
}

// NewImageRenderer creates a raster renderer of the given pixel size. The
// origin is the canvas point mapped to the top-left pixel.
func NewImageRenderer(widthPx, heightPx int, origin diagram.Point, scale, fontSize float64) (*ImageRenderer, error) {
	if widthPx < 1 {
		widthPx = 1
	}
	if heightPx < 1 {
		heightPx = 1
	}
	dc := gg.NewContext(widthPx, heightPx)

	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded font: %w", err)
	}
	dc.SetFontFace(truetype.NewFace(f, &truetype.Options{Size: fontSize * scale}))

	return &ImageRenderer{dc: dc, origin: origin, scale: scale}, nil
}

func (r *ImageRenderer) px(p diagram.Point) (float64, float64) {
	return (p.X - r.origin.X) * r.scale, (p.Y - r.origin.Y) * r.scale
}

// BeginFrame paints the background and resets the hit regions.
func (r *ImageRenderer) BeginFrame() {
	r.shapes = r.shapes[:0]
	r.lines = r.lines[:0]
	r.markers = r.markers[:0]
	r.dc.SetRGB(1, 1, 1)
	r.dc.Clear()
}

func (r *ImageRenderer) strokeColor(st render.Style) (float64, float64, float64) {
	if st.Selected {
		return 0.85, 0.25, 0.15
	}
	if st.Pending {
		return 0.15, 0.45, 0.8
	}
	return 0.15, 0.15, 0.2
}

// DrawShape draws a shape outline: rounded rectangle, diamond or ellipse.
func (r *ImageRenderer) DrawShape(s diagram.Shape, st render.Style) {
	r.shapes = append(r.shapes, s)

	dc := r.dc
	x, y := r.px(diagram.Point{X: s.X, Y: s.Y})
	w, h := s.Width*r.scale, s.Height*r.scale

	switch s.Kind {
	case diagram.KindAction:
		dc.MoveTo(x+w/2, y)
		dc.LineTo(x+w, y+h/2)
		dc.LineTo(x+w/2, y+h)
		dc.LineTo(x, y+h/2)
		dc.ClosePath()
	case diagram.KindAttribute:
		dc.DrawEllipse(x+w/2, y+h/2, w/2, h/2)
	default:
		dc.DrawRoundedRectangle(x, y, w, h, 8*r.scale)
	}

	dc.SetRGB(1, 1, 1)
	dc.FillPreserve()
	dc.SetRGB(r.strokeColor(st))
	dc.SetLineWidth(2 * r.scale)
	dc.Stroke()
}

// DrawLabel draws text centered in the bounds.
func (r *ImageRenderer) DrawLabel(text string, bounds diagram.Rect, st render.Style) {
	if text == "" {
		return
	}
	cx, cy := r.px(bounds.Center())
	r.dc.SetRGB(r.strokeColor(st))
	r.dc.DrawStringAnchored(text, cx, cy, 0.5, 0.5)
}

// DrawLine draws a connector segment.
func (r *ImageRenderer) DrawLine(connID int, from, to diagram.Point, st render.Style) {
	r.lines = append(r.lines, hitLine{id: connID, from: from, to: to})

	x1, y1 := r.px(from)
	x2, y2 := r.px(to)
	r.dc.SetRGB(r.strokeColor(st))
	r.dc.SetLineWidth(1.5 * r.scale)
	r.dc.DrawLine(x1, y1, x2, y2)
	r.dc.Stroke()
}

// DrawMarker draws a crow's-foot cardinality glyph. The pose's local +X axis
// points at the attached line endpoint, so prongs and ticks are drawn in
// local coordinates and rotated into place.
func (r *ImageRenderer) DrawMarker(connID int, end diagram.ConnectionEnd, pose geometry.Pose, v diagram.Cardinality, st render.Style) {
	r.markers = append(r.markers, hitMarker{id: connID, end: end, at: pose.At})

	dc := r.dc
	x, y := r.px(pose.At)
	dc.Push()
	dc.Translate(x, y)
	// Both poses face their attached endpoint: the start marker is rotated
	// opposite the line direction, the end marker along it.
	dc.Rotate(pose.Angle)
	dc.Scale(r.scale, r.scale)
	dc.SetLineWidth(1.5)
	dc.SetRGB(r.strokeColor(st))

	tick := func(at float64) {
		dc.DrawLine(at, -6, at, 6)
	}
	circle := func(at float64) {
		dc.DrawCircle(at, 0, 4.5)
	}
	crow := func() {
		dc.DrawLine(0, 0, geometry.MarkerInset, -7)
		dc.DrawLine(0, 0, geometry.MarkerInset, 0)
		dc.DrawLine(0, 0, geometry.MarkerInset, 7)
	}

	switch v {
	case diagram.ExactlyOne:
		tick(-3)
		tick(3)
	case diagram.ZeroOrOne:
		circle(-9)
		tick(2)
	case diagram.OneOrMore:
		tick(-6)
		crow()
	case diagram.ZeroOrMore:
		circle(-10)
		crow()
	case diagram.One:
		tick(0)
	case diagram.Many:
		crow()
	}
	dc.Stroke()
	dc.Pop()
}

// HitTest resolves a canvas position against the last frame: markers first,
// then the topmost shape, then connector lines.
func (r *ImageRenderer) HitTest(p diagram.Point) render.Hit {
	for _, m := range r.markers {
		if geometry.Distance(p, m.at) <= 10 {
			return render.Hit{Kind: render.HitMarker, ID: m.id, End: m.end}
		}
	}
	for i := len(r.shapes) - 1; i >= 0; i-- {
		if r.shapes[i].Contains(p) {
			return render.Hit{Kind: render.HitShape, ID: r.shapes[i].ID}
		}
	}
	for _, l := range r.lines {
		if geometry.DistanceToSegment(p, l.from, l.to) <= 6 {
			return render.Hit{Kind: render.HitConnection, ID: l.id}
		}
	}
	return render.Hit{Kind: render.HitBackground}
}

// ExportRaster encodes the frame as PNG bytes.
func (r *ImageRenderer) ExportRaster() ([]byte, error) {
	var buf bytes.Buffer
	if err := r.dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}
