// Package diagram contains the fundamental types used throughout the erdraw editor.
package diagram

// Point represents a 2D coordinate in canvas units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle in canvas units.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Contains checks if a point is inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width &&
		p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// ShapeKind determines a shape's rendering geometry and default extent.
type ShapeKind string

const (
	KindEntity    ShapeKind = "entity"    // rounded rectangle
	KindAction    ShapeKind = "action"    // diamond
	KindAttribute ShapeKind = "attribute" // ellipse
)

// Valid reports whether k is one of the three shape kinds.
func (k ShapeKind) Valid() bool {
	switch k {
	case KindEntity, KindAction, KindAttribute:
		return true
	}
	return false
}

// Label returns the display name used when auto-naming shapes of this kind.
func (k ShapeKind) Label() string {
	switch k {
	case KindEntity:
		return "Entity"
	case KindAction:
		return "Action"
	case KindAttribute:
		return "Attribute"
	default:
		return "Shape"
	}
}

// DefaultExtent returns the default width and height for a new shape of this kind.
func (k ShapeKind) DefaultExtent() (w, h float64) {
	switch k {
	case KindAction:
		return 120, 70
	case KindAttribute:
		return 120, 50
	default:
		return 140, 60
	}
}

// Cardinality is a relationship-multiplicity marker drawn at one end of a
// connection. The first four are the crow's-foot notations; "one" and "many"
// are the simplified single-sided variants.
type Cardinality string

const (
	ExactlyOne Cardinality = "exactly-one"
	ZeroOrOne  Cardinality = "zero-or-one"
	OneOrMore  Cardinality = "one-or-more"
	ZeroOrMore Cardinality = "zero-or-more"
	One        Cardinality = "one"
	Many       Cardinality = "many"
)

// cardinalityCycle is the fixed order markers advance through.
var cardinalityCycle = [...]Cardinality{
	ExactlyOne, ZeroOrOne, OneOrMore, ZeroOrMore, One, Many,
}

// Cardinalities returns every marker value in cycle order.
func Cardinalities() []Cardinality {
	return cardinalityCycle[:]
}

// Next returns the marker value that follows c, wrapping around the fixed
// six-value cycle. Unknown values restart at ExactlyOne.
func (c Cardinality) Next() Cardinality {
	for i, v := range cardinalityCycle {
		if v == c {
			return cardinalityCycle[(i+1)%len(cardinalityCycle)]
		}
	}
	return ExactlyOne
}

// ConnectionEnd identifies one end of a connection.
type ConnectionEnd int

const (
	AtStart ConnectionEnd = iota
	AtEnd
)

// String returns the end name for display.
func (e ConnectionEnd) String() string {
	if e == AtStart {
		return "start"
	}
	return "end"
}

// Shape is a positioned, named, typed node on the canvas. Position is the
// top-left corner in canvas units. ID is unique within a graph and never
// changes; Kind is fixed at creation.
type Shape struct {
	ID     int       `json:"id"`
	Name   string    `json:"name"`
	Kind   ShapeKind `json:"kind"`
	X      float64   `json:"x"`
	Y      float64   `json:"y"`
	Width  float64   `json:"width"`
	Height float64   `json:"height"`
}

// Bounds returns the shape's bounding rectangle.
func (s Shape) Bounds() Rect {
	return Rect{X: s.X, Y: s.Y, Width: s.Width, Height: s.Height}
}

// Center returns the center point of the shape.
func (s Shape) Center() Point {
	return s.Bounds().Center()
}

// Contains checks if a point is inside the shape's bounding box.
func (s Shape) Contains(p Point) bool {
	return s.Bounds().Contains(p)
}

// Connection is an edge between two shapes carrying a cardinality marker at
// each end. From/To are conceptually unordered but kept distinct so each
// marker has a fixed home.
type Connection struct {
	ID    int `json:"id"`
	From  int `json:"from"`
	To    int `json:"to"`
	Start Cardinality `json:"start"`
	End   Cardinality `json:"end"`
}

// Touches reports whether the connection references the given shape at either end.
func (c Connection) Touches(shapeID int) bool {
	return c.From == shapeID || c.To == shapeID
}

// SamePair reports whether the connection joins the same unordered shape pair.
func (c Connection) SamePair(from, to int) bool {
	return (c.From == from && c.To == to) || (c.From == to && c.To == from)
}

// Graph holds a complete diagram: all shapes and all connections between
// them. Graphs are treated as values; mutation happens by cloning.
type Graph struct {
	Shapes      []Shape      `json:"shapes"`
	Connections []Connection `json:"connections"`
}

// Clone creates a deep copy of the graph.
func (g *Graph) Clone() *Graph {
	if g == nil {
		return nil
	}
	clone := &Graph{
		Shapes:      make([]Shape, len(g.Shapes)),
		Connections: make([]Connection, len(g.Connections)),
	}
	copy(clone.Shapes, g.Shapes)
	copy(clone.Connections, g.Connections)
	return clone
}

// FindShape returns the shape with the given ID.
func (g *Graph) FindShape(id int) (Shape, bool) {
	for _, s := range g.Shapes {
		if s.ID == id {
			return s, true
		}
	}
	return Shape{}, false
}

// FindConnection returns the connection with the given ID.
func (g *Graph) FindConnection(id int) (Connection, bool) {
	for _, c := range g.Connections {
		if c.ID == id {
			return c, true
		}
	}
	return Connection{}, false
}

// ConnectionsTouching returns every connection referencing the given shape.
func (g *Graph) ConnectionsTouching(shapeID int) []Connection {
	var out []Connection
	for _, c := range g.Connections {
		if c.Touches(shapeID) {
			out = append(out, c)
		}
	}
	return out
}

// Connected reports whether the unordered shape pair is already joined.
func (g *Graph) Connected(a, b int) bool {
	for _, c := range g.Connections {
		if c.SamePair(a, b) {
			return true
		}
	}
	return false
}

// CountKind returns the number of shapes of the given kind.
func (g *Graph) CountKind(kind ShapeKind) int {
	n := 0
	for _, s := range g.Shapes {
		if s.Kind == kind {
			n++
		}
	}
	return n
}
