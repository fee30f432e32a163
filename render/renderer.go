// Package render defines the capability interface the editor core drives.
// The core never draws anything itself; it describes shapes, lines and
// markers to a Renderer and asks it to resolve pointer positions back into
// diagram elements. Implementations may retain a scene or redraw per frame.
package render

import (
	"erdraw/diagram"
	"erdraw/geometry"
)

// HitKind classifies what a pointer position landed on.
type HitKind int

const (
	HitBackground HitKind = iota
	HitShape
	HitConnection
	HitMarker
)

// String returns the hit kind name for display.
func (k HitKind) String() string {
	switch k {
	case HitShape:
		return "shape"
	case HitConnection:
		return "connection"
	case HitMarker:
		return "marker"
	default:
		return "background"
	}
}

// Hit identifies the interactive element under a pointer position. ID is a
// shape ID for HitShape and a connection ID for HitConnection and HitMarker;
// End says which marker of the connection was hit.
type Hit struct {
	Kind HitKind
	ID   int
	End  diagram.ConnectionEnd
}

// Style carries the transient visual state of one element. Exported rasters
// are drawn with the zero Style so no selection chrome leaks into them.
type Style struct {
	Selected bool // current selection highlight
	Pending  bool // pending connection source highlight
}

// Renderer is the drawing surface the editor drives. A frame is a BeginFrame
// call followed by draw calls for every element; HitTest resolves positions
// against the most recently drawn frame.
type Renderer interface {
	// BeginFrame resets the surface before a full redraw.
	BeginFrame()

	// DrawShape draws a shape's outline geometry: rounded rectangle for
	// entities, diamond for actions, ellipse for attributes.
	DrawShape(s diagram.Shape, st Style)

	// DrawLabel draws text centered in the given bounds.
	DrawLabel(text string, bounds diagram.Rect, st Style)

	// DrawLine draws the connector line for the given connection.
	DrawLine(connID int, from, to diagram.Point, st Style)

	// DrawMarker draws a cardinality marker at the given pose for one end
	// of a connection.
	DrawMarker(connID int, end diagram.ConnectionEnd, pose geometry.Pose, v diagram.Cardinality, st Style)

	// HitTest resolves a pointer position to the topmost interactive
	// element of the last frame. Markers win over shapes, shapes over
	// connection lines, anything over the background.
	HitTest(p diagram.Point) Hit

	// ExportRaster encodes the last frame as image bytes. Renderers without
	// a raster surface return an error.
	ExportRaster() ([]byte, error)
}
