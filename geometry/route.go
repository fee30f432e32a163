// Package geometry provides the pure routing math for connector placement:
// anchor candidates, optimal anchor-pair selection and cardinality marker
// poses. Nothing here holds state; routes are recomputed on every move.
package geometry

import (
	"math"

	"erdraw/diagram"
)

// MarkerInset is how far each cardinality marker sits inward from its line
// endpoint, measured along the line direction in canvas units.
const MarkerInset = 20.0

// Pose is a position plus a rotation in radians.
type Pose struct {
	At    diagram.Point
	Angle float64
}

// Route describes the rendered geometry of one connection: the line segment
// and the pose of the marker at each end.
type Route struct {
	Start       diagram.Point
	End         diagram.Point
	StartMarker Pose
	EndMarker   Pose
}

// Anchors returns the four candidate attachment points of a shape: the
// midpoints of its top, right, bottom and left bounding edges, in that order.
// Every kind uses the same rectangular bounding-box anchors; the diamond and
// ellipse deliberately do not use contour intersections.
func Anchors(s diagram.Shape) [4]diagram.Point {
	return [4]diagram.Point{
		{X: s.X + s.Width/2, Y: s.Y},            // top
		{X: s.X + s.Width, Y: s.Y + s.Height/2}, // right
		{X: s.X + s.Width/2, Y: s.Y + s.Height}, // bottom
		{X: s.X, Y: s.Y + s.Height/2},           // left
	}
}

// ConnectorRoute evaluates all 4x4 anchor pairs between two shapes and routes
// the connector through the pair with the smallest Euclidean distance. Ties
// break on evaluation order, which keeps the result deterministic. The start
// marker is rotated to face opposite the line direction, the end marker to
// face along it.
func ConnectorRoute(a, b diagram.Shape) Route {
	anchorsA := Anchors(a)
	anchorsB := Anchors(b)

	best := math.Inf(1)
	var start, end diagram.Point
	for _, pa := range anchorsA {
		for _, pb := range anchorsB {
			if d := Distance(pa, pb); d < best {
				best = d
				start, end = pa, pb
			}
		}
	}

	angle := math.Atan2(end.Y-start.Y, end.X-start.X)
	return Route{
		Start:       start,
		End:         end,
		StartMarker: Pose{At: PointAlong(start, end, MarkerInset), Angle: angle + math.Pi},
		EndMarker:   Pose{At: PointAlong(end, start, MarkerInset), Angle: angle},
	}
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b diagram.Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// PointAlong returns the point dist units from 'from' toward 'toward'.
// Coincident inputs return 'from' unchanged.
func PointAlong(from, toward diagram.Point, dist float64) diagram.Point {
	d := Distance(from, toward)
	if d == 0 {
		return from
	}
	t := dist / d
	return diagram.Point{
		X: from.X + (toward.X-from.X)*t,
		Y: from.Y + (toward.Y-from.Y)*t,
	}
}

// DistanceToSegment returns the shortest distance from p to the segment a-b.
// Used by renderers to hit-test connector lines.
func DistanceToSegment(p, a, b diagram.Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return Distance(p, a)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return Distance(p, diagram.Point{X: a.X + t*dx, Y: a.Y + t*dy})
}
