package geometry

import (
	"math"
	"testing"

	"erdraw/diagram"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func pointsEqual(a, b diagram.Point) bool {
	return almostEqual(a.X, b.X) && almostEqual(a.Y, b.Y)
}

func TestAnchors(t *testing.T) {
	s := diagram.Shape{X: 100, Y: 200, Width: 140, Height: 60}
	anchors := Anchors(s)

	want := [4]diagram.Point{
		{X: 170, Y: 200}, // top
		{X: 240, Y: 230}, // right
		{X: 170, Y: 260}, // bottom
		{X: 100, Y: 230}, // left
	}
	for i, p := range anchors {
		if !pointsEqual(p, want[i]) {
			t.Errorf("anchor %d = %v, want %v", i, p, want[i])
		}
	}
}

func TestAnchorsIgnoreKind(t *testing.T) {
	// The diamond and ellipse use the same bounding-box anchors as the
	// rectangle.
	base := diagram.Shape{X: 10, Y: 20, Width: 100, Height: 50}
	rect := base
	rect.Kind = diagram.KindEntity
	diamond := base
	diamond.Kind = diagram.KindAction
	ellipse := base
	ellipse.Kind = diagram.KindAttribute

	ra, da, ea := Anchors(rect), Anchors(diamond), Anchors(ellipse)
	for i := range ra {
		if !pointsEqual(ra[i], da[i]) || !pointsEqual(ra[i], ea[i]) {
			t.Fatalf("anchor %d differs between kinds: %v %v %v", i, ra[i], da[i], ea[i])
		}
	}
}

func TestConnectorRouteHorizontal(t *testing.T) {
	a := diagram.Shape{ID: 1, X: 100, Y: 100, Width: 140, Height: 60}
	b := diagram.Shape{ID: 2, X: 400, Y: 100, Width: 120, Height: 60}

	r := ConnectorRoute(a, b)

	// Closest pair is a's right edge to b's left edge.
	if !pointsEqual(r.Start, diagram.Point{X: 240, Y: 130}) {
		t.Errorf("start = %v, want (240, 130)", r.Start)
	}
	if !pointsEqual(r.End, diagram.Point{X: 400, Y: 130}) {
		t.Errorf("end = %v, want (400, 130)", r.End)
	}

	// Markers sit MarkerInset units inward along the line.
	if !pointsEqual(r.StartMarker.At, diagram.Point{X: 260, Y: 130}) {
		t.Errorf("start marker at %v, want (260, 130)", r.StartMarker.At)
	}
	if !pointsEqual(r.EndMarker.At, diagram.Point{X: 380, Y: 130}) {
		t.Errorf("end marker at %v, want (380, 130)", r.EndMarker.At)
	}

	// Line runs left to right: direction 0, start marker faces back.
	if !almostEqual(r.EndMarker.Angle, 0) {
		t.Errorf("end marker angle = %v, want 0", r.EndMarker.Angle)
	}
	if !almostEqual(r.StartMarker.Angle, math.Pi) {
		t.Errorf("start marker angle = %v, want pi", r.StartMarker.Angle)
	}
}

func TestConnectorRouteVertical(t *testing.T) {
	a := diagram.Shape{ID: 1, X: 100, Y: 100, Width: 140, Height: 60}
	b := diagram.Shape{ID: 2, X: 100, Y: 400, Width: 140, Height: 60}

	r := ConnectorRoute(a, b)
	if !pointsEqual(r.Start, diagram.Point{X: 170, Y: 160}) {
		t.Errorf("start = %v, want (170, 160)", r.Start)
	}
	if !pointsEqual(r.End, diagram.Point{X: 170, Y: 400}) {
		t.Errorf("end = %v, want (170, 400)", r.End)
	}
	if !almostEqual(r.EndMarker.Angle, math.Pi/2) {
		t.Errorf("end marker angle = %v, want pi/2", r.EndMarker.Angle)
	}
}

func TestConnectorRouteSymmetry(t *testing.T) {
	pairs := []struct {
		a, b diagram.Shape
	}{
		{
			diagram.Shape{ID: 1, X: 100, Y: 100, Width: 140, Height: 60},
			diagram.Shape{ID: 2, X: 400, Y: 250, Width: 120, Height: 70},
		},
		{
			diagram.Shape{ID: 1, X: 50, Y: 300, Width: 120, Height: 50},
			diagram.Shape{ID: 2, X: 60, Y: 80, Width: 140, Height: 60},
		},
		{
			diagram.Shape{ID: 1, X: 0, Y: 0, Width: 100, Height: 40},
			diagram.Shape{ID: 2, X: 500, Y: 500, Width: 100, Height: 40},
		},
	}

	for i, tt := range pairs {
		forward := ConnectorRoute(tt.a, tt.b)
		reverse := ConnectorRoute(tt.b, tt.a)

		// Swapping inputs reverses the line; the markers swap ends.
		if !pointsEqual(forward.Start, reverse.End) || !pointsEqual(forward.End, reverse.Start) {
			t.Errorf("pair %d: line not reversed: %v->%v vs %v->%v",
				i, forward.Start, forward.End, reverse.Start, reverse.End)
		}
		if !pointsEqual(forward.StartMarker.At, reverse.EndMarker.At) {
			t.Errorf("pair %d: start marker %v should match reversed end marker %v",
				i, forward.StartMarker.At, reverse.EndMarker.At)
		}
	}
}

func TestConnectorRouteRecomputesOnMove(t *testing.T) {
	a := diagram.Shape{ID: 1, X: 100, Y: 100, Width: 140, Height: 60}
	b := diagram.Shape{ID: 2, X: 400, Y: 100, Width: 120, Height: 60}

	before := ConnectorRoute(a, b)

	// Move b below a; the route should switch to the bottom/top anchors.
	b.X, b.Y = 110, 400
	after := ConnectorRoute(a, b)

	if pointsEqual(before.Start, after.Start) && pointsEqual(before.End, after.End) {
		t.Error("route did not change after moving the target shape")
	}
	if !pointsEqual(after.Start, diagram.Point{X: 170, Y: 160}) {
		t.Errorf("after move, start = %v, want a's bottom anchor (170, 160)", after.Start)
	}
}

func TestPointAlong(t *testing.T) {
	from := diagram.Point{X: 0, Y: 0}
	toward := diagram.Point{X: 10, Y: 0}
	if got := PointAlong(from, toward, 4); !pointsEqual(got, diagram.Point{X: 4, Y: 0}) {
		t.Errorf("PointAlong = %v, want (4, 0)", got)
	}
	// Coincident points must not divide by zero.
	if got := PointAlong(from, from, 4); !pointsEqual(got, from) {
		t.Errorf("PointAlong with coincident points = %v, want %v", got, from)
	}
}

func TestDistanceToSegment(t *testing.T) {
	a := diagram.Point{X: 0, Y: 0}
	b := diagram.Point{X: 10, Y: 0}

	tests := []struct {
		p    diagram.Point
		want float64
	}{
		{diagram.Point{X: 5, Y: 3}, 3},   // above the middle
		{diagram.Point{X: -4, Y: 0}, 4},  // before the start
		{diagram.Point{X: 13, Y: 4}, 5},  // past the end
		{diagram.Point{X: 7, Y: 0}, 0},   // on the segment
	}
	for _, tt := range tests {
		if got := DistanceToSegment(tt.p, a, b); !almostEqual(got, tt.want) {
			t.Errorf("DistanceToSegment(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}

	// Degenerate segment.
	if got := DistanceToSegment(diagram.Point{X: 3, Y: 4}, a, a); !almostEqual(got, 5) {
		t.Errorf("degenerate segment distance = %v, want 5", got)
	}
}
