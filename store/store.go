// Package store implements the authoritative entity/relationship graph. Every
// mutation produces a fresh graph value and leaves the previous one untouched,
// so graphs handed out by Graph() stay valid as history snapshots forever.
package store

import (
	"errors"
	"fmt"

	"erdraw/diagram"
)

// Rejection errors for connection invariants. Callers surface these to the
// user; no state changes when they are returned.
var (
	ErrSelfConnection      = errors.New("cannot connect a shape to itself")
	ErrDuplicateConnection = errors.New("shapes are already connected")
)

// Store owns the shape and connection collections. All access goes through
// its operations; operations on IDs that no longer exist are silent no-ops.
type Store struct {
	graph    *diagram.Graph
	nextID   int // next shape ID
	nextConn int // next connection ID
}

// New creates a store with an empty graph.
func New() *Store {
	return &Store{
		graph:    &diagram.Graph{},
		nextID:   1,
		nextConn: 1,
	}
}

// Load creates a store over an existing graph, picking up ID counters past
// the highest IDs in use.
func Load(g *diagram.Graph) (*Store, error) {
	if err := diagram.Validate(g); err != nil {
		return nil, fmt.Errorf("invalid graph: %w", err)
	}
	s := New()
	s.Replace(g)
	return s, nil
}

// Graph returns the current graph. The returned value is never mutated by
// the store; treat it as read-only.
func (s *Store) Graph() *diagram.Graph {
	return s.graph
}

// Replace swaps in a different graph (used by undo/redo) and refreshes the
// ID counters so later additions stay unique.
func (s *Store) Replace(g *diagram.Graph) {
	s.graph = g
	s.nextID = 1
	s.nextConn = 1
	for _, shape := range g.Shapes {
		if shape.ID >= s.nextID {
			s.nextID = shape.ID + 1
		}
	}
	for _, c := range g.Connections {
		if c.ID >= s.nextConn {
			s.nextConn = c.ID + 1
		}
	}
}

// AddShape creates a shape of the given kind at the given position with the
// kind's default extent and an auto-incremented display name like "Entity 3",
// and returns its ID.
func (s *Store) AddShape(kind diagram.ShapeKind, at diagram.Point) int {
	g := s.graph.Clone()
	w, h := kind.DefaultExtent()
	shape := diagram.Shape{
		ID:     s.nextID,
		Name:   fmt.Sprintf("%s %d", kind.Label(), g.CountKind(kind)+1),
		Kind:   kind,
		X:      at.X,
		Y:      at.Y,
		Width:  w,
		Height: h,
	}
	s.nextID++
	g.Shapes = append(g.Shapes, shape)
	s.graph = g
	return shape.ID
}

// MoveShape repositions a shape. Returns false (and changes nothing) if the
// shape no longer exists.
func (s *Store) MoveShape(id int, to diagram.Point) bool {
	if _, ok := s.graph.FindShape(id); !ok {
		return false
	}
	g := s.graph.Clone()
	for i := range g.Shapes {
		if g.Shapes[i].ID == id {
			g.Shapes[i].X = to.X
			g.Shapes[i].Y = to.Y
			break
		}
	}
	s.graph = g
	return true
}

// RenameShape sets a shape's display name. The empty string is an accepted
// name. Returns false if the shape no longer exists.
func (s *Store) RenameShape(id int, name string) bool {
	if _, ok := s.graph.FindShape(id); !ok {
		return false
	}
	g := s.graph.Clone()
	for i := range g.Shapes {
		if g.Shapes[i].ID == id {
			g.Shapes[i].Name = name
			break
		}
	}
	s.graph = g
	return true
}

// RemoveShape deletes a shape and every connection referencing it, in one
// atomic step. Returns false if the shape no longer exists.
func (s *Store) RemoveShape(id int) bool {
	if _, ok := s.graph.FindShape(id); !ok {
		return false
	}
	g := s.graph.Clone()

	shapes := g.Shapes[:0]
	for _, shape := range g.Shapes {
		if shape.ID != id {
			shapes = append(shapes, shape)
		}
	}
	g.Shapes = shapes

	conns := g.Connections[:0]
	for _, c := range g.Connections {
		if !c.Touches(id) {
			conns = append(conns, c)
		}
	}
	g.Connections = conns

	s.graph = g
	return true
}

// AddConnection joins two shapes with a connection defaulting both ends to
// exactly-one, and returns its ID. Self-connections and unordered-pair
// duplicates are rejected without mutation. A vanished endpoint returns 0
// with no error and no mutation.
func (s *Store) AddConnection(from, to int) (int, error) {
	if from == to {
		return 0, ErrSelfConnection
	}
	if s.graph.Connected(from, to) {
		return 0, ErrDuplicateConnection
	}
	if _, ok := s.graph.FindShape(from); !ok {
		return 0, nil
	}
	if _, ok := s.graph.FindShape(to); !ok {
		return 0, nil
	}

	g := s.graph.Clone()
	conn := diagram.Connection{
		ID:    s.nextConn,
		From:  from,
		To:    to,
		Start: diagram.ExactlyOne,
		End:   diagram.ExactlyOne,
	}
	s.nextConn++
	g.Connections = append(g.Connections, conn)
	s.graph = g
	return conn.ID, nil
}

// RemoveConnection deletes a connection. Returns false if it no longer exists.
func (s *Store) RemoveConnection(id int) bool {
	if _, ok := s.graph.FindConnection(id); !ok {
		return false
	}
	g := s.graph.Clone()
	conns := g.Connections[:0]
	for _, c := range g.Connections {
		if c.ID != id {
			conns = append(conns, c)
		}
	}
	g.Connections = conns
	s.graph = g
	return true
}

// CycleCardinality advances the marker at one end of a connection to the next
// value in the fixed six-value cycle. Returns false if the connection no
// longer exists.
func (s *Store) CycleCardinality(id int, end diagram.ConnectionEnd) bool {
	if _, ok := s.graph.FindConnection(id); !ok {
		return false
	}
	g := s.graph.Clone()
	for i := range g.Connections {
		if g.Connections[i].ID != id {
			continue
		}
		if end == diagram.AtStart {
			g.Connections[i].Start = g.Connections[i].Start.Next()
		} else {
			g.Connections[i].End = g.Connections[i].End.Next()
		}
		break
	}
	s.graph = g
	return true
}
