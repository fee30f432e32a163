package diagram

import "fmt"

// Validate checks a loaded graph for structural problems: duplicate IDs,
// dangling connection endpoints, self-loops, unknown kinds and non-positive
// extents. Graphs built through the store can't violate these; files edited
// by hand can.
func Validate(g *Graph) error {
	shapeIDs := make(map[int]bool)
	for _, s := range g.Shapes {
		if shapeIDs[s.ID] {
			return fmt.Errorf("duplicate shape ID: %d", s.ID)
		}
		shapeIDs[s.ID] = true
		if !s.Kind.Valid() {
			return fmt.Errorf("shape %d has unknown kind %q", s.ID, s.Kind)
		}
		if s.Width <= 0 || s.Height <= 0 {
			return fmt.Errorf("shape %d has non-positive extent %gx%g", s.ID, s.Width, s.Height)
		}
	}

	connIDs := make(map[int]bool)
	for i, c := range g.Connections {
		if connIDs[c.ID] {
			return fmt.Errorf("duplicate connection ID: %d", c.ID)
		}
		connIDs[c.ID] = true
		if !shapeIDs[c.From] {
			return fmt.Errorf("connection %d references non-existent 'from' shape: %d", i, c.From)
		}
		if !shapeIDs[c.To] {
			return fmt.Errorf("connection %d references non-existent 'to' shape: %d", i, c.To)
		}
		if c.From == c.To {
			return fmt.Errorf("connection %d is a self-loop on shape %d", i, c.From)
		}
	}
	return nil
}

// Normalize fills in values optional in hand-written files: missing
// cardinalities default to exactly-one and zero extents get the kind default.
func Normalize(g *Graph) {
	for i := range g.Shapes {
		if g.Shapes[i].Width == 0 && g.Shapes[i].Height == 0 {
			g.Shapes[i].Width, g.Shapes[i].Height = g.Shapes[i].Kind.DefaultExtent()
		}
	}
	for i := range g.Connections {
		if g.Connections[i].Start == "" {
			g.Connections[i].Start = ExactlyOne
		}
		if g.Connections[i].End == "" {
			g.Connections[i].End = ExactlyOne
		}
	}
}
