package tui

import (
	"encoding/json"
	"fmt"
	"os"

	"erdraw/diagram"
)

// LoadGraphFile reads and validates a diagram JSON file. A missing file is
// not an error; it returns nil so a new file can be started under that name.
func LoadGraphFile(filename string) (*diagram.Graph, error) {
	data, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	var g diagram.Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %w", filename, err)
	}

	// Hand-edited files may omit extents or cardinalities.
	diagram.Normalize(&g)
	if err := diagram.Validate(&g); err != nil {
		return nil, fmt.Errorf("invalid diagram in %s: %w", filename, err)
	}
	return &g, nil
}

// SaveGraphFile writes the graph as indented JSON.
func SaveGraphFile(filename string, g *diagram.Graph) error {
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}
