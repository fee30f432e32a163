package export

import (
	"encoding/json"

	"erdraw/diagram"
)

// JSONExporter dumps the graph as indented JSON, the same representation the
// editor loads.
type JSONExporter struct{}

// NewJSONExporter creates a JSON exporter.
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// Export marshals the graph.
func (e *JSONExporter) Export(g *diagram.Graph) ([]byte, error) {
	return json.MarshalIndent(g, "", "  ")
}

// FileExtension returns "json".
func (e *JSONExporter) FileExtension() string { return "json" }

// FormatName returns the format name.
func (e *JSONExporter) FormatName() string { return "JSON" }
