// Package export converts diagrams into external formats: a PNG raster and a
// plain JSON dump of the graph.
package export

import (
	"fmt"

	"erdraw/diagram"
)

// Format represents an export format.
type Format string

const (
	// FormatPNG exports a raster image of the diagram.
	FormatPNG Format = "png"
	// FormatJSON exports the graph as indented JSON.
	FormatJSON Format = "json"
)

// Exporter converts a graph into the bytes of a target format.
type Exporter interface {
	// Export renders the graph. The output never contains selection or
	// editing chrome; it is drawn purely from the graph.
	Export(g *diagram.Graph) ([]byte, error)
	// FileExtension returns the recommended file extension.
	FileExtension() string
	// FormatName returns a human-readable name for the format.
	FormatName() string
}

// NewExporter creates an exporter for the specified format.
func NewExporter(format Format) (Exporter, error) {
	switch format {
	case FormatPNG:
		return NewPNGExporter(DefaultRasterOptions()), nil
	case FormatJSON:
		return NewJSONExporter(), nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

// ParseFormat converts a string to a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "png", "image":
		return FormatPNG, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown format: %s", s)
	}
}

// AvailableFormats returns all export formats.
func AvailableFormats() []Format {
	return []Format{FormatPNG, FormatJSON}
}
