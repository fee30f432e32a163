package export

import (
	"bytes"
	"encoding/json"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"erdraw/diagram"
	"erdraw/render"
)

func testGraph() *diagram.Graph {
	return &diagram.Graph{
		Shapes: []diagram.Shape{
			{ID: 1, Name: "Entity 1", Kind: diagram.KindEntity, X: 100, Y: 100, Width: 140, Height: 60},
			{ID: 2, Name: "Action 1", Kind: diagram.KindAction, X: 400, Y: 100, Width: 120, Height: 70},
			{ID: 3, Name: "Attribute 1", Kind: diagram.KindAttribute, X: 250, Y: 300, Width: 120, Height: 50},
		},
		Connections: []diagram.Connection{
			{ID: 1, From: 1, To: 2, Start: diagram.ExactlyOne, End: diagram.Many},
			{ID: 2, From: 1, To: 3, Start: diagram.ZeroOrMore, End: diagram.OneOrMore},
		},
	}
}

func TestRasterProducesDecodablePNG(t *testing.T) {
	opts := DefaultRasterOptions()
	data, err := Raster(testGraph(), opts)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	// Content spans x 100..520, y 100..350, plus padding on each side.
	b := img.Bounds()
	assert.Equal(t, 500, b.Dx())
	assert.Equal(t, 330, b.Dy())
}

func TestRasterEmptyGraph(t *testing.T) {
	data, err := Raster(&diagram.Graph{}, DefaultRasterOptions())
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(data))
	assert.NoError(t, err)
}

func TestRasterScale(t *testing.T) {
	opts := DefaultRasterOptions()
	opts.Scale = 2
	data, err := Raster(testGraph(), opts)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 1000, img.Bounds().Dx())
}

func TestJSONExportRoundTrips(t *testing.T) {
	g := testGraph()
	e := NewJSONExporter()
	data, err := e.Export(g)
	require.NoError(t, err)

	var loaded diagram.Graph
	require.NoError(t, json.Unmarshal(data, &loaded))
	assert.Equal(t, *g, loaded)
}

func TestNewExporter(t *testing.T) {
	for _, f := range AvailableFormats() {
		e, err := NewExporter(f)
		require.NoError(t, err, "format %s", f)
		assert.NotEmpty(t, e.FileExtension())
		assert.NotEmpty(t, e.FormatName())
	}
	_, err := NewExporter(Format("svg"))
	assert.Error(t, err)

	f, err := ParseFormat("png")
	require.NoError(t, err)
	assert.Equal(t, FormatPNG, f)
	_, err = ParseFormat("bmp")
	assert.Error(t, err)
}

func TestImageRendererHitTest(t *testing.T) {
	g := testGraph()
	ir, err := NewImageRenderer(600, 420, diagram.Point{X: 60, Y: 60}, 1, 13)
	require.NoError(t, err)
	DrawGraph(ir, g)

	hit := ir.HitTest(diagram.Point{X: 170, Y: 130})
	assert.Equal(t, render.Hit{Kind: render.HitShape, ID: 1}, hit)

	hit = ir.HitTest(diagram.Point{X: 900, Y: 900})
	assert.Equal(t, render.HitBackground, hit.Kind)
}
