package render

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/shelfpack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResult() model.PackResult {
	return model.PackResult{
		Container: model.NewSize(100, 60),
		Placements: []model.Placement{
			{Item: model.NewItem("A", 40, 30, 1), X: 0, Y: 0},
			{Item: model.NewItem("B", 60, 30, 1), X: 40, Y: 0},
			{Item: model.NewItem("Dot", 0, 0, 1), X: 0, Y: 30},
		},
	}
}

func TestNewCanvas_Size(t *testing.T) {
	opts := DefaultOptions()
	opts.Scale = 2

	c, err := NewCanvas(testResult(), opts)
	require.NoError(t, err)
	assert.InDelta(t, 100*2+2*opts.Margin, c.W, 1e-9)
	assert.InDelta(t, 60*2+2*opts.Margin, c.H, 1e-9)
}

func TestNewCanvas_Rejects(t *testing.T) {
	_, err := NewCanvas(model.PackResult{}, DefaultOptions())
	assert.Error(t, err, "zero container")

	_, err = NewCanvas(model.PackResult{Container: model.NewSize(-1, 5)}, DefaultOptions())
	assert.ErrorIs(t, err, model.ErrNegativeSize)

	opts := DefaultOptions()
	opts.Scale = 0
	_, err = NewCanvas(testResult(), opts)
	assert.Error(t, err)
}

func TestRenderSVG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderSVG(&buf, testResult(), DefaultOptions()))

	out := buf.String()
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, "</svg>")
	assert.Equal(t, 1, strings.Count(out, "<svg"))
}

func TestRenderPDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderPDF(&buf, testResult(), DefaultOptions()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestRenderFile(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"layout.svg", "layout.PDF"} {
		path := filepath.Join(dir, name)
		require.NoError(t, RenderFile(path, testResult(), DefaultOptions()), name)

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}

	err := RenderFile(filepath.Join(dir, "layout.png"), testResult(), DefaultOptions())
	assert.ErrorContains(t, err, "unsupported render format")
}
