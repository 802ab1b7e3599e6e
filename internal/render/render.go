// Package render draws packing results as vector graphics through
// github.com/tdewolff/canvas. Output units are millimetres.
package render

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/svg"

	"github.com/piwi3910/shelfpack/internal/model"
	"github.com/piwi3910/shelfpack/internal/palette"
)

// Options controls page size and stroke.
type Options struct {
	Scale       float64 // mm per container unit
	Margin      float64 // mm around the container
	StrokeWidth float64 // mm
}

// DefaultOptions draws one container unit as one millimetre.
func DefaultOptions() Options {
	return Options{Scale: 1, Margin: 10, StrokeWidth: 0.5}
}

var (
	containerFill   = canvas.Hex("#ebebeb")
	containerStroke = canvas.Hex("#646464")
	itemStroke      = canvas.Hex("#1e1e1e")
)

// NewCanvas draws result onto a fresh canvas sized to the container plus
// margins. The coordinate system has its origin at the top-left, matching
// placement origins.
func NewCanvas(result model.PackResult, opts Options) (*canvas.Canvas, error) {
	if err := result.Container.Validate(); err != nil {
		return nil, err
	}
	if opts.Scale <= 0 {
		return nil, fmt.Errorf("scale must be positive, got %g", opts.Scale)
	}
	if result.Container.Area() <= 0 {
		return nil, fmt.Errorf("container %s has no area to draw", result.Container)
	}

	width := result.Container.Width*opts.Scale + 2*opts.Margin
	height := result.Container.Height*opts.Scale + 2*opts.Margin

	c := canvas.New(width, height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)
	Draw(ctx, result, opts)
	return c, nil
}

// Draw paints the container and every placement onto ctx.
func Draw(ctx *canvas.Context, result model.PackResult, opts Options) {
	s := opts.Scale
	m := opts.Margin

	ctx.SetFillColor(containerFill)
	ctx.SetStrokeColor(containerStroke)
	ctx.SetStrokeWidth(opts.StrokeWidth * 2)
	ctx.DrawPath(m, m, canvas.Rectangle(result.Container.Width*s, result.Container.Height*s))

	ctx.SetStrokeColor(itemStroke)
	ctx.SetStrokeWidth(opts.StrokeWidth)
	for _, p := range result.Placements {
		if p.Item.Width <= 0 || p.Item.Height <= 0 {
			continue
		}
		ctx.SetFillColor(fill(p.Item.Label))
		ctx.DrawPath(m+p.X*s, m+p.Y*s, canvas.Rectangle(p.Item.Width*s, p.Item.Height*s))
	}
}

func fill(label string) color.RGBA {
	return palette.WithAlpha(palette.For(label), 220)
}

// RenderSVG writes result as an SVG document.
func RenderSVG(w io.Writer, result model.PackResult, opts Options) error {
	c, err := NewCanvas(result, opts)
	if err != nil {
		return err
	}
	writer := svg.New(w, c.W, c.H, nil)
	c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to write SVG: %w", err)
	}
	return nil
}

// RenderPDF writes result as a single-page PDF document.
func RenderPDF(w io.Writer, result model.PackResult, opts Options) error {
	c, err := NewCanvas(result, opts)
	if err != nil {
		return err
	}
	writer := pdf.New(w, c.W, c.H, nil)
	c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

// RenderFile picks SVG or PDF by the extension of path.
func RenderFile(path string, result model.PackResult, opts Options) error {
	var render func(io.Writer, model.PackResult, Options) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		render = RenderSVG
	case ".pdf":
		render = RenderPDF
	default:
		return fmt.Errorf("unsupported render format %q (want .svg or .pdf)", filepath.Ext(path))
	}

	var buf bytes.Buffer
	if err := render(&buf, result, opts); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
