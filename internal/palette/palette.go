// Package palette assigns stable display colours to item labels, so the same
// label is drawn in the same colour in every export and in the viewer.
package palette

import (
	"fmt"
	"image/color"

	"github.com/taigrr/colorhash"
)

// Colors is the fill palette shared by all renderers.
var Colors = []color.RGBA{
	{R: 76, G: 175, B: 80, A: 255},  // green
	{R: 33, G: 150, B: 243, A: 255}, // blue
	{R: 255, G: 152, B: 0, A: 255},  // orange
	{R: 156, G: 39, B: 176, A: 255}, // purple
	{R: 0, G: 188, B: 212, A: 255},  // cyan
	{R: 244, G: 67, B: 54, A: 255},  // red
	{R: 255, G: 235, B: 59, A: 255}, // yellow
	{R: 121, G: 85, B: 72, A: 255},  // brown
}

// Index returns the palette slot for label.
func Index(label string) int {
	h := int(colorhash.HashString(label))
	if h < 0 {
		h = -h
	}
	return h % len(Colors)
}

// For returns the fill colour for label.
func For(label string) color.RGBA {
	return Colors[Index(label)]
}

// RGB returns the fill colour for label as 0-255 components.
func RGB(label string) (r, g, b int) {
	c := For(label)
	return int(c.R), int(c.G), int(c.B)
}

// Hex returns the fill colour for label as "#rrggbb".
func Hex(label string) string {
	c := For(label)
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// WithAlpha returns c with its alpha channel replaced.
func WithAlpha(c color.RGBA, a uint8) color.RGBA {
	c.A = a
	return c
}
