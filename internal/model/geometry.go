package model

import (
	"errors"
	"fmt"
	"math"
)

// ErrNegativeSize is returned when a width or height is negative or NaN.
var ErrNegativeSize = errors.New("negative size")

// Size is a width/height pair in container units.
type Size struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// NewSize is shorthand for Size{Width: w, Height: h}.
func NewSize(w, h float64) Size {
	return Size{Width: w, Height: h}
}

// Area returns Width*Height.
func (s Size) Area() float64 {
	return s.Width * s.Height
}

// Perimeter returns the half perimeter (Width+Height) used as a sort key.
func (s Size) Perimeter() float64 {
	return s.Width + s.Height
}

// Fits reports whether other fits inside s without rotation.
func (s Size) Fits(other Size) bool {
	return other.Height <= s.Height && other.Width <= s.Width
}

// Validate rejects negative and NaN dimensions.
func (s Size) Validate() error {
	if math.IsNaN(s.Width) || math.IsNaN(s.Height) || s.Width < 0 || s.Height < 0 {
		return fmt.Errorf("%w: %gx%g", ErrNegativeSize, s.Width, s.Height)
	}
	return nil
}

func (s Size) String() string {
	return fmt.Sprintf("%gx%g", s.Width, s.Height)
}

// Point is an offset from the container's top-left corner.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	Point
	Size
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Overlaps returns true if two rectangles share interior area (touching edges
// do not count).
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() &&
		r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Within reports whether r lies inside a container of the given size.
func (r Rect) Within(container Size) bool {
	return r.X >= 0 && r.Y >= 0 &&
		r.Right() <= container.Width && r.Bottom() <= container.Height
}
