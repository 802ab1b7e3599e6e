package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Item is a rectangle the caller wants placed in the container.
type Item struct {
	ID       string  `json:"id" yaml:"id"`
	Label    string  `json:"label" yaml:"label"`
	Width    float64 `json:"width" yaml:"width"`
	Height   float64 `json:"height" yaml:"height"`
	Quantity int     `json:"quantity" yaml:"quantity"`
}

// NewItem builds an item with a fresh short ID.
func NewItem(label string, w, h float64, qty int) Item {
	return Item{
		ID:       NewID(),
		Label:    label,
		Width:    w,
		Height:   h,
		Quantity: qty,
	}
}

// NewID returns an 8 character identifier.
func NewID() string {
	return uuid.New().String()[:8]
}

// Size returns the item's packing size.
func (it Item) Size() Size {
	return Size{Width: it.Width, Height: it.Height}
}

// SortKey selects the descending sort applied before packing.
type SortKey int

const (
	SortHeight    SortKey = iota // Tallest first (default)
	SortWidth                    // Widest first
	SortArea                     // Largest area first
	SortPerimeter                // Largest width+height first
)

var sortKeyNames = []string{"height", "width", "area", "perimeter"}

func (k SortKey) String() string {
	if k < 0 || int(k) >= len(sortKeyNames) {
		return "height"
	}
	return sortKeyNames[k]
}

// Value returns the key applied to a size.
func (k SortKey) Value(s Size) float64 {
	switch k {
	case SortWidth:
		return s.Width
	case SortArea:
		return s.Area()
	case SortPerimeter:
		return s.Perimeter()
	default:
		return s.Height
	}
}

// SortKeys lists every key in declaration order.
func SortKeys() []SortKey {
	return []SortKey{SortHeight, SortWidth, SortArea, SortPerimeter}
}

// ParseSortKey accepts a key name, case-insensitively. The empty string maps
// to SortHeight.
func ParseSortKey(s string) (SortKey, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return SortHeight, nil
	}
	for i, n := range sortKeyNames {
		if n == name {
			return SortKey(i), nil
		}
	}
	return SortHeight, fmt.Errorf("unknown sort key %q (want one of %s)", s, strings.Join(sortKeyNames, ", "))
}

// MarshalText implements encoding.TextMarshaler.
func (k SortKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *SortKey) UnmarshalText(text []byte) error {
	parsed, err := ParseSortKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Algorithm represents the packing strategy to use.
type Algorithm string

const (
	AlgorithmShelf   Algorithm = "shelf"   // Single sorted pass through the shelf tree (fast)
	AlgorithmGenetic Algorithm = "genetic" // Genetic search over feed orders (slower, often denser)
)

// ParseAlgorithm validates an algorithm name. The empty string maps to shelf.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(strings.ToLower(strings.TrimSpace(s))) {
	case "", AlgorithmShelf:
		return AlgorithmShelf, nil
	case AlgorithmGenetic:
		return AlgorithmGenetic, nil
	default:
		return AlgorithmShelf, fmt.Errorf("unknown algorithm %q (want shelf or genetic)", s)
	}
}

// PackSettings holds optimizer configuration.
type PackSettings struct {
	Algorithm Algorithm `json:"algorithm" yaml:"algorithm"` // "shelf" or "genetic"
	SortKey   SortKey   `json:"sort_key" yaml:"sort_key"`   // Descending sort applied before packing
	Seed      int64     `json:"seed" yaml:"seed"`           // Random seed for the genetic search
}

func DefaultSettings() PackSettings {
	return PackSettings{
		Algorithm: AlgorithmShelf,
		SortKey:   SortHeight,
		Seed:      42,
	}
}

// Placement represents a single item copy placed in the container.
type Placement struct {
	Item Item    `json:"item" yaml:"item"`
	X    float64 `json:"x" yaml:"x"` // Offset from left edge
	Y    float64 `json:"y" yaml:"y"` // Offset from top edge
}

// Origin returns the placement's top-left corner.
func (p Placement) Origin() Point {
	return Point{X: p.X, Y: p.Y}
}

// Rect returns the area covered by the placement.
func (p Placement) Rect() Rect {
	return Rect{Point: p.Origin(), Size: p.Item.Size()}
}

// PackResult holds the full solution for one container.
type PackResult struct {
	Container  Size        `json:"container" yaml:"container"`
	Placements []Placement `json:"placements" yaml:"placements"`
	Overflow   []Item      `json:"overflow" yaml:"overflow"`
}

// AllPlaced reports whether every item copy found a place.
func (r PackResult) AllPlaced() bool {
	return len(r.Overflow) == 0
}

// UsedArea returns the total area covered by placements.
func (r PackResult) UsedArea() float64 {
	var total float64
	for _, p := range r.Placements {
		total += p.Item.Size().Area()
	}
	return total
}

// TotalArea returns the container area.
func (r PackResult) TotalArea() float64 {
	return r.Container.Area()
}

// Efficiency returns the usage percentage.
func (r PackResult) Efficiency() float64 {
	ta := r.TotalArea()
	if ta == 0 {
		return 0
	}
	return (r.UsedArea() / ta) * 100.0
}

// Project ties everything together for save/load.
type Project struct {
	Name      string       `json:"name" yaml:"name"`
	Container Size         `json:"container" yaml:"container"`
	Items     []Item       `json:"items" yaml:"items"`
	Settings  PackSettings `json:"settings" yaml:"settings"`
	Result    *PackResult  `json:"result,omitempty" yaml:"result,omitempty"`
}

func NewProject() Project {
	return Project{
		Name:     "Untitled",
		Items:    []Item{},
		Settings: DefaultSettings(),
	}
}
