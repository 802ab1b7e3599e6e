package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/table"

	"github.com/piwi3910/shelfpack/internal/model"
)

// DXF layer names written by ExportDXF.
const (
	ContainerLayer = "CONTAINER"
	ItemsLayer     = "ITEMS"
	LabelsLayer    = "LABELS"
)

// ExportDXF writes the layout as a DXF drawing: the container outline on one
// layer, a closed polyline per placement on another and the item labels on a
// third. DXF is Y-up, so placements are mirrored against the container height.
func ExportDXF(path string, result model.PackResult) error {
	if result.Container.Area() <= 0 {
		return fmt.Errorf("container %s has no area to draw", result.Container)
	}

	d := dxf.NewDrawing()
	flip := result.Container.Height

	if _, err := d.AddLayer(ContainerLayer, color.White, table.LT_CONTINUOUS, true); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", ContainerLayer, err)
	}
	if _, err := d.LwPolyline(true, rectVertices(0, 0, result.Container.Width, result.Container.Height)...); err != nil {
		return fmt.Errorf("failed to draw container: %w", err)
	}

	if _, err := d.AddLayer(ItemsLayer, color.Cyan, table.LT_CONTINUOUS, true); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", ItemsLayer, err)
	}
	for _, p := range result.Placements {
		if p.Item.Width <= 0 || p.Item.Height <= 0 {
			continue
		}
		y := flip - p.Y - p.Item.Height
		if _, err := d.LwPolyline(true, rectVertices(p.X, y, p.Item.Width, p.Item.Height)...); err != nil {
			return fmt.Errorf("failed to draw %q: %w", p.Item.Label, err)
		}
	}

	if _, err := d.AddLayer(LabelsLayer, color.Yellow, table.LT_CONTINUOUS, true); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", LabelsLayer, err)
	}
	for _, p := range result.Placements {
		if p.Item.Label == "" || p.Item.Width <= 0 || p.Item.Height <= 0 {
			continue
		}
		height := textHeight(p.Item.Size())
		x := p.X + height/2
		y := flip - p.Y - p.Item.Height/2 - height/2
		if _, err := d.Text(p.Item.Label, x, y, 0, height); err != nil {
			return fmt.Errorf("failed to label %q: %w", p.Item.Label, err)
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save DXF: %w", err)
	}
	return nil
}

// rectVertices returns the four corners of an axis-aligned rectangle.
func rectVertices(x, y, w, h float64) [][]float64 {
	return [][]float64{
		{x, y},
		{x + w, y},
		{x + w, y + h},
		{x, y + h},
	}
}

// textHeight scales label text to a tenth of the item's shorter side.
func textHeight(s model.Size) float64 {
	h := s.Width
	if s.Height < h {
		h = s.Height
	}
	return h / 10
}
