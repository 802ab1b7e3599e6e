package widgets

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/shelfpack/internal/model"
	"github.com/piwi3910/shelfpack/internal/palette"
)

var (
	containerColor = color.NRGBA{R: 235, G: 235, B: 235, A: 255}
	borderColor    = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	itemBorder     = color.NRGBA{R: 30, G: 30, B: 30, A: 255}
)

// LayoutCanvas renders the placements of one packing result.
type LayoutCanvas struct {
	widget.BaseWidget
	result    model.PackResult
	maxWidth  float32
	maxHeight float32
}

func NewLayoutCanvas(result model.PackResult, maxW, maxH float32) *LayoutCanvas {
	lc := &LayoutCanvas{
		result:    result,
		maxWidth:  maxW,
		maxHeight: maxH,
	}
	lc.ExtendBaseWidget(lc)
	return lc
}

// SetResult swaps the drawn result.
func (lc *LayoutCanvas) SetResult(result model.PackResult) {
	lc.result = result
	lc.Refresh()
}

func (lc *LayoutCanvas) CreateRenderer() fyne.WidgetRenderer {
	return newLayoutCanvasRenderer(lc)
}

// FitScale returns the factor that fits container inside maxW x maxH.
func FitScale(container model.Size, maxW, maxH float32) float32 {
	if container.Width <= 0 || container.Height <= 0 {
		return 0
	}
	scale := maxW / float32(container.Width)
	if s := maxH / float32(container.Height); s < scale {
		scale = s
	}
	return scale
}

// ItemColor returns the canvas fill for an item label.
func ItemColor(label string) color.NRGBA {
	c := palette.For(label)
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 200}
}

type layoutCanvasRenderer struct {
	lc      *LayoutCanvas
	objects []fyne.CanvasObject
}

func newLayoutCanvasRenderer(lc *LayoutCanvas) *layoutCanvasRenderer {
	r := &layoutCanvasRenderer{lc: lc}
	r.rebuild()
	return r
}

func (r *layoutCanvasRenderer) rebuild() {
	r.objects = nil

	result := r.lc.result
	scale := FitScale(result.Container, r.lc.maxWidth, r.lc.maxHeight)
	if scale == 0 {
		return
	}

	canvasW := float32(result.Container.Width) * scale
	canvasH := float32(result.Container.Height) * scale

	bg := canvas.NewRectangle(containerColor)
	bg.Resize(fyne.NewSize(canvasW, canvasH))
	r.objects = append(r.objects, bg)

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = borderColor
	border.StrokeWidth = 2
	border.Resize(fyne.NewSize(canvasW, canvasH))
	r.objects = append(r.objects, border)

	for _, p := range result.Placements {
		pw := float32(p.Item.Width) * scale
		ph := float32(p.Item.Height) * scale
		px := float32(p.X) * scale
		py := float32(p.Y) * scale

		rect := canvas.NewRectangle(ItemColor(p.Item.Label))
		rect.StrokeColor = itemBorder
		rect.StrokeWidth = 1
		rect.Resize(fyne.NewSize(pw, ph))
		rect.Move(fyne.NewPos(px, py))
		r.objects = append(r.objects, rect)

		// Label (only if big enough)
		if pw > 30 && ph > 16 {
			label := canvas.NewText(
				fmt.Sprintf("%s %gx%g", p.Item.Label, p.Item.Width, p.Item.Height),
				color.Black,
			)
			label.TextSize = 10
			label.Move(fyne.NewPos(px+3, py+2))
			r.objects = append(r.objects, label)
		}
	}
}

func (r *layoutCanvasRenderer) Layout(size fyne.Size)        {}
func (r *layoutCanvasRenderer) Refresh()                     { r.rebuild() }
func (r *layoutCanvasRenderer) Destroy()                     {}
func (r *layoutCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *layoutCanvasRenderer) MinSize() fyne.Size {
	c := r.lc.result.Container
	scale := FitScale(c, r.lc.maxWidth, r.lc.maxHeight)
	return fyne.NewSize(float32(c.Width)*scale, float32(c.Height)*scale)
}

// RenderResult creates a scrollable view of a packing result with its
// summary and overflow list.
func RenderResult(result *model.PackResult) fyne.CanvasObject {
	if result == nil {
		return widget.NewLabel("No results yet. Add items and a container, then click Pack.")
	}

	header := widget.NewLabel(fmt.Sprintf(
		"Container %g x %g: %d placed, %d overflow, %.1f%% efficiency",
		result.Container.Width, result.Container.Height,
		len(result.Placements), len(result.Overflow), result.Efficiency(),
	))
	header.TextStyle = fyne.TextStyle{Bold: true}

	items := []fyne.CanvasObject{header, NewLayoutCanvas(*result, 800, 500)}

	if len(result.Overflow) > 0 {
		items = append(items, widget.NewSeparator())
		warning := widget.NewLabel(fmt.Sprintf("WARNING: %d items did not fit in the container.", len(result.Overflow)))
		warning.Importance = widget.DangerImportance
		items = append(items, warning)
		for _, line := range OverflowLines(result.Overflow) {
			items = append(items, widget.NewLabel(line))
		}
	}

	return container.NewVScroll(container.NewVBox(items...))
}

// OverflowLines groups overflowed items by label and size, keeping
// first-seen order.
func OverflowLines(overflow []model.Item) []string {
	type key struct {
		label string
		size  model.Size
	}
	var order []key
	counts := make(map[key]int)
	for _, it := range overflow {
		k := key{it.Label, it.Size()}
		if _, ok := counts[k]; !ok {
			order = append(order, k)
		}
		counts[k]++
	}

	lines := make([]string, 0, len(order))
	for _, k := range order {
		lines = append(lines, fmt.Sprintf("  %s (%g x %g) x%d", k.label, k.size.Width, k.size.Height, counts[k]))
	}
	return lines
}
