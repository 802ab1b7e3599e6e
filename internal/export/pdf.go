// Package export provides functionality for exporting packing results
// to various file formats.
package export

import (
	"fmt"
	"math"
	"strconv"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/shelfpack/internal/model"
	"github.com/piwi3910/shelfpack/internal/palette"
)

// A4 landscape, in mm.
const (
	pageW  = 297.0
	pageH  = 210.0
	margin = 15.0
	bodyW  = pageW - 2*margin
	rowH   = 6.0
)

// report is a PDF document with a vertical write position.
type report struct {
	doc *fpdf.Fpdf
	y   float64
}

// ExportPDF writes a two-part report for result: the layout drawing with a
// legend, then a summary listing every placement and every overflowed item.
func ExportPDF(path, title string, result model.PackResult, settings model.PackSettings) error {
	if result.Container.Area() <= 0 {
		return fmt.Errorf("container %s has no area to draw", result.Container)
	}

	r := &report{doc: fpdf.New("L", "mm", "A4", "")}
	r.doc.SetAutoPageBreak(false, margin)
	r.doc.SetTitle(title, true)

	r.newPage()
	r.layout(title, result)
	r.newPage()
	r.summary(result, settings)
	return r.doc.OutputFileAndClose(path)
}

func (r *report) newPage() {
	r.doc.AddPage()
	r.y = margin
}

// need starts a new page unless h more millimetres fit above the bottom
// margin.
func (r *report) need(h float64) {
	if r.y+h > pageH-margin {
		r.newPage()
	}
}

// text writes one left-aligned line of height h at x and advances y.
func (r *report) text(x, h float64, style string, size float64, s string) {
	r.doc.SetFont("Helvetica", style, size)
	r.doc.SetXY(x, r.y)
	r.doc.CellFormat(pageW-margin-x, h, s, "", 0, "L", false, 0, "")
	r.y += h
}

// layout draws the heading, the scaled container with its placements, the
// container dimensions and the legend.
func (r *report) layout(title string, result model.PackResult) {
	c := result.Container
	r.text(margin, 12, "B", 14, fmt.Sprintf("%s (%g x %g)", title, c.Width, c.Height))
	r.text(margin, 5, "", 10, fmt.Sprintf("Placed: %d | Overflow: %d | Used area: %.0f | Total area: %.0f | Efficiency: %.1f%%",
		len(result.Placements), len(result.Overflow), result.UsedArea(), result.TotalArea(), result.Efficiency()))
	r.y += 5

	// Leave room below the drawing for the dimension and legend lines.
	availH := pageH - r.y - margin - 20
	scale := math.Min(bodyW/c.Width, availH/c.Height)
	w, h := c.Width*scale, c.Height*scale
	ox, oy := margin+(bodyW-w)/2, r.y

	r.doc.SetFillColor(235, 235, 235)
	r.doc.SetDrawColor(100, 100, 100)
	r.doc.SetLineWidth(0.5)
	r.doc.Rect(ox, oy, w, h, "FD")

	r.doc.SetDrawColor(30, 30, 30)
	r.doc.SetLineWidth(0.3)
	for _, p := range result.Placements {
		r.placement(p, ox+p.X*scale, oy+p.Y*scale, p.Item.Width*scale, p.Item.Height*scale)
	}

	r.dimensions(c, ox, oy, w, h)
	r.y = oy + h + 5
	r.legend(result.Placements)
}

// placement fills one item rectangle and centres its label, plus its size
// when the box is tall enough.
func (r *report) placement(p model.Placement, x, y, w, h float64) {
	red, green, blue := palette.RGB(p.Item.Label)
	r.doc.SetFillColor(red, green, blue)
	r.doc.Rect(x, y, w, h, "FD")
	if w <= 15 || h <= 8 {
		return
	}

	r.doc.SetFont("Helvetica", "", labelFontSize(w, h))
	r.doc.SetTextColor(0, 0, 0)
	centred := func(s string, top float64) {
		sw := r.doc.GetStringWidth(s)
		if sw >= w-2 {
			return
		}
		r.doc.SetXY(x+(w-sw)/2, top)
		r.doc.CellFormat(sw, 4, s, "", 0, "C", false, 0, "")
	}
	centred(p.Item.Label, y+h/2-4)
	if h > 14 {
		centred(fmt.Sprintf("%gx%g", p.Item.Width, p.Item.Height), y+h/2)
	}
}

// dimensions prints the container width under the drawing and its height,
// rotated, on the left.
func (r *report) dimensions(c model.Size, x, y, w, h float64) {
	r.doc.SetFont("Helvetica", "", 8)
	r.doc.SetTextColor(80, 80, 80)

	ws := strconv.FormatFloat(c.Width, 'g', -1, 64)
	sw := r.doc.GetStringWidth(ws)
	r.doc.SetXY(x+(w-sw)/2, y+h+1)
	r.doc.CellFormat(sw, 4, ws, "", 0, "C", false, 0, "")

	hs := strconv.FormatFloat(c.Height, 'g', -1, 64)
	sw = r.doc.GetStringWidth(hs)
	r.doc.TransformBegin()
	r.doc.TransformRotate(90, x-3, y+h/2)
	r.doc.SetXY(x-3-sw/2, y+h/2-2)
	r.doc.CellFormat(sw, 4, hs, "", 0, "C", false, 0, "")
	r.doc.TransformEnd()

	r.doc.SetTextColor(0, 0, 0)
}

// legend lists one colour swatch per label and size, wrapping at the right
// margin.
func (r *report) legend(placements []model.Placement) {
	if len(placements) == 0 {
		return
	}
	r.doc.SetFont("Helvetica", "B", 8)
	r.doc.SetXY(margin, r.y)
	r.doc.CellFormat(30, 4, "Items placed:", "", 0, "L", false, 0, "")

	r.doc.SetFont("Helvetica", "", 7)
	x := margin + 32
	for _, c := range countByLabel(placements) {
		s := fmt.Sprintf("%s (%gx%g) x%d", c.label, c.size.Width, c.size.Height, c.count)
		w := r.doc.GetStringWidth(s) + 6
		if x+w > pageW-margin {
			r.y += 5
			x = margin
		}
		red, green, blue := palette.RGB(c.label)
		r.doc.SetFillColor(red, green, blue)
		r.doc.Rect(x, r.y+0.5, 3, 3, "F")
		r.doc.SetXY(x+4, r.y)
		r.doc.CellFormat(w-4, 4, s, "", 0, "L", false, 0, "")
		x += w + 2
	}
}

var placementColumns = []struct {
	title string
	width float64
}{
	{"#", 15}, {"Item", 80}, {"Size", 40}, {"X", 40}, {"Y", 40},
}

// summary writes the settings block, the placement table and, when
// anything overflowed, a warning list.
func (r *report) summary(result model.PackResult, settings model.PackSettings) {
	r.text(margin, 10, "B", 16, "Packing Summary")
	r.doc.SetLineWidth(0.5)
	r.doc.SetDrawColor(0, 0, 0)
	r.doc.Line(margin, r.y+2, pageW-margin, r.y+2)
	r.y += 8

	facts := [][2]string{
		{"Algorithm", string(settings.Algorithm)},
		{"Sort Key", settings.SortKey.String()},
		{"Efficiency", fmt.Sprintf("%.1f%%", result.Efficiency())},
		{"Items Placed", strconv.Itoa(len(result.Placements))},
		{"Overflow", strconv.Itoa(len(result.Overflow))},
	}
	for _, f := range facts {
		r.doc.SetXY(margin+5, r.y)
		r.doc.SetFont("Helvetica", "", 10)
		r.doc.CellFormat(60, 6, f[0]+":", "", 0, "L", false, 0, "")
		r.doc.SetFont("Helvetica", "B", 10)
		r.doc.CellFormat(40, 6, f[1], "", 0, "L", false, 0, "")
		r.y += 7
	}
	r.y += 5

	header := make([]string, len(placementColumns))
	for i, col := range placementColumns {
		header[i] = col.title
	}
	r.doc.SetFont("Helvetica", "B", 9)
	r.doc.SetFillColor(230, 230, 230)
	r.row(header)

	r.doc.SetFont("Helvetica", "", 9)
	for i, p := range result.Placements {
		r.need(rowH)
		shade := 255
		if i%2 == 0 {
			shade = 245
		}
		r.doc.SetFillColor(shade, shade, shade)
		r.row([]string{
			strconv.Itoa(i + 1),
			p.Item.Label,
			fmt.Sprintf("%g x %g", p.Item.Width, p.Item.Height),
			strconv.FormatFloat(p.X, 'g', -1, 64),
			strconv.FormatFloat(p.Y, 'g', -1, 64),
		})
	}

	if len(result.Overflow) > 0 {
		r.y += 8
		r.need(7)
		r.doc.SetTextColor(200, 0, 0)
		r.text(margin, 8, "B", 11, "WARNING: Items that did not fit")
		r.doc.SetTextColor(0, 0, 0)
		for _, it := range result.Overflow {
			r.need(5)
			r.text(margin+5, 5, "", 9, fmt.Sprintf("- %s: %g x %g", it.Label, it.Width, it.Height))
		}
	}

	r.doc.SetTextColor(120, 120, 120)
	r.y = pageH - margin
	r.doc.SetFont("Helvetica", "I", 8)
	r.doc.SetXY(margin, r.y)
	r.doc.CellFormat(bodyW, 4, "Generated by shelfpack", "", 0, "C", false, 0, "")
	r.doc.SetTextColor(0, 0, 0)
}

// row draws one bordered, filled table row.
func (r *report) row(cells []string) {
	x := margin
	for i, cell := range cells {
		w := placementColumns[i].width
		r.doc.SetXY(x, r.y)
		r.doc.CellFormat(w, rowH, cell, "1", 0, "C", true, 0, "")
		x += w
	}
	r.y += rowH
}

// labelFontSize picks a font size for a placement box by its shorter side.
func labelFontSize(w, h float64) float64 {
	switch side := math.Min(w, h); {
	case side > 40:
		return 8
	case side > 20:
		return 7
	default:
		return 6
	}
}

type labelCount struct {
	label string
	size  model.Size
	count int
}

// countByLabel groups placements by label and size in first-seen order.
func countByLabel(placements []model.Placement) []labelCount {
	type key struct {
		label string
		size  model.Size
	}
	var counts []labelCount
	seen := make(map[key]int)
	for _, p := range placements {
		k := key{p.Item.Label, p.Item.Size()}
		if i, ok := seen[k]; ok {
			counts[i].count++
			continue
		}
		seen[k] = len(counts)
		counts = append(counts, labelCount{label: p.Item.Label, size: k.size, count: 1})
	}
	return counts
}
