package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/shelfpack/internal/model"
	"github.com/piwi3910/shelfpack/internal/palette"
)

// LabelInfo is the payload of one label. It is printed on the label and
// encoded as JSON into its QR code.
type LabelInfo struct {
	Index  int     `json:"index"`
	ID     string  `json:"id"`
	Label  string  `json:"label"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// labelSheet describes a page of adhesive labels in millimetres.
type labelSheet struct {
	paper      string
	top, left  float64
	cellW      float64
	cellH      float64
	cols, rows int
	code       float64 // QR code edge
	pad        float64
}

// avery5160 is the US Letter 3x10 address label sheet.
var avery5160 = labelSheet{
	paper: "Letter",
	top:   12.7, left: 4.8,
	cellW: 66.7, cellH: 25.4,
	cols: 3, rows: 10,
	code: 20, pad: 2,
}

func (s labelSheet) perPage() int { return s.cols * s.rows }

// origin returns the top-left corner of the n-th label on its page.
func (s labelSheet) origin(n int) (x, y float64) {
	n %= s.perPage()
	return s.left + float64(n%s.cols)*s.cellW, s.top + float64(n/s.cols)*s.cellH
}

// ExportLabels writes a PDF with one QR-coded label per placement.
func ExportLabels(path string, result model.PackResult) error {
	infos := CollectLabelInfos(result)
	if len(infos) == 0 {
		return errors.New("no items placed to generate labels for")
	}

	sheet := avery5160
	doc := fpdf.New("P", "mm", sheet.paper, "")
	doc.SetAutoPageBreak(false, 0)

	for n, info := range infos {
		if n%sheet.perPage() == 0 {
			doc.AddPage()
		}
		x, y := sheet.origin(n)
		if err := sheet.draw(doc, x, y, info); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", info.Label, err)
		}
	}
	return doc.OutputFileAndClose(path)
}

// draw renders one label cell: a cut guide, a colour tab matching the
// layout drawing, three text lines and the QR code on the right.
func (s labelSheet) draw(doc *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	payload, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}
	png, err := qrcode.Encode(string(payload), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	doc.SetDrawColor(200, 200, 200)
	doc.SetLineWidth(0.1)
	doc.Rect(x, y, s.cellW, s.cellH, "D")

	r, g, b := palette.RGB(info.Label)
	doc.SetFillColor(r, g, b)
	doc.Rect(x, y, 1.5, s.cellH, "F")

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	name := fmt.Sprintf("qr_%d", info.Index)
	doc.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
	doc.ImageOptions(name, x+s.cellW-s.code-s.pad, y+(s.cellH-s.code)/2, s.code, s.code, false, opts, 0, "")

	textW := s.cellW - s.code - 3*s.pad
	lines := []struct {
		style string
		size  float64
		grey  int
		text  string
	}{
		{"B", 9, 0, info.Label},
		{"", 7, 0, fmt.Sprintf("%g x %g", info.Width, info.Height)},
		{"", 6, 100, fmt.Sprintf("#%d @ (%g, %g)", info.Index, info.X, info.Y)},
		{"", 6, 100, info.ID},
	}
	cy := y + s.pad
	for _, l := range lines {
		if l.text == "" {
			continue
		}
		// truncate measures in the current font.
		doc.SetFont("Helvetica", l.style, l.size)
		doc.SetTextColor(l.grey, l.grey, l.grey)
		doc.SetXY(x+s.pad+1, cy)
		h := l.size * 0.5
		doc.CellFormat(textW, h, truncate(doc, l.text, textW), "", 0, "L", false, 0, "")
		cy += h
	}
	doc.SetTextColor(0, 0, 0)
	return nil
}

// truncate shortens s with an ellipsis until it fits in width.
func truncate(doc *fpdf.Fpdf, s string, width float64) string {
	if doc.GetStringWidth(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && doc.GetStringWidth(string(r)+"...") > width {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}

// CollectLabelInfos numbers the placements of result from 1 in placement
// order.
func CollectLabelInfos(result model.PackResult) []LabelInfo {
	infos := make([]LabelInfo, 0, len(result.Placements))
	for i, p := range result.Placements {
		infos = append(infos, LabelInfo{
			Index:  i + 1,
			ID:     p.Item.ID,
			Label:  p.Item.Label,
			Width:  p.Item.Width,
			Height: p.Item.Height,
			X:      p.X,
			Y:      p.Y,
		})
	}
	return infos
}
