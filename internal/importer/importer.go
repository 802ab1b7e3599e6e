// Package importer reads item lists from CSV, Excel and DXF files.
//
// Tabular sources are matched against known header names case-insensitively;
// files without a header are read positionally as label, width, height and an
// optional quantity. Problems are collected per row instead of aborting the
// import, so one bad line does not discard the rest of the list.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/piwi3910/shelfpack/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Items    []model.Item
	Errors   []string
	Warnings []string
}

func (r *ImportResult) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ImportResult) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// ColumnMapping maps semantic column roles to their indices in the data.
// A negative index means the column is absent.
type ColumnMapping struct {
	Label    int
	Width    int
	Height   int
	Quantity int
}

// positionalMapping is used when the first row is not a header.
var positionalMapping = ColumnMapping{Label: 0, Width: 1, Height: 2, Quantity: 3}

type columnRole int

const (
	roleLabel columnRole = iota
	roleWidth
	roleHeight
	roleQuantity
)

// headerRoles maps every accepted header name (lowercase) to its role.
var headerRoles = map[string]columnRole{}

func init() {
	aliases := map[columnRole][]string{
		roleLabel:    {"label", "name", "item", "item name", "description", "desc", "piece", "part"},
		roleWidth:    {"width", "w", "length", "len", "x"},
		roleHeight:   {"height", "h", "depth", "d", "y"},
		roleQuantity: {"quantity", "qty", "count", "num", "amount", "pcs", "pieces"},
	}
	for role, names := range aliases {
		for _, name := range names {
			headerRoles[name] = role
		}
	}
}

// column returns the mapping field that holds role.
func (m *ColumnMapping) column(role columnRole) *int {
	switch role {
	case roleLabel:
		return &m.Label
	case roleWidth:
		return &m.Width
	case roleHeight:
		return &m.Height
	default:
		return &m.Quantity
	}
}

// delimiterNames lists the candidates tried by DetectCSVDelimiter, in order
// of preference on equal scores.
var delimiterNames = []struct {
	r    rune
	name string
}{
	{',', "comma"},
	{';', "semicolon"},
	{'\t', "tab"},
	{'|', "pipe"},
}

// DetectCSVDelimiter picks the delimiter that splits the data into the most
// consistent number of columns, preferring wider tables on a tie. Delimiters
// that leave the first record as a single column never win. It falls back to
// comma.
func DetectCSVDelimiter(data []byte) rune {
	best, bestScore := ',', 0
	for _, cand := range delimiterNames {
		if score := delimiterScore(data, cand.r); score > bestScore {
			best, bestScore = cand.r, score
		}
	}
	return best
}

func delimiterScore(data []byte, delim rune) int {
	records, err := readRecords(bytes.NewReader(data), delim)
	if err != nil || len(records) == 0 {
		return 0
	}
	width := len(records[0])
	if width < 2 {
		return 0
	}
	consistent := 0
	for _, rec := range records {
		if len(rec) == width {
			consistent++
		}
	}
	return consistent*10 + width
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It reports false, with the positional mapping, when no cell is a known
// header name. The first column claiming a role wins.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Label: -1, Width: -1, Height: -1, Quantity: -1}
	found := false
	for i, cell := range row {
		role, ok := headerRoles[strings.ToLower(strings.TrimSpace(cell))]
		if !ok {
			continue
		}
		found = true
		if col := mapping.column(role); *col < 0 {
			*col = i
		}
	}
	if !found {
		return positionalMapping, false
	}
	return mapping, true
}

func readRecords(r io.Reader, delim rune) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = delim
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}

// ImportCSV imports items from a delimited text file. The delimiter is
// detected from the content; anything but a comma is reported as a warning.
func ImportCSV(path string) ImportResult {
	var result ImportResult

	data, err := os.ReadFile(path)
	if err != nil {
		result.errorf("Cannot open file: %v", err)
		return result
	}
	if len(bytes.TrimSpace(data)) == 0 {
		result.errorf("File is empty")
		return result
	}

	delim := DetectCSVDelimiter(data)
	for _, cand := range delimiterNames {
		if cand.r == delim && delim != ',' {
			result.warnf("Detected %s delimiter", cand.name)
		}
	}

	records, err := readRecords(bytes.NewReader(data), delim)
	if err != nil {
		result.errorf("Cannot read CSV: %v", err)
		return result
	}
	rowTable{rows: records, prefix: "Line"}.importInto(&result)
	return result
}

// ImportCSVFromReader imports items from a CSV reader with a known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	var result ImportResult
	records, err := readRecords(reader, delimiter)
	if err != nil {
		result.errorf("Cannot read CSV: %v", err)
		return result
	}
	rowTable{rows: records, prefix: "Line"}.importInto(&result)
	return result
}

// ImportExcel imports items from the first sheet of an .xlsx workbook.
func ImportExcel(path string) ImportResult {
	var result ImportResult

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.errorf("Cannot open Excel file: %v", err)
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.errorf("Excel file has no sheets")
		return result
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.errorf("Cannot read Excel data: %v", err)
		return result
	}
	rowTable{rows: rows, prefix: "Row"}.importInto(&result)
	return result
}

// rowTable is a block of tabular rows shared by the CSV and Excel readers.
// prefix names a row in messages ("Line 3", "Row 2").
type rowTable struct {
	rows   [][]string
	prefix string
}

func (t rowTable) importInto(result *ImportResult) {
	if len(t.rows) == 0 {
		result.errorf("File is empty")
		return
	}

	mapping, start, ok := t.layout(result)
	if !ok {
		return
	}

	for i := start; i < len(t.rows); i++ {
		row := t.rows[i]
		if blank(row) {
			continue
		}
		item, err := t.parse(row, mapping, len(result.Items))
		if err != nil {
			result.errorf("%s %d: %v", t.prefix, i+1, err)
			continue
		}
		if qty := cell(row, mapping.Quantity); qty == "" && mapping.Quantity >= 0 && mapping.Quantity < len(row) {
			result.warnf("%s %d: Empty quantity, defaulting to 1", t.prefix, i+1)
		}
		result.Items = append(result.Items, item)
	}
}

// layout decides the column mapping and the first data row. A row whose
// second cell is not numeric is skipped as an unrecognised header.
func (t rowTable) layout(result *ImportResult) (ColumnMapping, int, bool) {
	first := t.rows[0]
	mapping, hasHeader := DetectColumns(first)
	if hasHeader {
		result.warnf("Detected header row, skipping")
		var missing []string
		if mapping.Width < 0 {
			missing = append(missing, "Width")
		}
		if mapping.Height < 0 {
			missing = append(missing, "Height")
		}
		if len(missing) > 0 {
			result.errorf("Required columns not found in header: %s", strings.Join(missing, ", "))
			return mapping, 0, false
		}
		return mapping, 1, true
	}

	if len(first) >= 3 {
		if _, err := strconv.ParseFloat(strings.TrimSpace(first[1]), 64); err != nil {
			result.warnf("Detected header row, skipping")
			return mapping, 1, true
		}
	}
	return mapping, 0, true
}

// parse turns one row into an item. n is the number of items read so far and
// numbers the fallback label.
func (t rowTable) parse(row []string, m ColumnMapping, n int) (model.Item, error) {
	width, err := number(row, m.Width, "width")
	if err != nil {
		return model.Item{}, err
	}
	height, err := number(row, m.Height, "height")
	if err != nil {
		return model.Item{}, err
	}

	qty := 1
	if raw := cell(row, m.Quantity); raw != "" {
		if qty, err = strconv.Atoi(raw); err != nil {
			return model.Item{}, fmt.Errorf("Invalid quantity '%s'", raw)
		}
	}

	if err := model.NewSize(width, height).Validate(); err != nil {
		return model.Item{}, fmt.Errorf("Width and height must not be negative")
	}
	if qty < 1 {
		return model.Item{}, fmt.Errorf("Quantity must be positive")
	}

	label := cell(row, m.Label)
	if label == "" {
		label = fmt.Sprintf("Item %d", n+1)
	}
	return model.NewItem(label, width, height, qty), nil
}

func number(row []string, idx int, name string) (float64, error) {
	raw := cell(row, idx)
	if raw == "" {
		return 0, fmt.Errorf("Missing %s value", name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("Invalid %s '%s'", name, raw)
	}
	return v, nil
}

// cell returns the trimmed cell at idx, or "" when idx is out of range.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
