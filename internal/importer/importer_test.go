package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/shelfpack/internal/model"
)

// row is the comparable part of an imported item.
type row struct {
	Label         string
	Width, Height float64
	Quantity      int
}

func rows(items []model.Item) []row {
	out := make([]row, len(items))
	for i, it := range items {
		out[i] = row{it.Label, it.Width, it.Height, it.Quantity}
	}
	return out
}

func containsText(msgs []string, part string) bool {
	for _, m := range msgs {
		if strings.Contains(m, part) {
			return true
		}
	}
	return false
}

func TestDetectCSVDelimiter(t *testing.T) {
	for _, delim := range []rune{',', ';', '\t', '|'} {
		d := string(delim)
		data := strings.Join([]string{
			strings.Join([]string{"Label", "Width", "Height", "Qty"}, d),
			strings.Join([]string{"Box", "60", "30", "2"}, d),
			strings.Join([]string{"Crate", "40", "80", "1"}, d),
		}, "\n")
		assert.Equal(t, delim, DetectCSVDelimiter([]byte(data)), "%q", delim)
	}
}

func TestDetectColumns(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		want   ColumnMapping
		found  bool
	}{
		{"standard", []string{"Label", "Width", "Height", "Quantity"}, ColumnMapping{0, 1, 2, 3}, true},
		{"aliases", []string{"NAME", "w", "H", "pcs"}, ColumnMapping{0, 1, 2, 3}, true},
		{"reordered", []string{"Qty", "Height", "Width", "Item"}, ColumnMapping{Label: 3, Width: 2, Height: 1, Quantity: 0}, true},
		{"no quantity", []string{"Label", "Width", "Height"}, ColumnMapping{0, 1, 2, -1}, true},
		{"data row", []string{"Box", "60", "30", "2"}, positionalMapping, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := DetectColumns(tt.header)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestImportCSVFromReader(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		delim   rune
		want    []row
		errors  int
		warning string
	}{
		{
			name: "header",
			data: "Label,Width,Height,Quantity\nBox,60,30,2\nCrate,40,80,1\n",
			want: []row{{"Box", 60, 30, 2}, {"Crate", 40, 80, 1}},
		},
		{
			name: "no header",
			data: "Box,60,30,2\nCrate,40,80,1\n",
			want: []row{{"Box", 60, 30, 2}, {"Crate", 40, 80, 1}},
		},
		{
			name: "no quantity column",
			data: "Label,Width,Height\nBox,60,30\n",
			want: []row{{"Box", 60, 30, 1}},
		},
		{
			name:    "empty quantity",
			data:    "Label,Width,Height,Qty\nBox,60,30,\n",
			want:    []row{{"Box", 60, 30, 1}},
			warning: "Empty quantity",
		},
		{
			name:  "semicolons",
			data:  "Label;Width;Height;Qty\nBox;60;30;2\n",
			delim: ';',
			want:  []row{{"Box", 60, 30, 2}},
		},
		{
			name: "reordered",
			data: "Qty,Height,Width,Name\n2,30,60,Box\n",
			want: []row{{"Box", 60, 30, 2}},
		},
		{
			name: "zero size",
			data: "Label,Width,Height,Qty\nMarker,0,0,1\n",
			want: []row{{"Marker", 0, 0, 1}},
		},
		{
			name: "blank rows skipped",
			data: "Label,Width,Height,Qty\nA,10,10,1\n,,,\nB,20,20,1\n",
			want: []row{{"A", 10, 10, 1}, {"B", 20, 20, 1}},
		},
		{
			name: "generated label",
			data: "Label,Width,Height,Qty\n,10,10,1\n",
			want: []row{{"Item 1", 10, 10, 1}},
		},
		{
			name: "decimals",
			data: "Label,Width,Height,Qty\nA,10.5,20.25,1\n",
			want: []row{{"A", 10.5, 20.25, 1}},
		},
		{
			name:   "bad row kept out",
			data:   "Label,Width,Height,Qty\nA,10,10,1\nB,bad,10,1\nC,20,20,2\n",
			want:   []row{{"A", 10, 10, 1}, {"C", 20, 20, 2}},
			errors: 1,
		},
		{
			name:   "empty input",
			data:   "",
			want:   []row{},
			errors: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.delim == 0 {
				tt.delim = ','
			}
			result := ImportCSVFromReader(strings.NewReader(tt.data), tt.delim)
			assert.Equal(t, tt.want, rows(result.Items))
			assert.Len(t, result.Errors, tt.errors, "errors: %v", result.Errors)
			if tt.warning != "" {
				assert.True(t, containsText(result.Warnings, tt.warning), "warnings: %v", result.Warnings)
			}
			for _, it := range result.Items {
				assert.NotEmpty(t, it.ID)
			}
		})
	}
}

func TestImportCSVFromReaderRejectsBadValues(t *testing.T) {
	for name, line := range map[string]string{
		"invalid width":     "Box,abc,30,1",
		"invalid height":    "Box,60,abc,1",
		"invalid quantity":  "Box,60,30,x",
		"negative width":    "Box,-60,30,1",
		"zero quantity":     "Box,60,30,0",
		"NaN width":         "Box,NaN,30,1",
		"infinite height":   "Box,60,Inf,1",
		"negative infinity": "Box,-Inf,30,1",
	} {
		t.Run(name, func(t *testing.T) {
			result := ImportCSVFromReader(strings.NewReader("Label,Width,Height,Qty\n"+line+"\n"), ',')
			assert.Empty(t, result.Items)
			require.Len(t, result.Errors, 1)
			assert.Contains(t, result.Errors[0], "Line 2")
		})
	}
}

func TestImportCSVFromReaderKeepsGoodRowsAroundNonFinite(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("A,10,10,1\nB,NaN,5,1\nC,Inf,5,1\nD,4,4,2\n"), ',')
	assert.Equal(t, []row{{"A", 10, 10, 1}, {"D", 4, 4, 2}}, rows(result.Items))
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "Line 2")
	assert.Contains(t, result.Errors[1], "Line 3")
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImportCSV(t *testing.T) {
	result := ImportCSV(writeFile(t, "items.csv", "Label,Width,Height,Qty\nA,10,10,3\n"))
	require.Empty(t, result.Errors)
	assert.Equal(t, []row{{"A", 10, 10, 3}}, rows(result.Items))
	assert.Empty(t, result.Warnings[1:], "only the header notice is expected")
}

func TestImportCSVReportsDetectedDelimiter(t *testing.T) {
	result := ImportCSV(writeFile(t, "items.csv", "Label;Width;Height;Qty\nA;10;10;3\nB;5;5;1\n"))
	assert.Len(t, result.Items, 2)
	assert.True(t, containsText(result.Warnings, "semicolon"), "warnings: %v", result.Warnings)
}

func TestImportCSVUnreadable(t *testing.T) {
	for name, path := range map[string]string{
		"missing": filepath.Join(t.TempDir(), "missing.csv"),
		"blank":   writeFile(t, "empty.csv", "  \n"),
	} {
		t.Run(name, func(t *testing.T) {
			assert.NotEmpty(t, ImportCSV(path).Errors)
		})
	}
}

// workbook saves rows to the first sheet of a new .xlsx file.
func workbook(t *testing.T, rows ...[]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "items.xlsx")
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, r := range rows {
		ref, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, ref, &r))
	}
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestImportExcel(t *testing.T) {
	tests := []struct {
		name  string
		path  func(t *testing.T) string
		want  []row
		error string
	}{
		{
			name: "header",
			path: func(t *testing.T) string {
				return workbook(t, []any{"Label", "Width", "Height", "Quantity"}, []any{"Box", 60, 30, 2}, []any{"Crate", 40, 80, 1})
			},
			want: []row{{"Box", 60, 30, 2}, {"Crate", 40, 80, 1}},
		},
		{
			name: "no header",
			path: func(t *testing.T) string { return workbook(t, []any{"Box", 60, 30, 2}) },
			want: []row{{"Box", 60, 30, 2}},
		},
		{
			name: "bad cell",
			path: func(t *testing.T) string {
				return workbook(t, []any{"Label", "Width", "Height", "Quantity"}, []any{"Box", "wide", 30, 2})
			},
			want:  []row{},
			error: "Row 2",
		},
		{
			name:  "missing file",
			path:  func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing.xlsx") },
			want:  []row{},
			error: "Cannot open Excel file",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ImportExcel(tt.path(t))
			assert.Equal(t, tt.want, rows(result.Items))
			if tt.error == "" {
				assert.Empty(t, result.Errors)
				return
			}
			require.Len(t, result.Errors, 1)
			assert.Contains(t, result.Errors[0], tt.error)
		})
	}
}
