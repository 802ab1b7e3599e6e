package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/shelfpack/internal/model"
)

// Sheet names used by ExportExcel.
const (
	PlacementsSheet = "Placements"
	OverflowSheet   = "Overflow"
	SummarySheet    = "Summary"
)

// ExportExcel writes a workbook with one row per placement, one row per
// overflowed item and a summary sheet with the container and efficiency.
func ExportExcel(path string, result model.PackResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), PlacementsSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	for _, name := range []string{OverflowSheet, SummarySheet} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	placementRows := [][]any{{"#", "ID", "Label", "Width", "Height", "X", "Y"}}
	for i, p := range result.Placements {
		placementRows = append(placementRows, []any{
			i + 1, p.Item.ID, p.Item.Label, p.Item.Width, p.Item.Height, p.X, p.Y,
		})
	}
	if err := writeRows(f, PlacementsSheet, placementRows, header); err != nil {
		return err
	}

	overflowRows := [][]any{{"#", "ID", "Label", "Width", "Height"}}
	for i, it := range result.Overflow {
		overflowRows = append(overflowRows, []any{i + 1, it.ID, it.Label, it.Width, it.Height})
	}
	if err := writeRows(f, OverflowSheet, overflowRows, header); err != nil {
		return err
	}

	summaryRows := [][]any{
		{"Metric", "Value"},
		{"Container Width", result.Container.Width},
		{"Container Height", result.Container.Height},
		{"Placed", len(result.Placements)},
		{"Overflow", len(result.Overflow)},
		{"Used Area", result.UsedArea()},
		{"Total Area", result.TotalArea()},
		{"Efficiency %", result.Efficiency()},
	}
	if err := writeRows(f, SummarySheet, summaryRows, header); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// writeRows fills a sheet from A1 and bolds the first row.
func writeRows(f *excelize.File, sheet string, rows [][]any, headerStyle int) error {
	for i, row := range rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return fmt.Errorf("failed to resolve cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to write %s!%s: %w", sheet, cell, err)
			}
		}
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return fmt.Errorf("failed to resolve cell: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}
	return nil
}
