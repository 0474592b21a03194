package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const columnWidth = 22

// WriteXLSX writes t as a single-sheet workbook with a bold header row.
func WriteXLSX(w io.Writer, t Table) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), t.Sheet); err != nil {
		return fmt.Errorf("export: naming sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("export: header style: %w", err)
	}

	if err := f.SetSheetRow(t.Sheet, "A1", toCells(t.Columns)); err != nil {
		return fmt.Errorf("export: header row: %w", err)
	}
	last, err := excelize.ColumnNumberToName(len(t.Columns))
	if err != nil {
		return fmt.Errorf("export: header row: %w", err)
	}
	if err := f.SetCellStyle(t.Sheet, "A1", last+"1", bold); err != nil {
		return fmt.Errorf("export: header style: %w", err)
	}
	if err := f.SetColWidth(t.Sheet, "A", last, columnWidth); err != nil {
		return fmt.Errorf("export: column width: %w", err)
	}

	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("export: row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(t.Sheet, cell, toCells(row)); err != nil {
			return fmt.Errorf("export: row %d: %w", i+1, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("export: writing workbook: %w", err)
	}
	return nil
}

func toCells(values []string) *[]interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return &cells
}
