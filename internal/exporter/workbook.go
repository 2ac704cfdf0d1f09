package exporter

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"storydash/internal/dataprocessing"
)

// numericColumns are written as numbers; everything else stays text so that
// identifiers keep their exact spelling
var numericColumns = map[string]bool{
	"lag_days":       true,
	"ddd":            true,
	"customer_count": true,
	"order_count":    true,
}

const columnWidth = 22

// WriteWorkbook writes every table to its own sheet of one XLSX workbook.
// An empty table list still produces a valid workbook with a single empty sheet.
func WriteWorkbook(w io.Writer, tables []dataprocessing.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, table := range tables {
		sheet := table.Name
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return fmt.Errorf("failed to name sheet %s: %w", sheet, err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
		}

		if err := writeSheet(f, sheet, table, headerStyle); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, table dataprocessing.Table, headerStyle int) error {
	header := make([]interface{}, len(table.Columns))
	for i, col := range table.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}

	if len(table.Columns) > 0 {
		last, err := excelize.CoordinatesToCellName(len(table.Columns), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
			return fmt.Errorf("failed to style %s header: %w", sheet, err)
		}
		lastCol, _ := excelize.ColumnNumberToName(len(table.Columns))
		if err := f.SetColWidth(sheet, "A", lastCol, columnWidth); err != nil {
			return fmt.Errorf("failed to size %s columns: %w", sheet, err)
		}
	}

	for r, record := range table.Rows {
		row := make([]interface{}, len(record))
		for c, value := range record {
			row[c] = cellValue(table.Columns, c, value)
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, r+1, err)
		}
	}
	return nil
}

func cellValue(columns []string, idx int, value string) interface{} {
	if idx < len(columns) && numericColumns[columns[idx]] {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return value
}
