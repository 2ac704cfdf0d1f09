// Package exporter writes the dashboard tables to files.
//
// CSVWriter writes one CSV file per table with a UTF-8 BOM so that spreadsheet
// tools detect the encoding of accented city names. WriteWorkbook writes all
// tables into a single XLSX workbook, one sheet per table.
//
// Example usage:
//
//	result := pipeline.Run(ctx)
//	writer := exporter.NewCSVWriter("out")
//	files, err := writer.WriteTables(result.Tables())
//
//	f, _ := os.Create("out/storydash.xlsx")
//	err = exporter.WriteWorkbook(f, result.Tables())
package exporter
