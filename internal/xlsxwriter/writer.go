// =============================================================================
// XML to CSV Converter - XLSX Export Module
// =============================================================================
//
// This module writes the same Table the CSV writer receives to an Excel
// workbook, for users who open the result in a spreadsheet rather than load
// it into another system.
//
// WORKBOOK LAYOUT:
//   - One worksheet, named from the configuration (default "ASBO")
//   - Row 1 holds the header, rows 2..n+1 the records in document order
//   - Every cell is written as a string; no type inference is attempted, so
//     identifiers with leading zeros survive
//
// =============================================================================

package xlsxwriter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/XML-to-CSV-conversion/internal/errors"
	"github.com/ginjaninja78/XML-to-CSV-conversion/internal/types"
)

// DefaultSheetName is used when no sheet name is given.
const DefaultSheetName = "ASBO"

// WriteFile writes the table to a new workbook at path.
//
// PARAMETERS:
//   - path: The workbook to create. An existing file is replaced.
//   - sheetName: The worksheet name; "" means DefaultSheetName.
//   - table: The header and rows to write.
//
// RETURNS:
//   - A WRITE error if the workbook cannot be built or saved.
func WriteFile(path, sheetName string, table *types.Table) error {
	if sheetName == "" {
		sheetName = DefaultSheetName
	}

	f := excelize.NewFile()
	defer f.Close()

	// A new workbook starts with "Sheet1".
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return errors.NewWriteError(path, fmt.Errorf("failed to name sheet: %w", err))
	}

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return errors.NewWriteError(path, fmt.Errorf("failed to open sheet: %w", err))
	}

	if err := setRow(sw, 1, table.Header); err != nil {
		return errors.NewWriteError(path, fmt.Errorf("header row: %w", err))
	}
	for i, row := range table.Rows {
		if err := setRow(sw, i+2, row); err != nil {
			return errors.NewWriteError(path, fmt.Errorf("record %d: %w", i+1, err))
		}
	}

	if err := sw.Flush(); err != nil {
		return errors.NewWriteError(path, fmt.Errorf("failed to flush sheet: %w", err))
	}
	if err := f.SaveAs(path); err != nil {
		return errors.NewWriteError(path, err)
	}
	return nil
}

// setRow writes cells as strings starting in column A of the given row.
func setRow(sw *excelize.StreamWriter, rowNum int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	return sw.SetRow(cell, values)
}
