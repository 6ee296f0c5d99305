// Package report writes analysis results as multi-sheet xlsx workbooks.
//
// A workbook is built fully in memory and saved once at the end, so a
// failure while composing sheets never leaves a partial file on disk.
package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	apperrors "hrpulse/internal/errors"
)

// Table is the uniform shape every derived report takes: named columns and
// value rows. A table whose source columns were absent is header-only
// (zero rows) rather than omitted, so workbook layout never varies.
type Table struct {
	Columns []string
	Rows    [][]interface{}
}

// Empty returns a header-only table for the given columns.
func Empty(columns ...string) Table {
	return Table{Columns: columns}
}

// IsEmpty reports whether the table has no data rows.
func (t Table) IsEmpty() bool { return len(t.Rows) == 0 }

// AddRow appends a data row.
func (t *Table) AddRow(values ...interface{}) {
	t.Rows = append(t.Rows, values)
}

// Sheet pairs a table with its workbook sheet name.
type Sheet struct {
	Name  string
	Table Table
}

// WriteWorkbook writes the sheets, in order, to a single xlsx file. The
// parent directory is created if absent and the file is finalized
// atomically by a single save at session close.
func WriteWorkbook(path string, sheets []Sheet) error {
	if len(sheets) == 0 {
		return apperrors.NewStorageError("no sheets to write to "+path, nil)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewStorageError("failed to create directory for workbook", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	for _, sheet := range sheets {
		if _, err := f.NewSheet(sheet.Name); err != nil {
			return apperrors.NewStorageError("failed to create sheet "+sheet.Name, err)
		}
		if err := writeTable(f, sheet.Name, sheet.Table); err != nil {
			return err
		}
	}

	// Drop the implicit default sheet so the workbook holds exactly the
	// sheets requested.
	if sheets[0].Name != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return apperrors.NewStorageError("failed to drop default sheet", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return apperrors.NewStorageError("failed to save workbook "+path, err)
	}
	return nil
}

// writeTable writes the header row and all data rows of a table.
func writeTable(f *excelize.File, sheet string, table Table) error {
	header := make([]interface{}, len(table.Columns))
	for i, c := range table.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return apperrors.NewStorageError("failed to write header on "+sheet, err)
	}

	for i, row := range table.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return apperrors.NewStorageError(fmt.Sprintf("bad cell coordinates on %s row %d", sheet, i+2), err)
		}
		rowCopy := row
		if err := f.SetSheetRow(sheet, cell, &rowCopy); err != nil {
			return apperrors.NewStorageError(fmt.Sprintf("failed to write %s row %d", sheet, i+2), err)
		}
	}
	return nil
}
