package exporter

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"bikpis/internal/dataprocessing"
	apperrors "bikpis/internal/errors"
)

// DefaultSheetName is the only sheet of a converted workbook
const DefaultSheetName = "Sheet1"

// WriteXLSX writes table to a single-sheet workbook at path. The header is
// row 1. A column whose every present cell is numeric is stored as numbers;
// everything else is stored as text. Missing cells stay empty.
func WriteXLSX(path string, table *dataprocessing.Table) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return apperrors.NewStorageError("failed to create directory", err).WithContext("dir", dir)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet != DefaultSheetName {
		if err := f.SetSheetName(sheet, DefaultSheetName); err != nil {
			return apperrors.NewStorageError("failed to name sheet", err).WithContext("file", path)
		}
		sheet = DefaultSheetName
	}

	header := make([]interface{}, len(table.Columns))
	for j, name := range table.Columns {
		header[j] = name
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return apperrors.NewStorageError("failed to write header", err).WithContext("file", path)
	}

	numeric := numericColumns(table)
	for i, row := range table.Rows {
		values := make([]interface{}, len(row))
		for j, cell := range row {
			values[j] = cellValue(cell, numeric[j])
		}
		cellName, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return apperrors.NewStorageError("failed to address row", err).WithContext("file", path)
		}
		if err := f.SetSheetRow(sheet, cellName, &values); err != nil {
			return apperrors.NewStorageError("failed to write row", err).
				WithContext("file", path).
				WithContext("row", i+2)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return apperrors.NewStorageError("failed to save workbook", err).WithContext("file", path)
	}
	return nil
}

// numericColumns reports, per column, whether it has at least one present
// cell and every present cell parses as a number.
func numericColumns(table *dataprocessing.Table) []bool {
	numeric := make([]bool, len(table.Columns))
	for j := range table.Columns {
		seen := false
		ok := true
		for _, row := range table.Rows {
			if row[j] == "" {
				continue
			}
			seen = true
			if _, isNum := dataprocessing.ParseNumber(row[j]); !isNum {
				ok = false
				break
			}
		}
		numeric[j] = seen && ok
	}
	return numeric
}

func cellValue(cell string, numeric bool) interface{} {
	if cell == "" {
		return nil
	}
	if !numeric {
		return cell
	}
	trimmed := strings.TrimSpace(cell)
	if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return i
	}
	f, _ := dataprocessing.ParseNumber(trimmed)
	return f
}
