package exporter

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"bikpis/internal/dataprocessing"
	apperrors "bikpis/internal/errors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	// Delimiter defaults to ','.
	Delimiter rune
	// BOMPrefix adds a UTF-8 byte-order mark so Excel detects the encoding.
	BOMPrefix bool
}

// DefaultWriteOptions returns comma-separated output with a byte-order mark
func DefaultWriteOptions() WriteOptions {
	return WriteOptions{Delimiter: ',', BOMPrefix: true}
}

// WriteCSV writes the header and rows of table to path. The file is written
// to a temporary sibling first and renamed over path, so rewriting a file in
// place never leaves it truncated.
func WriteCSV(path string, table *dataprocessing.Table, opts WriteOptions) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return apperrors.NewStorageError("failed to create directory", err).WithContext("dir", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return apperrors.NewStorageError("failed to create temporary file", err).WithContext("file", path)
	}
	tmpName := tmp.Name()

	if err := writeTable(tmp, table, opts); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return apperrors.NewStorageError("failed to write csv", err).WithContext("file", path)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return apperrors.NewStorageError("failed to close csv", err).WithContext("file", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return apperrors.NewStorageError("failed to replace csv", err).WithContext("file", path)
	}
	return nil
}

func writeTable(file *os.File, table *dataprocessing.Table, opts WriteOptions) error {
	if opts.BOMPrefix {
		if _, err := file.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	if opts.Delimiter != 0 {
		writer.Comma = opts.Delimiter
	}

	if err := writer.Write(table.Columns); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for i, record := range table.Rows {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
