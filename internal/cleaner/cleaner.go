// Package cleaner normalizes CSV files in place: column names are
// lowercased with underscores, characters outside ASCII and Latin-1 letters
// are removed, and empty columns and duplicate rows are dropped.
package cleaner

import (
	"context"
	"log/slog"
	"path/filepath"

	"bikpis/internal/dataprocessing"
	"bikpis/internal/exporter"
	"bikpis/internal/infrastructure"
)

// StageName identifies the cleaner in logs and telemetry
const StageName = "cleaner"

// Cleaner rewrites CSV files in their normalized form
type Cleaner struct {
	logger *slog.Logger
}

// New creates a cleaner
func New(logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = infrastructure.NopLogger()
	}
	return &Cleaner{logger: logger}
}

// Name returns the stage name
func (c *Cleaner) Name() string {
	return StageName
}

// Clean normalizes a table in place and reports how many columns and rows
// were dropped. Cleaning a clean table changes nothing.
func Clean(table *dataprocessing.Table) (droppedColumns, droppedRows int) {
	table.RenameColumns(dataprocessing.NormalizeColumnName)
	table.MapCells(dataprocessing.StripNonLatin)
	droppedColumns = table.DropEmptyColumns()
	droppedRows = table.DropDuplicateRows()
	return droppedColumns, droppedRows
}

// ProcessFile reads path with delimiter detection and Latin-1 fallback,
// cleans it and writes it back comma-separated with a byte-order mark.
// Read and write failures are logged and returned.
func (c *Cleaner) ProcessFile(_ context.Context, path string) error {
	name := filepath.Base(path)

	table, src, err := dataprocessing.ReadCSV(path, dataprocessing.ReadOptions{Latin1Fallback: true})
	if err != nil {
		c.logger.Error("Failed to read file", slog.String("file", name), slog.String("error", err.Error()))
		return err
	}

	droppedColumns, droppedRows := Clean(table)

	if err := exporter.WriteCSV(path, table, exporter.DefaultWriteOptions()); err != nil {
		c.logger.Error("Failed to save file", slog.String("file", name), slog.String("error", err.Error()))
		return err
	}

	c.logger.Info("File processed",
		slog.String("file", name),
		slog.String("delimiter", dataprocessing.DelimiterName(src.Delimiter)),
		slog.String("encoding", src.Encoding),
		slog.Int("dropped_columns", droppedColumns),
		slog.Int("dropped_rows", droppedRows))
	return nil
}
