// Package converter produces, for every CSV file, an Excel workbook twin and
// a UTF-8 CSV twin with a byte-order mark, after removing characters outside
// ASCII and Latin-1 letters.
package converter

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"

	"bikpis/internal/dataprocessing"
	"bikpis/internal/exporter"
	"bikpis/internal/infrastructure"
)

const (
	// StageName identifies the converter in logs and telemetry
	StageName = "converter"
	// UTF8Suffix marks the CSV twin written next to each source file
	UTF8Suffix = "_utf8.csv"
)

// Converter writes the .xlsx and _utf8.csv twins of CSV files
type Converter struct {
	logger *slog.Logger
}

// New creates a converter
func New(logger *slog.Logger) *Converter {
	if logger == nil {
		logger = infrastructure.NopLogger()
	}
	return &Converter{logger: logger}
}

// Name returns the stage name
func (c *Converter) Name() string {
	return StageName
}

// Accept skips the converter's own CSV twins so reruns do not convert them
// again.
func (c *Converter) Accept(name string) bool {
	return !strings.HasSuffix(strings.ToLower(name), UTF8Suffix)
}

// Outputs returns the workbook and CSV twin paths for a source file
func Outputs(path string) (xlsxPath, csvPath string) {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	return base + ".xlsx", base + UTF8Suffix
}

// ProcessFile converts one file. The two twins are written independently:
// a failure writing one is logged and the other is still attempted. The
// returned error joins every failure.
func (c *Converter) ProcessFile(_ context.Context, path string) error {
	name := filepath.Base(path)

	table, src, err := dataprocessing.ReadCSV(path, dataprocessing.ReadOptions{Latin1Fallback: true})
	if err != nil {
		c.logger.Error("Failed to process file", slog.String("file", name), slog.String("error", err.Error()))
		return err
	}
	c.logger.Debug("File read",
		slog.String("file", name),
		slog.String("delimiter", dataprocessing.DelimiterName(src.Delimiter)),
		slog.String("encoding", src.Encoding),
		slog.Int("rows", table.Len()))

	table.MapCells(dataprocessing.StripNonLatin)

	xlsxPath, csvPath := Outputs(path)
	var errs []error

	if err := exporter.WriteXLSX(xlsxPath, table); err != nil {
		c.logger.Error("Failed to convert to Excel", slog.String("file", name), slog.String("error", err.Error()))
		errs = append(errs, err)
	} else {
		c.logger.Info("File converted", slog.String("file", filepath.Base(xlsxPath)))
	}

	if err := exporter.WriteCSV(csvPath, table, exporter.DefaultWriteOptions()); err != nil {
		c.logger.Error("Failed to save UTF-8 CSV", slog.String("file", name), slog.String("error", err.Error()))
		errs = append(errs, err)
	} else {
		c.logger.Info("File saved as UTF-8 CSV", slog.String("file", filepath.Base(csvPath)))
	}

	return errors.Join(errs...)
}
