package metrics

import (
	"context"
	"log/slog"
	"path/filepath"

	"bikpis/internal/dataprocessing"
	"bikpis/internal/exporter"
	"bikpis/internal/infrastructure"
)

// StageName identifies the enricher in logs and telemetry
const StageName = "metrics"

// Enricher rewrites CSV files in place with the metrics for their category
type Enricher struct {
	logger *slog.Logger
}

// NewEnricher creates an enricher
func NewEnricher(logger *slog.Logger) *Enricher {
	if logger == nil {
		logger = infrastructure.NopLogger()
	}
	return &Enricher{logger: logger}
}

// Name returns the stage name
func (e *Enricher) Name() string {
	return StageName
}

// ProcessFile reads path as comma-separated UTF-8, applies the metrics for
// its category and writes it back with a byte-order mark. Errors are logged
// with the file name and returned.
func (e *Enricher) ProcessFile(_ context.Context, path string) error {
	name := filepath.Base(path)

	table, _, err := dataprocessing.ReadCSV(path, dataprocessing.ReadOptions{Delimiter: ','})
	if err != nil {
		e.logger.Error("Failed to process metrics",
			slog.String("file", name),
			slog.String("error", err.Error()))
		return err
	}

	applied := Apply(table, name, e.logger)
	for _, a := range applied {
		e.logger.Debug("Metric applied",
			slog.String("file", name),
			slog.String("category", a.Category.String()),
			slog.String("operation", a.Operation),
			slog.String("column", a.Column))
	}

	if err := exporter.WriteCSV(path, table, exporter.DefaultWriteOptions()); err != nil {
		e.logger.Error("Failed to process metrics",
			slog.String("file", name),
			slog.String("error", err.Error()))
		return err
	}

	e.logger.Info("Metrics applied", slog.String("file", name), slog.Int("operations", len(applied)))
	return nil
}
