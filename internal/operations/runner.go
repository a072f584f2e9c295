package operations

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"bikpis/internal/files"
	"bikpis/internal/infrastructure"
	"bikpis/internal/validation"
)

// Runner runs a stage over the CSV files of a directory
type Runner struct {
	discovery *files.Discovery
	validator *validation.FileValidator
	telemetry *infrastructure.Telemetry
	logger    *slog.Logger
}

// NewRunner creates a runner. A nil telemetry records nothing.
func NewRunner(telemetry *infrastructure.Telemetry, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = infrastructure.NopLogger()
	}
	if telemetry == nil {
		telemetry = infrastructure.NopTelemetry()
	}
	return &Runner{
		discovery: files.NewDiscovery(""),
		validator: validation.NewFileValidator(logger),
		telemetry: telemetry,
		logger:    logger,
	}
}

// Run passes every CSV file of dir to stage, in name order. Only a failure
// to list the directory or a cancelled context is returned as an error; a
// missing directory is a configuration error.
func (r *Runner) Run(ctx context.Context, dir string, stage Stage) (Summary, error) {
	summary := Summary{Stage: stage.Name()}
	start := time.Now()

	if err := r.validator.ValidateInputDirectory(dir); err != nil {
		return summary, err
	}

	csvFiles, err := r.discovery.FindCSVFiles(dir)
	if err != nil {
		r.logger.Error("Failed to list directory", slog.String("dir", dir), slog.String("error", err.Error()))
		return summary, err
	}

	filter, _ := stage.(FileFilter)

	r.logger.Debug("Stage started",
		slog.String("stage", stage.Name()),
		slog.String("dir", dir),
		slog.Int("files", len(csvFiles)))

	for _, file := range csvFiles {
		if err := ctx.Err(); err != nil {
			r.logger.Warn("Run cancelled", slog.String("stage", stage.Name()), slog.String("error", err.Error()))
			return summary, err
		}

		if filter != nil && !filter.Accept(file.Name) {
			summary.Skipped++
			summary.Files = append(summary.Files, FileResult{Name: file.Name, Status: FileStatusSkipped})
			r.logger.Debug("File skipped", slog.String("stage", stage.Name()), slog.String("file", file.Name))
			continue
		}

		result := r.processFile(ctx, stage, file)
		summary.Files = append(summary.Files, result)
		if result.Status == FileStatusFailed {
			summary.Failed++
		} else {
			summary.Processed++
		}
	}

	r.logger.Info("Stage finished",
		slog.String("stage", stage.Name()),
		slog.Int("processed", summary.Processed),
		slog.Int("failed", summary.Failed),
		slog.Int("skipped", summary.Skipped),
		slog.Duration("duration", time.Since(start)))

	return summary, nil
}

func (r *Runner) processFile(ctx context.Context, stage Stage, file files.FileInfo) FileResult {
	ctx, span := r.telemetry.Tracer.Start(ctx, stage.Name()+".process_file",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("stage", stage.Name()),
			attribute.String("file.name", file.Name),
			attribute.Int64("file.size", file.Size),
		))
	defer span.End()

	logger := infrastructure.LoggerWithContext(ctx, r.logger)
	err := stage.ProcessFile(ctx, file.Path)
	r.telemetry.RecordFile(ctx, stage.Name(), err == nil)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		infrastructure.WithError(logger, err).Debug("File failed",
			slog.String("stage", stage.Name()),
			slog.String("file", file.Name))
		return FileResult{Name: file.Name, Status: FileStatusFailed, Error: err}
	}

	span.SetStatus(codes.Ok, "")
	return FileResult{Name: file.Name, Status: FileStatusProcessed}
}
