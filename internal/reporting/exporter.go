package reporting

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"bikpis/internal/config"
	"bikpis/internal/infrastructure"
	"bikpis/internal/validation"
)

// API is the subset of Client the exporter drives
type API interface {
	Authenticate(ctx context.Context) error
	ListExports(ctx context.Context) ([]Export, error)
	Download(ctx context.Context, export Export, dir string) (string, error)
}

// Exporter downloads the day's allowlisted exports
type Exporter struct {
	api       API
	cfg       config.GenesysConfig
	validator *validation.FileValidator
	telemetry *infrastructure.Telemetry
	logger    *slog.Logger
	now       func() time.Time
}

// NewExporter creates an exporter. A nil telemetry records nothing.
func NewExporter(api API, cfg config.GenesysConfig, telemetry *infrastructure.Telemetry, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = infrastructure.NopLogger()
	}
	if telemetry == nil {
		telemetry = infrastructure.NopTelemetry()
	}
	return &Exporter{
		api:       api,
		cfg:       cfg,
		validator: validation.NewFileValidator(logger),
		telemetry: telemetry,
		logger:    logger,
		now:       time.Now,
	}
}

// Run authenticates, lists exports and downloads the eligible ones. Errors
// from authentication and listing are returned; a failed download is
// logged and the next export is tried.
func (e *Exporter) Run(ctx context.Context) (Result, error) {
	result := Result{Day: TargetDay(e.now(), e.cfg.DaysBack)}

	if err := e.api.Authenticate(ctx); err != nil {
		return result, err
	}

	exports, err := e.api.ListExports(ctx)
	if err != nil {
		return result, err
	}
	result.Listed = len(exports)

	e.logger.Debug("Exports returned by API", slog.Int("count", len(exports)))
	for _, export := range exports {
		e.logger.Debug("Export",
			slog.String("id", export.ID),
			slog.String("name", export.Name),
			slog.String("status", export.Status),
			slog.String("date_created", export.DateCreated),
			slog.Bool("has_download_url", export.DownloadURL != ""))
	}

	sel := Select(exports, result.Day, e.cfg.Allowlist)
	result.Selected = len(sel.Eligible)

	for _, export := range sel.OutsideAllowlist {
		e.logger.Info("Skipping export outside allowlist",
			slog.String("file", export.FileName()),
			slog.String("day", result.Day))
	}
	for _, export := range sel.MissingURL {
		e.logger.Warn("Export has no download URL",
			slog.String("file", export.FileName()),
			slog.String("day", result.Day))
	}

	if len(sel.Eligible) > 0 {
		if err := e.validator.ValidateOutputDirectory(e.cfg.DownloadDir); err != nil {
			return result, err
		}
	}

	for _, export := range sel.Eligible {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if e.download(ctx, export, result.Day) {
			result.Downloaded++
		} else {
			result.Failed++
		}
	}

	if result.Downloaded == 0 {
		e.logger.Info("No exports found for date", slog.String("day", result.Day))
	}
	e.logger.Info("Export run finished",
		slog.String("day", result.Day),
		slog.Int("listed", result.Listed),
		slog.Int("downloaded", result.Downloaded),
		slog.Int("failed", result.Failed))

	return result, nil
}

func (e *Exporter) download(ctx context.Context, export Export, day string) bool {
	ctx, span := e.telemetry.Tracer.Start(ctx, "reporting.download",
		trace.WithAttributes(
			attribute.String("export.name", export.Name),
			attribute.String("export.day", day),
		))
	defer span.End()

	logger := infrastructure.LoggerWithContext(ctx, e.logger)
	logger.Info("Downloading export",
		slog.String("file", export.FileName()),
		slog.String("day", day))

	path, err := e.api.Download(ctx, export, e.cfg.DownloadDir)
	e.telemetry.RecordExport(ctx, err == nil)
	if err != nil {
		logger.Error("Failed to download export",
			slog.String("file", export.FileName()),
			slog.String("error", err.Error()))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return false
	}

	if err := e.validator.ValidateCSVFile(path); err != nil {
		infrastructure.WithError(logger, err).Warn("Downloaded export failed validation",
			slog.String("file", export.FileName()))
	}

	logger.Info("Export updated", slog.String("file", export.FileName()), slog.String("path", path))
	return true
}
