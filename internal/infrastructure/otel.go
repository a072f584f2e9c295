package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"bikpis/internal/config"
)

const (
	ServiceName = "bikpis"
	MeterName   = "bikpis"
)

// Telemetry holds the per-run tracer and meter. Both are no-ops unless the
// corresponding output file is configured.
type Telemetry struct {
	Tracer trace.Tracer
	Meter  metric.Meter

	files   metric.Int64Counter
	exports metric.Int64Counter
	run     *RunMetrics

	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
	registry       *prometheus.Registry
	tracesFile     *os.File
	metricsFile    string
	logger         *slog.Logger
}

// NopTelemetry returns telemetry that records nothing
func NopTelemetry() *Telemetry {
	meter := metricnoop.NewMeterProvider().Meter(MeterName)
	files, _ := meter.Int64Counter("bikpis_files")
	exports, _ := meter.Int64Counter("bikpis_exports")
	run, _ := NewRunMetrics(meter)
	return &Telemetry{
		run:     run,
		Tracer:  tracenoop.NewTracerProvider().Tracer(ServiceName),
		Meter:   meter,
		files:   files,
		exports: exports,
		logger:  NopLogger(),
	}
}

// InitializeTelemetry sets up tracing and metrics for one tool run
func InitializeTelemetry(cfg config.TelemetryConfig, tool string, logger *slog.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = NopLogger()
	}

	t := &Telemetry{
		Tracer:      tracenoop.NewTracerProvider().Tracer(ServiceName),
		Meter:       metricnoop.NewMeterProvider().Meter(MeterName),
		metricsFile: cfg.MetricsFile,
		logger:      logger,
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(ServiceName),
		semconv.ServiceVersion(config.AppVersion),
		attribute.String("bikpis.tool", tool),
	)

	if cfg.TracesFile != "" {
		if err := t.initializeTracing(cfg.TracesFile, res); err != nil {
			return nil, fmt.Errorf("failed to initialize tracing: %w", err)
		}
	}

	if cfg.MetricsFile != "" {
		if err := t.initializeMetrics(res); err != nil {
			_ = t.Shutdown(context.Background())
			return nil, fmt.Errorf("failed to initialize metrics: %w", err)
		}
	}

	var err error
	t.files, err = t.Meter.Int64Counter("bikpis_files",
		metric.WithDescription("CSV files handled, by stage and outcome"))
	if err != nil {
		return nil, fmt.Errorf("failed to create files counter: %w", err)
	}
	t.exports, err = t.Meter.Int64Counter("bikpis_exports",
		metric.WithDescription("Report exports downloaded, by outcome"))
	if err != nil {
		return nil, fmt.Errorf("failed to create exports counter: %w", err)
	}
	t.run, err = NewRunMetrics(t.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create run metrics: %w", err)
	}

	logger.Debug("Telemetry initialized",
		slog.Bool("tracing_enabled", cfg.TracesFile != ""),
		slog.Bool("metrics_enabled", cfg.MetricsFile != ""))

	return t, nil
}

func (t *Telemetry) initializeTracing(path string, res *resource.Resource) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(file))
	if err != nil {
		file.Close()
		return err
	}

	t.tracesFile = file
	t.tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(res),
	)
	t.Tracer = t.tracerProvider.Tracer(ServiceName)
	return nil
}

func (t *Telemetry) initializeMetrics(res *resource.Resource) error {
	registry := prometheus.NewRegistry()
	exporter, err := otelprom.New(
		otelprom.WithRegisterer(registry),
		otelprom.WithoutScopeInfo(),
		otelprom.WithoutTargetInfo(),
	)
	if err != nil {
		return err
	}

	t.registry = registry
	t.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
		sdkmetric.WithResource(res),
	)
	t.Meter = t.meterProvider.Meter(MeterName)
	return nil
}

// RecordFile counts one processed file for a stage
func (t *Telemetry) RecordFile(ctx context.Context, stage string, ok bool) {
	t.files.Add(ctx, 1, metric.WithAttributes(
		attribute.String("stage", stage),
		attribute.String("outcome", outcome(ok)),
	))
}

// RecordExport counts one export download attempt
func (t *Telemetry) RecordExport(ctx context.Context, ok bool) {
	t.exports.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome(ok))))
}

func outcome(ok bool) string {
	if ok {
		return "ok"
	}
	return "failed"
}

// Shutdown writes the metrics textfile and flushes spans
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error

	if t.run != nil {
		t.run.Record(ctx)
	}
	if t.registry != nil && t.metricsFile != "" {
		if err := prometheus.WriteToTextfile(t.metricsFile, t.registry); err != nil {
			errs = append(errs, fmt.Errorf("failed to write metrics file: %w", err))
		}
	}
	if t.meterProvider != nil {
		if err := t.meterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if t.tracerProvider != nil {
		if err := t.tracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if t.tracesFile != nil {
		if err := t.tracesFile.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		t.logger.Error("Telemetry shutdown failed", slog.String("error", err.Error()))
		return err
	}
	return nil
}
