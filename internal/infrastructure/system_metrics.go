package infrastructure

import (
	"context"
	"runtime"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// RunMetrics records how long a tool run took and how much memory it used.
// The gauges are observed once, when the run ends.
type RunMetrics struct {
	started time.Time

	duration   metric.Float64Gauge
	heapAlloc  metric.Int64Gauge
	totalAlloc metric.Int64Gauge
	gcCount    metric.Int64Gauge
}

// NewRunMetrics creates the run gauges on meter
func NewRunMetrics(meter metric.Meter) (*RunMetrics, error) {
	duration, err := meter.Float64Gauge(
		"bikpis_run_duration",
		metric.WithDescription("Wall time of the tool run"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	heapAlloc, err := meter.Int64Gauge(
		"bikpis_run_heap_alloc",
		metric.WithDescription("Heap bytes in use when the run ended"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	totalAlloc, err := meter.Int64Gauge(
		"bikpis_run_total_alloc",
		metric.WithDescription("Bytes allocated over the run"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	gcCount, err := meter.Int64Gauge(
		"bikpis_run_gc_count",
		metric.WithDescription("Garbage collections over the run"),
	)
	if err != nil {
		return nil, err
	}

	return &RunMetrics{
		started:    time.Now(),
		duration:   duration,
		heapAlloc:  heapAlloc,
		totalAlloc: totalAlloc,
		gcCount:    gcCount,
	}, nil
}

// Record observes the run gauges
func (m *RunMetrics) Record(ctx context.Context) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	m.duration.Record(ctx, time.Since(m.started).Seconds())
	m.heapAlloc.Record(ctx, int64(ms.HeapAlloc))
	m.totalAlloc.Record(ctx, int64(ms.TotalAlloc))
	m.gcCount.Record(ctx, int64(ms.NumGC))
}
