package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records telroute dispatch metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordPropagation records one update propagation with its kind,
	// tri-state result name, duration and error status.
	RecordPropagation(ctx context.Context, kind, result string, duration time.Duration, err error)

	// RecordQueueDepth records the number of updates waiting for a worker.
	RecordQueueDepth(ctx context.Context, depth int64)

	// RecordLifecycle records a startup or shutdown emit.
	RecordLifecycle(ctx context.Context, phase string, err error)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	propagations       metric.Int64Counter
	propagationLatency metric.Float64Histogram
	propagationErrors  metric.Int64Counter
	queueDepth         metric.Int64Histogram
	lifecycleEmits     metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("telroute")

	propagations, err := meter.Int64Counter("telroute.propagation.count",
		metric.WithDescription("Number of update propagations"),
	)
	if err != nil {
		return nil, err
	}

	propagationLatency, err := meter.Float64Histogram("telroute.propagation.latency_ms",
		metric.WithDescription("Update propagation latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	propagationErrors, err := meter.Int64Counter("telroute.propagation.errors",
		metric.WithDescription("Number of propagation errors"),
	)
	if err != nil {
		return nil, err
	}

	queueDepth, err := meter.Int64Histogram("telroute.dispatch.queue_depth",
		metric.WithDescription("Updates waiting for a dispatch worker"),
	)
	if err != nil {
		return nil, err
	}

	lifecycleEmits, err := meter.Int64Counter("telroute.lifecycle.emits",
		metric.WithDescription("Number of startup/shutdown emits"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		propagations:       propagations,
		propagationLatency: propagationLatency,
		propagationErrors:  propagationErrors,
		queueDepth:         queueDepth,
		lifecycleEmits:     lifecycleEmits,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordPropagation records one update propagation.
func (m *otelMetrics) RecordPropagation(ctx context.Context, kind, result string, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("kind", kind),
		attribute.String("result", result),
	}

	m.propagations.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.propagationLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))

	if err != nil {
		m.propagationErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordQueueDepth records the dispatch queue depth.
func (m *otelMetrics) RecordQueueDepth(ctx context.Context, depth int64) {
	m.queueDepth.Record(ctx, depth)
}

// RecordLifecycle records a startup or shutdown emit.
func (m *otelMetrics) RecordLifecycle(ctx context.Context, phase string, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("phase", phase),
		attribute.Bool("success", err == nil),
	}
	m.lifecycleEmits.Add(ctx, 1, metric.WithAttributes(attrs...))
}
