// Package observability provides production-grade observability features
// for telroute: structured logging, metrics, and distributed tracing.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds dispatch context to a logger.
// Returns a new logger with dispatch_id, update_id, and kind fields.
//
// Example:
//
//	enriched := EnrichLogger(logger, "d-123", 42, "message")
//	enriched.Info("handling") // includes dispatch_id, update_id, kind
func EnrichLogger(logger *slog.Logger, dispatchID string, updateID int64, kind string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("dispatch_id", dispatchID),
		slog.Int64("update_id", updateID),
		slog.String("kind", kind),
	)
}

// LogDispatchStart logs the start of an update dispatch.
func LogDispatchStart(logger *slog.Logger, dispatchID string, updateID int64, kind string) {
	if logger == nil {
		return
	}
	logger.Debug("update dispatch starting",
		slog.String("dispatch_id", dispatchID),
		slog.Int64("update_id", updateID),
		slog.String("kind", kind),
	)
}

// LogDispatchComplete logs a dispatch that produced a propagation result.
func LogDispatchComplete(logger *slog.Logger, dispatchID string, result string, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Info("update dispatch completed",
		slog.String("dispatch_id", dispatchID),
		slog.String("result", result),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogDispatchError logs a dispatch that failed with an error.
func LogDispatchError(logger *slog.Logger, dispatchID string, err error, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Error("update dispatch failed",
		slog.String("dispatch_id", dispatchID),
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogLifecycle logs a startup or shutdown emit.
func LogLifecycle(logger *slog.Logger, phase string, router string) {
	if logger == nil {
		return
	}
	logger.Info("lifecycle emitted",
		slog.String("phase", phase),
		slog.String("router", router),
	)
}

// LogSourceOpen logs the update source opening with its resolved kinds.
func LogSourceOpen(logger *slog.Logger, kinds []string) {
	if logger == nil {
		return
	}
	logger.Info("update source opened",
		slog.Any("allowed_kinds", kinds),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Milliseconds())
	}
}
