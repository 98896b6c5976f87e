// Package middlewares bundles ready-made middleware for common concerns:
// handler logging, FSM context injection, and retrying flaky handlers.
package middlewares

import (
	"context"
	"log/slog"
	"time"

	"github.com/telroute/telroute/pkg/telroute"
)

// Logging is inner middleware that logs every handler run that passed its
// filters, with the verdict and duration.
type Logging struct {
	logger *slog.Logger
}

// NewLogging builds the middleware. A nil logger falls back to
// slog.Default().
func NewLogging(logger *slog.Logger) *Logging {
	if logger == nil {
		logger = slog.Default()
	}
	return &Logging{logger: logger}
}

// Call implements telroute.InnerMiddleware.
func (l *Logging) Call(ctx context.Context, req telroute.Request, next telroute.Next) (telroute.EventReturn, error) {
	start := time.Now()
	ret, err := next(ctx, req)
	durationMs := float64(time.Since(start).Milliseconds())

	attrs := []any{
		slog.Int64("update_id", req.Update.ID),
		slog.String("kind", req.Update.Kind.String()),
		slog.Float64("duration_ms", durationMs),
	}
	if err != nil {
		l.logger.Error("handler failed", append(attrs, slog.String("error", err.Error()))...)
		return ret, err
	}
	l.logger.Debug("handler completed", append(attrs, slog.String("verdict", ret.String()))...)
	return ret, nil
}
