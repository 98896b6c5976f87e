package middlewares

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/telroute/telroute/pkg/telroute"
)

// RetryConfig configures retry behavior.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts (including initial).
	MaxAttempts int

	// InitialBackoff is the starting backoff duration.
	InitialBackoff time.Duration

	// MaxBackoff is the maximum backoff duration.
	MaxBackoff time.Duration

	// BackoffFactor is the multiplier applied to backoff after each attempt.
	BackoffFactor float64

	// Jitter is the random jitter factor (0.0-1.0).
	Jitter float64

	// RetryableFunc decides whether an error is worth another attempt.
	// Defaults to retrying every error.
	RetryableFunc func(error) bool
}

// DefaultRetry is the standard retry configuration.
var DefaultRetry = RetryConfig{
	MaxAttempts:    3,
	InitialBackoff: 1 * time.Second,
	MaxBackoff:     30 * time.Second,
	BackoffFactor:  2.0,
	Jitter:         0.1,
}

// Retry is inner middleware that re-runs a failing handler with
// exponential backoff. Handler verdicts are never retried, only errors;
// propagation control flow stays intact.
//
// The engine itself never retries; apply this middleware explicitly on the
// observers whose handlers talk to flaky backends.
type Retry struct {
	cfg RetryConfig
}

// NewRetry builds the middleware. Zero-value fields in cfg fall back to
// DefaultRetry.
func NewRetry(cfg RetryConfig) *Retry {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultRetry.MaxAttempts
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = DefaultRetry.InitialBackoff
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = DefaultRetry.MaxBackoff
	}
	if cfg.BackoffFactor <= 0 {
		cfg.BackoffFactor = DefaultRetry.BackoffFactor
	}
	return &Retry{cfg: cfg}
}

// Call implements telroute.InnerMiddleware.
func (r *Retry) Call(ctx context.Context, req telroute.Request, next telroute.Next) (telroute.EventReturn, error) {
	isRetryable := r.cfg.RetryableFunc
	if isRetryable == nil {
		isRetryable = func(error) bool { return true }
	}

	backoff := r.cfg.InitialBackoff
	var lastErr error

	for attempt := 0; attempt < r.cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return telroute.Finish, err
		}

		ret, err := next(ctx, req)
		if err == nil {
			return ret, nil
		}
		lastErr = err

		if !isRetryable(err) {
			return ret, err
		}

		// Don't sleep after the last attempt
		if attempt < r.cfg.MaxAttempts-1 {
			select {
			case <-ctx.Done():
				return telroute.Finish, ctx.Err()
			case <-time.After(calculateBackoff(backoff, r.cfg.Jitter)):
			}

			backoff = time.Duration(float64(backoff) * r.cfg.BackoffFactor)
			if backoff > r.cfg.MaxBackoff {
				backoff = r.cfg.MaxBackoff
			}
		}
	}
	return telroute.Finish, lastErr
}

// calculateBackoff returns the backoff duration with jitter applied.
func calculateBackoff(base time.Duration, jitter float64) time.Duration {
	if jitter <= 0 {
		return base
	}

	// Calculate jitter: base +/- (base * jitter * random)
	jitterAmount := float64(base) * jitter * (rand.Float64()*2 - 1)
	return time.Duration(float64(base) + jitterAmount)
}
