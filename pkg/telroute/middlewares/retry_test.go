package middlewares

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telroute/telroute/pkg/telroute"
)

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts:    attempts,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     time.Millisecond,
		BackoffFactor:  1.0,
	}
}

// TestRetry_SuccessFirstAttempt verifies no extra attempts on success.
func TestRetry_SuccessFirstAttempt(t *testing.T) {
	calls := 0
	mw := NewRetry(fastRetry(3))

	ret, err := mw.Call(context.Background(), messageRequest(),
		func(context.Context, telroute.Request) (telroute.EventReturn, error) {
			calls++
			return telroute.Finish, nil
		})
	require.NoError(t, err)
	assert.Equal(t, telroute.Finish, ret)
	assert.Equal(t, 1, calls)
}

// TestRetry_EventualSuccess verifies a flaky handler succeeds within the
// attempt budget.
func TestRetry_EventualSuccess(t *testing.T) {
	calls := 0
	mw := NewRetry(fastRetry(3))

	ret, err := mw.Call(context.Background(), messageRequest(),
		func(context.Context, telroute.Request) (telroute.EventReturn, error) {
			calls++
			if calls < 3 {
				return telroute.Finish, errors.New("transient")
			}
			return telroute.Skip, nil
		})
	require.NoError(t, err)
	assert.Equal(t, telroute.Skip, ret)
	assert.Equal(t, 3, calls)
}

// TestRetry_Exhausted verifies the last error is returned when every
// attempt fails.
func TestRetry_Exhausted(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	mw := NewRetry(fastRetry(3))

	_, err := mw.Call(context.Background(), messageRequest(),
		func(context.Context, telroute.Request) (telroute.EventReturn, error) {
			calls++
			return telroute.Finish, boom
		})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, calls)
}

// TestRetry_VerdictsNotRetried verifies Skip and Cancel verdicts pass
// through without another attempt.
func TestRetry_VerdictsNotRetried(t *testing.T) {
	for _, verdict := range []telroute.EventReturn{telroute.Skip, telroute.Cancel} {
		calls := 0
		mw := NewRetry(fastRetry(3))

		ret, err := mw.Call(context.Background(), messageRequest(),
			func(context.Context, telroute.Request) (telroute.EventReturn, error) {
				calls++
				return verdict, nil
			})
		require.NoError(t, err)
		assert.Equal(t, verdict, ret)
		assert.Equal(t, 1, calls)
	}
}

// TestRetry_NonRetryable verifies the retryability check stops retries.
func TestRetry_NonRetryable(t *testing.T) {
	permanent := errors.New("permanent")
	cfg := fastRetry(5)
	cfg.RetryableFunc = func(err error) bool { return !errors.Is(err, permanent) }

	calls := 0
	mw := NewRetry(cfg)
	_, err := mw.Call(context.Background(), messageRequest(),
		func(context.Context, telroute.Request) (telroute.EventReturn, error) {
			calls++
			return telroute.Finish, permanent
		})
	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls)
}

// TestRetry_ContextCancelled verifies cancellation stops the attempt loop.
func TestRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	mw := NewRetry(fastRetry(3))
	_, err := mw.Call(ctx, messageRequest(),
		func(context.Context, telroute.Request) (telroute.EventReturn, error) {
			calls++
			return telroute.Finish, errors.New("transient")
		})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, calls)
}

// TestNewRetry_Defaults verifies zero-value config fields fall back.
func TestNewRetry_Defaults(t *testing.T) {
	mw := NewRetry(RetryConfig{})
	assert.Equal(t, DefaultRetry.MaxAttempts, mw.cfg.MaxAttempts)
	assert.Equal(t, DefaultRetry.InitialBackoff, mw.cfg.InitialBackoff)
	assert.Equal(t, DefaultRetry.MaxBackoff, mw.cfg.MaxBackoff)
	assert.Equal(t, DefaultRetry.BackoffFactor, mw.cfg.BackoffFactor)
}
