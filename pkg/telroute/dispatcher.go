package telroute

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/telroute/telroute/pkg/telroute/observability"
)

// ContextKeyDispatchID is the Context key holding the dispatch id assigned
// to each inbound update.
const ContextKeyDispatchID = "dispatch_id"

// Source delivers inbound updates to the dispatcher. Open is called once
// per Run with the resolved set of update kinds the router tree can handle;
// the source should stop delivering and close the channel when ctx ends.
type Source interface {
	Open(ctx context.Context, allowed []UpdateKind) (<-chan *Update, error)
}

// SourceFunc adapts a plain function to a Source.
type SourceFunc func(ctx context.Context, allowed []UpdateKind) (<-chan *Update, error)

// Open calls f.
func (f SourceFunc) Open(ctx context.Context, allowed []UpdateKind) (<-chan *Update, error) {
	return f(ctx, allowed)
}

// Dispatcher drives a compiled router tree: it feeds single updates through
// the tree and runs the long-lived consume loop against a Source.
type Dispatcher struct {
	bot    Client
	router *RouterService

	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
	workers int

	running atomic.Bool
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) { d.logger = logger }
}

// WithMetrics sets the metrics recorder. Defaults to no-op.
func WithMetrics(m observability.MetricsRecorder) DispatcherOption {
	return func(d *Dispatcher) { d.metrics = m }
}

// WithSpanManager sets the trace span manager. Defaults to no-op.
func WithSpanManager(s observability.SpanManager) DispatcherOption {
	return func(d *Dispatcher) { d.spans = s }
}

// WithWorkers sets the number of concurrent dispatch workers used by Run.
// Defaults to 1 (strictly ordered dispatch); values below 1 are clamped.
func WithWorkers(n int) DispatcherOption {
	return func(d *Dispatcher) {
		if n < 1 {
			n = 1
		}
		d.workers = n
	}
}

// NewDispatcher builds a dispatcher over a compiled router tree.
func NewDispatcher(bot Client, router *RouterService, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		bot:     bot,
		router:  router,
		logger:  slog.Default(),
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
		workers: 1,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Router returns the compiled router tree the dispatcher drives.
func (d *Dispatcher) Router() *RouterService { return d.router }

// FeedUpdate runs one update through the router tree. It creates the fresh
// per-update Context, assigns a dispatch id under ContextKeyDispatchID, and
// returns the propagation outcome.
func (d *Dispatcher) FeedUpdate(ctx context.Context, update *Update) (Response, error) {
	if update == nil {
		return Response{}, fmt.Errorf("%w: nil update", ErrUnknownUpdateKind)
	}
	if !update.Kind.Valid() {
		return Response{}, fmt.Errorf("%w: %q", ErrUnknownUpdateKind, update.Kind)
	}

	dispatchID := uuid.NewString()
	req := NewRequest(d.bot, update)
	req.Context.Set(ContextKeyDispatchID, dispatchID)

	logger := observability.EnrichLogger(d.logger, dispatchID, update.ID, update.Kind.String())
	observability.LogDispatchStart(logger, dispatchID, update.ID, update.Kind.String())

	ctx, span := d.spans.StartDispatchSpan(ctx, dispatchID, update.Kind.String())
	done := observability.TimedOperation()

	resp, err := d.router.PropagateEvent(ctx, update.Kind, req)

	durationMs := done()
	d.spans.EndSpanWithError(span, err)
	d.metrics.RecordPropagation(ctx, update.Kind.String(), resp.Result.String(),
		durationFromMs(durationMs), err)

	if err != nil {
		observability.LogDispatchError(logger, dispatchID, err, durationMs)
		return resp, err
	}
	observability.LogDispatchComplete(logger, dispatchID, resp.Result.String(), durationMs)
	return resp, nil
}

// Run consumes the source until ctx ends or the source closes its channel.
//
// Startup callbacks run before the source opens; shutdown callbacks run
// after the last worker drains, regardless of how the loop ended. Updates
// for kinds in skip are not requested from the source. Dispatch errors are
// logged and do not stop the loop.
func (d *Dispatcher) Run(ctx context.Context, source Source, skip ...UpdateKind) error {
	if !d.running.CompareAndSwap(false, true) {
		return ErrDispatcherRunning
	}
	defer d.running.Store(false)

	if err := d.router.EmitStartup(ctx); err != nil {
		d.metrics.RecordLifecycle(ctx, "startup", err)
		return err
	}
	d.metrics.RecordLifecycle(ctx, "startup", nil)
	observability.LogLifecycle(d.logger, "startup", d.router.Name())

	allowed := d.router.UsedUpdateKindsExcept(skip...)
	observability.LogSourceOpen(d.logger, kindNames(allowed))

	updates, err := source.Open(ctx, allowed)
	if err != nil {
		// The tree already started; balance it before reporting.
		if sderr := d.router.EmitShutdown(context.WithoutCancel(ctx)); sderr != nil {
			d.logger.Error("shutdown after failed source open",
				slog.String("error", sderr.Error()))
		}
		return fmt.Errorf("telroute: open source: %w", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < d.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for update := range updates {
				d.metrics.RecordQueueDepth(ctx, int64(len(updates)))
				if _, err := d.FeedUpdate(ctx, update); err != nil {
					d.logger.Error("update dispatch failed",
						slog.Int64("update_id", update.ID),
						slog.String("kind", update.Kind.String()),
						slog.String("error", err.Error()),
					)
				}
			}
		}()
	}
	wg.Wait()

	// Shutdown must run even when ctx was cancelled.
	sdCtx := context.WithoutCancel(ctx)
	sderr := d.router.EmitShutdown(sdCtx)
	d.metrics.RecordLifecycle(sdCtx, "shutdown", sderr)
	if sderr != nil {
		return sderr
	}
	observability.LogLifecycle(d.logger, "shutdown", d.router.Name())
	return ctx.Err()
}

func durationFromMs(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}

func kindNames(kinds []UpdateKind) []string {
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = k.String()
	}
	return out
}
