package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer is the telroute tracer instance.
// Uses the global OTel tracer provider.
var tracer = otel.Tracer("telroute")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartDispatchSpan starts a span covering one update's full dispatch.
	StartDispatchSpan(ctx context.Context, dispatchID, kind string) (context.Context, trace.Span)

	// StartRouterSpan starts a span for one router's propagation pass.
	// The router span should be a child of the dispatch span.
	StartRouterSpan(ctx context.Context, router string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the
// provider before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// StartDispatchSpan starts a span covering one update's full dispatch.
func (m *otelSpanManager) StartDispatchSpan(ctx context.Context, dispatchID, kind string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "telroute.dispatch",
		trace.WithAttributes(
			attribute.String("dispatch.id", dispatchID),
			attribute.String("update.kind", kind),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartRouterSpan starts a span for one router's propagation pass.
func (m *otelSpanManager) StartRouterSpan(ctx context.Context, router string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "telroute.router."+router,
		trace.WithAttributes(
			attribute.String("router.name", router),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span.
func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
