package telroute

import "context"

// OuterMiddleware runs before filters, once per observer pass. It may
// replace the request (returning a new Request alongside Finish), skip to
// the next outer middleware (Skip), or stop the pass entirely (Cancel,
// which rejects the update).
type OuterMiddleware interface {
	Call(ctx context.Context, req Request) (Request, EventReturn, error)
}

// OuterMiddlewareFunc adapts a plain function to an OuterMiddleware.
type OuterMiddlewareFunc func(ctx context.Context, req Request) (Request, EventReturn, error)

// Call calls f.
func (f OuterMiddlewareFunc) Call(ctx context.Context, req Request) (Request, EventReturn, error) {
	return f(ctx, req)
}

// Next advances an inner middleware chain toward the handler. Calling it
// zero times short-circuits the handler; calling it once runs the rest of
// the chain and the handler itself.
type Next func(ctx context.Context, req Request) (EventReturn, error)

// InnerMiddleware wraps handler execution after the entry's filters have
// passed. It decides whether, and with what request, the rest of the chain
// runs, and may override the verdict on the way out.
type InnerMiddleware interface {
	Call(ctx context.Context, req Request, next Next) (EventReturn, error)
}

// InnerMiddlewareFunc adapts a plain function to an InnerMiddleware.
type InnerMiddlewareFunc func(ctx context.Context, req Request, next Next) (EventReturn, error)

// Call calls f.
func (f InnerMiddlewareFunc) Call(ctx context.Context, req Request, next Next) (EventReturn, error) {
	return f(ctx, req, next)
}

// chain is an ordered, position-addressable middleware list. Inherited
// middleware is inserted at the front so parent middleware runs before the
// owner's own registrations.
type chain[M any] struct {
	entries []M
}

// Register appends middleware at the end of the chain.
func (c *chain[M]) Register(ms ...M) {
	c.entries = append(c.entries, ms...)
}

// RegisterAt inserts middleware at position, shifting later entries.
// Positions out of range clamp to the nearest end.
func (c *chain[M]) RegisterAt(position int, ms ...M) {
	if position < 0 {
		position = 0
	}
	if position > len(c.entries) {
		position = len(c.entries)
	}
	rest := make([]M, len(c.entries[position:]))
	copy(rest, c.entries[position:])
	c.entries = append(c.entries[:position], ms...)
	c.entries = append(c.entries, rest...)
}

// Snapshot returns a copy of the current entries.
func (c *chain[M]) Snapshot() []M {
	out := make([]M, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len returns the number of registered entries.
func (c *chain[M]) Len() int { return len(c.entries) }

// wrapInner folds an inner middleware list around a terminal handler call
// so that the first-registered middleware is the outermost layer.
func wrapInner(middlewares []InnerMiddleware, terminal Next) Next {
	next := terminal
	for i := len(middlewares) - 1; i >= 0; i-- {
		mw := middlewares[i]
		inner := next
		next = func(ctx context.Context, req Request) (EventReturn, error) {
			return mw.Call(ctx, req, inner)
		}
	}
	return next
}
