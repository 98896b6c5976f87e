package telroute

import "context"

// Handler processes a request that passed its entry's filters and inner
// middleware. The returned EventReturn steers propagation: Finish resolves
// the update, Skip falls through to the next entry, Cancel ends propagation
// with the update considered handled.
type Handler interface {
	Handle(ctx context.Context, req Request) (EventReturn, error)
}

// HandlerFunc adapts a plain function to a Handler.
type HandlerFunc func(ctx context.Context, req Request) (EventReturn, error)

// Handle calls f.
func (f HandlerFunc) Handle(ctx context.Context, req Request) (EventReturn, error) {
	return f(ctx, req)
}

// Handle adapts a function with no control-flow opinion: a nil error means
// Finish.
func Handle(fn func(ctx context.Context, req Request) error) Handler {
	return HandlerFunc(func(ctx context.Context, req Request) (EventReturn, error) {
		if err := fn(ctx, req); err != nil {
			return Finish, err
		}
		return Finish, nil
	})
}
