package telroute

import "context"

// LifecycleHandler is a startup or shutdown callback. Callbacks carry no
// filters or middleware and no control-flow verdict; returning an error
// aborts the emit.
type LifecycleHandler interface {
	Run(ctx context.Context) error
}

// LifecycleFunc adapts a plain function to a LifecycleHandler.
type LifecycleFunc func(ctx context.Context) error

// Run calls f.
func (f LifecycleFunc) Run(ctx context.Context) error { return f(ctx) }

// LifecycleObserver is the registration surface for startup or shutdown
// callbacks on one router.
type LifecycleObserver struct {
	router   string
	phase    string
	handlers []LifecycleHandler
}

func newLifecycleObserver(router, phase string) *LifecycleObserver {
	return &LifecycleObserver{router: router, phase: phase}
}

// Register appends callbacks, run in registration order.
func (o *LifecycleObserver) Register(hs ...LifecycleHandler) *LifecycleObserver {
	o.handlers = append(o.handlers, hs...)
	return o
}

// Len returns the number of registered callbacks.
func (o *LifecycleObserver) Len() int { return len(o.handlers) }

func (o *LifecycleObserver) compile() *LifecycleService {
	hs := make([]LifecycleHandler, len(o.handlers))
	copy(hs, o.handlers)
	return &LifecycleService{router: o.router, phase: o.phase, handlers: hs}
}

// LifecycleService is the frozen form of a LifecycleObserver.
type LifecycleService struct {
	router   string
	phase    string
	handlers []LifecycleHandler
}

// Trigger runs every callback in order. The first error aborts the run and
// is returned wrapped; remaining callbacks do not execute.
func (s *LifecycleService) Trigger(ctx context.Context) error {
	for _, h := range s.handlers {
		if err := h.Run(ctx); err != nil {
			return &LifecycleError{Router: s.router, Phase: s.phase, Err: err}
		}
	}
	return nil
}
