package telroute

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the router tree and dispatcher.
var (
	// ErrUnknownUpdateKind is returned when propagation is asked for a kind
	// no observer exists for.
	ErrUnknownUpdateKind = errors.New("telroute: unknown update kind")

	// ErrRouterCycle is returned by Compile when the router tree contains a
	// cycle (a router included into its own subtree).
	ErrRouterCycle = errors.New("telroute: router inclusion cycle")

	// ErrSelfInclude is returned by Include when a router is included into
	// itself.
	ErrSelfInclude = errors.New("telroute: router cannot include itself")

	// ErrAlreadyIncluded is returned by Include when the child already has a
	// parent router.
	ErrAlreadyIncluded = errors.New("telroute: router already included elsewhere")

	// ErrNilRouter is returned by Include when the child is nil.
	ErrNilRouter = errors.New("telroute: nil router")

	// ErrDispatcherRunning is returned by Dispatcher.Run when the dispatcher
	// is already running.
	ErrDispatcherRunning = errors.New("telroute: dispatcher already running")
)

// MiddlewareError wraps an error raised by outer or inner middleware,
// preserving the router that owned the chain and the kind in flight.
type MiddlewareError struct {
	Router string
	Kind   UpdateKind
	Outer  bool
	Err    error
}

func (e *MiddlewareError) Error() string {
	stage := "inner"
	if e.Outer {
		stage = "outer"
	}
	return fmt.Sprintf("telroute: %s middleware on router %q (%s): %v", stage, e.Router, e.Kind, e.Err)
}

func (e *MiddlewareError) Unwrap() error { return e.Err }

// HandlerError wraps an error returned by a handler entry.
type HandlerError struct {
	Router string
	Kind   UpdateKind
	Err    error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("telroute: handler on router %q (%s): %v", e.Router, e.Kind, e.Err)
}

func (e *HandlerError) Unwrap() error { return e.Err }

// LifecycleError wraps an error raised by a startup or shutdown callback.
type LifecycleError struct {
	Router string
	Phase  string // "startup" or "shutdown"
	Err    error
}

func (e *LifecycleError) Error() string {
	return fmt.Sprintf("telroute: %s on router %q: %v", e.Phase, e.Router, e.Err)
}

func (e *LifecycleError) Unwrap() error { return e.Err }
