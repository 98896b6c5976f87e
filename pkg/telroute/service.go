package telroute

import (
	"context"
	"errors"
	"fmt"
)

// Config carries tree-wide outer middleware applied at compile time. The
// middleware is placed at the front of the compiled root's matching
// observers only; it is cleared before compiling children, so included
// routers do not accumulate a second copy.
type Config struct {
	OuterMiddlewares map[UpdateKind][]OuterMiddleware
}

// DefaultConfig registers the user-context middleware on the pre-dispatch
// observer, so every handler can read the event user and chat from Context.
func DefaultConfig() Config {
	return Config{
		OuterMiddlewares: map[UpdateKind][]OuterMiddleware{
			KindUpdate: {NewUserContext()},
		},
	}
}

// Compile validates the router tree and freezes it into a RouterService.
// The builder is left untouched and can be compiled again.
func (r *Router) Compile(cfg Config) (*RouterService, error) {
	var errs []error
	if r.name == "" {
		errs = append(errs, errors.New("telroute: router name must not be empty"))
	}
	if err := r.checkCycles(make(map[*Router]bool)); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return r.compile(cfg), nil
}

func (r *Router) checkCycles(visiting map[*Router]bool) error {
	if visiting[r] {
		return fmt.Errorf("%w: through router %q", ErrRouterCycle, r.name)
	}
	visiting[r] = true
	for _, c := range r.children {
		if err := c.checkCycles(visiting); err != nil {
			return err
		}
	}
	delete(visiting, r)
	return nil
}

func (r *Router) compile(cfg Config) *RouterService {
	svc := &RouterService{
		name:      r.name,
		observers: make(map[UpdateKind]*ObserverService, len(r.observers)),
		startup:   r.startup.compile(),
		shutdown:  r.shutdown.compile(),
	}
	for kind, obs := range r.observers {
		os := obs.compile()
		if ms := cfg.OuterMiddlewares[kind]; len(ms) > 0 {
			merged := make([]OuterMiddleware, 0, len(ms)+len(os.outer))
			merged = append(merged, ms...)
			merged = append(merged, os.outer...)
			os.outer = merged
		}
		svc.observers[kind] = os
	}
	for _, c := range r.children {
		svc.children = append(svc.children, c.compile(Config{}))
	}
	return svc
}

// RouterService is the immutable, executable form of a router tree. It
// exposes no registration API; all wiring was frozen at Compile.
type RouterService struct {
	name      string
	observers map[UpdateKind]*ObserverService
	startup   *LifecycleService
	shutdown  *LifecycleService
	children  []*RouterService
}

// Name returns the router's name.
func (s *RouterService) Name() string { return s.name }

func (s *RouterService) String() string { return fmt.Sprintf("RouterService(%s)", s.name) }

// Observer returns the compiled observer for kind, or nil for an unknown
// kind.
func (s *RouterService) Observer(kind UpdateKind) *ObserverService { return s.observers[kind] }

// Children returns the compiled child routers in inclusion order.
func (s *RouterService) Children() []*RouterService { return s.children }

// UsedUpdateKinds returns the set of update kinds for which this router or
// any descendant has at least one handler registered, in canonical order.
// The pre-dispatch observer is never counted.
func (s *RouterService) UsedUpdateKinds() []UpdateKind {
	used := make(map[UpdateKind]bool)
	s.collectUsedKinds(used)

	out := make([]UpdateKind, 0, len(used))
	for _, k := range Kinds() {
		if used[k] {
			out = append(out, k)
		}
	}
	return out
}

// UsedUpdateKindsExcept returns UsedUpdateKinds minus the given kinds.
func (s *RouterService) UsedUpdateKindsExcept(skip ...UpdateKind) []UpdateKind {
	skipped := make(map[UpdateKind]bool, len(skip))
	for _, k := range skip {
		skipped[k] = true
	}
	all := s.UsedUpdateKinds()
	out := all[:0]
	for _, k := range all {
		if !skipped[k] {
			out = append(out, k)
		}
	}
	return out
}

func (s *RouterService) collectUsedKinds(used map[UpdateKind]bool) {
	for _, k := range Kinds() {
		if s.observers[k].Len() > 0 {
			used[k] = true
		}
	}
	for _, c := range s.children {
		c.collectUsedKinds(used)
	}
}

// PropagateEvent runs one update through this router and its subtree.
//
// The pre-dispatch observer runs first; a Handled or Rejected outcome there
// resolves the update immediately. Otherwise the kind observer runs, and if
// it leaves the update unhandled the children are tried in inclusion order
// until one resolves it. Requests replaced by outer middleware carry
// forward into later stages and into children.
func (s *RouterService) PropagateEvent(ctx context.Context, kind UpdateKind, req Request) (Response, error) {
	if kind == KindUpdate {
		return s.propagateLocal(ctx, KindUpdate, req)
	}
	if !kind.Valid() {
		return Response{Request: req}, fmt.Errorf("%w: %q", ErrUnknownUpdateKind, kind)
	}

	resp, err := s.propagateLocal(ctx, KindUpdate, req)
	if err != nil || resp.Result != Unhandled {
		return resp, err
	}
	req = resp.Request

	resp, err = s.propagateLocal(ctx, kind, req)
	if err != nil || resp.Result != Unhandled {
		return resp, err
	}
	req = resp.Request

	for _, child := range s.children {
		resp, err = child.PropagateEvent(ctx, kind, req)
		if err != nil || resp.Result != Unhandled {
			return resp, err
		}
	}
	return Response{Request: req, Result: Unhandled}, nil
}

// propagateLocal runs the outer middleware loop and the observer trigger
// for one kind on this router only, without descending into children.
func (s *RouterService) propagateLocal(ctx context.Context, kind UpdateKind, req Request) (Response, error) {
	obs := s.observers[kind]

	for _, mw := range obs.outer {
		newReq, ret, err := mw.Call(ctx, req)
		if err != nil {
			return Response{Request: req, Result: Unhandled},
				&MiddlewareError{Router: s.name, Kind: kind, Outer: true, Err: err}
		}
		switch ret {
		case Finish:
			req = newReq
		case Skip:
			// Keep the current request and move to the next middleware.
		case Cancel:
			return Response{Request: req, Result: Rejected}, nil
		}
	}

	return obs.Trigger(ctx, req)
}

// EmitStartup runs the startup callbacks of this router and every
// descendant, depth-first in inclusion order. The first error aborts the
// walk.
func (s *RouterService) EmitStartup(ctx context.Context) error {
	if err := s.startup.Trigger(ctx); err != nil {
		return err
	}
	for _, c := range s.children {
		if err := c.EmitStartup(ctx); err != nil {
			return err
		}
	}
	return nil
}

// EmitShutdown runs the shutdown callbacks of this router and every
// descendant, depth-first in inclusion order. The first error aborts the
// walk.
func (s *RouterService) EmitShutdown(ctx context.Context) error {
	if err := s.shutdown.Trigger(ctx); err != nil {
		return err
	}
	for _, c := range s.children {
		if err := c.EmitShutdown(ctx); err != nil {
			return err
		}
	}
	return nil
}
