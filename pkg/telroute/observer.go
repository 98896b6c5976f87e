package telroute

import "context"

// handlerEntry is one registered handler with its conjunctive filters.
type handlerEntry struct {
	handler Handler
	filters []Filter
}

// Observer collects the handlers, filters and middleware for one update
// kind on one router. It is the mutable registration surface; Compile
// freezes it into an ObserverService.
type Observer struct {
	router string
	kind   UpdateKind

	commonFilters []Filter
	entries       []handlerEntry
	outer         chain[OuterMiddleware]
	inner         chain[InnerMiddleware]
}

func newObserver(router string, kind UpdateKind) *Observer {
	return &Observer{router: router, kind: kind}
}

// Kind returns the update kind this observer serves.
func (o *Observer) Kind() UpdateKind { return o.kind }

// Register appends a handler entry with its filters. Entries trigger in
// registration order.
func (o *Observer) Register(handler Handler, filters ...Filter) *Observer {
	o.entries = append(o.entries, handlerEntry{handler: handler, filters: filters})
	return o
}

// Filter appends observer-wide filters, checked once per trigger before any
// entry. A failing common filter leaves the pass unhandled.
func (o *Observer) Filter(filters ...Filter) *Observer {
	o.commonFilters = append(o.commonFilters, filters...)
	return o
}

// Outer registers outer middleware, run by the owning router before this
// observer's filters.
func (o *Observer) Outer(ms ...OuterMiddleware) *Observer {
	o.outer.Register(ms...)
	return o
}

// OuterAt inserts outer middleware at position.
func (o *Observer) OuterAt(position int, ms ...OuterMiddleware) *Observer {
	o.outer.RegisterAt(position, ms...)
	return o
}

// Inner registers inner middleware, wrapped around every handler entry.
func (o *Observer) Inner(ms ...InnerMiddleware) *Observer {
	o.inner.Register(ms...)
	return o
}

// InnerAt inserts inner middleware at position. Inherited middleware lands
// at the front so it wraps outside the observer's own registrations.
func (o *Observer) InnerAt(position int, ms ...InnerMiddleware) *Observer {
	o.inner.RegisterAt(position, ms...)
	return o
}

// Len returns the number of registered handler entries.
func (o *Observer) Len() int { return len(o.entries) }

// compile snapshots the observer into its immutable service form.
func (o *Observer) compile() *ObserverService {
	entries := make([]handlerEntry, len(o.entries))
	copy(entries, o.entries)
	common := make([]Filter, len(o.commonFilters))
	copy(common, o.commonFilters)
	return &ObserverService{
		router:        o.router,
		kind:          o.kind,
		commonFilters: common,
		entries:       entries,
		outer:         o.outer.Snapshot(),
		inner:         o.inner.Snapshot(),
	}
}

// ObserverService is the frozen form of an Observer. It carries no
// registration API; Trigger runs the entry loop.
type ObserverService struct {
	router        string
	kind          UpdateKind
	commonFilters []Filter
	entries       []handlerEntry
	outer         []OuterMiddleware
	inner         []InnerMiddleware
}

// Kind returns the update kind this service serves.
func (s *ObserverService) Kind() UpdateKind { return s.kind }

// Len returns the number of handler entries.
func (s *ObserverService) Len() int { return len(s.entries) }

// OuterMiddlewares returns the frozen outer chain. The owning router runs
// it before Trigger; Trigger itself never consults it.
func (s *ObserverService) OuterMiddlewares() []OuterMiddleware { return s.outer }

// Trigger runs the request through the entry loop.
//
// Observer-wide filters are checked once up front; a miss is Unhandled.
// For each entry in registration order: the entry's filters are ANDed
// (a miss moves to the next entry), then the inner middleware chain runs
// wrapped around the handler. Skip falls through to the next entry with the
// original request; Finish and Cancel resolve the pass as Handled. Errors
// abort immediately. Trigger never returns Rejected.
func (s *ObserverService) Trigger(ctx context.Context, req Request) (Response, error) {
	if !checkAll(ctx, s.commonFilters, req) {
		return Response{Request: req, Result: Unhandled}, nil
	}

	for _, entry := range s.entries {
		if !checkAll(ctx, entry.filters, req) {
			continue
		}

		run := wrapInner(s.inner, func(ctx context.Context, req Request) (EventReturn, error) {
			return entry.handler.Handle(ctx, req)
		})
		ret, err := run(ctx, req)
		if err != nil {
			return Response{Request: req, Result: Unhandled},
				&HandlerError{Router: s.router, Kind: s.kind, Err: err}
		}
		if ret == Skip {
			continue
		}
		// Finish and Cancel both resolve the update here.
		return Response{
			Request: req,
			Result:  Handled,
			Handler: &HandlerResponse{Request: req, Return: ret},
		}, nil
	}

	return Response{Request: req, Result: Unhandled}, nil
}
