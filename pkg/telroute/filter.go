package telroute

import "context"

// Filter decides whether a handler entry (or a whole observer) should see a
// request. Filters are pure predicates: they may read and annotate the
// request's Context but must not replace the request.
//
// Multiple filters on one entry are conjunctive and evaluated in
// registration order with short-circuit: the first false stops the rest.
type Filter interface {
	Check(ctx context.Context, req Request) bool
}

// FilterFunc adapts a plain function to a Filter.
type FilterFunc func(ctx context.Context, req Request) bool

// Check calls f.
func (f FilterFunc) Check(ctx context.Context, req Request) bool { return f(ctx, req) }

type allFilter struct{ filters []Filter }

func (a allFilter) Check(ctx context.Context, req Request) bool {
	for _, f := range a.filters {
		if !f.Check(ctx, req) {
			return false
		}
	}
	return true
}

type anyFilter struct{ filters []Filter }

func (a anyFilter) Check(ctx context.Context, req Request) bool {
	for _, f := range a.filters {
		if f.Check(ctx, req) {
			return true
		}
	}
	return false
}

type invertFilter struct{ filter Filter }

func (i invertFilter) Check(ctx context.Context, req Request) bool {
	return !i.filter.Check(ctx, req)
}

// All combines filters conjunctively. With no filters it always passes.
func All(filters ...Filter) Filter { return allFilter{filters: filters} }

// Any combines filters disjunctively. With no filters it never passes.
func Any(filters ...Filter) Filter { return anyFilter{filters: filters} }

// Invert negates a filter.
func Invert(filter Filter) Filter { return invertFilter{filter: filter} }

// checkAll evaluates filters conjunctively with short-circuit.
func checkAll(ctx context.Context, filters []Filter, req Request) bool {
	for _, f := range filters {
		if !f.Check(ctx, req) {
			return false
		}
	}
	return true
}
