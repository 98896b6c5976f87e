package filters

import (
	"context"

	"github.com/telroute/telroute/pkg/telroute"
	"github.com/telroute/telroute/pkg/telroute/middlewares"
)

// State matches the conversation state injected by the FSM middleware.
// The middleware must run as outer middleware on the same tree, otherwise
// the filter never matches.
type State struct {
	states []string
	any    bool
	none   bool
}

// StateEquals matches when the current state is one of the given names.
func StateEquals(states ...string) *State {
	return &State{states: states}
}

// AnyState matches whenever a conversation is in progress, regardless of
// its state.
func AnyState() *State {
	return &State{any: true}
}

// NoState matches when no conversation is in progress.
func NoState() *State {
	return &State{none: true}
}

// Check implements telroute.Filter.
func (s *State) Check(_ context.Context, req telroute.Request) bool {
	state, ok := middlewares.StateFromContext(req.Context)
	if s.none {
		return !ok
	}
	if !ok {
		return false
	}
	if s.any {
		return true
	}
	for _, want := range s.states {
		if state == want {
			return true
		}
	}
	return false
}
