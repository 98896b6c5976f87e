package telroute

import "fmt"

// EventReturn is the control-flow verdict an event handler or middleware
// hands back to the propagation engine. The zero value is Finish, so a
// handler that returns a plain nil error finishes normally.
type EventReturn int

const (
	// Finish completes the current stage normally. From a handler this
	// resolves the update as handled; from outer middleware it accepts the
	// (possibly replaced) request and moves on.
	Finish EventReturn = iota
	// Skip abandons the current entry and moves to the next candidate:
	// the next handler entry at observer level, the next outer middleware
	// at router level.
	Skip
	// Cancel stops propagation at the current level. From outer middleware
	// this rejects the update; from a handler or inner middleware it ends
	// propagation with the update considered handled.
	Cancel
)

// String returns the verdict name for logs and errors.
func (e EventReturn) String() string {
	switch e {
	case Finish:
		return "finish"
	case Skip:
		return "skip"
	case Cancel:
		return "cancel"
	default:
		return fmt.Sprintf("event_return(%d)", int(e))
	}
}

// ToEventReturn normalizes an arbitrary handler result to an EventReturn.
// Values that are not an EventReturn mean the handler succeeded without an
// opinion on control flow and convert to Finish.
func ToEventReturn(v any) EventReturn {
	if er, ok := v.(EventReturn); ok {
		return er
	}
	return Finish
}

// PropagateResult is the tri-state outcome of running an update through an
// observer or a router tree. The zero value is Unhandled.
type PropagateResult int

const (
	// Unhandled means no handler matched; the caller may try the next
	// candidate (sibling entry, child router).
	Unhandled PropagateResult = iota
	// Rejected means outer middleware cancelled the update before any
	// handler ran. Propagation stops; no fallthrough to children.
	Rejected
	// Handled means a handler ran to completion (or a handler-level Cancel
	// ended propagation). Propagation stops.
	Handled
)

// String returns the outcome name for logs and errors.
func (r PropagateResult) String() string {
	switch r {
	case Unhandled:
		return "unhandled"
	case Rejected:
		return "rejected"
	case Handled:
		return "handled"
	default:
		return fmt.Sprintf("propagate_result(%d)", int(r))
	}
}

// HandlerResponse is the outcome of the single handler invocation that
// resolved an update, preserved for the caller.
type HandlerResponse struct {
	// Request is the request the handler actually saw, after any outer
	// middleware replacements.
	Request Request
	// Return is the handler's control-flow verdict.
	Return EventReturn
}

// Response is the full outcome of one propagation pass.
//
// Request is the final request observed at the level that produced the
// result (outer middleware may have replaced the original). Handler is nil
// unless Result is Handled by an actual handler run.
type Response struct {
	Request Request
	Result  PropagateResult
	Handler *HandlerResponse
}
