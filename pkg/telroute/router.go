package telroute

import "fmt"

// Router is a named, mutable routing node. Each router owns one Observer
// per update kind, a synthetic pre-dispatch observer, startup/shutdown
// observers, and an ordered list of included child routers.
//
// Routers are builders: registration happens here, execution happens on the
// RouterService produced by Compile. Routers are not safe for concurrent
// registration.
type Router struct {
	name string

	observers map[UpdateKind]*Observer
	startup   *LifecycleObserver
	shutdown  *LifecycleObserver

	children []*Router
	parent   *Router
}

// NewRouter returns a router with empty observers for every update kind
// plus the pre-dispatch observer.
func NewRouter(name string) *Router {
	r := &Router{
		name:      name,
		observers: make(map[UpdateKind]*Observer, len(Kinds())+1),
	}
	for _, k := range Kinds() {
		r.observers[k] = newObserver(name, k)
	}
	r.observers[KindUpdate] = newObserver(name, KindUpdate)
	r.startup = newLifecycleObserver(name, "startup")
	r.shutdown = newLifecycleObserver(name, "shutdown")
	return r
}

// Name returns the router's name.
func (r *Router) Name() string { return r.name }

func (r *Router) String() string { return fmt.Sprintf("Router(%s)", r.name) }

// Observer returns the observer for kind, or nil for an unknown kind.
func (r *Router) Observer(kind UpdateKind) *Observer { return r.observers[kind] }

// Update returns the synthetic pre-dispatch observer, triggered for every
// inbound update before its kind-specific observer.
func (r *Router) Update() *Observer { return r.observers[KindUpdate] }

// Message returns the message observer.
func (r *Router) Message() *Observer { return r.observers[KindMessage] }

// EditedMessage returns the edited-message observer.
func (r *Router) EditedMessage() *Observer { return r.observers[KindEditedMessage] }

// ChannelPost returns the channel-post observer.
func (r *Router) ChannelPost() *Observer { return r.observers[KindChannelPost] }

// EditedChannelPost returns the edited-channel-post observer.
func (r *Router) EditedChannelPost() *Observer { return r.observers[KindEditedChannelPost] }

// InlineQuery returns the inline-query observer.
func (r *Router) InlineQuery() *Observer { return r.observers[KindInlineQuery] }

// ChosenInlineResult returns the chosen-inline-result observer.
func (r *Router) ChosenInlineResult() *Observer { return r.observers[KindChosenInlineResult] }

// CallbackQuery returns the callback-query observer.
func (r *Router) CallbackQuery() *Observer { return r.observers[KindCallbackQuery] }

// ShippingQuery returns the shipping-query observer.
func (r *Router) ShippingQuery() *Observer { return r.observers[KindShippingQuery] }

// PreCheckoutQuery returns the pre-checkout-query observer.
func (r *Router) PreCheckoutQuery() *Observer { return r.observers[KindPreCheckoutQuery] }

// Poll returns the poll observer.
func (r *Router) Poll() *Observer { return r.observers[KindPoll] }

// PollAnswer returns the poll-answer observer.
func (r *Router) PollAnswer() *Observer { return r.observers[KindPollAnswer] }

// MyChatMember returns the my-chat-member observer.
func (r *Router) MyChatMember() *Observer { return r.observers[KindMyChatMember] }

// ChatMember returns the chat-member observer.
func (r *Router) ChatMember() *Observer { return r.observers[KindChatMember] }

// ChatJoinRequest returns the chat-join-request observer.
func (r *Router) ChatJoinRequest() *Observer { return r.observers[KindChatJoinRequest] }

// Startup returns the startup observer.
func (r *Router) Startup() *LifecycleObserver { return r.startup }

// Shutdown returns the shutdown observer.
func (r *Router) Shutdown() *LifecycleObserver { return r.shutdown }

// Children returns the included child routers in inclusion order.
func (r *Router) Children() []*Router { return r.children }

// Include attaches child as the next sub-router and propagates this
// router's current inner middleware to the child's whole subtree.
//
// The snapshot is taken per observer at include time and inserted at the
// front of each descendant observer's inner chain, so parent middleware
// wraps outside anything the subtree registered itself. Middleware the
// parent registers after Include is not propagated.
func (r *Router) Include(child *Router) error {
	if child == nil {
		return ErrNilRouter
	}
	if child == r {
		return fmt.Errorf("%w: %s", ErrSelfInclude, r.name)
	}
	if child.parent != nil {
		return fmt.Errorf("%w: %s already included into %s",
			ErrAlreadyIncluded, child.name, child.parent.name)
	}

	child.parent = r
	r.children = append(r.children, child)

	for kind, obs := range r.observers {
		inherited := obs.inner.Snapshot()
		if len(inherited) == 0 {
			continue
		}
		child.propagateInner(kind, inherited)
	}
	return nil
}

// propagateInner front-inserts middleware into the observer for kind on
// this router and every descendant.
func (r *Router) propagateInner(kind UpdateKind, ms []InnerMiddleware) {
	r.observers[kind].inner.RegisterAt(0, ms...)
	for _, c := range r.children {
		c.propagateInner(kind, ms)
	}
}

// UsedUpdateKinds returns the set of update kinds for which this router or
// any descendant has at least one handler registered, in canonical order.
// The pre-dispatch observer is never counted.
func (r *Router) UsedUpdateKinds() []UpdateKind {
	used := make(map[UpdateKind]bool)
	r.collectUsedKinds(used)

	out := make([]UpdateKind, 0, len(used))
	for _, k := range Kinds() {
		if used[k] {
			out = append(out, k)
		}
	}
	return out
}

// UsedUpdateKindsExcept returns UsedUpdateKinds minus the given kinds.
func (r *Router) UsedUpdateKindsExcept(skip ...UpdateKind) []UpdateKind {
	skipped := make(map[UpdateKind]bool, len(skip))
	for _, k := range skip {
		skipped[k] = true
	}
	all := r.UsedUpdateKinds()
	out := all[:0]
	for _, k := range all {
		if !skipped[k] {
			out = append(out, k)
		}
	}
	return out
}

func (r *Router) collectUsedKinds(used map[UpdateKind]bool) {
	for _, k := range Kinds() {
		if r.observers[k].Len() > 0 {
			used[k] = true
		}
	}
	for _, c := range r.children {
		c.collectUsedKinds(used)
	}
}
