package middlewares

import (
	"context"
	"errors"

	"github.com/telroute/telroute/pkg/telroute"
	"github.com/telroute/telroute/pkg/telroute/fsm"
)

// Context keys populated by FSM.
const (
	// ContextKeyFSM holds the *fsm.FSMContext bound to the update's
	// conversation.
	ContextKeyFSM = "fsm_context"
	// ContextKeyState holds the conversation's current state name, when
	// one is set.
	ContextKeyState = "fsm_state"
)

// FSM is outer middleware that resolves the update's conversation key,
// loads the current state, and injects an fsm.FSMContext into the request
// Context. Handlers and state filters read both through the context keys.
type FSM struct {
	storage  fsm.Storage
	strategy fsm.Strategy
	destiny  string
	botID    int64
}

// FSMOption configures the middleware.
type FSMOption func(*FSM)

// WithStrategy sets the key-building strategy.
// Defaults to fsm.StrategyUserInChat.
func WithStrategy(s fsm.Strategy) FSMOption {
	return func(m *FSM) { m.strategy = s }
}

// WithDestiny separates this middleware's state machine from others
// sharing the storage. Defaults to fsm.DefaultDestiny.
func WithDestiny(destiny string) FSMOption {
	return func(m *FSM) { m.destiny = destiny }
}

// WithBotID scopes keys to one bot when several bots share a storage.
func WithBotID(id int64) FSMOption {
	return func(m *FSM) { m.botID = id }
}

// NewFSM builds the middleware over storage.
func NewFSM(storage fsm.Storage, opts ...FSMOption) *FSM {
	m := &FSM{
		storage:  storage,
		strategy: fsm.StrategyUserInChat,
		destiny:  fsm.DefaultDestiny,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Call implements telroute.OuterMiddleware.
func (m *FSM) Call(_ context.Context, req telroute.Request) (telroute.Request, telroute.EventReturn, error) {
	var chatID, userID int64
	if chat := req.Update.Chat(); chat != nil {
		chatID = chat.ID
	}
	if user := req.Update.From(); user != nil {
		userID = user.ID
	}

	key := m.strategy.Key(m.botID, chatID, userID, m.destiny)
	fsmCtx := fsm.NewFSMContext(m.storage, key)
	req.Context.Set(ContextKeyFSM, fsmCtx)

	state, err := fsmCtx.State()
	switch {
	case err == nil:
		req.Context.Set(ContextKeyState, state)
	case errors.Is(err, fsm.ErrNoState):
		// No conversation in progress.
	default:
		return req, telroute.Finish, err
	}
	return req, telroute.Finish, nil
}

// FSMFromContext returns the FSMContext injected by the middleware.
func FSMFromContext(c *telroute.Context) (*fsm.FSMContext, bool) {
	return telroute.TypedValue[*fsm.FSMContext](c, ContextKeyFSM)
}

// StateFromContext returns the conversation state injected by the
// middleware, if a conversation is in progress.
func StateFromContext(c *telroute.Context) (string, bool) {
	return telroute.TypedValue[string](c, ContextKeyState)
}
