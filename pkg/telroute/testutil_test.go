package telroute

import (
	"context"
	"sync"
)

// fakeBot is a Client stub for tests.
type fakeBot struct {
	me    *User
	meErr error
}

func (b *fakeBot) Me(context.Context) (*User, error) {
	if b.meErr != nil {
		return nil, b.meErr
	}
	return b.me, nil
}

// messageUpdate builds a plain text message update.
func messageUpdate(id int64, text string) *Update {
	return &Update{
		ID:   id,
		Kind: KindMessage,
		Message: &Message{
			ID:   id,
			From: &User{ID: 10, Username: "alice"},
			Chat: &Chat{ID: 20, Type: "private"},
			Text: text,
		},
	}
}

// callLog records the order of observed calls across handlers and
// middleware.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, name)
}

func (l *callLog) snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.calls))
	copy(out, l.calls)
	return out
}

// loggedHandler returns a handler that records name and returns ret.
func loggedHandler(log *callLog, name string, ret EventReturn) Handler {
	return HandlerFunc(func(context.Context, Request) (EventReturn, error) {
		log.add(name)
		return ret, nil
	})
}

// passFilter always passes, recording the check.
func passFilter(log *callLog, name string) Filter {
	return FilterFunc(func(context.Context, Request) bool {
		log.add(name)
		return true
	})
}

// failFilter never passes, recording the check.
func failFilter(log *callLog, name string) Filter {
	return FilterFunc(func(context.Context, Request) bool {
		log.add(name)
		return false
	})
}

// loggedInner records name around the wrapped call and passes through.
func loggedInner(log *callLog, name string) InnerMiddleware {
	return InnerMiddlewareFunc(func(ctx context.Context, req Request, next Next) (EventReturn, error) {
		log.add(name + ":before")
		ret, err := next(ctx, req)
		log.add(name + ":after")
		return ret, err
	})
}

// loggedOuter records name and passes the request through unchanged.
func loggedOuter(log *callLog, name string) OuterMiddleware {
	return OuterMiddlewareFunc(func(_ context.Context, req Request) (Request, EventReturn, error) {
		log.add(name)
		return req, Finish, nil
	})
}
