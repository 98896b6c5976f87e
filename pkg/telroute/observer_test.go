package telroute

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compileObserver(o *Observer) *ObserverService {
	return o.compile()
}

// TestObserver_Trigger_Empty verifies an empty observer leaves the pass
// unhandled.
func TestObserver_Trigger_Empty(t *testing.T) {
	svc := compileObserver(newObserver("test", KindMessage))
	req := NewRequest(&fakeBot{}, messageUpdate(1, "hi"))

	resp, err := svc.Trigger(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, Unhandled, resp.Result)
	assert.Nil(t, resp.Handler)
	assert.True(t, resp.Request.Same(req))
}

// TestObserver_Trigger_FirstMatchWins verifies entries run in registration
// order and the first finishing entry resolves the pass.
func TestObserver_Trigger_FirstMatchWins(t *testing.T) {
	log := &callLog{}
	obs := newObserver("test", KindMessage)
	obs.Register(loggedHandler(log, "h1", Finish))
	obs.Register(loggedHandler(log, "h2", Finish))

	resp, err := compileObserver(obs).Trigger(context.Background(), NewRequest(&fakeBot{}, messageUpdate(1, "hi")))
	require.NoError(t, err)
	assert.Equal(t, Handled, resp.Result)
	require.NotNil(t, resp.Handler)
	assert.Equal(t, Finish, resp.Handler.Return)
	assert.Equal(t, []string{"h1"}, log.snapshot())
}

// TestObserver_Trigger_FilterMiss verifies a failing entry filter moves on
// to the next entry.
func TestObserver_Trigger_FilterMiss(t *testing.T) {
	log := &callLog{}
	obs := newObserver("test", KindMessage)
	obs.Register(loggedHandler(log, "h1", Finish), failFilter(log, "f1"))
	obs.Register(loggedHandler(log, "h2", Finish), passFilter(log, "f2"))

	resp, err := compileObserver(obs).Trigger(context.Background(), NewRequest(&fakeBot{}, messageUpdate(1, "hi")))
	require.NoError(t, err)
	assert.Equal(t, Handled, resp.Result)
	assert.Equal(t, []string{"f1", "f2", "h2"}, log.snapshot())
}

// TestObserver_Trigger_Skip verifies a Skip verdict falls through to the
// next entry with the same request.
func TestObserver_Trigger_Skip(t *testing.T) {
	log := &callLog{}
	var first, second Request
	obs := newObserver("test", KindMessage)
	obs.Register(HandlerFunc(func(_ context.Context, req Request) (EventReturn, error) {
		log.add("h1")
		first = req
		return Skip, nil
	}))
	obs.Register(HandlerFunc(func(_ context.Context, req Request) (EventReturn, error) {
		log.add("h2")
		second = req
		return Finish, nil
	}))

	req := NewRequest(&fakeBot{}, messageUpdate(1, "hi"))
	resp, err := compileObserver(obs).Trigger(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, Handled, resp.Result)
	assert.Equal(t, []string{"h1", "h2"}, log.snapshot())
	assert.True(t, first.Same(req))
	assert.True(t, second.Same(req))
}

// TestObserver_Trigger_AllSkip verifies a pass where every entry skips is
// unhandled.
func TestObserver_Trigger_AllSkip(t *testing.T) {
	log := &callLog{}
	obs := newObserver("test", KindMessage)
	obs.Register(loggedHandler(log, "h1", Skip))
	obs.Register(loggedHandler(log, "h2", Skip))

	resp, err := compileObserver(obs).Trigger(context.Background(), NewRequest(&fakeBot{}, messageUpdate(1, "hi")))
	require.NoError(t, err)
	assert.Equal(t, Unhandled, resp.Result)
	assert.Equal(t, []string{"h1", "h2"}, log.snapshot())
}

// TestObserver_Trigger_Cancel verifies a Cancel verdict resolves the pass
// as handled without running later entries.
func TestObserver_Trigger_Cancel(t *testing.T) {
	log := &callLog{}
	obs := newObserver("test", KindMessage)
	obs.Register(loggedHandler(log, "h1", Cancel))
	obs.Register(loggedHandler(log, "h2", Finish))

	resp, err := compileObserver(obs).Trigger(context.Background(), NewRequest(&fakeBot{}, messageUpdate(1, "hi")))
	require.NoError(t, err)
	assert.Equal(t, Handled, resp.Result)
	require.NotNil(t, resp.Handler)
	assert.Equal(t, Cancel, resp.Handler.Return)
	assert.Equal(t, []string{"h1"}, log.snapshot())
}

// TestObserver_Trigger_Error verifies a handler error aborts the pass.
func TestObserver_Trigger_Error(t *testing.T) {
	log := &callLog{}
	boom := errors.New("boom")
	obs := newObserver("test", KindMessage)
	obs.Register(HandlerFunc(func(context.Context, Request) (EventReturn, error) {
		return Finish, boom
	}))
	obs.Register(loggedHandler(log, "h2", Finish))

	_, err := compileObserver(obs).Trigger(context.Background(), NewRequest(&fakeBot{}, messageUpdate(1, "hi")))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	var herr *HandlerError
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, "test", herr.Router)
	assert.Equal(t, KindMessage, herr.Kind)
	assert.Empty(t, log.snapshot())
}

// TestObserver_Trigger_CommonFilters verifies observer-wide filters gate
// every entry and run once per trigger.
func TestObserver_Trigger_CommonFilters(t *testing.T) {
	log := &callLog{}
	obs := newObserver("test", KindMessage)
	obs.Filter(failFilter(log, "common"))
	obs.Register(loggedHandler(log, "h1", Finish))
	obs.Register(loggedHandler(log, "h2", Finish))

	resp, err := compileObserver(obs).Trigger(context.Background(), NewRequest(&fakeBot{}, messageUpdate(1, "hi")))
	require.NoError(t, err)
	assert.Equal(t, Unhandled, resp.Result)
	// Common filter ran once, no entries ran.
	assert.Equal(t, []string{"common"}, log.snapshot())
}

// TestObserver_Trigger_InnerMiddleware verifies the inner chain wraps every
// entry with first-registered outermost.
func TestObserver_Trigger_InnerMiddleware(t *testing.T) {
	log := &callLog{}
	obs := newObserver("test", KindMessage)
	obs.Inner(loggedInner(log, "m1"), loggedInner(log, "m2"))
	obs.Register(loggedHandler(log, "h", Finish))

	resp, err := compileObserver(obs).Trigger(context.Background(), NewRequest(&fakeBot{}, messageUpdate(1, "hi")))
	require.NoError(t, err)
	assert.Equal(t, Handled, resp.Result)
	assert.Equal(t, []string{
		"m1:before", "m2:before", "h", "m2:after", "m1:after",
	}, log.snapshot())
}

// TestObserver_Trigger_InnerMiddlewareSkip verifies a middleware Skip
// verdict falls through to the next entry.
func TestObserver_Trigger_InnerMiddlewareSkip(t *testing.T) {
	log := &callLog{}
	skipOnce := true
	obs := newObserver("test", KindMessage)
	obs.Inner(InnerMiddlewareFunc(func(ctx context.Context, req Request, next Next) (EventReturn, error) {
		if skipOnce {
			skipOnce = false
			return Skip, nil
		}
		return next(ctx, req)
	}))
	obs.Register(loggedHandler(log, "h1", Finish))
	obs.Register(loggedHandler(log, "h2", Finish))

	resp, err := compileObserver(obs).Trigger(context.Background(), NewRequest(&fakeBot{}, messageUpdate(1, "hi")))
	require.NoError(t, err)
	assert.Equal(t, Handled, resp.Result)
	// First entry was skipped by middleware, second ran.
	assert.Equal(t, []string{"h2"}, log.snapshot())
}

// TestObserver_CompileSnapshot verifies later builder registrations do not
// leak into an already compiled service.
func TestObserver_CompileSnapshot(t *testing.T) {
	log := &callLog{}
	obs := newObserver("test", KindMessage)
	obs.Register(loggedHandler(log, "h1", Skip))

	svc := compileObserver(obs)
	obs.Register(loggedHandler(log, "h2", Finish))

	resp, err := svc.Trigger(context.Background(), NewRequest(&fakeBot{}, messageUpdate(1, "hi")))
	require.NoError(t, err)
	assert.Equal(t, Unhandled, resp.Result)
	assert.Equal(t, []string{"h1"}, log.snapshot())
	assert.Equal(t, 1, svc.Len())
}
