package telroute

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestAll verifies conjunctive combination and short-circuit.
func TestAll(t *testing.T) {
	log := &callLog{}
	req := NewRequest(&fakeBot{}, messageUpdate(1, "hi"))

	// Empty conjunction passes.
	assert.True(t, All().Check(context.Background(), req))

	assert.True(t, All(passFilter(log, "a"), passFilter(log, "b")).Check(context.Background(), req))
	assert.Equal(t, []string{"a", "b"}, log.snapshot())

	log = &callLog{}
	assert.False(t, All(failFilter(log, "a"), passFilter(log, "b")).Check(context.Background(), req))
	// "b" must not run after "a" failed.
	assert.Equal(t, []string{"a"}, log.snapshot())
}

// TestAny verifies disjunctive combination and short-circuit.
func TestAny(t *testing.T) {
	log := &callLog{}
	req := NewRequest(&fakeBot{}, messageUpdate(1, "hi"))

	// Empty disjunction never passes.
	assert.False(t, Any().Check(context.Background(), req))

	assert.True(t, Any(passFilter(log, "a"), failFilter(log, "b")).Check(context.Background(), req))
	assert.Equal(t, []string{"a"}, log.snapshot())

	log = &callLog{}
	assert.True(t, Any(failFilter(log, "a"), passFilter(log, "b")).Check(context.Background(), req))
	assert.Equal(t, []string{"a", "b"}, log.snapshot())

	log = &callLog{}
	assert.False(t, Any(failFilter(log, "a"), failFilter(log, "b")).Check(context.Background(), req))
}

// TestInvert verifies negation.
func TestInvert(t *testing.T) {
	log := &callLog{}
	req := NewRequest(&fakeBot{}, messageUpdate(1, "hi"))

	assert.False(t, Invert(passFilter(log, "a")).Check(context.Background(), req))
	assert.True(t, Invert(failFilter(log, "b")).Check(context.Background(), req))
}

// TestFilter_ContextAnnotation verifies filters can annotate the shared
// Context for later stages.
func TestFilter_ContextAnnotation(t *testing.T) {
	req := NewRequest(&fakeBot{}, messageUpdate(1, "hi"))
	annotate := FilterFunc(func(_ context.Context, req Request) bool {
		req.Context.Set("seen", true)
		return true
	})

	assert.True(t, annotate.Check(context.Background(), req))
	seen, ok := TypedValue[bool](req.Context, "seen")
	assert.True(t, ok)
	assert.True(t, seen)
}
