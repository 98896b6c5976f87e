package telroute

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestEventReturn_ZeroValue verifies the default verdict is Finish.
func TestEventReturn_ZeroValue(t *testing.T) {
	var ret EventReturn
	assert.Equal(t, Finish, ret)
}

// TestEventReturn_String covers the verdict names.
func TestEventReturn_String(t *testing.T) {
	assert.Equal(t, "finish", Finish.String())
	assert.Equal(t, "skip", Skip.String())
	assert.Equal(t, "cancel", Cancel.String())
	assert.Equal(t, "event_return(42)", EventReturn(42).String())
}

// TestToEventReturn verifies non-verdict values convert to Finish.
func TestToEventReturn(t *testing.T) {
	testCases := []struct {
		name string
		in   any
		want EventReturn
	}{
		{"finish", Finish, Finish},
		{"skip", Skip, Skip},
		{"cancel", Cancel, Cancel},
		{"nil", nil, Finish},
		{"string", "done", Finish},
		{"int", 3, Finish},
		{"struct", struct{}{}, Finish},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ToEventReturn(tc.in))
		})
	}
}

// TestPropagateResult_ZeroValue verifies the default result is Unhandled.
func TestPropagateResult_ZeroValue(t *testing.T) {
	var res PropagateResult
	assert.Equal(t, Unhandled, res)
}

// TestPropagateResult_String covers the result names.
func TestPropagateResult_String(t *testing.T) {
	assert.Equal(t, "unhandled", Unhandled.String())
	assert.Equal(t, "rejected", Rejected.String())
	assert.Equal(t, "handled", Handled.String())
}

// TestUpdateKind_Valid verifies every real kind validates and the
// synthetic pre-dispatch kind does not.
func TestUpdateKind_Valid(t *testing.T) {
	for _, k := range Kinds() {
		assert.True(t, k.Valid(), k.String())
	}
	assert.False(t, KindUpdate.Valid())
	assert.False(t, UpdateKind("bogus").Valid())
}

// TestKinds verifies the canonical kind list is complete and stable.
func TestKinds(t *testing.T) {
	kinds := Kinds()
	assert.Len(t, kinds, 14)
	assert.Equal(t, KindMessage, kinds[0])
	assert.Equal(t, KindChatJoinRequest, kinds[len(kinds)-1])

	seen := make(map[UpdateKind]bool)
	for _, k := range kinds {
		assert.False(t, seen[k], "duplicate kind %s", k)
		seen[k] = true
	}
}
