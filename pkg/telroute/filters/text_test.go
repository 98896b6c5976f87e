package filters

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/telroute/telroute/pkg/telroute"
)

// TestText_Modes covers the matching modes.
func TestText_Modes(t *testing.T) {
	testCases := []struct {
		name   string
		filter *Text
		text   string
		want   bool
	}{
		{"equals match", TextEquals("hello", false), "hello", true},
		{"equals miss", TextEquals("hello", false), "hello!", false},
		{"equals case miss", TextEquals("Hello", false), "hello", false},
		{"equals ignore case", TextEquals("Hello", true), "hELLo", true},
		{"contains match", TextContains("ell", false), "hello", true},
		{"contains miss", TextContains("xyz", false), "hello", false},
		{"contains ignore case", TextContains("ELL", true), "hello", true},
		{"starts with match", TextStartsWith("he", false), "hello", true},
		{"starts with miss", TextStartsWith("lo", false), "hello", false},
		{"ends with match", TextEndsWith("lo", false), "hello", true},
		{"ends with miss", TextEndsWith("he", false), "hello", false},
		{"regexp match", TextMatches(regexp.MustCompile(`^\d+$`)), "12345", true},
		{"regexp miss", TextMatches(regexp.MustCompile(`^\d+$`)), "12a45", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := messageRequest(tc.text)
			assert.Equal(t, tc.want, tc.filter.Check(context.Background(), req))
		})
	}
}

// TestText_NoText verifies updates without text or caption never match.
func TestText_NoText(t *testing.T) {
	filter := TextContains("", false)

	req := telroute.NewRequest(&fakeBot{}, &telroute.Update{
		ID:      1,
		Kind:    telroute.KindMessage,
		Message: &telroute.Message{ID: 1},
	})
	assert.False(t, filter.Check(context.Background(), req))

	req = telroute.NewRequest(&fakeBot{}, &telroute.Update{
		ID:   1,
		Kind: telroute.KindPoll,
		Poll: &telroute.Poll{ID: "p"},
	})
	assert.False(t, filter.Check(context.Background(), req))
}

// TestText_Caption verifies captions are matched when there is no text.
func TestText_Caption(t *testing.T) {
	filter := TextEquals("a photo", false)
	req := telroute.NewRequest(&fakeBot{}, &telroute.Update{
		ID:      1,
		Kind:    telroute.KindMessage,
		Message: &telroute.Message{ID: 1, Caption: "a photo"},
	})
	assert.True(t, filter.Check(context.Background(), req))
}
