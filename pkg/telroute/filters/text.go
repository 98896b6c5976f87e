package filters

import (
	"context"
	"regexp"
	"strings"

	"github.com/telroute/telroute/pkg/telroute"
)

// Text matches against the message text or caption. Exactly one matching
// mode is active per filter; constructors pick the mode.
type Text struct {
	match      func(text string) bool
	ignoreCase bool
}

func newText(ignoreCase bool, match func(text string) bool) *Text {
	return &Text{match: match, ignoreCase: ignoreCase}
}

func normalize(s string, ignoreCase bool) string {
	if ignoreCase {
		return strings.ToLower(s)
	}
	return s
}

// TextEquals matches text exactly equal to want.
func TextEquals(want string, ignoreCase bool) *Text {
	want = normalize(want, ignoreCase)
	return newText(ignoreCase, func(text string) bool { return text == want })
}

// TextContains matches text containing sub.
func TextContains(sub string, ignoreCase bool) *Text {
	sub = normalize(sub, ignoreCase)
	return newText(ignoreCase, func(text string) bool { return strings.Contains(text, sub) })
}

// TextStartsWith matches text starting with prefix.
func TextStartsWith(prefix string, ignoreCase bool) *Text {
	prefix = normalize(prefix, ignoreCase)
	return newText(ignoreCase, func(text string) bool { return strings.HasPrefix(text, prefix) })
}

// TextEndsWith matches text ending with suffix.
func TextEndsWith(suffix string, ignoreCase bool) *Text {
	suffix = normalize(suffix, ignoreCase)
	return newText(ignoreCase, func(text string) bool { return strings.HasSuffix(text, suffix) })
}

// TextMatches matches text against a regexp.
func TextMatches(re *regexp.Regexp) *Text {
	return newText(false, re.MatchString)
}

// Check implements telroute.Filter. Updates without message text or
// caption never match.
func (t *Text) Check(_ context.Context, req telroute.Request) bool {
	msg := req.Update.Msg()
	if msg == nil {
		return false
	}
	text := msg.TextOrCaption()
	if text == "" {
		return false
	}
	return t.match(normalize(text, t.ignoreCase))
}
