// Package filters bundles ready-made filters for common routing
// conditions: commands, text matching, and finite-state-machine states.
package filters

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/telroute/telroute/pkg/telroute"
)

// ContextKeyCommand is the Context key under which Command stores the
// parsed CommandObject when the filter passes.
const ContextKeyCommand = "command"

// Command validation errors.
var (
	ErrInvalidPrefix  = errors.New("filters: invalid command prefix")
	ErrInvalidMention = errors.New("filters: invalid bot mention")
	ErrInvalidCommand = errors.New("filters: unknown command")
)

// CommandObject is a command parsed from message text:
// prefix, name, optional bot mention, and the remaining arguments.
type CommandObject struct {
	Command string
	Prefix  string
	Mention string
	Args    []string
}

// ExtractCommand parses text of the form "/name@mention arg1 arg2" into a
// CommandObject. An empty mention ("/name@") is dropped. Text too short to
// carry a prefixed command yields a zero CommandObject.
func ExtractCommand(text string) CommandObject {
	fields := strings.Split(strings.TrimSpace(text), " ")
	full := fields[0]
	if len(full) < 1 {
		return CommandObject{}
	}

	obj := CommandObject{
		Prefix:  full[:1],
		Command: full[1:],
		Args:    fields[1:],
	}
	if name, mention, found := strings.Cut(obj.Command, "@"); found {
		obj.Command = name
		obj.Mention = mention
	}
	return obj
}

// commandPattern matches a command name either literally or by regexp.
type commandPattern struct {
	text string
	re   *regexp.Regexp
}

// Command checks whether a message (or caption) starts with one of the
// configured bot commands. On success the parsed CommandObject is stored
// in the request Context under ContextKeyCommand.
//
// By default the prefix is "/", matching is case sensitive, and a
// "/cmd@mention" form must mention this bot (verified through Client.Me).
type Command struct {
	patterns      []commandPattern
	prefix        string
	ignoreCase    bool
	ignoreMention bool
}

// CommandOption configures a Command filter.
type CommandOption func(*Command)

// WithPrefix changes the expected single-character prefix. Default "/".
func WithPrefix(prefix string) CommandOption {
	return func(c *Command) { c.prefix = prefix }
}

// IgnoreCase makes command-name matching case insensitive.
func IgnoreCase() CommandOption {
	return func(c *Command) { c.ignoreCase = true }
}

// IgnoreMention accepts any "/cmd@mention" form without verifying the
// mention against the bot's username.
func IgnoreMention() CommandOption {
	return func(c *Command) { c.ignoreMention = true }
}

// WithPattern adds a regexp the command name must match.
func WithPattern(re *regexp.Regexp) CommandOption {
	return func(c *Command) { c.patterns = append(c.patterns, commandPattern{re: re}) }
}

// NewCommand builds a Command filter accepting the given command names.
// Names are matched without the prefix ("start", not "/start").
func NewCommand(names []string, opts ...CommandOption) *Command {
	c := &Command{prefix: "/"}
	for _, name := range names {
		c.patterns = append(c.patterns, commandPattern{text: name})
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.ignoreCase {
		for i, p := range c.patterns {
			if p.re != nil {
				c.patterns[i].re = regexp.MustCompile("(?i)" + p.re.String())
			} else {
				c.patterns[i].text = strings.ToLower(p.text)
			}
		}
	}
	return c
}

// NewCommandOne builds a Command filter for a single command name.
func NewCommandOne(name string, opts ...CommandOption) *Command {
	return NewCommand([]string{name}, opts...)
}

// ValidatePrefix checks the parsed prefix against the configured one.
func (c *Command) ValidatePrefix(obj CommandObject) error {
	if obj.Prefix == c.prefix {
		return nil
	}
	return ErrInvalidPrefix
}

// ValidateCommand checks the parsed command name against the configured
// patterns.
func (c *Command) ValidateCommand(obj CommandObject) error {
	name := obj.Command
	if c.ignoreCase {
		name = strings.ToLower(name)
	}
	for _, p := range c.patterns {
		if p.re != nil {
			if p.re.MatchString(name) {
				return nil
			}
		} else if name == p.text {
			return nil
		}
	}
	return ErrInvalidCommand
}

// ValidateMention checks a "/cmd@mention" form against the bot's username.
// Commands without a mention always pass.
func (c *Command) ValidateMention(ctx context.Context, obj CommandObject, bot telroute.Client) error {
	if c.ignoreMention || obj.Mention == "" {
		return nil
	}
	me, err := bot.Me(ctx)
	if err != nil {
		return errors.Join(ErrInvalidMention, err)
	}
	if me == nil || me.Username == "" || me.Username != obj.Mention {
		return ErrInvalidMention
	}
	return nil
}

// ParseCommand extracts and fully validates a command from text.
func (c *Command) ParseCommand(ctx context.Context, text string, bot telroute.Client) (CommandObject, error) {
	obj := ExtractCommand(text)
	if err := c.ValidatePrefix(obj); err != nil {
		return obj, err
	}
	if err := c.ValidateCommand(obj); err != nil {
		return obj, err
	}
	if err := c.ValidateMention(ctx, obj, bot); err != nil {
		return obj, err
	}
	return obj, nil
}

// Check implements telroute.Filter.
func (c *Command) Check(ctx context.Context, req telroute.Request) bool {
	msg := req.Update.Msg()
	if msg == nil {
		return false
	}
	text := msg.TextOrCaption()
	if text == "" {
		return false
	}
	obj, err := c.ParseCommand(ctx, text, req.Bot)
	if err != nil {
		return false
	}
	req.Context.Set(ContextKeyCommand, obj)
	return true
}

// CommandFromContext returns the CommandObject stored by a passing Command
// filter.
func CommandFromContext(c *telroute.Context) (CommandObject, bool) {
	return telroute.TypedValue[CommandObject](c, ContextKeyCommand)
}
