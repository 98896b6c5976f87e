package telroute

import "context"

// UpdateKind is the pre-classified kind of an inbound update.
//
// The transport layer derives the kind from the payload before handing the
// update to the router tree; the engine never re-derives or validates it.
type UpdateKind string

// Update kinds recognized by the router tree.
const (
	KindMessage            UpdateKind = "message"
	KindEditedMessage      UpdateKind = "edited_message"
	KindChannelPost        UpdateKind = "channel_post"
	KindEditedChannelPost  UpdateKind = "edited_channel_post"
	KindInlineQuery        UpdateKind = "inline_query"
	KindChosenInlineResult UpdateKind = "chosen_inline_result"
	KindCallbackQuery      UpdateKind = "callback_query"
	KindShippingQuery      UpdateKind = "shipping_query"
	KindPreCheckoutQuery   UpdateKind = "pre_checkout_query"
	KindPoll               UpdateKind = "poll"
	KindPollAnswer         UpdateKind = "poll_answer"
	KindMyChatMember       UpdateKind = "my_chat_member"
	KindChatMember         UpdateKind = "chat_member"
	KindChatJoinRequest    UpdateKind = "chat_join_request"
)

// KindUpdate is the synthetic observer key for the pre-dispatch "update"
// pass that runs for every inbound update regardless of kind. It is not a
// real update kind: it never appears in Kinds() or in resolved used kinds.
const KindUpdate UpdateKind = "update"

// Kinds returns all real update kinds in their canonical order.
func Kinds() []UpdateKind {
	return []UpdateKind{
		KindMessage,
		KindEditedMessage,
		KindChannelPost,
		KindEditedChannelPost,
		KindInlineQuery,
		KindChosenInlineResult,
		KindCallbackQuery,
		KindShippingQuery,
		KindPreCheckoutQuery,
		KindPoll,
		KindPollAnswer,
		KindMyChatMember,
		KindChatMember,
		KindChatJoinRequest,
	}
}

// Valid reports whether k is one of the real update kinds.
// KindUpdate is not a valid propagation kind.
func (k UpdateKind) Valid() bool {
	switch k {
	case KindMessage, KindEditedMessage, KindChannelPost, KindEditedChannelPost,
		KindInlineQuery, KindChosenInlineResult, KindCallbackQuery,
		KindShippingQuery, KindPreCheckoutQuery, KindPoll, KindPollAnswer,
		KindMyChatMember, KindChatMember, KindChatJoinRequest:
		return true
	}
	return false
}

// String returns the canonical kind name.
func (k UpdateKind) String() string { return string(k) }

// User is a minimal projection of a platform user.
type User struct {
	ID       int64
	Username string
	Name     string
	IsBot    bool
}

// Chat is a minimal projection of a platform chat.
type Chat struct {
	ID    int64
	Type  string
	Title string
}

// Message is a minimal projection of a message-bearing payload.
// Text carries plain text messages; Caption carries media captions.
type Message struct {
	ID      int64
	From    *User
	Chat    *Chat
	Text    string
	Caption string
}

// TextOrCaption returns the message text, falling back to the caption.
// Returns "" when the message carries neither.
func (m *Message) TextOrCaption() string {
	if m == nil {
		return ""
	}
	if m.Text != "" {
		return m.Text
	}
	return m.Caption
}

// CallbackQuery is a minimal projection of a callback-button press.
type CallbackQuery struct {
	ID      string
	From    *User
	Message *Message
	Data    string
}

// InlineQuery is a minimal projection of an inline query.
type InlineQuery struct {
	ID    string
	From  *User
	Query string
}

// ChosenInlineResult is a minimal projection of a chosen inline result.
type ChosenInlineResult struct {
	ResultID string
	From     *User
	Query    string
}

// ShippingQuery is a minimal projection of a shipping query.
type ShippingQuery struct {
	ID   string
	From *User
}

// PreCheckoutQuery is a minimal projection of a pre-checkout query.
type PreCheckoutQuery struct {
	ID   string
	From *User
}

// Poll is a minimal projection of a poll state.
type Poll struct {
	ID       string
	Question string
}

// PollAnswer is a minimal projection of a poll answer.
type PollAnswer struct {
	PollID string
	From   *User
}

// ChatMemberUpdated is a minimal projection of a chat-member change.
type ChatMemberUpdated struct {
	Chat *Chat
	From *User
}

// ChatJoinRequest is a minimal projection of a chat join request.
type ChatJoinRequest struct {
	Chat *Chat
	From *User
}

// Update is one inbound event, pre-tagged with its kind.
//
// Exactly one payload field matching Kind is expected to be set; the engine
// does not enforce this (the transport that classified the update is trusted).
// The payload projections carry only the fields the bundled filters and
// middleware consume — the full wire data model lives outside this module.
type Update struct {
	ID   int64
	Kind UpdateKind

	Message            *Message
	EditedMessage      *Message
	ChannelPost        *Message
	EditedChannelPost  *Message
	InlineQuery        *InlineQuery
	ChosenInlineResult *ChosenInlineResult
	CallbackQuery      *CallbackQuery
	ShippingQuery      *ShippingQuery
	PreCheckoutQuery   *PreCheckoutQuery
	Poll               *Poll
	PollAnswer         *PollAnswer
	MyChatMember       *ChatMemberUpdated
	ChatMember         *ChatMemberUpdated
	ChatJoinRequest    *ChatJoinRequest
}

// From returns the user that originated the update, or nil when the update
// kind has no originating user (e.g. channel posts, polls).
func (u *Update) From() *User {
	if u == nil {
		return nil
	}
	switch u.Kind {
	case KindMessage:
		if u.Message != nil {
			return u.Message.From
		}
	case KindEditedMessage:
		if u.EditedMessage != nil {
			return u.EditedMessage.From
		}
	case KindInlineQuery:
		if u.InlineQuery != nil {
			return u.InlineQuery.From
		}
	case KindChosenInlineResult:
		if u.ChosenInlineResult != nil {
			return u.ChosenInlineResult.From
		}
	case KindCallbackQuery:
		if u.CallbackQuery != nil {
			return u.CallbackQuery.From
		}
	case KindShippingQuery:
		if u.ShippingQuery != nil {
			return u.ShippingQuery.From
		}
	case KindPreCheckoutQuery:
		if u.PreCheckoutQuery != nil {
			return u.PreCheckoutQuery.From
		}
	case KindPollAnswer:
		if u.PollAnswer != nil {
			return u.PollAnswer.From
		}
	case KindMyChatMember:
		if u.MyChatMember != nil {
			return u.MyChatMember.From
		}
	case KindChatMember:
		if u.ChatMember != nil {
			return u.ChatMember.From
		}
	case KindChatJoinRequest:
		if u.ChatJoinRequest != nil {
			return u.ChatJoinRequest.From
		}
	}
	return nil
}

// Chat returns the chat the update belongs to, or nil when the update kind
// is not chat-scoped (e.g. inline queries, polls).
func (u *Update) Chat() *Chat {
	if u == nil {
		return nil
	}
	switch u.Kind {
	case KindMessage:
		if u.Message != nil {
			return u.Message.Chat
		}
	case KindEditedMessage:
		if u.EditedMessage != nil {
			return u.EditedMessage.Chat
		}
	case KindChannelPost:
		if u.ChannelPost != nil {
			return u.ChannelPost.Chat
		}
	case KindEditedChannelPost:
		if u.EditedChannelPost != nil {
			return u.EditedChannelPost.Chat
		}
	case KindCallbackQuery:
		if u.CallbackQuery != nil && u.CallbackQuery.Message != nil {
			return u.CallbackQuery.Message.Chat
		}
	case KindMyChatMember:
		if u.MyChatMember != nil {
			return u.MyChatMember.Chat
		}
	case KindChatMember:
		if u.ChatMember != nil {
			return u.ChatMember.Chat
		}
	case KindChatJoinRequest:
		if u.ChatJoinRequest != nil {
			return u.ChatJoinRequest.Chat
		}
	}
	return nil
}

// Msg returns the message payload matching the update kind, or nil for
// non-message kinds. Callback query messages are not included.
func (u *Update) Msg() *Message {
	if u == nil {
		return nil
	}
	switch u.Kind {
	case KindMessage:
		return u.Message
	case KindEditedMessage:
		return u.EditedMessage
	case KindChannelPost:
		return u.ChannelPost
	case KindEditedChannelPost:
		return u.EditedChannelPost
	}
	return nil
}

// Client is the outbound API handle passed through every Request.
//
// The engine treats it as opaque; the only method it relies on is Me, used
// by filters that validate bot mentions. Handlers and middleware typically
// assert it to the concrete client of the transport in use.
type Client interface {
	// Me returns the bot's own identity. Implementations usually cache it
	// after the first network round-trip.
	Me(ctx context.Context) (*User, error)
}
