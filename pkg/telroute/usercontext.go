package telroute

import "context"

// Context keys populated by UserContext.
const (
	ContextKeyUser = "event_user"
	ContextKeyChat = "event_chat"
)

// UserContext is outer middleware that lifts the update's originating user
// and chat into the request Context, under ContextKeyUser and
// ContextKeyChat. Updates without a user or chat leave the corresponding
// key unset. It is installed on the pre-dispatch observer by DefaultConfig.
type UserContext struct{}

// NewUserContext returns the middleware.
func NewUserContext() UserContext { return UserContext{} }

// Call annotates the request Context and always finishes.
func (UserContext) Call(_ context.Context, req Request) (Request, EventReturn, error) {
	if user := req.Update.From(); user != nil {
		req.Context.Set(ContextKeyUser, user)
	}
	if chat := req.Update.Chat(); chat != nil {
		req.Context.Set(ContextKeyChat, chat)
	}
	return req, Finish, nil
}

// EventUser returns the user stored by UserContext, if any.
func EventUser(c *Context) (*User, bool) {
	return TypedValue[*User](c, ContextKeyUser)
}

// EventChat returns the chat stored by UserContext, if any.
func EventChat(c *Context) (*Chat, bool) {
	return TypedValue[*Chat](c, ContextKeyChat)
}
