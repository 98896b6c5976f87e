package telroute

// Request bundles everything one update's propagation pass needs: the
// outbound client, the update itself, and the per-update Context.
//
// Requests are small values passed by copy, but their fields are shared by
// reference: two Requests are the same request when Bot, Update and Context
// are all identical pointers. Outer middleware that wants a different
// request replaces it wholesale rather than mutating in place.
type Request struct {
	Bot     Client
	Update  *Update
	Context *Context
}

// NewRequest builds a Request with a fresh Context.
func NewRequest(bot Client, update *Update) Request {
	return Request{Bot: bot, Update: update, Context: NewContext()}
}

// Same reports identity equality: both requests reference the same client,
// update and context.
func (r Request) Same(other Request) bool {
	return r.Bot == other.Bot && r.Update == other.Update && r.Context == other.Context
}
