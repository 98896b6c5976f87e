package fsm

// Strategy decides which identifiers scope a conversation's state.
type Strategy int

const (
	// StrategyUserInChat keys state by bot, chat and user: the same user
	// has independent conversations in different chats.
	StrategyUserInChat Strategy = iota
	// StrategyChat keys state by bot and chat: all users in a chat share
	// one conversation.
	StrategyChat
	// StrategyGlobalUser keys state by bot and user: a user has one
	// conversation across all chats.
	StrategyGlobalUser
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategyUserInChat:
		return "user_in_chat"
	case StrategyChat:
		return "chat"
	case StrategyGlobalUser:
		return "global_user"
	default:
		return "unknown"
	}
}

// Key builds the StorageKey for the strategy. Identifiers the strategy
// does not use are zeroed so equal conversations map to equal keys.
func (s Strategy) Key(botID, chatID, userID int64, destiny string) StorageKey {
	if destiny == "" {
		destiny = DefaultDestiny
	}
	switch s {
	case StrategyChat:
		return StorageKey{BotID: botID, ChatID: chatID, Destiny: destiny}
	case StrategyGlobalUser:
		return StorageKey{BotID: botID, UserID: userID, Destiny: destiny}
	default:
		return StorageKey{BotID: botID, ChatID: chatID, UserID: userID, Destiny: destiny}
	}
}
