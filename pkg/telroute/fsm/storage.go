// Package fsm provides finite-state-machine state and data storage for
// multi-step conversations.
package fsm

import "errors"

// Storage persists conversation state and data per storage key.
// Implementations must be safe for concurrent use.
type Storage interface {
	// SetState stores the current state for a key, replacing any previous
	// state.
	SetState(key StorageKey, state string) error

	// State retrieves the current state for a key.
	// Returns ErrNoState if no state is set.
	State(key StorageKey) (string, error)

	// RemoveState clears the state for a key.
	// Returns nil if no state was set.
	RemoveState(key StorageKey) error

	// SetData stores arbitrary conversation data for a key, replacing any
	// previous data.
	SetData(key StorageKey, data map[string]string) error

	// Data retrieves the conversation data for a key.
	// Returns an empty map (not an error) if no data is set.
	Data(key StorageKey) (map[string]string, error)

	// RemoveData clears the conversation data for a key.
	// Returns nil if no data was set.
	RemoveData(key StorageKey) error

	// Close releases any resources (connections, files).
	Close() error
}

// StorageKey addresses one conversation's state. Destiny separates
// independent state machines sharing one storage.
type StorageKey struct {
	BotID   int64
	ChatID  int64
	UserID  int64
	Destiny string
}

// DefaultDestiny is used when no destiny is configured.
const DefaultDestiny = "default"

// Sentinel errors for storage operations.
var (
	// ErrNoState indicates no state is set for the key.
	ErrNoState = errors.New("fsm: no state set")

	// ErrStorageClosed indicates the storage has been closed.
	ErrStorageClosed = errors.New("fsm: storage closed")
)
