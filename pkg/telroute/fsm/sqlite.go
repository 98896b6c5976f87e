package fsm

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStorage persists conversation state to SQLite.
// It is suitable for single-process production use.
type SQLiteStorage struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteStorage creates a new SQLite storage.
// The path should be a file path (e.g., "./fsm.db") or ":memory:" for testing.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS fsm_states (
			bot_id INTEGER NOT NULL,
			chat_id INTEGER NOT NULL,
			user_id INTEGER NOT NULL,
			destiny TEXT NOT NULL,
			state TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			PRIMARY KEY (bot_id, chat_id, user_id, destiny)
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create states table: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS fsm_data (
			bot_id INTEGER NOT NULL,
			chat_id INTEGER NOT NULL,
			user_id INTEGER NOT NULL,
			destiny TEXT NOT NULL,
			data BLOB NOT NULL,
			updated_at TEXT NOT NULL,
			PRIMARY KEY (bot_id, chat_id, user_id, destiny)
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create data table: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

// SetState implements Storage.
func (s *SQLiteStorage) SetState(key StorageKey, state string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStorageClosed
	}

	_, err := s.db.Exec(`
		INSERT INTO fsm_states (bot_id, chat_id, user_id, destiny, state, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(bot_id, chat_id, user_id, destiny) DO UPDATE SET
			state = excluded.state,
			updated_at = excluded.updated_at
	`, key.BotID, key.ChatID, key.UserID, key.Destiny, state, now())
	if err != nil {
		return fmt.Errorf("set state: %w", err)
	}
	return nil
}

// State implements Storage.
func (s *SQLiteStorage) State(key StorageKey) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return "", ErrStorageClosed
	}

	var state string
	err := s.db.QueryRow(`
		SELECT state FROM fsm_states
		WHERE bot_id = ? AND chat_id = ? AND user_id = ? AND destiny = ?
	`, key.BotID, key.ChatID, key.UserID, key.Destiny).Scan(&state)

	if err == sql.ErrNoRows {
		return "", ErrNoState
	}
	if err != nil {
		return "", fmt.Errorf("get state: %w", err)
	}
	return state, nil
}

// RemoveState implements Storage.
func (s *SQLiteStorage) RemoveState(key StorageKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStorageClosed
	}

	_, err := s.db.Exec(`
		DELETE FROM fsm_states
		WHERE bot_id = ? AND chat_id = ? AND user_id = ? AND destiny = ?
	`, key.BotID, key.ChatID, key.UserID, key.Destiny)
	if err != nil {
		return fmt.Errorf("remove state: %w", err)
	}
	return nil
}

// SetData implements Storage.
func (s *SQLiteStorage) SetData(key StorageKey, data map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStorageClosed
	}

	blob, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode data: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO fsm_data (bot_id, chat_id, user_id, destiny, data, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(bot_id, chat_id, user_id, destiny) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at
	`, key.BotID, key.ChatID, key.UserID, key.Destiny, blob, now())
	if err != nil {
		return fmt.Errorf("set data: %w", err)
	}
	return nil
}

// Data implements Storage.
func (s *SQLiteStorage) Data(key StorageKey) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStorageClosed
	}

	var blob []byte
	err := s.db.QueryRow(`
		SELECT data FROM fsm_data
		WHERE bot_id = ? AND chat_id = ? AND user_id = ? AND destiny = ?
	`, key.BotID, key.ChatID, key.UserID, key.Destiny).Scan(&blob)

	if err == sql.ErrNoRows {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get data: %w", err)
	}

	var data map[string]string
	if err := json.Unmarshal(blob, &data); err != nil {
		return nil, fmt.Errorf("decode data: %w", err)
	}
	if data == nil {
		data = map[string]string{}
	}
	return data, nil
}

// RemoveData implements Storage.
func (s *SQLiteStorage) RemoveData(key StorageKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStorageClosed
	}

	_, err := s.db.Exec(`
		DELETE FROM fsm_data
		WHERE bot_id = ? AND chat_id = ? AND user_id = ? AND destiny = ?
	`, key.BotID, key.ChatID, key.UserID, key.Destiny)
	if err != nil {
		return fmt.Errorf("remove data: %w", err)
	}
	return nil
}

// Close implements Storage.
func (s *SQLiteStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
