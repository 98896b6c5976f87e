package fsm

import "sync"

// MemoryStorage keeps state and data in process memory.
// State is lost on restart; suitable for tests and single-instance bots.
type MemoryStorage struct {
	mu     sync.RWMutex
	states map[StorageKey]string
	data   map[StorageKey]map[string]string
	closed bool
}

// NewMemoryStorage creates an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		states: make(map[StorageKey]string),
		data:   make(map[StorageKey]map[string]string),
	}
}

// SetState implements Storage.
func (s *MemoryStorage) SetState(key StorageKey, state string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStorageClosed
	}
	s.states[key] = state
	return nil
}

// State implements Storage.
func (s *MemoryStorage) State(key StorageKey) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return "", ErrStorageClosed
	}
	state, ok := s.states[key]
	if !ok {
		return "", ErrNoState
	}
	return state, nil
}

// RemoveState implements Storage.
func (s *MemoryStorage) RemoveState(key StorageKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStorageClosed
	}
	delete(s.states, key)
	return nil
}

// SetData implements Storage.
func (s *MemoryStorage) SetData(key StorageKey, data map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStorageClosed
	}
	copied := make(map[string]string, len(data))
	for k, v := range data {
		copied[k] = v
	}
	s.data[key] = copied
	return nil
}

// Data implements Storage.
func (s *MemoryStorage) Data(key StorageKey) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStorageClosed
	}
	stored := s.data[key]
	out := make(map[string]string, len(stored))
	for k, v := range stored {
		out[k] = v
	}
	return out, nil
}

// RemoveData implements Storage.
func (s *MemoryStorage) RemoveData(key StorageKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStorageClosed
	}
	delete(s.data, key)
	return nil
}

// Close implements Storage.
func (s *MemoryStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}
