package fsm

// FSMContext binds a Storage to one conversation's key, so handlers can
// move the conversation through states without rebuilding the key.
type FSMContext struct {
	storage Storage
	key     StorageKey
}

// NewFSMContext binds storage to key.
func NewFSMContext(storage Storage, key StorageKey) *FSMContext {
	return &FSMContext{storage: storage, key: key}
}

// Key returns the bound storage key.
func (c *FSMContext) Key() StorageKey { return c.key }

// SetState moves the conversation to state.
func (c *FSMContext) SetState(state string) error {
	return c.storage.SetState(c.key, state)
}

// State returns the current state, or ErrNoState.
func (c *FSMContext) State() (string, error) {
	return c.storage.State(c.key)
}

// SetData replaces the conversation data.
func (c *FSMContext) SetData(data map[string]string) error {
	return c.storage.SetData(c.key, data)
}

// Data returns the conversation data.
func (c *FSMContext) Data() (map[string]string, error) {
	return c.storage.Data(c.key)
}

// UpdateData merges patch into the stored data.
func (c *FSMContext) UpdateData(patch map[string]string) error {
	data, err := c.storage.Data(c.key)
	if err != nil {
		return err
	}
	for k, v := range patch {
		data[k] = v
	}
	return c.storage.SetData(c.key, data)
}

// Finish clears the conversation's state and data.
func (c *FSMContext) Finish() error {
	if err := c.storage.RemoveState(c.key); err != nil {
		return err
	}
	return c.storage.RemoveData(c.key)
}
