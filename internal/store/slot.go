// Package store holds the persistent key-value slot abstraction the todo
// list is written through, plus the codec for the stored value.
package store

import "sync"

// DefaultKey is the well-known slot the todo list lives under.
const DefaultKey = "todos"

// Slot is a key-value store of whole serialized values. A value is always
// read and overwritten wholesale; there are no partial writes.
type Slot interface {
	// Get returns the value stored under key. ok is false when the key has
	// never been written.
	Get(key string) (value []byte, ok bool, err error)
	// Set overwrites the value stored under key.
	Set(key string, value []byte) error
}

// Memory is a thread-safe in-process Slot. Nothing survives the process.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

var _ Slot = (*Memory)(nil)

// NewMemory creates an empty in-memory slot store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// Get retrieves a copy of the value stored under key.
func (m *Memory) Get(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Set stores a copy of value under key.
func (m *Memory) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

// Len returns the number of keys written.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
