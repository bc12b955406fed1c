package kv

import (
	"context"
	"sync"
)

// Memory is a map-backed Store for tests and the dev driver. It serializes
// individual key operations the same way the real store does.
type Memory struct {
	mu   sync.Mutex
	data map[string]string

	// FailGet, FailSet and FailDel inject faults for storage-layer tests.
	FailGet func(key string) error
	FailSet func(key string) error
	FailDel func(keys []string) error
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailGet != nil {
		if err := m.FailGet(key); err != nil {
			return "", false, err
		}
	}
	value, ok := m.data[key]
	return value, ok, nil
}

func (m *Memory) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSet != nil {
		if err := m.FailSet(key); err != nil {
			return err
		}
	}
	m.data[key] = value
	return nil
}

func (m *Memory) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailDel != nil {
		if err := m.FailDel(keys); err != nil {
			return err
		}
	}
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

// Snapshot copies the current contents, for byte-level assertions in tests.
func (m *Memory) Snapshot() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := make(map[string]string, len(m.data))
	for k, v := range m.data {
		copied[k] = v
	}
	return copied
}

// Len reports the number of stored keys.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}
