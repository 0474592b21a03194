// Package memory provides an in-process slot backend, used by tests and
// the "memory" store driver.
package memory

import (
	"context"
	"sync"
)

// Slots keeps every slot in a map guarded by a mutex.
type Slots struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewSlots creates an empty in-memory backend.
func NewSlots() *Slots {
	return &Slots{data: make(map[string][]byte)}
}

func (m *Slots) Load(_ context.Context, name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.data[name]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), data...), nil
}

func (m *Slots) Mutate(_ context.Context, name string, fn func([]byte) ([]byte, error)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	out, err := fn(m.data[name])
	if err != nil {
		return err
	}
	m.data[name] = out
	return nil
}

// Put overwrites a slot with raw bytes.
func (m *Slots) Put(name string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[name] = data
}

func (m *Slots) Ping(context.Context) error { return nil }
