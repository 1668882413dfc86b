package storage

import (
	"maps"
	"slices"
	"strconv"
	"sync"
	"time"
)

// Memory is an in-process KV. It backs tests and stands in for the database
// when the file cannot be opened.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

var _ KV = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]Entry)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[key]
	return e.Value, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = Entry{Key: key, Value: value, UpdatedAt: time.Now()}
	return nil
}

func (m *Memory) SetMax(key string, value int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.entries[key]; ok && parseInt(e.Value) >= value {
		return parseInt(e.Value), nil
	}
	m.entries[key] = Entry{Key: key, Value: strconv.Itoa(value), UpdatedAt: time.Now()}
	return value, nil
}

func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

func (m *Memory) List() ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Entry, 0, len(m.entries))
	for _, k := range slices.Sorted(maps.Keys(m.entries)) {
		out = append(out, m.entries[k])
	}
	return out, nil
}

func (m *Memory) Close() error { return nil }
