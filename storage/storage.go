package storage

import (
	"context"
	"sync"
)

// Storage is a durable key/value medium surviving process restarts
type Storage interface {
	// Get returns value and true when key is present
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// Remove deletes key; removing absent key is not an error
	Remove(ctx context.Context, key string) error
}

type MemoryOption func(*memoryStore)

// WithValue seeds memory store with a value
func WithValue(key, value string) MemoryOption {
	return func(m *memoryStore) {
		m.values[key] = value
	}
}

type memoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func (m *memoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	return value, ok, nil
}

func (m *memoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *memoryStore) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// NewMemory creates in-process storage
func NewMemory(options ...MemoryOption) Storage {
	ret := &memoryStore{values: map[string]string{}}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}
