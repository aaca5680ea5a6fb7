// Package storage defines the synchronous key-value slot that persisted
// blobs live in, plus an in-memory implementation.
//
// Backends live in subpackages: jsonstore keeps one file per key in a
// directory, sqlitestore keeps a kv table in a SQLite database.
package storage

import (
	"errors"
	"sync"
)

// ErrClosed is returned by backends used after Close.
var ErrClosed = errors.New("storage: closed")

// KV is a synchronous string key-value store, shaped after the browser's
// localStorage: a missing key is not an error.
type KV interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)
	// Set replaces the value stored under key.
	Set(key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
	// Close releases any resources held by the store.
	Close() error
}

// Memory is a process-local KV.
type Memory struct {
	mu     sync.RWMutex
	data   map[string]string
	closed bool
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return "", false, ErrClosed
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.data[key] = value
	return nil
}

func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	delete(m.data, key)
	return nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
