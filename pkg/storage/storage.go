// Package storage provides byte-array key/value stores, used to
// persist battery-backed cartridge RAM between sessions.
package storage

import (
	"errors"
	"sync"
)

// ErrNotFound is returned by Get when nothing is stored under the key.
var ErrNotFound = errors.New("storage: key not found")

// KeyValueStore stores byte arrays by string key.
type KeyValueStore interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// Memory is a KeyValueStore held in memory.
type Memory struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// Get returns a copy of the value stored under key.
func (m *Memory) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Set stores a copy of value under key.
func (m *Memory) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = append([]byte(nil), value...)
	return nil
}
