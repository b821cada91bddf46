package storage

import (
	"context"
	"sync"

	"github.com/productadvisor/backend/internal/domain"
)

// MemoryStore is a process-local KeyValueStore used for tests and ephemeral runs
type MemoryStore struct {
	data  map[string][]byte
	mutex sync.RWMutex
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Get returns a copy of the value stored under key
func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	value, ok := s.data[key]
	if !ok {
		return nil, domain.ErrKeyNotFound
	}
	return append([]byte(nil), value...), nil
}

// Set stores a copy of value under key
func (s *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.data[key] = append([]byte(nil), value...)
	return nil
}

// Delete removes key; deleting a missing key is not an error
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.data, key)
	return nil
}

// Close is a no-op
func (s *MemoryStore) Close() error {
	return nil
}
