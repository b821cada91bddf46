// Package storage provides the durable key-value backends behind the favorites store.
package storage

import (
	"fmt"

	"github.com/productadvisor/backend/internal/domain"
)

// Backend names accepted by Open
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Open returns the KeyValueStore for backend, rooted at path
func Open(backend, path string) (domain.KeyValueStore, error) {
	switch backend {
	case BackendFile:
		return NewFileStore(path)
	case BackendSQLite:
		return NewSQLiteStore(SQLiteConfig{Path: path})
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
