package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"
	"github.com/productadvisor/backend/internal/domain"
)

// FileStore keeps every key in one JSON document on disk.
// Writes go to a temp file in the same directory followed by a rename,
// so a crash mid-write leaves the previous document in place.
type FileStore struct {
	path  string
	mutex sync.Mutex
}

// NewFileStore creates a store backed by the JSON document at path,
// creating the parent directory if needed
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("file store path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileStore{path: path}, nil
}

// Get returns the value for key, or domain.ErrKeyNotFound
func (s *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	doc, err := s.readDocument()
	if err != nil {
		return nil, err
	}
	value, ok := doc[key]
	if !ok {
		return nil, domain.ErrKeyNotFound
	}
	return []byte(value), nil
}

// Set replaces the value for key
func (s *FileStore) Set(ctx context.Context, key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("file store: value for %q is not valid JSON", key)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	doc, err := s.readDocument()
	if err != nil {
		return err
	}
	doc[key] = json.RawMessage(append([]byte(nil), value...))
	return s.writeDocument(doc)
}

// Delete removes key from the document
func (s *FileStore) Delete(ctx context.Context, key string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	doc, err := s.readDocument()
	if err != nil {
		return err
	}
	if _, ok := doc[key]; !ok {
		return nil
	}
	delete(doc, key)
	return s.writeDocument(doc)
}

// Close is a no-op; every write is flushed before returning
func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) readDocument() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string]json.RawMessage), nil
	}
	if err != nil {
		return nil, fmt.Errorf("file store: read %s: %w", s.path, err)
	}
	if len(data) == 0 {
		return make(map[string]json.RawMessage), nil
	}

	doc := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("file store: decode %s: %w", s.path, err)
	}
	return doc, nil
}

func (s *FileStore) writeDocument(doc map[string]json.RawMessage) error {
	encoded, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("file store: encode: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".kv-*.tmp")
	if err != nil {
		return fmt.Errorf("file store: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(append(encoded, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("file store: write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("file store: sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("file store: close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("file store: replace %s: %w", s.path, err)
	}
	return nil
}
