package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/productadvisor/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backends opens every store implementation against a fresh temp dir
func backends(t *testing.T) map[string]func() domain.KeyValueStore {
	dir := t.TempDir()
	return map[string]func() domain.KeyValueStore{
		BackendMemory: func() domain.KeyValueStore { return NewMemoryStore() },
		BackendFile: func() domain.KeyValueStore {
			s, err := NewFileStore(filepath.Join(dir, "file", "favorites.json"))
			require.NoError(t, err)
			return s
		},
		BackendSQLite: func() domain.KeyValueStore {
			s, err := NewSQLiteStore(SQLiteConfig{Path: filepath.Join(dir, "favorites.db")})
			require.NoError(t, err)
			return s
		},
	}
}

func TestKeyValueStore_Contract(t *testing.T) {
	ctx := context.Background()

	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			store := open()
			defer store.Close()

			_, err := store.Get(ctx, "missing")
			assert.ErrorIs(t, err, domain.ErrKeyNotFound)

			require.NoError(t, store.Set(ctx, "favorites", []byte(`[{"id":1}]`)))
			got, err := store.Get(ctx, "favorites")
			require.NoError(t, err)
			assert.JSONEq(t, `[{"id":1}]`, string(got))

			require.NoError(t, store.Set(ctx, "favorites", []byte(`[]`)))
			got, err = store.Get(ctx, "favorites")
			require.NoError(t, err)
			assert.JSONEq(t, `[]`, string(got))

			require.NoError(t, store.Delete(ctx, "favorites"))
			_, err = store.Get(ctx, "favorites")
			assert.ErrorIs(t, err, domain.ErrKeyNotFound)

			assert.NoError(t, store.Delete(ctx, "favorites"), "deleting a missing key is not an error")
		})
	}
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kv.json")

	first, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "favorites", []byte(`[{"id":3}]`)))

	second, err := NewFileStore(path)
	require.NoError(t, err)
	got, err := second.Get(ctx, "favorites")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":3}]`, string(got))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileStore_CorruptDocumentIsNotOverwritten(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kv.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store, err := NewFileStore(path)
	require.NoError(t, err)

	_, err = store.Get(ctx, "favorites")
	assert.Error(t, err)

	assert.Error(t, store.Set(ctx, "favorites", []byte(`[]`)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(data))
}

func TestFileStore_RejectsNonJSONValue(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "kv.json"))
	require.NoError(t, err)

	assert.Error(t, store.Set(context.Background(), "favorites", []byte("plain text")))
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kv.db")

	first, err := NewSQLiteStore(SQLiteConfig{Path: path})
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "favorites", []byte(`[{"id":9}]`)))
	require.NoError(t, first.Close())

	second, err := NewSQLiteStore(SQLiteConfig{Path: path})
	require.NoError(t, err)
	defer second.Close()

	got, err := second.Get(ctx, "favorites")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":9}]`, string(got))
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	for _, backend := range []string{BackendFile, BackendSQLite, BackendMemory} {
		t.Run(backend, func(t *testing.T) {
			store, err := Open(backend, filepath.Join(dir, backend+".data"))
			require.NoError(t, err)
			assert.NoError(t, store.Close())
		})
	}

	t.Run("unknown backend", func(t *testing.T) {
		_, err := Open("etcd", dir)
		assert.Error(t, err)
	})
}
