package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpenCreatesSchema(t *testing.T) {
	store := newTestStore(t)

	// Reopening the same file must not fail on existing tables.
	again, err := Open(store.dbPath)
	require.NoError(t, err)
	require.NoError(t, again.Close())
}

func TestOpenBadPath(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing", "nested", "catalog.db"))
	require.Error(t, err)
}

func mustAddBook(t *testing.T, store *Store, book Book) int64 {
	t.Helper()
	id, err := store.AddBook(context.Background(), book)
	require.NoError(t, err)
	return id
}

func iptr(v int) *int { return &v }
