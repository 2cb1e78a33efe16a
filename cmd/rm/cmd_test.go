package rm

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelfdex/internal/catalog"
)

func setupRmStore(t *testing.T) *catalog.Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "catalog.db")
	store, err := catalog.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	orig := openStore
	t.Cleanup(func() { openStore = orig })
	openStore = func() (*catalog.Store, error) { return catalog.Open(dbPath) }

	return store
}

func TestRunDeletesBookAndReviews(t *testing.T) {
	store := setupRmStore(t)
	ctx := context.Background()

	bookID, err := store.AddBook(ctx, catalog.Book{Title: "Doomed", Authors: []string{"Anon"}})
	require.NoError(t, err)
	userID, err := store.EnsureUser(ctx, "reader")
	require.NoError(t, err)
	require.NoError(t, store.UpsertReview(ctx, userID, bookID, 4, ""))

	require.NoError(t, Run(bookID))

	book, err := store.GetBook(ctx, bookID)
	require.NoError(t, err)
	assert.Nil(t, book)

	reviews, err := store.ListUserReviews(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

func TestRunUnknownBook(t *testing.T) {
	setupRmStore(t)
	require.Error(t, Run(999))
}
