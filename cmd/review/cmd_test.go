package review

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelfdex/internal/catalog"
	"shelfdex/internal/config"
)

func setupReviewStore(t *testing.T) (*catalog.Store, int64) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "catalog.db")
	store, err := catalog.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	orig := openStore
	t.Cleanup(func() { openStore = orig })
	openStore = func() (*catalog.Store, error) { return catalog.Open(dbPath) }

	origUser := config.Username
	t.Cleanup(func() { config.Username = origUser })
	config.Username = "tester"

	bookID, err := store.AddBook(context.Background(), catalog.Book{Title: "Reviewable"})
	require.NoError(t, err)
	return store, bookID
}

func TestAddAndListReview(t *testing.T) {
	store, bookID := setupReviewStore(t)

	require.NoError(t, Add(bookID, 4, "solid"))

	userID, err := store.EnsureUser(context.Background(), "tester")
	require.NoError(t, err)
	reviews, err := store.ListUserReviews(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, 4, reviews[0].Rating)
	assert.Equal(t, "solid", reviews[0].Comment)

	require.NoError(t, List())
}

func TestAddReviewUnknownBook(t *testing.T) {
	setupReviewStore(t)
	require.Error(t, Add(999, 4, ""))
}

func TestAddReviewBadRating(t *testing.T) {
	_, bookID := setupReviewStore(t)
	require.ErrorIs(t, Add(bookID, 9, ""), catalog.ErrRatingRange)
}

func TestRecentReviews(t *testing.T) {
	store, bookID := setupReviewStore(t)

	require.NoError(t, Recent(10), "empty catalog is not an error")

	otherID, err := store.AddBook(context.Background(), catalog.Book{Title: "Another"})
	require.NoError(t, err)
	require.NoError(t, Add(bookID, 4, "solid"))
	require.NoError(t, Add(otherID, 2, ""))

	require.NoError(t, Recent(10))
	require.NoError(t, Recent(0), "non-positive limit falls back to a default")
}

func TestRemoveReview(t *testing.T) {
	store, bookID := setupReviewStore(t)

	require.NoError(t, Add(bookID, 3, ""))
	require.NoError(t, Remove(bookID))

	userID, err := store.EnsureUser(context.Background(), "tester")
	require.NoError(t, err)
	reviews, err := store.ListUserReviews(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, reviews)

	// Removing again is a friendly no-op.
	require.NoError(t, Remove(bookID))
}
