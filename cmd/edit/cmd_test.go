package edit

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelfdex/internal/catalog"
)

func setupEditStore(t *testing.T) *catalog.Store {
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

func TestRunCompletesDegradedImport(t *testing.T) {
	store := setupEditStore(t)
	ctx := context.Background()

	// A book that came in with nothing measurable, like an import whose
	// edition lookup found no dimensions.
	bookID, err := store.AddBook(ctx, catalog.Book{Title: "Unmeasured"})
	require.NoError(t, err)

	require.NoError(t, Run(Options{
		BookID:      bookID,
		HeightCM:    20,
		WidthCM:     13,
		ThicknessCM: 3,
		Pages:       310,
		Format:      "paperback",
	}))

	book, err := store.GetBook(ctx, bookID)
	require.NoError(t, err)
	require.NotNil(t, book.HeightCM)
	assert.Equal(t, 20, *book.HeightCM)
	require.NotNil(t, book.WidthCM)
	assert.Equal(t, 13, *book.WidthCM)
	require.NotNil(t, book.ThicknessCM)
	assert.Equal(t, 3, *book.ThicknessCM)
	require.NotNil(t, book.Pages)
	assert.Equal(t, 310, *book.Pages)
	assert.Equal(t, "paperback", book.Format)

	volume := book.VolumeCM3()
	require.NotNil(t, volume)
	assert.Equal(t, 780, *volume)
}

func TestRunPartialPatchKeepsOtherFields(t *testing.T) {
	store := setupEditStore(t)
	ctx := context.Background()

	h := 22
	bookID, err := store.AddBook(ctx, catalog.Book{Title: "Half Measured", HeightCM: &h})
	require.NoError(t, err)

	require.NoError(t, Run(Options{BookID: bookID, WidthCM: 14}))

	book, err := store.GetBook(ctx, bookID)
	require.NoError(t, err)
	require.NotNil(t, book.HeightCM)
	assert.Equal(t, 22, *book.HeightCM, "unpatched field stays")
	require.NotNil(t, book.WidthCM)
	assert.Equal(t, 14, *book.WidthCM)
	assert.Nil(t, book.ThicknessCM)
}

func TestRunNoFields(t *testing.T) {
	setupEditStore(t)
	require.Error(t, Run(Options{BookID: 1}))
}

func TestRunUnknownBook(t *testing.T) {
	setupEditStore(t)
	require.Error(t, Run(Options{BookID: 999, HeightCM: 20}))
}
