package add

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelfdex/internal/catalog"
)

func setupManualStore(t *testing.T) *catalog.Store {
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

func TestRunManual(t *testing.T) {
	store := setupManualStore(t)

	err := RunManual(ManualOptions{
		Title:       "  Hand-Entered  ",
		Authors:     []string{" Jane Author ", ""},
		Subjects:    []string{"Essays"},
		Year:        2001,
		HeightCM:    21,
		WidthCM:     14,
		ThicknessCM: 2,
		Pages:       180,
		Format:      "paperback",
	})
	require.NoError(t, err)

	books, total, err := store.ListBooks(context.Background(), "", 1)
	require.NoError(t, err)
	require.Equal(t, 1, total)

	book := books[0]
	assert.Equal(t, "Hand-Entered", book.Title)
	assert.Equal(t, []string{"Jane Author"}, book.Authors)
	assert.Equal(t, []string{"Essays"}, book.Subjects)
	require.NotNil(t, book.Year)
	assert.Equal(t, 2001, *book.Year)
	assert.Equal(t, "paperback", book.Format)

	volume := book.VolumeCM3()
	require.NotNil(t, volume)
	assert.Equal(t, 588, *volume)
}

func TestRunManualZeroDimensionsStayAbsent(t *testing.T) {
	store := setupManualStore(t)

	require.NoError(t, RunManual(ManualOptions{Title: "Sparse"}))

	books, _, err := store.ListBooks(context.Background(), "", 1)
	require.NoError(t, err)
	require.Len(t, books, 1)

	assert.Nil(t, books[0].Year)
	assert.Nil(t, books[0].HeightCM)
	assert.Nil(t, books[0].Pages)
	assert.Nil(t, books[0].VolumeCM3())
}

func TestRunManualRequiresTitle(t *testing.T) {
	setupManualStore(t)
	require.Error(t, RunManual(ManualOptions{Title: "  "}))
}
