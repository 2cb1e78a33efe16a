package browse

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelfdex/internal/catalog"
)

func setupBrowseStore(t *testing.T) *catalog.Store {
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

func TestRunEmptyCatalog(t *testing.T) {
	setupBrowseStore(t)
	require.NoError(t, Run(Options{}))
}

func TestRunListsBooks(t *testing.T) {
	store := setupBrowseStore(t)

	h, w, th, pages := 20, 13, 3, 310
	_, err := store.AddBook(context.Background(), catalog.Book{
		Title: "The Hobbit", HeightCM: &h, WidthCM: &w, ThicknessCM: &th, Pages: &pages,
		Authors: []string{"J. R. R. Tolkien"},
	})
	require.NoError(t, err)

	require.NoError(t, Run(Options{Query: "hobbit", Page: 1}))
}

func TestPrintBook(t *testing.T) {
	tmp, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer func() { _ = tmp.Close() }()

	year := 1937
	h, w, th := 20, 13, 3
	printBook(tmp, catalog.Book{
		ID: 7, Title: "The Hobbit", Year: &year,
		HeightCM: &h, WidthCM: &w, ThicknessCM: &th,
		Authors: []string{"J. R. R. Tolkien"},
	}, catalog.RatingSummary{Average: 4.5, Count: 2})

	data, err := os.ReadFile(tmp.Name())
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "#7 The Hobbit (1937)")
	assert.Contains(t, out, "J. R. R. Tolkien")
	assert.Contains(t, out, "20 x 13 x 3 cm")
	assert.Contains(t, out, "780 cm³")
	assert.Contains(t, out, "4.5/5 (2 reviews)")
}

func TestDimensionLine(t *testing.T) {
	h, w, th, pages := 20, 13, 3, 310
	full := catalog.Book{HeightCM: &h, WidthCM: &w, ThicknessCM: &th, Pages: &pages}
	assert.Equal(t, "20 x 13 x 3 cm · 780 cm³ · 310 pages", dimensionLine(full))

	partial := catalog.Book{HeightCM: &h, Pages: &pages}
	assert.Equal(t, "310 pages", dimensionLine(partial), "volume needs all three dimensions")

	assert.Equal(t, "", dimensionLine(catalog.Book{}))
}
