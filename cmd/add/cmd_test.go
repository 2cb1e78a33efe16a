package add

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelfdex/internal/catalog"
	"shelfdex/internal/config"
	"shelfdex/internal/openlibrary"
	"shelfdex/internal/ratelimit"
	"shelfdex/internal/tui"
)

// testFixture stubs the command's collaboration points: an Open Library
// server, a temp catalog database and a canned picker.
type testFixture struct {
	store *catalog.Store
}

func setupFixture(t *testing.T, handler http.Handler) *testFixture {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	origClient, origSelect, origStore := newClient, selectHit, openStore
	t.Cleanup(func() {
		newClient, selectHit, openStore = origClient, origSelect, origStore
	})

	newClient = func() *openlibrary.Client {
		return openlibrary.NewClient(
			openlibrary.WithBaseURL(server.URL),
			openlibrary.WithHTTPClient(server.Client()),
			openlibrary.WithRateLimiter(ratelimit.New("test", 1000)),
		)
	}

	dbPath := filepath.Join(t.TempDir(), "catalog.db")
	store, err := catalog.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	// Run closes the store it opens, so it gets its own handle on the
	// same database file.
	openStore = func() (*catalog.Store, error) { return catalog.Open(dbPath) }

	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("markdownoutputdir", t.TempDir())
	config.InitConfig()
	config.SetDownloadCovers(false)

	return &testFixture{store: store}
}

func openLibraryHandler(t *testing.T) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/search.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"docs": [
			{"key": "/works/OL1W", "title": "The Hobbit", "first_publish_year": 1937,
			 "author_name": ["J. R. R. Tolkien"]}
		]}`))
	})
	mux.HandleFunc("/works/OL1W/editions.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"entries": [
			{"physical_dimensions": "20 x 13 x 2.5 centimeters", "number_of_pages": 310}
		]}`))
	})
	return mux
}

func TestRunImportsFirstHit(t *testing.T) {
	fx := setupFixture(t, openLibraryHandler(t))

	require.NoError(t, Run(Options{Query: "the hobbit"}))

	book, err := fx.store.FindByExternalID(context.Background(), "/works/OL1W")
	require.NoError(t, err)
	require.NotNil(t, book)
	assert.Equal(t, "The Hobbit", book.Title)
	require.NotNil(t, book.HeightCM)
	assert.Equal(t, 20, *book.HeightCM)
	require.NotNil(t, book.ThicknessCM)
	assert.Equal(t, 3, *book.ThicknessCM)
	require.NotNil(t, book.Pages)
	assert.Equal(t, 310, *book.Pages)
	assert.Equal(t, []string{"J. R. R. Tolkien"}, book.Authors)
}

func TestRunSecondImportIsNoop(t *testing.T) {
	fx := setupFixture(t, openLibraryHandler(t))

	require.NoError(t, Run(Options{Query: "the hobbit"}))
	require.NoError(t, Run(Options{Query: "the hobbit"}))

	_, total, err := fx.store.ListBooks(context.Background(), "", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestRunWritesNote(t *testing.T) {
	fx := setupFixture(t, openLibraryHandler(t))

	require.NoError(t, Run(Options{Query: "the hobbit", WriteNote: true, OutputDir: "books"}))

	book, err := fx.store.FindByExternalID(context.Background(), "/works/OL1W")
	require.NoError(t, err)
	require.NotNil(t, book)

	notePath := filepath.Join(viper.GetString("markdownoutputdir"), "books", "The Hobbit.md")
	assert.FileExists(t, notePath)
}

func TestRunEmptyQuery(t *testing.T) {
	setupFixture(t, openLibraryHandler(t))
	require.Error(t, Run(Options{Query: "   "}))
}

func TestRunNoResults(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/search.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"docs": []}`))
	})
	fx := setupFixture(t, mux)

	require.NoError(t, Run(Options{Query: "no such book"}))

	_, total, err := fx.store.ListBooks(context.Background(), "", 1)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestRunSearchFailureDegrades(t *testing.T) {
	fx := setupFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))

	require.NoError(t, Run(Options{Query: "anything"}))

	_, total, err := fx.store.ListBooks(context.Background(), "", 1)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestRunInteractivePick(t *testing.T) {
	fx := setupFixture(t, openLibraryHandler(t))

	selectHit = func(query string, hits []openlibrary.SearchHit) (tui.SelectionResult, error) {
		require.Len(t, hits, 1)
		return tui.SelectionResult{Action: tui.ActionSelected, Selection: &hits[0]}, nil
	}

	require.NoError(t, Run(Options{Query: "the hobbit", Interactive: true}))

	book, err := fx.store.FindByExternalID(context.Background(), "/works/OL1W")
	require.NoError(t, err)
	require.NotNil(t, book)
}

func TestRunInteractiveSkip(t *testing.T) {
	fx := setupFixture(t, openLibraryHandler(t))

	selectHit = func(string, []openlibrary.SearchHit) (tui.SelectionResult, error) {
		return tui.SelectionResult{Action: tui.ActionSkipped}, nil
	}

	require.NoError(t, Run(Options{Query: "the hobbit", Interactive: true}))

	_, total, err := fx.store.ListBooks(context.Background(), "", 1)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestRunInteractivePickerError(t *testing.T) {
	setupFixture(t, openLibraryHandler(t))

	selectHit = func(string, []openlibrary.SearchHit) (tui.SelectionResult, error) {
		return tui.SelectionResult{}, errors.New("no tty")
	}

	require.Error(t, Run(Options{Query: "the hobbit", Interactive: true}))
}
