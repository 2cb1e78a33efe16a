// Package add implements the import flow: search Open Library, pick a
// hit, resolve its dimensions and persist the result to the catalog.
package add

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"shelfdex/internal/catalog"
	"shelfdex/internal/cmdutil"
	"shelfdex/internal/config"
	"shelfdex/internal/fileutil"
	"shelfdex/internal/notes"
	"shelfdex/internal/openlibrary"
	"shelfdex/internal/tui"
)

const defaultSearchLimit = 9

// Options configures one import run.
type Options struct {
	Query       string
	Limit       int
	Interactive bool
	OutputDir   string
	WriteNote   bool
	WriteJSON   bool
	JSONOutput  string
}

// used by tests to stub out collaboration points
var (
	newClient = func() *openlibrary.Client { return openlibrary.NewClient() }
	selectHit = tui.SelectHit
	openStore = func() (*catalog.Store, error) { return catalog.Open(cmdutil.DatabasePath()) }
)

// Run searches for books matching the query, lets the user pick one and
// imports it. A search that finds nothing, or a pick the user cancels, is
// a normal end of the run, not an error.
func Run(opts Options) error {
	query := strings.TrimSpace(opts.Query)
	if query == "" {
		return fmt.Errorf("search query is required")
	}
	if opts.Limit <= 0 {
		opts.Limit = defaultSearchLimit
	}

	ctx := context.Background()
	client := newClient()

	hits, err := client.Search(ctx, query, opts.Limit)
	if err != nil {
		// Degraded search: report and end the run with nothing to import.
		slog.Warn("Search failed", "query", query, "error", err)
		return nil
	}
	if len(hits) == 0 {
		slog.Info("No results", "query", query)
		return nil
	}

	hit, ok, err := pickHit(query, hits, opts.Interactive)
	if err != nil {
		return err
	}
	if !ok {
		slog.Info("Import cancelled", "query", query)
		return nil
	}

	payload, err := client.Resolve(ctx, hit)
	if err != nil {
		return fmt.Errorf("failed to resolve %q: %w", hit.Title, err)
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	book, created, err := store.ImportBook(ctx, payload)
	if err != nil {
		return fmt.Errorf("failed to store %q: %w", payload.Title, err)
	}
	if !created {
		slog.Info("Already in catalog", "title", book.Title, "id", book.ID)
		return nil
	}

	slog.Info("Imported book", "title", book.Title, "id", book.ID,
		"height_cm", intOrDash(book.HeightCM), "width_cm", intOrDash(book.WidthCM),
		"thickness_cm", intOrDash(book.ThicknessCM), "pages", intOrDash(book.Pages))

	return writeArtifacts(*book, opts)
}

func pickHit(query string, hits []openlibrary.SearchHit, interactive bool) (openlibrary.SearchHit, bool, error) {
	if !interactive {
		return hits[0], true, nil
	}

	result, err := selectHit(query, hits)
	if err != nil {
		return openlibrary.SearchHit{}, false, err
	}
	if result.Action != tui.ActionSelected || result.Selection == nil {
		return openlibrary.SearchHit{}, false, nil
	}
	return *result.Selection, true, nil
}

// writeArtifacts optionally downloads the cover and writes the markdown
// and JSON representations of the imported book.
func writeArtifacts(book catalog.Book, opts Options) error {
	if !opts.WriteNote && !opts.WriteJSON {
		return nil
	}

	cfg := cmdutil.OutputConfig{
		OutputDir:  opts.OutputDir,
		ConfigKey:  "catalog",
		JSONOutput: opts.JSONOutput,
		WriteJSON:  opts.WriteJSON,
	}
	if err := cmdutil.SetupOutputDir(&cfg); err != nil {
		return err
	}

	if opts.WriteJSON {
		if _, err := fileutil.WriteJSONFile(book, cfg.JSONOutput, config.OverwriteFiles); err != nil {
			slog.Error("Error writing book to JSON", "error", err)
		}
	}

	if !opts.WriteNote {
		return nil
	}

	coverPath := ""
	if config.DownloadCovers && book.CoverURL != "" {
		result, err := fileutil.DownloadCover(fileutil.CoverDownloadOptions{
			URL:       book.CoverURL,
			OutputDir: cfg.OutputDir,
			Filename:  fileutil.CoverFilename(book.Title),
			Overwrite: config.OverwriteFiles,
		})
		if err != nil {
			slog.Warn("Cover download failed", "title", book.Title, "error", err)
		} else if result != nil {
			coverPath = result.RelativePath
		}
	}

	content, err := notes.RenderBook(book, coverPath)
	if err != nil {
		return fmt.Errorf("failed to render note for %q: %w", book.Title, err)
	}

	notePath := fileutil.MarkdownFilePath(book.Title, cfg.OutputDir)
	written, err := fileutil.WriteFileWithOverwrite(notePath, content, 0644, config.OverwriteFiles)
	if err != nil {
		return fmt.Errorf("failed to write note for %q: %w", book.Title, err)
	}
	if written {
		slog.Info("Wrote note", "path", notePath)
	}
	return nil
}

func intOrDash(v *int) any {
	if v == nil {
		return "-"
	}
	return *v
}
