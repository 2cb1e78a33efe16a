// Package export dumps the whole catalog as markdown notes and a single
// JSON file.
package export

import (
	"context"
	"fmt"
	"log/slog"

	"shelfdex/internal/catalog"
	"shelfdex/internal/cmdutil"
	"shelfdex/internal/config"
	"shelfdex/internal/fileutil"
	"shelfdex/internal/notes"
)

// Options configures an export run.
type Options struct {
	OutputDir  string
	WriteJSON  bool
	JSONOutput string
}

var openStore = func() (*catalog.Store, error) { return catalog.Open(cmdutil.DatabasePath()) }

// Run writes one markdown note per book, plus an optional JSON dump.
func Run(opts Options) error {
	cfg := cmdutil.OutputConfig{
		OutputDir:  opts.OutputDir,
		ConfigKey:  "catalog",
		JSONOutput: opts.JSONOutput,
		WriteJSON:  opts.WriteJSON,
	}
	if err := cmdutil.SetupOutputDir(&cfg); err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	var all []catalog.Book
	for page := 1; ; page++ {
		books, total, err := store.ListBooks(ctx, "", page)
		if err != nil {
			return err
		}
		all = append(all, books...)
		if len(all) >= total || len(books) == 0 {
			break
		}
	}

	written := 0
	for _, book := range all {
		content, err := notes.RenderBook(book, "")
		if err != nil {
			return fmt.Errorf("failed to render note for %q: %w", book.Title, err)
		}
		path := fileutil.MarkdownFilePath(book.Title, cfg.OutputDir)
		ok, err := fileutil.WriteFileWithOverwrite(path, content, 0644, config.OverwriteFiles)
		if err != nil {
			return fmt.Errorf("failed to write note for %q: %w", book.Title, err)
		}
		if ok {
			written++
		}
	}

	if opts.WriteJSON {
		if _, err := fileutil.WriteJSONFile(all, cfg.JSONOutput, config.OverwriteFiles); err != nil {
			slog.Error("Error writing catalog JSON", "error", err)
		}
	}

	slog.Info("Export complete", "books", len(all), "notes_written", written)
	return nil
}
