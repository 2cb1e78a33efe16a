// Package edit implements manual completion of a book's physical
// dimensions, for entries whose import found nothing usable.
package edit

import (
	"context"
	"fmt"
	"log/slog"

	"shelfdex/internal/catalog"
	"shelfdex/internal/cmdutil"
)

// Options holds the fields one edit may change. Zero numeric values and
// an empty format mean "leave as is".
type Options struct {
	BookID      int64
	HeightCM    int
	WidthCM     int
	ThicknessCM int
	Pages       int
	Format      string
}

var openStore = func() (*catalog.Store, error) { return catalog.Open(cmdutil.DatabasePath()) }

// Run patches the given fields on an existing book. At least one field
// must be provided.
func Run(opts Options) error {
	patch := buildPatch(opts)
	if patch == (catalog.DimensionPatch{}) {
		return fmt.Errorf("nothing to update: pass at least one of --height, --width, --thickness, --pages, --format")
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	found, err := store.UpdateDimensions(ctx, opts.BookID, patch)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("no book with id %d", opts.BookID)
	}

	book, err := store.GetBook(ctx, opts.BookID)
	if err != nil {
		return err
	}

	slog.Info("Updated book", "title", book.Title, "id", book.ID,
		"height_cm", intOrDash(book.HeightCM), "width_cm", intOrDash(book.WidthCM),
		"thickness_cm", intOrDash(book.ThicknessCM), "pages", intOrDash(book.Pages))
	return nil
}

func buildPatch(opts Options) catalog.DimensionPatch {
	var patch catalog.DimensionPatch
	if opts.HeightCM > 0 {
		patch.HeightCM = &opts.HeightCM
	}
	if opts.WidthCM > 0 {
		patch.WidthCM = &opts.WidthCM
	}
	if opts.ThicknessCM > 0 {
		patch.ThicknessCM = &opts.ThicknessCM
	}
	if opts.Pages > 0 {
		patch.Pages = &opts.Pages
	}
	if opts.Format != "" {
		patch.Format = &opts.Format
	}
	return patch
}

func intOrDash(v *int) any {
	if v == nil {
		return "-"
	}
	return *v
}
