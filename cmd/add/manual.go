package add

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"shelfdex/internal/catalog"
)

// ManualOptions holds the fields of a hand-entered book. Zero numeric
// values mean "not provided".
type ManualOptions struct {
	Title       string
	Authors     []string
	Subjects    []string
	Year        int
	Language    string
	CoverURL    string
	Description string
	HeightCM    int
	WidthCM     int
	ThicknessCM int
	Pages       int
	Format      string
}

// RunManual adds a book that is not in (or should not come from) the
// catalog source. Only the title is mandatory; dimensions stay empty
// unless provided.
func RunManual(opts ManualOptions) error {
	if strings.TrimSpace(opts.Title) == "" {
		return fmt.Errorf("title is required")
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	book := opts.toBook()
	id, err := store.AddBook(context.Background(), book)
	if err != nil {
		return fmt.Errorf("failed to add %q: %w", opts.Title, err)
	}

	slog.Info("Added book", "title", opts.Title, "id", id)
	return nil
}

func (o ManualOptions) toBook() catalog.Book {
	return catalog.Book{
		Title:       strings.TrimSpace(o.Title),
		Year:        positive(o.Year),
		Description: o.Description,
		CoverURL:    o.CoverURL,
		Language:    o.Language,
		HeightCM:    positive(o.HeightCM),
		WidthCM:     positive(o.WidthCM),
		ThicknessCM: positive(o.ThicknessCM),
		Pages:       positive(o.Pages),
		Format:      o.Format,
		Authors:     splitTrimmed(o.Authors),
		Subjects:    splitTrimmed(o.Subjects),
	}
}

func positive(v int) *int {
	if v <= 0 {
		return nil
	}
	return &v
}

func splitTrimmed(values []string) []string {
	var out []string
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
