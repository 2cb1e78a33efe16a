// Package rm removes books from the catalog, together with their
// reviews and author/subject links.
package rm

import (
	"context"
	"fmt"

	"shelfdex/internal/catalog"
	"shelfdex/internal/cmdutil"
)

var openStore = func() (*catalog.Store, error) { return catalog.Open(cmdutil.DatabasePath()) }

// Run deletes one book by catalog id.
func Run(bookID int64) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	book, err := store.GetBook(ctx, bookID)
	if err != nil {
		return err
	}
	if book == nil {
		return fmt.Errorf("no book with id %d", bookID)
	}

	if _, err := store.DeleteBook(ctx, bookID); err != nil {
		return err
	}

	fmt.Printf("Deleted: %s\n", book.Title)
	return nil
}
