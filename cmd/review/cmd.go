// Package review implements the rating and review commands. One review
// per user per book; saving again replaces the old one.
package review

import (
	"context"
	"fmt"

	"shelfdex/internal/catalog"
	"shelfdex/internal/cmdutil"
	"shelfdex/internal/config"
)

var openStore = func() (*catalog.Store, error) { return catalog.Open(cmdutil.DatabasePath()) }

// Add saves the current user's review of a book.
func Add(bookID int64, rating int, comment string) error {
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

	userID, err := store.EnsureUser(ctx, config.Username)
	if err != nil {
		return err
	}

	if err := store.UpsertReview(ctx, userID, bookID, rating, comment); err != nil {
		return err
	}

	fmt.Printf("Saved review: %s — %d/5\n", book.Title, rating)
	return nil
}

// List prints the current user's reviews, newest first.
func List() error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	userID, err := store.EnsureUser(ctx, config.Username)
	if err != nil {
		return err
	}

	reviews, err := store.ListUserReviews(ctx, userID)
	if err != nil {
		return err
	}
	if len(reviews) == 0 {
		fmt.Printf("No reviews by %s yet.\n", config.Username)
		return nil
	}

	for _, review := range reviews {
		fmt.Printf("#%d %s — %d/5", review.BookID, review.BookTitle, review.Rating)
		if review.Comment != "" {
			fmt.Printf(" — %s", review.Comment)
		}
		fmt.Println()
	}
	return nil
}

// Recent prints the newest reviews across all users.
func Recent(limit int) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	reviews, err := store.RecentReviews(context.Background(), limit)
	if err != nil {
		return err
	}
	if len(reviews) == 0 {
		fmt.Println("No reviews yet.")
		return nil
	}

	for _, review := range reviews {
		fmt.Printf("#%d %s — %d/5", review.BookID, review.BookTitle, review.Rating)
		if review.Comment != "" {
			fmt.Printf(" — %s", review.Comment)
		}
		fmt.Println()
	}
	return nil
}

// Remove deletes the current user's review of a book.
func Remove(bookID int64) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	userID, err := store.EnsureUser(ctx, config.Username)
	if err != nil {
		return err
	}

	deleted, err := store.DeleteReview(ctx, userID, bookID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		fmt.Printf("No review of book %d by %s.\n", bookID, config.Username)
		return nil
	}
	fmt.Println("Review deleted.")
	return nil
}
