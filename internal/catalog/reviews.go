package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrRatingRange is returned when a rating falls outside 1..5.
var ErrRatingRange = errors.New("rating must be in 1..5")

// Review is one user's rating and optional comment on a book.
type Review struct {
	ID        int64
	UserID    int64
	BookID    int64
	BookTitle string
	Username  string
	Rating    int
	Comment   string
	CreatedAt time.Time
}

// RatingSummary aggregates the reviews of one book.
type RatingSummary struct {
	Average float64
	Count   int
}

// EnsureUser returns the id for username, creating the account if it does
// not exist yet.
func (s *Store) EnsureUser(ctx context.Context, username string) (int64, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return 0, errors.New("username is required")
	}

	var id int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM users WHERE username = ?`, username).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to look up user: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `INSERT INTO users (username) VALUES (?)`, username)
	if err != nil {
		return 0, fmt.Errorf("failed to create user: %w", err)
	}
	return res.LastInsertId()
}

// UpsertReview creates or replaces a user's review of a book. One review
// per user per book.
func (s *Store) UpsertReview(ctx context.Context, userID, bookID int64, rating int, comment string) error {
	if rating < 1 || rating > 5 {
		return ErrRatingRange
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO reviews (user_id, book_id, rating, comment) VALUES (?, ?, ?, ?)
		 ON CONFLICT(user_id, book_id) DO UPDATE SET rating = excluded.rating, comment = excluded.comment`,
		userID, bookID, rating, nullString(comment))
	if err != nil {
		return fmt.Errorf("failed to save review: %w", err)
	}
	return nil
}

// ListUserReviews returns all reviews by a user, newest first.
func (s *Store) ListUserReviews(ctx context.Context, userID int64) ([]Review, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.id, r.user_id, r.book_id, b.title, r.rating, r.comment, r.created_at
		 FROM reviews r JOIN books b ON b.id = r.book_id
		 WHERE r.user_id = ?
		 ORDER BY r.created_at DESC, r.id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanReviews(rows)
}

// RecentReviews returns the newest reviews across all users.
func (s *Store) RecentReviews(ctx context.Context, limit int) ([]Review, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.id, r.user_id, r.book_id, b.title, r.rating, r.comment, r.created_at
		 FROM reviews r JOIN books b ON b.id = r.book_id
		 ORDER BY r.created_at DESC, r.id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent reviews: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanReviews(rows)
}

func scanReviews(rows *sql.Rows) ([]Review, error) {
	var reviews []Review
	for rows.Next() {
		var (
			review  Review
			comment sql.NullString
		)
		if err := rows.Scan(&review.ID, &review.UserID, &review.BookID, &review.BookTitle,
			&review.Rating, &comment, &review.CreatedAt); err != nil {
			return nil, err
		}
		review.Comment = comment.String
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}

// DeleteReview removes a user's review of a book. Returns the number of
// rows deleted (0 or 1).
func (s *Store) DeleteReview(ctx context.Context, userID, bookID int64) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM reviews WHERE user_id = ? AND book_id = ?`, userID, bookID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete review: %w", err)
	}
	return res.RowsAffected()
}

// RatingSummaries aggregates ratings for the given books. Books without
// reviews are absent from the result map.
func (s *Store) RatingSummaries(ctx context.Context, bookIDs []int64) (map[int64]RatingSummary, error) {
	if len(bookIDs) == 0 {
		return map[int64]RatingSummary{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(bookIDs)), ",")
	args := make([]any, len(bookIDs))
	for i, id := range bookIDs {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT book_id, AVG(rating), COUNT(id) FROM reviews
		 WHERE book_id IN (%s) GROUP BY book_id`, placeholders), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate ratings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	summaries := make(map[int64]RatingSummary)
	for rows.Next() {
		var (
			bookID  int64
			summary RatingSummary
		)
		if err := rows.Scan(&bookID, &summary.Average, &summary.Count); err != nil {
			return nil, err
		}
		summaries[bookID] = summary
	}
	return summaries, rows.Err()
}
