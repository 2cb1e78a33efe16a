package catalog

import (
	"context"
	"fmt"
)

// Chonker is one row of the volume ranking: a book with complete
// dimensions and its computed volume.
type Chonker struct {
	BookID    int64
	Title     string
	VolumeCM3 int
}

// TopChonkers returns the largest books by volume among those with all
// three dimensions present. Books missing any dimension never rank; they
// are excluded rather than scored with a stand-in value.
func (s *Store) TopChonkers(ctx context.Context, limit int) ([]Chonker, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, height_cm * width_cm * thickness_cm AS volume_cm3
		 FROM books
		 WHERE height_cm IS NOT NULL AND width_cm IS NOT NULL AND thickness_cm IS NOT NULL
		 ORDER BY volume_cm3 DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query volume ranking: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var chonkers []Chonker
	for rows.Next() {
		var c Chonker
		if err := rows.Scan(&c.BookID, &c.Title, &c.VolumeCM3); err != nil {
			return nil, err
		}
		chonkers = append(chonkers, c)
	}
	return chonkers, rows.Err()
}

// ShelfSpace is the total volume of reviewed books attributed to one user.
// A book counts toward every user who reviewed it.
type ShelfSpace struct {
	Username  string
	Books     int
	VolumeCM3 int
}

// ShelfSpaceByUser sums the volume of each user's reviewed books, largest
// shelf first.
func (s *Store) ShelfSpaceByUser(ctx context.Context) ([]ShelfSpace, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT u.username, COUNT(b.id), SUM(b.height_cm * b.width_cm * b.thickness_cm) AS volume_cm3
		 FROM reviews r
		 JOIN users u ON u.id = r.user_id
		 JOIN books b ON b.id = r.book_id
		 WHERE b.height_cm IS NOT NULL AND b.width_cm IS NOT NULL AND b.thickness_cm IS NOT NULL
		 GROUP BY u.username
		 ORDER BY volume_cm3 DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query shelf space: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var shelves []ShelfSpace
	for rows.Next() {
		var shelf ShelfSpace
		if err := rows.Scan(&shelf.Username, &shelf.Books, &shelf.VolumeCM3); err != nil {
			return nil, err
		}
		shelves = append(shelves, shelf)
	}
	return shelves, rows.Err()
}
