package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"shelfdex/internal/openlibrary"
)

// PageSize is the number of books per page in listings.
const PageSize = 12

// ErrTitleRequired is returned when a book is created without a title.
var ErrTitleRequired = errors.New("title is required")

// Book is one catalog entry. Dimension fields are whole centimeters; nil
// means unknown.
type Book struct {
	ID          int64
	ExternalID  string
	Title       string
	Year        *int
	Description string
	CoverURL    string
	Language    string
	HeightCM    *int
	WidthCM     *int
	ThicknessCM *int
	Pages       *int
	Format      string
	Authors     []string
	Subjects    []string
}

// VolumeCM3 returns the book's volume in cm³, or nil when any dimension
// is unknown.
func (b *Book) VolumeCM3() *int {
	return openlibrary.Volume(b.HeightCM, b.WidthCM, b.ThicknessCM)
}

// ImportBook persists a resolved payload. Books already present under the
// same external id are not duplicated; the existing entry is returned with
// created=false.
func (s *Store) ImportBook(ctx context.Context, payload openlibrary.ImportPayload) (*Book, bool, error) {
	if strings.TrimSpace(payload.Title) == "" {
		return nil, false, ErrTitleRequired
	}

	if payload.ExternalID != "" {
		existing, err := s.FindByExternalID(ctx, payload.ExternalID)
		if err != nil {
			return nil, false, err
		}
		if existing != nil {
			return existing, false, nil
		}
	}

	book := Book{
		ExternalID:  payload.ExternalID,
		Title:       strings.TrimSpace(payload.Title),
		Year:        payload.Year,
		Description: payload.Description,
		CoverURL:    payload.CoverURL,
		Language:    payload.Language,
		HeightCM:    payload.HeightCM,
		WidthCM:     payload.WidthCM,
		ThicknessCM: payload.ThicknessCM,
		Pages:       payload.Pages,
		Authors:     payload.Authors,
		Subjects:    payload.Subjects,
	}

	id, err := s.AddBook(ctx, book)
	if err != nil {
		return nil, false, err
	}
	book.ID = id
	return &book, true, nil
}

// AddBook inserts a book together with its author and subject links,
// creating missing authors and subjects along the way.
func (s *Store) AddBook(ctx context.Context, book Book) (int64, error) {
	title := strings.TrimSpace(book.Title)
	if title == "" {
		return 0, ErrTitleRequired
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO books (external_id, title, year, description, cover_url, language,
			height_cm, width_cm, thickness_cm, pages, format)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		nullString(book.ExternalID), title, nullInt(book.Year),
		nullString(book.Description), nullString(book.CoverURL), nullString(book.Language),
		nullInt(book.HeightCM), nullInt(book.WidthCM), nullInt(book.ThicknessCM),
		nullInt(book.Pages), nullString(book.Format),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert book: %w", err)
	}

	bookID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get book id: %w", err)
	}

	for _, name := range book.Authors {
		authorID, err := getOrCreateNamed(ctx, tx, "authors", name)
		if err != nil {
			return 0, err
		}
		if authorID == 0 {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO book_authors (book_id, author_id) VALUES (?, ?)`,
			bookID, authorID); err != nil {
			return 0, fmt.Errorf("failed to link author: %w", err)
		}
	}

	for _, name := range book.Subjects {
		subjectID, err := getOrCreateNamed(ctx, tx, "subjects", name)
		if err != nil {
			return 0, err
		}
		if subjectID == 0 {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO book_subjects (book_id, subject_id) VALUES (?, ?)`,
			bookID, subjectID); err != nil {
			return 0, fmt.Errorf("failed to link subject: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit book insert: %w", err)
	}
	return bookID, nil
}

// getOrCreateNamed looks up a row by case-insensitive name in a (id, name)
// table, creating it if needed. Blank names yield id 0 and no row.
func getOrCreateNamed(ctx context.Context, tx *sql.Tx, table, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, nil
	}

	var id int64
	query := fmt.Sprintf(`SELECT id FROM %s WHERE lower(name) = lower(?)`, table)
	err := tx.QueryRowContext(ctx, query, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to look up %s: %w", table, err)
	}

	res, err := tx.ExecContext(ctx, fmt.Sprintf(`INSERT INTO %s (name) VALUES (?)`, table), name)
	if err != nil {
		return 0, fmt.Errorf("failed to insert %s: %w", table, err)
	}
	return res.LastInsertId()
}

// DimensionPatch carries the fields UpdateDimensions may change. Nil
// fields are left untouched.
type DimensionPatch struct {
	HeightCM    *int
	WidthCM     *int
	ThicknessCM *int
	Pages       *int
	Format      *string
}

// UpdateDimensions patches dimension fields on an existing book. Returns
// false when no book with the given id exists.
func (s *Store) UpdateDimensions(ctx context.Context, bookID int64, patch DimensionPatch) (bool, error) {
	var sets []string
	var args []any
	appendSet := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}

	if patch.HeightCM != nil {
		appendSet("height_cm", *patch.HeightCM)
	}
	if patch.WidthCM != nil {
		appendSet("width_cm", *patch.WidthCM)
	}
	if patch.ThicknessCM != nil {
		appendSet("thickness_cm", *patch.ThicknessCM)
	}
	if patch.Pages != nil {
		appendSet("pages", *patch.Pages)
	}
	if patch.Format != nil {
		appendSet("format", *patch.Format)
	}
	if len(sets) == 0 {
		return s.bookExists(ctx, bookID)
	}

	args = append(args, bookID)
	res, err := s.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE books SET %s WHERE id = ?`, strings.Join(sets, ", ")), args...)
	if err != nil {
		return false, fmt.Errorf("failed to update dimensions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) bookExists(ctx context.Context, bookID int64) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM books WHERE id = ?`, bookID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// FindByExternalID looks a book up by its external provider key. A blank
// key or no match returns nil without error.
func (s *Store) FindByExternalID(ctx context.Context, externalID string) (*Book, error) {
	if externalID == "" {
		return nil, nil
	}
	row := s.db.QueryRowContext(ctx, selectBookSQL+` WHERE external_id = ?`, externalID)
	book, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := s.loadBookLinks(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// GetBook fetches a single book by id, or nil when it does not exist.
func (s *Store) GetBook(ctx context.Context, bookID int64) (*Book, error) {
	row := s.db.QueryRowContext(ctx, selectBookSQL+` WHERE id = ?`, bookID)
	book, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := s.loadBookLinks(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// ListBooks returns one page of books ordered by title, with an optional
// case-insensitive title substring filter, plus the total match count.
func (s *Store) ListBooks(ctx context.Context, query string, page int) ([]Book, int, error) {
	if page < 1 {
		page = 1
	}

	where := ""
	var args []any
	if query != "" {
		where = ` WHERE lower(title) LIKE ?`
		args = append(args, "%"+strings.ToLower(query)+"%")
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM books`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count books: %w", err)
	}

	listArgs := append(args, PageSize, (page-1)*PageSize)
	rows, err := s.db.QueryContext(ctx,
		selectBookSQL+where+` ORDER BY title ASC LIMIT ? OFFSET ?`, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list books: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var books []Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, 0, err
		}
		books = append(books, *book)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range books {
		if err := s.loadBookLinks(ctx, &books[i]); err != nil {
			return nil, 0, err
		}
	}
	return books, total, nil
}

// DeleteBook hard-deletes a book and its dependent rows. Returns the
// number of book rows removed (0 or 1).
func (s *Store) DeleteBook(ctx context.Context, bookID int64) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range []string{
		`DELETE FROM reviews WHERE book_id = ?`,
		`DELETE FROM book_authors WHERE book_id = ?`,
		`DELETE FROM book_subjects WHERE book_id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, stmt, bookID); err != nil {
			return 0, fmt.Errorf("failed to delete book dependents: %w", err)
		}
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, bookID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete book: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit delete: %w", err)
	}
	return n, nil
}

const selectBookSQL = `SELECT id, external_id, title, year, description, cover_url,
	language, height_cm, width_cm, thickness_cm, pages, format FROM books`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (*Book, error) {
	var (
		book                       Book
		externalID, description    sql.NullString
		coverURL, language, format sql.NullString
		year, height, width, thick sql.NullInt64
		pages                      sql.NullInt64
	)
	err := row.Scan(&book.ID, &externalID, &book.Title, &year, &description,
		&coverURL, &language, &height, &width, &thick, &pages, &format)
	if err != nil {
		return nil, err
	}
	book.ExternalID = externalID.String
	book.Description = description.String
	book.CoverURL = coverURL.String
	book.Language = language.String
	book.Format = format.String
	book.Year = intPtr(year)
	book.HeightCM = intPtr(height)
	book.WidthCM = intPtr(width)
	book.ThicknessCM = intPtr(thick)
	book.Pages = intPtr(pages)
	return &book, nil
}

func (s *Store) loadBookLinks(ctx context.Context, book *Book) error {
	authors, err := s.namedForBook(ctx, "authors", "book_authors", "author_id", book.ID)
	if err != nil {
		return err
	}
	book.Authors = authors

	subjects, err := s.namedForBook(ctx, "subjects", "book_subjects", "subject_id", book.ID)
	if err != nil {
		return err
	}
	book.Subjects = subjects
	return nil
}

func (s *Store) namedForBook(ctx context.Context, table, linkTable, linkCol string, bookID int64) ([]string, error) {
	query := fmt.Sprintf(
		`SELECT t.name FROM %s t JOIN %s l ON l.%s = t.id WHERE l.book_id = ? ORDER BY t.name`,
		table, linkTable, linkCol)
	rows, err := s.db.QueryContext(ctx, query, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
