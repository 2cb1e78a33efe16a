package catalog

// Dimension columns are whole centimeters; volume math happens in SQL so
// analytics never need the rows in memory.
const catalogSchema = `
CREATE TABLE IF NOT EXISTS books (
	id INTEGER PRIMARY KEY,
	external_id TEXT,
	title TEXT NOT NULL,
	year INTEGER,
	description TEXT,
	cover_url TEXT,
	language TEXT,
	height_cm INTEGER,
	width_cm INTEGER,
	thickness_cm INTEGER,
	pages INTEGER,
	format TEXT,
	UNIQUE(title, year)
);

CREATE INDEX IF NOT EXISTS idx_books_external_id ON books(external_id);
CREATE INDEX IF NOT EXISTS idx_books_title ON books(title);

CREATE TABLE IF NOT EXISTS authors (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS book_authors (
	book_id INTEGER NOT NULL REFERENCES books(id),
	author_id INTEGER NOT NULL REFERENCES authors(id),
	PRIMARY KEY (book_id, author_id)
);

CREATE TABLE IF NOT EXISTS subjects (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS book_subjects (
	book_id INTEGER NOT NULL REFERENCES books(id),
	subject_id INTEGER NOT NULL REFERENCES subjects(id),
	PRIMARY KEY (book_id, subject_id)
);

CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY,
	username TEXT NOT NULL UNIQUE,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS reviews (
	id INTEGER PRIMARY KEY,
	user_id INTEGER NOT NULL REFERENCES users(id),
	book_id INTEGER NOT NULL REFERENCES books(id),
	rating INTEGER NOT NULL,
	comment TEXT,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE(user_id, book_id)
);

CREATE INDEX IF NOT EXISTS idx_reviews_book_id ON reviews(book_id);
`
