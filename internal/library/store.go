// Package library persists selected books to a local SQLite database.
// This is the "add book" boundary the search pipeline feeds; the search
// subsystem itself never writes here.
package library

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/lepinkainen/libris/internal/search"
)

// StatusToRead is the default shelf status of a newly added book.
const StatusToRead = "Okunacak"

const schema = `
CREATE TABLE IF NOT EXISTS books (
	id INTEGER PRIMARY KEY,
	title TEXT NOT NULL,
	author TEXT,
	isbn TEXT,
	cover_url TEXT,
	cover_path TEXT,
	summary TEXT,
	page_count INTEGER,
	publisher TEXT,
	published_date TEXT,
	source TEXT,
	link TEXT,
	status TEXT DEFAULT 'Okunacak',
	created_at TEXT NOT NULL
);
`

// Entry is one stored library book.
type Entry struct {
	ID        int64
	Book      search.Book
	CoverPath string
	Status    string
	CreatedAt time.Time
}

// Store wraps the SQLite database holding the library.
type Store struct {
	db     *sql.DB
	dbPath string
}

// Open opens (creating if necessary) the library database at dbPath.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create books table: %w", err)
	}
	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Add inserts a selected candidate into the library and returns its row ID.
func (s *Store) Add(book search.Book, coverPath string) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO books (
			title, author, isbn, cover_url, cover_path, summary,
			page_count, publisher, published_date, source, link,
			status, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		book.Title, book.Author, book.ISBN, book.CoverURL, coverPath, book.Summary,
		book.PageCount, book.Publisher, book.PublishedDate, book.Source, book.Link,
		StatusToRead, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert book: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted ID: %w", err)
	}
	return id, nil
}

// List returns all stored books, newest first.
func (s *Store) List() ([]Entry, error) {
	rows, err := s.db.Query(`
		SELECT id, title, author, isbn, cover_url, cover_path, summary,
		       page_count, publisher, published_date, source, link,
		       status, created_at
		FROM books ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var createdAt string
		if err := rows.Scan(
			&e.ID, &e.Book.Title, &e.Book.Author, &e.Book.ISBN,
			&e.Book.CoverURL, &e.CoverPath, &e.Book.Summary,
			&e.Book.PageCount, &e.Book.Publisher, &e.Book.PublishedDate,
			&e.Book.Source, &e.Book.Link, &e.Status, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan book row: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
			e.CreatedAt = ts
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate book rows: %w", err)
	}
	return entries, nil
}

// Delete removes a book by row ID. Deleting a missing ID is not an error.
func (s *Store) Delete(id int64) error {
	if _, err := s.db.Exec(`DELETE FROM books WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete book %d: %w", id, err)
	}
	return nil
}
