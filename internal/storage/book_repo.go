package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_book_store.go -package=mocks versefinder/internal/storage BookStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// BookStore defines the interface for book storage operations.
type BookStore interface {
	// GetByID gets a book by ID. Returns nil and ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*BookRecord, error)
	// ListAll returns every book in the library ordered by title.
	ListAll(ctx context.Context) ([]BookRecord, error)
	// ListByIDs returns the books with the given IDs. Unknown IDs are
	// silently omitted from the result.
	ListByIDs(ctx context.Context, ids []string) ([]BookRecord, error)
	// Insert stores a new book.
	Insert(ctx context.Context, book *BookRecord) error
	// SetIndexHandle records the search index handle for a book once
	// indexing has completed.
	SetIndexHandle(ctx context.Context, id, handle string) error
	// Delete removes a book. Returns ErrNotFound if it does not exist.
	Delete(ctx context.Context, id string) error
}

// BookRepo provides methods for book operations.
// It implements the BookStore interface.
type BookRepo struct {
	db *sql.DB
}

// NewBookRepo creates a new BookRepo.
func NewBookRepo(db *sql.DB) *BookRepo {
	return &BookRepo{db: db}
}

// GetByID gets a book by ID. Returns nil and ErrNotFound if not found.
func (r *BookRepo) GetByID(ctx context.Context, id string) (*BookRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, title, author, file_path, index_handle, created_at FROM books WHERE id = ?",
		id,
	)
	book, err := scanBook(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query book: %w", err)
	}
	return book, nil
}

// ListAll returns every book in the library ordered by title.
func (r *BookRepo) ListAll(ctx context.Context) ([]BookRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, title, author, file_path, index_handle, created_at FROM books ORDER BY title",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return collectBooks(rows)
}

// ListByIDs returns the books with the given IDs.
func (r *BookRepo) ListByIDs(ctx context.Context, ids []string) ([]BookRecord, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, title, author, file_path, index_handle, created_at FROM books WHERE id IN ("+placeholders+") ORDER BY title",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return collectBooks(rows)
}

// Insert stores a new book.
func (r *BookRepo) Insert(ctx context.Context, book *BookRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO books (id, title, author, file_path, index_handle) VALUES (?, ?, ?, ?, ?)",
		book.ID, book.Title, book.Author, book.FilePath, book.IndexHandle,
	)
	if err != nil {
		return fmt.Errorf("failed to insert book: %w", err)
	}
	return nil
}

// SetIndexHandle records the search index handle for a book.
func (r *BookRepo) SetIndexHandle(ctx context.Context, id, handle string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE books SET index_handle = ? WHERE id = ?",
		handle, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update index handle: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a book. Returns ErrNotFound if it does not exist.
func (r *BookRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM books WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (*BookRecord, error) {
	var book BookRecord
	var author sql.NullString
	var createdAtStr string

	err := row.Scan(&book.ID, &book.Title, &author, &book.FilePath, &book.IndexHandle, &createdAtStr)
	if err != nil {
		return nil, err
	}
	book.Author = author.String

	book.CreatedAt, err = parseTimestamp(createdAtStr)
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func collectBooks(rows *sql.Rows) ([]BookRecord, error) {
	var books []BookRecord
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, *book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate books: %w", err)
	}
	return books, nil
}

// parseTimestamp parses a SQLite DATETIME column value.
func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02 15:04:05", s)
	if err == nil {
		return t, nil
	}
	// SQLite might use a different format
	t, err = time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp: %w", err)
	}
	return t, nil
}
