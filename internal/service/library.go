package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_library_service.go -package=mocks -mock_names=LibraryService=MockLibraryService versefinder/internal/service LibraryService
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_book_indexer.go -package=mocks versefinder/internal/service BookIndexer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"versefinder/internal/contextutil"
	"versefinder/internal/storage"
)

// BookIndexer builds and tears down the search index for a book.
// This interface is defined from the service layer's perspective (consumer-first).
type BookIndexer interface {
	// IndexBook chunks, embeds, and indexes the book text. It returns
	// the index handle and the number of chunks written.
	IndexBook(ctx context.Context, bookID, text string) (string, int, error)
	// DeleteIndex removes a book's index.
	DeleteIndex(ctx context.Context, handle string) error
}

// BookSummary is a book as seen by clients.
type BookSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author,omitempty"`
	Indexed   bool      `json:"indexed"`
	CreatedAt time.Time `json:"createdAt"`
}

// UploadBookRequest carries a new book's metadata and raw text.
type UploadBookRequest struct {
	Title   string
	Author  string
	Content []byte
}

// LibraryService manages the shared book library.
type LibraryService interface {
	List(ctx context.Context) ([]BookSummary, error)
	// Upload stores a new book and indexes it synchronously.
	Upload(ctx context.Context, req UploadBookRequest) (*BookSummary, error)
	// Delete removes a book. Index and file cleanup is best effort.
	Delete(ctx context.Context, id string) error
}

// libraryService implements LibraryService.
type libraryService struct {
	books      storage.BookStore
	indexer    BookIndexer
	libraryDir string
}

// NewLibraryService creates a new LibraryService. Uploaded book files
// are kept under libraryDir.
func NewLibraryService(books storage.BookStore, indexer BookIndexer, libraryDir string) LibraryService {
	return &libraryService{
		books:      books,
		indexer:    indexer,
		libraryDir: libraryDir,
	}
}

// List returns every book in the library.
func (s *libraryService) List(ctx context.Context) ([]BookSummary, error) {
	records, err := s.books.ListAll(ctx)
	if err != nil {
		return nil, WrapError(err, "failed to list books")
	}

	summaries := make([]BookSummary, len(records))
	for i, r := range records {
		summaries[i] = bookSummary(r)
	}
	return summaries, nil
}

// Upload stores a new book and indexes it synchronously. On indexing
// failure the book record is kept without an index handle so the
// upload can be retried by deleting and re-uploading.
func (s *libraryService) Upload(ctx context.Context, req UploadBookRequest) (*BookSummary, error) {
	logger := contextutil.LoggerFromContext(ctx)

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, &ValidationError{Field: "title", Message: "cannot be empty"}
	}
	text := strings.TrimSpace(string(req.Content))
	if text == "" {
		return nil, &ValidationError{Field: "content", Message: "cannot be empty"}
	}

	id := uuid.New().String()
	filePath := filepath.Join(s.libraryDir, id+".txt")

	if err := os.MkdirAll(s.libraryDir, 0o755); err != nil {
		return nil, WrapError(err, "failed to create library dir")
	}
	if err := os.WriteFile(filePath, req.Content, 0o644); err != nil {
		return nil, WrapError(err, "failed to store book file")
	}

	record := &storage.BookRecord{
		ID:       id,
		Title:    title,
		Author:   strings.TrimSpace(req.Author),
		FilePath: filePath,
	}
	if err := s.books.Insert(ctx, record); err != nil {
		_ = os.Remove(filePath)
		return nil, WrapError(err, "failed to store book")
	}

	handle, chunks, err := s.indexer.IndexBook(ctx, id, text)
	if err != nil {
		return nil, WrapError(err, "failed to index book")
	}
	if err := s.books.SetIndexHandle(ctx, id, handle); err != nil {
		return nil, WrapError(err, "failed to record index handle")
	}
	record.IndexHandle = handle

	logger.InfoContext(ctx, "book indexed", "book_id", id, "title", title, "chunks", chunks)

	stored, err := s.books.GetByID(ctx, id)
	if err != nil {
		return nil, WrapError(err, "failed to reload book")
	}
	summary := bookSummary(*stored)
	return &summary, nil
}

// Delete removes a book. The database record is authoritative; index
// and file cleanup failures are logged and ignored.
func (s *libraryService) Delete(ctx context.Context, id string) error {
	logger := contextutil.LoggerFromContext(ctx)

	record, err := s.books.GetByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return WrapError(err, "failed to load book")
	}

	if err := s.books.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return WrapError(err, "failed to delete book")
	}

	if record.IndexHandle != "" {
		if err := s.indexer.DeleteIndex(ctx, record.IndexHandle); err != nil {
			logger.WarnContext(ctx, "failed to delete book index", "book_id", id, "error", err)
		}
	}
	if record.FilePath != "" {
		if err := os.Remove(record.FilePath); err != nil && !os.IsNotExist(err) {
			logger.WarnContext(ctx, "failed to delete book file", "book_id", id, "error", err)
		}
	}
	return nil
}

func bookSummary(r storage.BookRecord) BookSummary {
	return BookSummary{
		ID:        r.ID,
		Title:     r.Title,
		Author:    r.Author,
		Indexed:   r.IndexHandle != "",
		CreatedAt: r.CreatedAt,
	}
}
