package handlers

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"versefinder/internal/contextutil"
	"versefinder/internal/service"
)

// maxBookUploadBytes bounds the size of an uploaded book file.
const maxBookUploadBytes = 32 << 20

// BooksHandler handles HTTP requests for the book library.
type BooksHandler struct {
	library service.LibraryService
}

// NewBooksHandler creates a new BooksHandler.
func NewBooksHandler(library service.LibraryService) *BooksHandler {
	return &BooksHandler{library: library}
}

// List handles GET /api/books.
func (h *BooksHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	list, err := h.library.List(ctx)
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to list books")
		return
	}
	if list == nil {
		list = []service.BookSummary{}
	}
	writeJSON(w, http.StatusOK, list)
}

// Upload handles POST /api/books/upload. Expects a multipart form with
// a "file" part and "title" and optional "author" fields. The book is
// indexed before the response is sent.
func (h *BooksHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if err := r.ParseMultipartForm(maxBookUploadBytes); err != nil {
		logger.WarnContext(ctx, "invalid multipart form", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid upload")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing book file")
		return
	}
	defer func() {
		_ = file.Close()
	}()

	content, err := io.ReadAll(io.LimitReader(file, maxBookUploadBytes))
	if err != nil {
		logger.ErrorContext(ctx, "failed to read upload", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to read upload")
		return
	}

	book, err := h.library.Upload(ctx, service.UploadBookRequest{
		Title:   r.FormValue("title"),
		Author:  r.FormValue("author"),
		Content: content,
	})
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to upload book")
		return
	}

	writeJSON(w, http.StatusCreated, book)
}

// Delete handles DELETE /api/books/{id}.
func (h *BooksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.library.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		writeServiceError(ctx, w, err, "Failed to delete book")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
