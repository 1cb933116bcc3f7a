package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	"versefinder/internal/auth"
	"versefinder/internal/service"
	"versefinder/internal/service/mocks"
)

func multipartUpload(t *testing.T, title, author, content string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("title", title); err != nil {
		t.Fatalf("write title: %v", err)
	}
	if author != "" {
		if err := mw.WriteField("author", author); err != nil {
			t.Fatalf("write author: %v", err)
		}
	}
	fw, err := mw.CreateFormFile("file", "book.txt")
	if err != nil {
		t.Fatalf("create file part: %v", err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatalf("write file part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestBooksHandler_Upload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	library := mocks.NewMockLibraryService(ctrl)
	library.EXPECT().
		Upload(gomock.Any(), service.UploadBookRequest{
			Title:   "The Ladder",
			Author:  "John Climacus",
			Content: []byte("Step 1. On renunciation."),
		}).
		Return(&service.BookSummary{ID: "b1", Title: "The Ladder", Indexed: true}, nil)

	handler := NewBooksHandler(library)

	body, contentType := multipartUpload(t, "The Ladder", "John Climacus", "Step 1. On renunciation.")
	req := httptest.NewRequest(http.MethodPost, "/api/books/upload", body)
	req.Header.Set("Content-Type", contentType)
	req = req.WithContext(auth.WithIdentity(req.Context(), &auth.Identity{UserID: "admin-1", Approved: true, Admin: true}))
	w := httptest.NewRecorder()

	handler.Upload(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}
	var resp service.BookSummary
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ID != "b1" || !resp.Indexed {
		t.Errorf("response = %+v", resp)
	}
}

func TestBooksHandler_UploadMissingFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := NewBooksHandler(mocks.NewMockLibraryService(ctrl))

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("title", "The Ladder"); err != nil {
		t.Fatalf("write title: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/books/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()

	handler.Upload(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestBooksHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	library := mocks.NewMockLibraryService(ctrl)
	library.EXPECT().List(gomock.Any()).Return(nil, nil)

	handler := NewBooksHandler(library)
	w := httptest.NewRecorder()

	handler.List(w, authedRequest(http.MethodGet, "/api/books", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := w.Body.String(); got != "[]\n" {
		t.Errorf("empty list body = %q, want JSON array", got)
	}
}

func TestBooksHandler_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	library := mocks.NewMockLibraryService(ctrl)
	library.EXPECT().Delete(gomock.Any(), "b1").Return(service.ErrNotFound)

	handler := NewBooksHandler(library)
	w := httptest.NewRecorder()
	r := withURLParam(authedRequest(http.MethodDelete, "/api/books/b1", nil), "id", "b1")

	handler.Delete(w, r)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
