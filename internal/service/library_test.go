package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/mock/gomock"

	"versefinder/internal/service"
	"versefinder/internal/service/mocks"
	"versefinder/internal/storage"
)

func newLibraryFixture(t *testing.T, ctrl *gomock.Controller) (service.LibraryService, *mocks.MockBookIndexer, string) {
	t.Helper()

	dir := t.TempDir()
	db, err := storage.New(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	if err := storage.Migrate(db); err != nil {
		t.Fatalf("storage.Migrate() error = %v", err)
	}

	indexer := mocks.NewMockBookIndexer(ctrl)
	libraryDir := filepath.Join(dir, "library")
	return service.NewLibraryService(storage.NewBookRepo(db), indexer, libraryDir), indexer, libraryDir
}

func TestLibraryService_UploadAndList(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, indexer, libraryDir := newLibraryFixture(t, ctrl)

	indexer.EXPECT().
		IndexBook(gomock.Any(), gomock.Any(), "Blessed are the poor in spirit.").
		Return("book_x", 1, nil)

	book, err := svc.Upload(context.Background(), service.UploadBookRequest{
		Title:   "The Beatitudes",
		Author:  "Unknown",
		Content: []byte("Blessed are the poor in spirit.\n"),
	})
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if book.Title != "The Beatitudes" || !book.Indexed {
		t.Errorf("Upload() = %+v", book)
	}

	stored, err := os.ReadFile(filepath.Join(libraryDir, book.ID+".txt"))
	if err != nil {
		t.Fatalf("book file not written: %v", err)
	}
	if string(stored) != "Blessed are the poor in spirit.\n" {
		t.Errorf("book file content = %q", stored)
	}

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 1 || list[0].ID != book.ID {
		t.Errorf("List() = %+v", list)
	}
}

func TestLibraryService_UploadValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newLibraryFixture(t, ctrl)

	var vErr *service.ValidationError
	if _, err := svc.Upload(context.Background(), service.UploadBookRequest{Content: []byte("x")}); !errors.As(err, &vErr) {
		t.Errorf("missing title error = %v, want ValidationError", err)
	}
	if _, err := svc.Upload(context.Background(), service.UploadBookRequest{Title: "T", Content: []byte("  ")}); !errors.As(err, &vErr) {
		t.Errorf("empty content error = %v, want ValidationError", err)
	}
}

func TestLibraryService_UploadIndexFailureKeepsRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, indexer, _ := newLibraryFixture(t, ctrl)

	indexer.EXPECT().
		IndexBook(gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", 0, errors.New("embedding service down"))

	if _, err := svc.Upload(context.Background(), service.UploadBookRequest{
		Title:   "T",
		Content: []byte("some text"),
	}); err == nil {
		t.Fatal("Upload() should fail when indexing fails")
	}

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 1 || list[0].Indexed {
		t.Errorf("List() = %+v, want one unindexed book", list)
	}
}

func TestLibraryService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, indexer, libraryDir := newLibraryFixture(t, ctrl)

	indexer.EXPECT().IndexBook(gomock.Any(), gomock.Any(), gomock.Any()).Return("book_x", 1, nil)
	book, err := svc.Upload(context.Background(), service.UploadBookRequest{Title: "T", Content: []byte("text")})
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	// Index cleanup failure must not fail the delete.
	indexer.EXPECT().DeleteIndex(gomock.Any(), "book_x").Return(errors.New("index unavailable"))

	if err := svc.Delete(context.Background(), book.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(libraryDir, book.ID+".txt")); !os.IsNotExist(err) {
		t.Error("book file should be removed")
	}

	if err := svc.Delete(context.Background(), book.ID); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}
