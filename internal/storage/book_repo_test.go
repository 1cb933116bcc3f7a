package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return db
}

func TestBookRepo_InsertAndGet(t *testing.T) {
	repo := NewBookRepo(setupTestDB(t))
	ctx := context.Background()

	book := &BookRecord{
		ID:       "book-1",
		Title:    "The Ladder of Divine Ascent",
		Author:   "John Climacus",
		FilePath: "library/ladder.txt",
	}
	if err := repo.Insert(ctx, book); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	got, err := repo.GetByID(ctx, "book-1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Title != book.Title || got.Author != book.Author {
		t.Errorf("GetByID() = %+v, want %+v", got, book)
	}
	if got.IndexHandle != "" {
		t.Errorf("new book should have empty index handle, got %q", got.IndexHandle)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestBookRepo_GetByID_NotFound(t *testing.T) {
	repo := NewBookRepo(setupTestDB(t))

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestBookRepo_SetIndexHandle(t *testing.T) {
	repo := NewBookRepo(setupTestDB(t))
	ctx := context.Background()

	book := &BookRecord{ID: "book-1", Title: "The Philokalia", FilePath: "library/philokalia.txt"}
	if err := repo.Insert(ctx, book); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	if err := repo.SetIndexHandle(ctx, "book-1", "book_book-1"); err != nil {
		t.Fatalf("SetIndexHandle() error = %v", err)
	}

	got, err := repo.GetByID(ctx, "book-1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.IndexHandle != "book_book-1" {
		t.Errorf("IndexHandle = %q, want book_book-1", got.IndexHandle)
	}

	if err := repo.SetIndexHandle(ctx, "missing", "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetIndexHandle(missing) error = %v, want ErrNotFound", err)
	}
}

func TestBookRepo_ListByIDs(t *testing.T) {
	repo := NewBookRepo(setupTestDB(t))
	ctx := context.Background()

	for _, b := range []BookRecord{
		{ID: "b1", Title: "Way of a Pilgrim", FilePath: "p.txt"},
		{ID: "b2", Title: "Sayings of the Desert Fathers", FilePath: "s.txt"},
		{ID: "b3", Title: "Unseen Warfare", FilePath: "u.txt"},
	} {
		b := b
		if err := repo.Insert(ctx, &b); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}

	got, err := repo.ListByIDs(ctx, []string{"b1", "b3", "missing"})
	if err != nil {
		t.Fatalf("ListByIDs() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListByIDs() returned %d books, want 2 (unknown IDs omitted)", len(got))
	}

	empty, err := repo.ListByIDs(ctx, nil)
	if err != nil {
		t.Fatalf("ListByIDs(nil) error = %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("ListByIDs(nil) = %v, want empty", empty)
	}
}

func TestBookRepo_ListAllOrderedByTitle(t *testing.T) {
	repo := NewBookRepo(setupTestDB(t))
	ctx := context.Background()

	for _, b := range []BookRecord{
		{ID: "b1", Title: "Zeal Without Knowledge", FilePath: "z.txt"},
		{ID: "b2", Title: "A Night in the Desert", FilePath: "a.txt"},
	} {
		b := b
		if err := repo.Insert(ctx, &b); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}

	got, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(got) != 2 || got[0].ID != "b2" || got[1].ID != "b1" {
		t.Errorf("ListAll() order wrong: %+v", got)
	}
}

func TestBookRepo_Delete(t *testing.T) {
	repo := NewBookRepo(setupTestDB(t))
	ctx := context.Background()

	book := &BookRecord{ID: "book-1", Title: "On Prayer", FilePath: "o.txt"}
	if err := repo.Insert(ctx, book); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	if err := repo.Delete(ctx, "book-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.GetByID(ctx, "book-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID() after delete error = %v, want ErrNotFound", err)
	}
	if err := repo.Delete(ctx, "book-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}
