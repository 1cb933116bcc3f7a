package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"versefinder/internal/storage"
)

func newConversationFixture(t *testing.T) (ConversationService, *storage.ConversationRepo) {
	t.Helper()

	db, err := storage.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	if err := storage.Migrate(db); err != nil {
		t.Fatalf("storage.Migrate() error = %v", err)
	}

	repo := storage.NewConversationRepo(db)
	return NewConversationService(repo), repo
}

func TestConversationService_GetWithTurns(t *testing.T) {
	svc, repo := newConversationFixture(t)
	ctx := context.Background()

	conv := &storage.ConversationRecord{UserID: "user-1", Title: "On prayer"}
	if err := repo.Insert(ctx, conv); err != nil {
		t.Fatalf("insert: %v", err)
	}
	turns := []storage.TurnRecord{
		{ConversationID: conv.ID, Role: storage.RoleUser, Content: "How should I pray?", BookIDs: `["b1"]`},
		{ConversationID: conv.ID, Role: storage.RoleAssistant,
			Passages: `[{"id":"p1","bookId":"b1","bookTitle":"The Philokalia","preview":"short","fullText":"short"}]`},
	}
	for i := range turns {
		if err := repo.AppendTurn(ctx, &turns[i]); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := svc.Get(ctx, "user-1", conv.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Title != "On prayer" || len(got.Turns) != 2 {
		t.Fatalf("Get() = %+v", got)
	}
	if got.Turns[0].Question != "How should I pray?" {
		t.Errorf("user turn = %+v", got.Turns[0])
	}
	if len(got.Turns[0].SelectedBookIDs) != 1 || got.Turns[0].SelectedBookIDs[0] != "b1" {
		t.Errorf("selected books = %v", got.Turns[0].SelectedBookIDs)
	}
	if len(got.Turns[1].Passages) != 1 {
		t.Fatalf("assistant turn = %+v", got.Turns[1])
	}
	p := got.Turns[1].Passages[0]
	if p.ID != "p1" || p.BookTitle != "The Philokalia" || p.Truncated {
		t.Errorf("passage projection = %+v", p)
	}
}

func TestConversationService_Ownership(t *testing.T) {
	svc, repo := newConversationFixture(t)
	ctx := context.Background()

	conv := &storage.ConversationRecord{UserID: "owner", Title: "t"}
	if err := repo.Insert(ctx, conv); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if _, err := svc.Get(ctx, "intruder", conv.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("Get() error = %v, want ErrForbidden", err)
	}
	if err := svc.Delete(ctx, "intruder", conv.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("Delete() error = %v, want ErrForbidden", err)
	}
	if _, err := svc.Get(ctx, "owner", "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}
}

func TestConversationService_ListAndDelete(t *testing.T) {
	svc, repo := newConversationFixture(t)
	ctx := context.Background()

	for _, title := range []string{"first", "second"} {
		conv := &storage.ConversationRecord{UserID: "user-1", Title: title}
		if err := repo.Insert(ctx, conv); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	other := &storage.ConversationRecord{UserID: "user-2", Title: "not mine"}
	if err := repo.Insert(ctx, other); err != nil {
		t.Fatalf("insert: %v", err)
	}

	list, err := svc.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("List() returned %d conversations, want 2", len(list))
	}

	if err := svc.Delete(ctx, "user-1", list[0].ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	list, err = svc.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 1 {
		t.Errorf("List() after delete returned %d conversations, want 1", len(list))
	}
}
