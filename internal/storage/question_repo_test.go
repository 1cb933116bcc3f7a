package storage

import (
	"context"
	"errors"
	"testing"
)

func TestQuestionRepo_Random(t *testing.T) {
	repo := NewQuestionRepo(setupTestDB(t))
	ctx := context.Background()

	if _, err := repo.Random(ctx); !errors.Is(err, ErrNotFound) {
		t.Errorf("Random() on empty table error = %v, want ErrNotFound", err)
	}

	seed := []string{
		"What do the fathers say about unceasing prayer?",
		"How should a beginner keep vigil?",
	}
	if err := repo.Seed(ctx, seed); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	// Seeding again with overlap must not fail.
	if err := repo.Seed(ctx, seed); err != nil {
		t.Fatalf("repeat Seed() error = %v", err)
	}

	got, err := repo.Random(ctx)
	if err != nil {
		t.Fatalf("Random() error = %v", err)
	}
	if got != seed[0] && got != seed[1] {
		t.Errorf("Random() = %q, not one of the seeded questions", got)
	}
}
