package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// QuestionStore defines the interface for sample question operations.
type QuestionStore interface {
	// Random returns a random sample question.
	// Returns ErrNotFound when none are seeded.
	Random(ctx context.Context) (string, error)
	// Seed inserts the given questions, skipping ones already present.
	Seed(ctx context.Context, questions []string) error
}

// QuestionRepo provides methods for sample question operations.
// It implements the QuestionStore interface.
type QuestionRepo struct {
	db *sql.DB
}

// NewQuestionRepo creates a new QuestionRepo.
func NewQuestionRepo(db *sql.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// Random returns a random sample question.
func (r *QuestionRepo) Random(ctx context.Context) (string, error) {
	var text string
	err := r.db.QueryRowContext(ctx,
		"SELECT text FROM sample_questions ORDER BY RANDOM() LIMIT 1",
	).Scan(&text)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query sample question: %w", err)
	}
	return text, nil
}

// Seed inserts the given questions, skipping ones already present.
func (r *QuestionRepo) Seed(ctx context.Context, questions []string) error {
	for _, q := range questions {
		_, err := r.db.ExecContext(ctx,
			"INSERT INTO sample_questions (text) VALUES (?) ON CONFLICT (text) DO NOTHING",
			q,
		)
		if err != nil {
			return fmt.Errorf("failed to seed question: %w", err)
		}
	}
	return nil
}
