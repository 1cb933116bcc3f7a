package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// RequestStore defines the interface for the ask request audit log.
type RequestStore interface {
	// Insert logs an ask request. A missing ID is generated.
	Insert(ctx context.Context, req *RequestRecord) error
}

// RequestRepo provides methods for request log operations.
// It implements the RequestStore interface.
type RequestRepo struct {
	db *sql.DB
}

// NewRequestRepo creates a new RequestRepo.
func NewRequestRepo(db *sql.DB) *RequestRepo {
	return &RequestRepo{db: db}
}

// Insert logs an ask request. A missing ID is generated.
func (r *RequestRepo) Insert(ctx context.Context, req *RequestRecord) error {
	if req.ID == "" {
		req.ID = uuid.New().String()
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO requests (id, user_id, conversation_id, question, passage_count) VALUES (?, ?, ?, ?, ?)",
		req.ID, req.UserID, req.ConversationID, req.Question, req.PassageCount,
	)
	if err != nil {
		return fmt.Errorf("failed to insert request: %w", err)
	}
	return nil
}
