package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_conversation_store.go -package=mocks versefinder/internal/storage ConversationStore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// ConversationStore defines the interface for conversation storage operations.
type ConversationStore interface {
	// GetByID gets a conversation by ID. Returns nil and ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*ConversationRecord, error)
	// Insert stores a new conversation. A missing ID is generated.
	Insert(ctx context.Context, conv *ConversationRecord) error
	// ListByUser returns the user's conversations, newest first.
	ListByUser(ctx context.Context, userID string) ([]ConversationRecord, error)
	// Delete removes a conversation and its turns.
	// Returns ErrNotFound if it does not exist.
	Delete(ctx context.Context, id string) error
	// AppendTurn appends a turn to a conversation. A missing turn ID is generated.
	AppendTurn(ctx context.Context, turn *TurnRecord) error
	// ListTurns returns a conversation's turns in insertion order.
	ListTurns(ctx context.Context, conversationID string) ([]TurnRecord, error)
	// RecentAssistantTurns returns the most recent assistant turns across
	// all conversations, newest first, up to limit. Each turn carries the
	// id of the user owning its conversation.
	RecentAssistantTurns(ctx context.Context, limit int) ([]OwnedTurn, error)
}

// ConversationRepo provides methods for conversation operations.
// It implements the ConversationStore interface.
type ConversationRepo struct {
	db *sql.DB
}

// NewConversationRepo creates a new ConversationRepo.
func NewConversationRepo(db *sql.DB) *ConversationRepo {
	return &ConversationRepo{db: db}
}

// GetByID gets a conversation by ID. Returns nil and ErrNotFound if not found.
func (r *ConversationRepo) GetByID(ctx context.Context, id string) (*ConversationRecord, error) {
	var conv ConversationRecord
	var createdAtStr string

	err := r.db.QueryRowContext(ctx,
		"SELECT id, user_id, title, created_at FROM conversations WHERE id = ?",
		id,
	).Scan(&conv.ID, &conv.UserID, &conv.Title, &createdAtStr)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query conversation: %w", err)
	}

	conv.CreatedAt, err = parseTimestamp(createdAtStr)
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// Insert stores a new conversation. A missing ID is generated.
func (r *ConversationRepo) Insert(ctx context.Context, conv *ConversationRecord) error {
	if conv.ID == "" {
		conv.ID = uuid.New().String()
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO conversations (id, user_id, title) VALUES (?, ?, ?)",
		conv.ID, conv.UserID, conv.Title,
	)
	if err != nil {
		return fmt.Errorf("failed to insert conversation: %w", err)
	}
	return nil
}

// ListByUser returns the user's conversations, newest first.
func (r *ConversationRepo) ListByUser(ctx context.Context, userID string) ([]ConversationRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, user_id, title, created_at FROM conversations WHERE user_id = ? ORDER BY created_at DESC, id",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query conversations: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var convs []ConversationRecord
	for rows.Next() {
		var conv ConversationRecord
		var createdAtStr string
		if err := rows.Scan(&conv.ID, &conv.UserID, &conv.Title, &createdAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}
		conv.CreatedAt, err = parseTimestamp(createdAtStr)
		if err != nil {
			return nil, err
		}
		convs = append(convs, conv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate conversations: %w", err)
	}
	return convs, nil
}

// Delete removes a conversation. Turns are removed by the foreign key cascade.
func (r *ConversationRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM conversations WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
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

// AppendTurn appends a turn to a conversation. A missing turn ID is generated.
func (r *ConversationRepo) AppendTurn(ctx context.Context, turn *TurnRecord) error {
	if turn.ID == "" {
		turn.ID = uuid.New().String()
	}

	var bookIDs, passages sql.NullString
	if turn.BookIDs != "" {
		bookIDs = sql.NullString{String: turn.BookIDs, Valid: true}
	}
	if turn.Passages != "" {
		passages = sql.NullString{String: turn.Passages, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO conversation_turns (id, conversation_id, role, content, book_ids, passages) VALUES (?, ?, ?, ?, ?, ?)",
		turn.ID, turn.ConversationID, turn.Role, turn.Content, bookIDs, passages,
	)
	if err != nil {
		return fmt.Errorf("failed to append turn: %w", err)
	}
	return nil
}

// ListTurns returns a conversation's turns in insertion order.
func (r *ConversationRepo) ListTurns(ctx context.Context, conversationID string) ([]TurnRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, conversation_id, role, content, book_ids, passages, created_at FROM conversation_turns WHERE conversation_id = ? ORDER BY seq",
		conversationID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query turns: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return collectTurns(rows)
}

// RecentAssistantTurns returns the most recent assistant turns across all
// conversations, newest first, up to limit. Each turn carries the id of
// the user owning its conversation.
func (r *ConversationRepo) RecentAssistantTurns(ctx context.Context, limit int) ([]OwnedTurn, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT t.id, t.conversation_id, t.role, t.content, t.book_ids, t.passages, t.created_at, c.user_id
		 FROM conversation_turns t
		 JOIN conversations c ON c.id = t.conversation_id
		 WHERE t.role = ?
		 ORDER BY t.seq DESC
		 LIMIT ?`,
		RoleAssistant, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query turns: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var turns []OwnedTurn
	for rows.Next() {
		var turn OwnedTurn
		var bookIDs, passages sql.NullString
		var createdAtStr string
		if err := rows.Scan(&turn.ID, &turn.ConversationID, &turn.Role, &turn.Content, &bookIDs, &passages, &createdAtStr, &turn.OwnerID); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		turn.BookIDs = bookIDs.String
		turn.Passages = passages.String

		turn.CreatedAt, err = parseTimestamp(createdAtStr)
		if err != nil {
			return nil, err
		}
		turns = append(turns, turn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate turns: %w", err)
	}
	return turns, nil
}

func collectTurns(rows *sql.Rows) ([]TurnRecord, error) {
	var turns []TurnRecord
	for rows.Next() {
		var turn TurnRecord
		var bookIDs, passages sql.NullString
		var createdAtStr string
		if err := rows.Scan(&turn.ID, &turn.ConversationID, &turn.Role, &turn.Content, &bookIDs, &passages, &createdAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		turn.BookIDs = bookIDs.String
		turn.Passages = passages.String

		var err error
		turn.CreatedAt, err = parseTimestamp(createdAtStr)
		if err != nil {
			return nil, err
		}
		turns = append(turns, turn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate turns: %w", err)
	}
	return turns, nil
}
