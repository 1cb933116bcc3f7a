package storage

import "time"

// BookRecord represents a book in the library.
// IndexHandle is empty until the book has been chunked and indexed.
type BookRecord struct {
	ID          string
	Title       string
	Author      string
	FilePath    string
	IndexHandle string
	CreatedAt   time.Time
}

// ConversationRecord represents a question-and-answer thread owned by a user.
type ConversationRecord struct {
	ID        string
	UserID    string
	Title     string
	CreatedAt time.Time
}

// TurnRecord represents a single turn in a conversation.
// Role is "user" or "assistant". For user turns Content holds the
// question and BookIDs the selected book ids as a JSON array; for
// assistant turns Passages holds the stored passages as a JSON document.
type TurnRecord struct {
	ID             string
	ConversationID string
	Role           string
	Content        string
	BookIDs        string
	Passages       string
	CreatedAt      time.Time
}

// OwnedTurn pairs a turn with the id of the user owning its conversation.
type OwnedTurn struct {
	TurnRecord
	OwnerID string
}

// RequestRecord is an audit log entry for a single ask request.
type RequestRecord struct {
	ID             string
	UserID         string
	ConversationID string
	Question       string
	PassageCount   int
	CreatedAt      time.Time
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)
