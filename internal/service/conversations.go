package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_conversation_service.go -package=mocks -mock_names=ConversationService=MockConversationService versefinder/internal/service ConversationService

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"versefinder/internal/storage"
)

// ConversationSummary is a conversation without its turns.
type ConversationSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

// ConversationTurn is a single turn as seen by clients. Question and
// SelectedBookIDs are set for user turns, Passages for assistant turns.
type ConversationTurn struct {
	Role            string          `json:"role"`
	Question        string          `json:"question,omitempty"`
	SelectedBookIDs []string        `json:"selectedBookIds,omitempty"`
	Passages        []ClientPassage `json:"passages,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ConversationDetail is a conversation with its full turn history.
type ConversationDetail struct {
	ConversationSummary
	Turns []ConversationTurn `json:"turns"`
}

// ConversationService manages a user's question-and-answer threads.
// Every method enforces ownership.
type ConversationService interface {
	List(ctx context.Context, userID string) ([]ConversationSummary, error)
	Get(ctx context.Context, userID, id string) (*ConversationDetail, error)
	Delete(ctx context.Context, userID, id string) error
}

// conversationService implements ConversationService.
type conversationService struct {
	convs storage.ConversationStore
}

// NewConversationService creates a new ConversationService.
func NewConversationService(convs storage.ConversationStore) ConversationService {
	return &conversationService{convs: convs}
}

// List returns the user's conversations, newest first.
func (s *conversationService) List(ctx context.Context, userID string) ([]ConversationSummary, error) {
	records, err := s.convs.ListByUser(ctx, userID)
	if err != nil {
		return nil, WrapError(err, "failed to list conversations")
	}

	summaries := make([]ConversationSummary, len(records))
	for i, r := range records {
		summaries[i] = ConversationSummary{ID: r.ID, Title: r.Title, CreatedAt: r.CreatedAt}
	}
	return summaries, nil
}

// Get returns a conversation with its turns.
func (s *conversationService) Get(ctx context.Context, userID, id string) (*ConversationDetail, error) {
	conv, err := s.ownedConversation(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	records, err := s.convs.ListTurns(ctx, id)
	if err != nil {
		return nil, WrapError(err, "failed to list turns")
	}

	turns := make([]ConversationTurn, 0, len(records))
	for _, r := range records {
		turn := ConversationTurn{Role: r.Role, CreatedAt: r.CreatedAt}
		switch r.Role {
		case storage.RoleUser:
			turn.Question = r.Content
			if r.BookIDs != "" {
				if err := json.Unmarshal([]byte(r.BookIDs), &turn.SelectedBookIDs); err != nil {
					return nil, WrapError(err, "failed to unmarshal book selection")
				}
			}
		case storage.RoleAssistant:
			stored, err := unmarshalPassages(r.Passages)
			if err != nil {
				return nil, err
			}
			turn.Passages = make([]ClientPassage, len(stored))
			for i, p := range stored {
				turn.Passages[i] = p.ToClient()
			}
		}
		turns = append(turns, turn)
	}

	return &ConversationDetail{
		ConversationSummary: ConversationSummary{ID: conv.ID, Title: conv.Title, CreatedAt: conv.CreatedAt},
		Turns:               turns,
	}, nil
}

// Delete removes a conversation and its turns.
func (s *conversationService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.ownedConversation(ctx, userID, id); err != nil {
		return err
	}
	if err := s.convs.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return WrapError(err, "failed to delete conversation")
	}
	return nil
}

func (s *conversationService) ownedConversation(ctx context.Context, userID, id string) (*storage.ConversationRecord, error) {
	conv, err := s.convs.GetByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, WrapError(err, "failed to load conversation")
	}
	if conv.UserID != userID {
		return nil, ErrForbidden
	}
	return conv, nil
}
