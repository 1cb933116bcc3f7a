package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_ask_service.go -package=mocks -mock_names=AskService=MockAskService versefinder/internal/service AskService
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_candidate_collector.go -package=mocks versefinder/internal/service CandidateCollector
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_candidate_ranker.go -package=mocks versefinder/internal/service CandidateRanker

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"versefinder/internal/contextutil"
	"versefinder/internal/retrieval"
	"versefinder/internal/storage"
)

// CandidateCollector gathers cleaned passage candidates from the
// search indexes of the given books.
// This interface is defined from the service layer's perspective (consumer-first).
type CandidateCollector interface {
	Collect(ctx context.Context, question string, books []retrieval.Book) []retrieval.Candidate
}

// CandidateRanker orders candidates by relevance to the question.
type CandidateRanker interface {
	Rank(ctx context.Context, question string, candidates []retrieval.Candidate) []retrieval.Candidate
}

// AskRequest represents an ask request in the domain layer.
// An empty ConversationID starts a new conversation. At least one
// book must be selected.
type AskRequest struct {
	UserID         string
	Question       string
	ConversationID string
	BookIDs        []string
}

// AskResponse represents the outcome of an ask request.
// ConversationTitle is non-nil only when a new conversation was
// created and at least one passage was found.
type AskResponse struct {
	ConversationID    string
	ConversationTitle *string
	Passages          []ClientPassage
	Remaining         int
}

// FullPassageRequest identifies a previously returned passage by the
// id it was served under.
type FullPassageRequest struct {
	UserID    string
	PassageID string
}

// AskService answers reader questions with verbatim passages.
type AskService interface {
	// Ask retrieves, ranks, and records the best passages for a question.
	Ask(ctx context.Context, req AskRequest) (AskResponse, error)
	// FullPassage returns a passage previously returned to this user,
	// including its full text. Returns ErrNotFound if no recent answer
	// contains it.
	FullPassage(ctx context.Context, req FullPassageRequest) (*StoredPassage, error)
}

// AskConfig carries the tunable limits of the ask flow.
type AskConfig struct {
	DailyQuota      int
	TopPassages     int
	MaxQuestionLen  int
	TitleLen        int
	LedgerScanDepth int
}

const (
	defaultDailyQuota      = 50
	defaultTopPassages     = 3
	defaultMaxQuestionLen  = 2000
	defaultTitleLen        = 60
	defaultLedgerScanDepth = 300
)

// askService implements AskService.
type askService struct {
	books     storage.BookStore
	convs     storage.ConversationStore
	usage     storage.UsageStore
	requests  storage.RequestStore
	collector CandidateCollector
	ranker    CandidateRanker
	cfg       AskConfig
	logger    *slog.Logger
	now       func() time.Time
}

// NewAskService creates a new AskService.
func NewAskService(
	books storage.BookStore,
	convs storage.ConversationStore,
	usage storage.UsageStore,
	requests storage.RequestStore,
	collector CandidateCollector,
	ranker CandidateRanker,
	cfg AskConfig,
) AskService {
	if cfg.DailyQuota <= 0 {
		cfg.DailyQuota = defaultDailyQuota
	}
	if cfg.TopPassages <= 0 {
		cfg.TopPassages = defaultTopPassages
	}
	if cfg.MaxQuestionLen <= 0 {
		cfg.MaxQuestionLen = defaultMaxQuestionLen
	}
	if cfg.TitleLen <= 0 {
		cfg.TitleLen = defaultTitleLen
	}
	if cfg.LedgerScanDepth <= 0 {
		cfg.LedgerScanDepth = defaultLedgerScanDepth
	}
	return &askService{
		books:     books,
		convs:     convs,
		usage:     usage,
		requests:  requests,
		collector: collector,
		ranker:    ranker,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Ask processes an ask request.
func (s *askService) Ask(ctx context.Context, req AskRequest) (AskResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	question := strings.TrimSpace(req.Question)
	if question == "" {
		return AskResponse{}, &ValidationError{Field: "question", Message: "cannot be empty"}
	}
	if utf8.RuneCountInString(question) > s.cfg.MaxQuestionLen {
		return AskResponse{}, &ValidationError{Field: "question", Message: "too long"}
	}
	if len(req.BookIDs) == 0 {
		return AskResponse{}, &ValidationError{Field: "bookIds", Message: "select at least one book"}
	}

	used, err := s.usage.Increment(ctx, req.UserID, dayKey(s.now()))
	if err != nil {
		return AskResponse{}, WrapError(err, "failed to count usage")
	}
	if used > s.cfg.DailyQuota {
		logger.WarnContext(ctx, "daily quota exceeded", "user_id", req.UserID, "used", used)
		return AskResponse{}, ErrQuotaExceeded
	}
	remaining := s.cfg.DailyQuota - used

	conv, created, err := s.resolveConversation(ctx, req.UserID, req.ConversationID, question)
	if err != nil {
		return AskResponse{}, err
	}

	books, err := s.resolveBooks(ctx, req.BookIDs)
	if err != nil {
		return AskResponse{}, err
	}

	userTurn := &storage.TurnRecord{
		ConversationID: conv.ID,
		Role:           storage.RoleUser,
		Content:        question,
		BookIDs:        marshalBookIDs(req.BookIDs),
	}
	if err := s.convs.AppendTurn(ctx, userTurn); err != nil {
		return AskResponse{}, WrapError(err, "failed to record question")
	}

	candidates := s.collector.Collect(ctx, question, books)
	candidates = retrieval.Dedupe(candidates)
	candidates = s.ranker.Rank(ctx, question, candidates)
	if len(candidates) > s.cfg.TopPassages {
		candidates = candidates[:s.cfg.TopPassages]
	}

	stored := make([]StoredPassage, len(candidates))
	client := make([]ClientPassage, len(candidates))
	for i, c := range candidates {
		stored[i] = storedFromCandidate(c)
		client[i] = stored[i].ToClient()
	}

	passagesJSON, err := marshalPassages(stored)
	if err != nil {
		return AskResponse{}, err
	}
	assistantTurn := &storage.TurnRecord{
		ConversationID: conv.ID,
		Role:           storage.RoleAssistant,
		Passages:       passagesJSON,
	}
	if err := s.convs.AppendTurn(ctx, assistantTurn); err != nil {
		return AskResponse{}, WrapError(err, "failed to record answer")
	}

	// Audit log failure does not fail the request.
	reqRecord := &storage.RequestRecord{
		UserID:         req.UserID,
		ConversationID: conv.ID,
		Question:       question,
		PassageCount:   len(stored),
	}
	if err := s.requests.Insert(ctx, reqRecord); err != nil {
		logger.ErrorContext(ctx, "failed to log request", "error", err)
	}

	resp := AskResponse{
		ConversationID: conv.ID,
		Passages:       client,
		Remaining:      remaining,
	}
	if created && len(client) > 0 {
		title := conv.Title
		resp.ConversationTitle = &title
	}

	logger.InfoContext(ctx, "ask request processed",
		"conversation_id", conv.ID,
		"books_searched", len(books),
		"passages", len(client),
	)
	return resp, nil
}

// resolveConversation loads the caller's conversation or starts a new
// one titled after the question. A supplied id that is unknown or
// belongs to another user is treated as if none were supplied: the
// question still gets answered, in a fresh conversation.
func (s *askService) resolveConversation(ctx context.Context, userID, conversationID, question string) (*storage.ConversationRecord, bool, error) {
	if conversationID != "" {
		conv, err := s.convs.GetByID(ctx, conversationID)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return nil, false, WrapError(err, "failed to load conversation")
		}
		if err == nil && conv.UserID == userID {
			return conv, false, nil
		}
		logger := contextutil.LoggerFromContext(ctx)
		logger.WarnContext(ctx, "ignoring invalid conversation id", "conversation_id", conversationID)
	}

	conv := &storage.ConversationRecord{
		UserID: userID,
		Title:  truncateRunes(question, s.cfg.TitleLen),
	}
	if err := s.convs.Insert(ctx, conv); err != nil {
		return nil, false, WrapError(err, "failed to create conversation")
	}
	return conv, true, nil
}

// resolveBooks maps the request's book selection onto index targets.
// Every selected book must exist and be indexed.
func (s *askService) resolveBooks(ctx context.Context, bookIDs []string) ([]retrieval.Book, error) {
	records, err := s.books.ListByIDs(ctx, bookIDs)
	if err != nil {
		return nil, WrapError(err, "failed to load books")
	}

	if len(records) != len(bookIDs) {
		return nil, &ValidationError{Field: "bookIds", Message: "unknown book"}
	}
	for _, r := range records {
		if r.IndexHandle == "" {
			return nil, &ValidationError{Field: "bookIds", Message: "book is not indexed yet"}
		}
	}

	books := make([]retrieval.Book, len(records))
	for i, r := range records {
		books[i] = retrieval.Book{ID: r.ID, Title: r.Title, IndexHandle: r.IndexHandle}
	}
	return books, nil
}

// marshalBookIDs records the book selection on a user turn.
func marshalBookIDs(ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return ""
	}
	return string(raw)
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
