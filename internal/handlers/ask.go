package handlers

import (
	"encoding/json"
	"net/http"

	"versefinder/internal/auth"
	"versefinder/internal/contextutil"
	"versefinder/internal/service"
)

// AskHandler handles HTTP requests for passage questions.
type AskHandler struct {
	askService service.AskService
}

// NewAskHandler creates a new AskHandler.
func NewAskHandler(askService service.AskService) *AskHandler {
	return &AskHandler{askService: askService}
}

// AskRequest represents the HTTP request payload for questions.
// This mirrors service.AskRequest but is defined here for HTTP layer separation.
//
// swagger:model AskRequest
type AskRequest struct {
	Question       string   `json:"question"`
	ConversationID string   `json:"conversationId,omitempty"`
	BookIDs        []string `json:"bookIds,omitempty"`
}

// PassageResponse represents a single passage in the HTTP response.
//
// swagger:model PassageResponse
type PassageResponse struct {
	// ID identifies the passage for later full-text lookup
	ID string `json:"id"`

	// ID of the book the passage was found in
	BookID string `json:"bookId"`

	// Title of the book the passage was found in
	BookTitle string `json:"bookTitle"`

	// Relevance score from the search index, if available
	Score *float32 `json:"score"`

	// Preview text shown to the reader
	Preview string `json:"preview"`

	// Truncated indicates a longer full text is available on demand
	Truncated bool `json:"truncated"`
}

// AskResponse represents the HTTP response payload for questions.
//
// swagger:model AskResponse
type AskResponse struct {
	ConversationID    string            `json:"conversationId"`
	ConversationTitle *string           `json:"conversationTitle"`
	Passages          []PassageResponse `json:"passages"`
	Remaining         int               `json:"remaining"`
}

// ServeHTTP handles HTTP requests for questions.
//
// swagger:route POST /api/ask askQuestion
//
// # Ask a question
//
// Searches the selected books for passages answering the question,
// records the exchange in a conversation, and returns passage previews.
//
// responses:
//
//	'200':
//	  description: Passages found for the question
//	  schema:
//	    "$ref": "#/definitions/AskResponse"
//	'400':
//	  description: Invalid question or book selection
//	'429':
//	  description: Daily question limit reached
func (h *AskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	identity := auth.IdentityFromContext(ctx)

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.askService.Ask(ctx, service.AskRequest{
		UserID:         identity.UserID,
		Question:       req.Question,
		ConversationID: req.ConversationID,
		BookIDs:        req.BookIDs,
	})
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to process question")
		return
	}

	passages := make([]PassageResponse, len(result.Passages))
	for i, p := range result.Passages {
		passages[i] = PassageResponse{
			ID:        p.ID,
			BookID:    p.BookID,
			BookTitle: p.BookTitle,
			Score:     p.Score,
			Preview:   p.Preview,
			Truncated: p.Truncated,
		}
	}

	writeJSON(w, http.StatusOK, AskResponse{
		ConversationID:    result.ConversationID,
		ConversationTitle: result.ConversationTitle,
		Passages:          passages,
		Remaining:         result.Remaining,
	})
}
