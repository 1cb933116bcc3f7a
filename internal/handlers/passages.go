package handlers

import (
	"encoding/json"
	"net/http"

	"versefinder/internal/auth"
	"versefinder/internal/contextutil"
	"versefinder/internal/service"
)

// PassagesHandler handles HTTP requests for full passage lookups.
type PassagesHandler struct {
	askService service.AskService
}

// NewPassagesHandler creates a new PassagesHandler.
func NewPassagesHandler(askService service.AskService) *PassagesHandler {
	return &PassagesHandler{askService: askService}
}

// FullPassageRequest identifies a previously returned passage.
//
// swagger:model FullPassageRequest
type FullPassageRequest struct {
	PassageID string `json:"passageId"`
}

// FullPassageResponse carries the full text of a passage.
//
// swagger:model FullPassageResponse
type FullPassageResponse struct {
	PassageID string `json:"passageId"`
	BookID    string `json:"bookId"`
	BookTitle string `json:"bookTitle"`
	FullText  string `json:"fullText"`
}

// Full handles POST /api/passages/full. The passage must appear in one
// of the caller's recent answers; arbitrary ids return 404.
func (h *PassagesHandler) Full(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	identity := auth.IdentityFromContext(ctx)

	var req FullPassageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	passage, err := h.askService.FullPassage(ctx, service.FullPassageRequest{
		UserID:    identity.UserID,
		PassageID: req.PassageID,
	})
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to look up passage")
		return
	}

	writeJSON(w, http.StatusOK, FullPassageResponse{
		PassageID: passage.ID,
		BookID:    passage.BookID,
		BookTitle: passage.BookTitle,
		FullText:  passage.FullText,
	})
}
