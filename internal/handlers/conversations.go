package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"versefinder/internal/auth"
	"versefinder/internal/service"
)

// ConversationsHandler handles HTTP requests for conversation history.
type ConversationsHandler struct {
	conversations service.ConversationService
}

// NewConversationsHandler creates a new ConversationsHandler.
func NewConversationsHandler(conversations service.ConversationService) *ConversationsHandler {
	return &ConversationsHandler{conversations: conversations}
}

// List handles GET /api/conversations.
func (h *ConversationsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity := auth.IdentityFromContext(ctx)

	list, err := h.conversations.List(ctx, identity.UserID)
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to list conversations")
		return
	}
	if list == nil {
		list = []service.ConversationSummary{}
	}
	writeJSON(w, http.StatusOK, list)
}

// Get handles GET /api/conversations/{id}.
func (h *ConversationsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity := auth.IdentityFromContext(ctx)

	detail, err := h.conversations.Get(ctx, identity.UserID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(ctx, w, err, "Failed to load conversation")
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// Delete handles DELETE /api/conversations/{id}.
func (h *ConversationsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity := auth.IdentityFromContext(ctx)

	if err := h.conversations.Delete(ctx, identity.UserID, chi.URLParam(r, "id")); err != nil {
		writeServiceError(ctx, w, err, "Failed to delete conversation")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
