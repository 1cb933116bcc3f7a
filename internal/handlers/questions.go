package handlers

import (
	"errors"
	"net/http"

	"versefinder/internal/contextutil"
	"versefinder/internal/storage"
)

// QuestionsHandler handles HTTP requests for sample questions.
type QuestionsHandler struct {
	questions storage.QuestionStore
}

// NewQuestionsHandler creates a new QuestionsHandler.
func NewQuestionsHandler(questions storage.QuestionStore) *QuestionsHandler {
	return &QuestionsHandler{questions: questions}
}

// RandomQuestionResponse carries a sample question.
//
// swagger:model RandomQuestionResponse
type RandomQuestionResponse struct {
	Question string `json:"question"`
}

// Random handles GET /api/questions/random.
func (h *QuestionsHandler) Random(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	question, err := h.questions.Random(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "No sample questions available")
		return
	}
	if err != nil {
		logger.ErrorContext(ctx, "failed to load sample question", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load sample question")
		return
	}

	writeJSON(w, http.StatusOK, RandomQuestionResponse{Question: question})
}
