package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kmazurek/teachme-api/internal/api/shared"
	"github.com/kmazurek/teachme-api/internal/platform/logger"
	"github.com/kmazurek/teachme-api/internal/service"
)

// QuestionHandler handles question bank HTTP requests.
type QuestionHandler struct {
	questions service.QuestionService
	logger    *slog.Logger
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(questions service.QuestionService, logger *slog.Logger) *QuestionHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for QuestionHandler")
	}

	return &QuestionHandler{
		questions: questions,
		logger:    logger.With(slog.String("component", "question_handler")),
	}
}

// CreateQuestionRequest represents the request body for creating a question.
type CreateQuestionRequest struct {
	LessonID         int64    `json:"lesson_id"          validate:"required,gt=0"`
	Text             string   `json:"text"               validate:"required"`
	CorrectAnswer    string   `json:"correct_answer"     validate:"required"`
	IncorrectAnswers []string `json:"incorrect_answers"  validate:"required,len=3"`
}

// ListLessonQuestions handles GET /lessons/{id}/questions requests.
func (h *QuestionHandler) ListLessonQuestions(w http.ResponseWriter, r *http.Request) {
	lessonID, ok := lessonIDFromRequest(w, r)
	if !ok {
		return
	}

	questions, err := h.questions.ListQuestions(r.Context(), lessonID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), "Failed to list questions", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, questionsToResponse(questions))
}

// CreateQuestion handles POST /questions requests.
func (h *QuestionHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateQuestionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"lesson_id, text, correct_answer and exactly 3 incorrect_answers are required")
		return
	}

	question, err := h.questions.AddQuestion(r.Context(),
		req.LessonID, req.Text, req.CorrectAnswer, req.IncorrectAnswers)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("question created",
		slog.Int64("question_id", question.ID),
		slog.Int64("lesson_id", question.LessonID))
	shared.RespondWithJSON(w, r, http.StatusCreated, questionToResponse(question))
}

// DeleteQuestion handles DELETE /questions/{id} requests.
func (h *QuestionHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid question ID")
		return
	}

	if err := h.questions.DeleteQuestion(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
