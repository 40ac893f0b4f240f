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

// LessonHandler handles lesson catalog HTTP requests.
type LessonHandler struct {
	catalog service.CatalogService
	logger  *slog.Logger
}

// NewLessonHandler creates a new LessonHandler.
func NewLessonHandler(catalog service.CatalogService, logger *slog.Logger) *LessonHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for LessonHandler")
	}

	return &LessonHandler{
		catalog: catalog,
		logger:  logger.With(slog.String("component", "lesson_handler")),
	}
}

// CreateLessonRequest represents the request body for creating a lesson.
type CreateLessonRequest struct {
	Title string `json:"title" validate:"required"`
}

// ListLessons handles GET /lessons requests.
func (h *LessonHandler) ListLessons(w http.ResponseWriter, r *http.Request) {
	lessons, err := h.catalog.ListLessons(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), "Failed to list lessons", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, lessonsToResponse(lessons))
}

// CreateLesson handles POST /lessons requests.
func (h *LessonHandler) CreateLesson(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateLessonRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Title is required")
		return
	}

	lesson, err := h.catalog.AddLesson(r.Context(), req.Title)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("lesson created", slog.Int64("lesson_id", lesson.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, lessonToResponse(lesson))
}

// DeleteLesson handles DELETE /lessons/{id} requests.
func (h *LessonHandler) DeleteLesson(w http.ResponseWriter, r *http.Request) {
	id, ok := lessonIDFromRequest(w, r)
	if !ok {
		return
	}

	if err := h.catalog.DeleteLesson(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CompleteLesson handles POST /lessons/{id}/complete requests.
func (h *LessonHandler) CompleteLesson(w http.ResponseWriter, r *http.Request) {
	id, ok := lessonIDFromRequest(w, r)
	if !ok {
		return
	}

	if err := h.catalog.MarkCompleted(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// lessonIDFromRequest parses the {id} route parameter. On failure it writes
// a 400 response and reports false.
func lessonIDFromRequest(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid lesson ID")
		return 0, false
	}
	return id, true
}
