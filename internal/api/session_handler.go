package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kmazurek/teachme-api/internal/api/shared"
	"github.com/kmazurek/teachme-api/internal/platform/logger"
	"github.com/kmazurek/teachme-api/internal/service"
)

// SessionHandler handles quiz session HTTP requests.
type SessionHandler struct {
	sessions service.SessionService
	logger   *slog.Logger
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessions service.SessionService, logger *slog.Logger) *SessionHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SessionHandler")
	}

	return &SessionHandler{
		sessions: sessions,
		logger:   logger.With(slog.String("component", "session_handler")),
	}
}

// OpenSessionRequest represents the request body for opening a session.
type OpenSessionRequest struct {
	LessonID int64 `json:"lesson_id" validate:"required,gt=0"`
}

// AnswerRequest represents the request body for answering the current
// question. OptionIndex is a pointer so index 0 survives the required check.
type AnswerRequest struct {
	OptionText  string `json:"option_text"  validate:"required"`
	OptionIndex *int   `json:"option_index" validate:"required"`
}

// AnswerResponse extends the session snapshot with the verdict for the
// answer just given.
type AnswerResponse struct {
	Correct bool            `json:"correct"`
	Session SessionResponse `json:"session"`
}

// BackResponse reports either an exit signal or the snapshot after stepping
// back one question.
type BackResponse struct {
	Exit    bool             `json:"exit"`
	Session *SessionResponse `json:"session,omitempty"`
}

// OpenSession handles POST /sessions requests.
func (h *SessionHandler) OpenSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req OpenSessionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "lesson_id is required")
		return
	}

	session, err := h.sessions.Open(r.Context(), req.LessonID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("session opened",
		slog.String("session_id", session.ID().String()),
		slog.Int64("lesson_id", req.LessonID))
	shared.RespondWithJSON(w, r, http.StatusCreated, sessionToResponse(session))
}

// GetSession handles GET /sessions/{id} requests.
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionIDFromRequest(w, r)
	if !ok {
		return
	}

	session, err := h.sessions.Get(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, sessionToResponse(session))
}

// Answer handles POST /sessions/{id}/answer requests.
func (h *SessionHandler) Answer(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionIDFromRequest(w, r)
	if !ok {
		return
	}

	var req AnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"option_text and option_index are required")
		return
	}

	correct, err := h.sessions.Answer(r.Context(), id, req.OptionText, *req.OptionIndex)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	session, err := h.sessions.Get(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AnswerResponse{
		Correct: correct,
		Session: sessionToResponse(session),
	})
}

// Back handles POST /sessions/{id}/back requests.
func (h *SessionHandler) Back(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionIDFromRequest(w, r)
	if !ok {
		return
	}

	exit, err := h.sessions.Back(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	response := BackResponse{Exit: exit}
	if !exit {
		session, err := h.sessions.Get(r.Context(), id)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r,
				MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
			return
		}
		snapshot := sessionToResponse(session)
		response.Session = &snapshot
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// CloseSession handles DELETE /sessions/{id} requests.
func (h *SessionHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionIDFromRequest(w, r)
	if !ok {
		return
	}

	if err := h.sessions.Close(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// sessionIDFromRequest parses the {id} route parameter as a UUID. On failure
// it writes a 400 response and reports false.
func sessionIDFromRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid session ID")
		return uuid.Nil, false
	}
	return id, true
}
