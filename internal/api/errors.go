// Package api provides HTTP handlers for the API.
package api

import (
	"errors"
	"net/http"

	"github.com/kmazurek/teachme-api/internal/domain"
	"github.com/kmazurek/teachme-api/internal/service"
	"github.com/kmazurek/teachme-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, service.ErrLessonNotFound),
		errors.Is(err, service.ErrQuestionNotFound),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Session state conflicts
	case errors.Is(err, domain.ErrSessionLoading),
		errors.Is(err, domain.ErrSessionFinished),
		errors.Is(err, domain.ErrSessionClosed):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrOptionIndexInvalid),
		errors.Is(err, domain.ErrLessonTitleEmpty),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, store.ErrReferentialIntegrity),
		isQuestionValidationError(err):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message based
// on the error type.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, service.ErrLessonNotFound):
		return "Lesson not found"
	case errors.Is(err, service.ErrQuestionNotFound):
		return "Question not found"
	case errors.Is(err, service.ErrSessionNotFound):
		return "Session not found"
	case errors.Is(err, domain.ErrSessionLoading):
		return "Session has no questions yet"
	case errors.Is(err, domain.ErrSessionFinished):
		return "Session is already finished"
	case errors.Is(err, domain.ErrSessionClosed):
		return "Session is closed"
	case errors.Is(err, domain.ErrOptionIndexInvalid):
		return "Option index out of range"
	case errors.Is(err, domain.ErrLessonTitleEmpty):
		return "Lesson title cannot be empty"
	case isQuestionValidationError(err):
		return err.Error()
	case errors.Is(err, store.ErrReferentialIntegrity):
		return "Referenced lesson does not exist"
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request data"
	default:
		return "An unexpected error occurred"
	}
}

// isQuestionValidationError reports whether err is one of the question
// construction errors. Their messages carry no internals, so they are safe
// to show verbatim.
func isQuestionValidationError(err error) bool {
	return errors.Is(err, domain.ErrQuestionTextEmpty) ||
		errors.Is(err, domain.ErrCorrectAnswerEmpty) ||
		errors.Is(err, domain.ErrQuestionLessonIDInvalid) ||
		errors.Is(err, domain.ErrIncorrectAnswerCount) ||
		errors.Is(err, domain.ErrIncorrectAnswerEmpty) ||
		errors.Is(err, domain.ErrIncorrectContainsCorrect)
}
