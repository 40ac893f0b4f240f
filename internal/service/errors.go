// Package service provides application-level services for the lesson
// catalog, the question bank, quiz sessions, and the notification
// preference.
package service

import (
	"errors"
	"fmt"

	"github.com/kmazurek/teachme-api/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
// Callers check them with errors.Is(); the API layer maps them to HTTP
// status codes.
var (
	// ErrLessonNotFound indicates that the lesson does not exist.
	ErrLessonNotFound = errors.New("lesson not found")

	// ErrQuestionNotFound indicates that the question does not exist.
	ErrQuestionNotFound = errors.New("question not found")

	// ErrSessionNotFound indicates that no live session exists under the
	// given identifier. Sessions are transient; a restart clears them all.
	ErrSessionNotFound = errors.New("session not found")
)

// ServiceError wraps unexpected errors from a service with operation context.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "add_lesson", "open_session")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError. Known sentinel errors pass
// through unwrapped: store-level not-found errors become their service-level
// counterparts, and service sentinels are returned as-is so callers can
// match them directly.
func NewServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrLessonNotFound),
		errors.Is(err, ErrQuestionNotFound),
		errors.Is(err, ErrSessionNotFound):
		return err
	case errors.Is(err, store.ErrLessonNotFound):
		return ErrLessonNotFound
	case errors.Is(err, store.ErrQuestionNotFound):
		return ErrQuestionNotFound
	}

	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
