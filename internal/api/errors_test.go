package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kmazurek/teachme-api/internal/domain"
	"github.com/kmazurek/teachme-api/internal/service"
	"github.com/kmazurek/teachme-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"lesson not found", service.ErrLessonNotFound, http.StatusNotFound},
		{"question not found", service.ErrQuestionNotFound, http.StatusNotFound},
		{"session not found", service.ErrSessionNotFound, http.StatusNotFound},
		{"store not found", store.ErrNotFound, http.StatusNotFound},
		{"session loading", domain.ErrSessionLoading, http.StatusConflict},
		{"session finished", domain.ErrSessionFinished, http.StatusConflict},
		{"session closed", domain.ErrSessionClosed, http.StatusConflict},
		{"option index invalid", domain.ErrOptionIndexInvalid, http.StatusBadRequest},
		{"empty lesson title", domain.ErrLessonTitleEmpty, http.StatusBadRequest},
		{"referential integrity", store.ErrReferentialIntegrity, http.StatusBadRequest},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"question validation", domain.ErrIncorrectAnswerCount, http.StatusBadRequest},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped sentinel", fmt.Errorf("context: %w", service.ErrLessonNotFound), http.StatusNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Run("known errors get friendly messages", func(t *testing.T) {
		assert.Equal(t, "Lesson not found", GetSafeErrorMessage(service.ErrLessonNotFound))
		assert.Equal(t, "Session is closed", GetSafeErrorMessage(domain.ErrSessionClosed))
	})

	t.Run("unknown errors never leak details", func(t *testing.T) {
		msg := GetSafeErrorMessage(errors.New("pq:連接 refused at 10.0.0.5:5432"))
		assert.Equal(t, "An unexpected error occurred", msg)
	})

	t.Run("nil error", func(t *testing.T) {
		assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
	})
}
