package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmazurek/teachme-api/internal/store"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected error
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: nil,
		},
		{
			name:     "no rows maps to not found",
			err:      sql.ErrNoRows,
			expected: store.ErrNotFound,
		},
		{
			name:     "closed connection maps to unavailable",
			err:      sql.ErrConnDone,
			expected: store.ErrUnavailable,
		},
		{
			name:     "foreign key violation maps to referential integrity",
			err:      &pgconn.PgError{Code: "23503", ConstraintName: "questions_lesson_id_fkey"},
			expected: store.ErrReferentialIntegrity,
		},
		{
			name:     "check violation maps to invalid entity",
			err:      &pgconn.PgError{Code: "23514", ConstraintName: "lessons_title_check"},
			expected: store.ErrInvalidEntity,
		},
		{
			name:     "not null violation maps to invalid entity",
			err:      &pgconn.PgError{Code: "23502", ColumnName: "title"},
			expected: store.ErrInvalidEntity,
		},
		{
			name:     "unknown driver error maps to unavailable",
			err:      errors.New("connection refused"),
			expected: store.ErrUnavailable,
		},
		{
			name:     "wrapped foreign key violation",
			err:      fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"}),
			expected: store.ErrReferentialIntegrity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := MapError(tt.err)
			if tt.expected == nil {
				assert.NoError(t, mapped)
				return
			}
			assert.ErrorIs(t, mapped, tt.expected)
		})
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, IsForeignKeyViolation(fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: "23503"})))
	assert.False(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsForeignKeyViolation(errors.New("boom")))
	assert.False(t, IsForeignKeyViolation(nil))
}

// fakeResult implements sql.Result for CheckRowsAffected tests.
type fakeResult struct {
	rows int64
	err  error
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.rows, r.err }

func TestCheckRowsAffected(t *testing.T) {
	t.Run("rows affected passes", func(t *testing.T) {
		require.NoError(t, CheckRowsAffected(fakeResult{rows: 1}, store.ErrLessonNotFound))
	})

	t.Run("zero rows returns the not-found error", func(t *testing.T) {
		err := CheckRowsAffected(fakeResult{rows: 0}, store.ErrLessonNotFound)
		assert.ErrorIs(t, err, store.ErrLessonNotFound)
	})

	t.Run("rows affected failure is surfaced", func(t *testing.T) {
		err := CheckRowsAffected(fakeResult{err: errors.New("driver does not support")}, store.ErrLessonNotFound)
		require.Error(t, err)
		assert.NotErrorIs(t, err, store.ErrLessonNotFound)
	})

	t.Run("nil result errors", func(t *testing.T) {
		require.Error(t, CheckRowsAffected(nil, store.ErrLessonNotFound))
	})
}
