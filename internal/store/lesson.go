package store

import (
	"context"
	"database/sql"

	"github.com/kmazurek/teachme-api/internal/domain"
)

// LessonStore defines the interface for lesson data persistence.
type LessonStore interface {
	// Create saves a new lesson to the store and fills in the ID assigned by
	// the database. Assigned IDs are monotonically increasing and never
	// reused within a store lifetime.
	// Returns validation errors if the lesson data is invalid.
	Create(ctx context.Context, lesson *domain.Lesson) error

	// GetByID retrieves a lesson by its unique ID.
	// Returns ErrLessonNotFound if the lesson does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Lesson, error)

	// List returns all lessons ordered by ID ascending.
	List(ctx context.Context) ([]*domain.Lesson, error)

	// Count returns the number of lessons in the store.
	// Used by the seed routine's emptiness check.
	Count(ctx context.Context) (int64, error)

	// Delete removes a lesson from the store by its ID. Its questions go
	// with it through the ON DELETE CASCADE foreign key on questions.
	// Returns ErrLessonNotFound if the lesson does not exist.
	Delete(ctx context.Context, id int64) error

	// DeleteAll removes every lesson (and, via cascade, every question).
	DeleteAll(ctx context.Context) error

	// MarkCompleted sets the lesson's completed flag to true.
	// It is idempotent: re-marking an already-completed lesson is a no-op.
	// Returns ErrLessonNotFound if the lesson does not exist.
	MarkCompleted(ctx context.Context, id int64) error

	// WithTx returns a new LessonStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller
	// (typically a service) through RunInTransaction.
	WithTx(tx *sql.Tx) LessonStore
}
