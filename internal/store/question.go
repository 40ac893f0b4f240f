package store

import (
	"context"
	"database/sql"

	"github.com/kmazurek/teachme-api/internal/domain"
)

// QuestionStore defines the interface for question data persistence.
type QuestionStore interface {
	// Create saves a new question to the store and fills in the ID assigned
	// by the database.
	// Returns validation errors if the question data is invalid.
	// Returns ErrReferentialIntegrity if the question references a lesson
	// that does not exist.
	Create(ctx context.Context, question *domain.Question) error

	// GetByID retrieves a question by its unique ID.
	// Returns ErrQuestionNotFound if the question does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Question, error)

	// ListByLesson returns the questions belonging to the given lesson,
	// ordered by ID ascending.
	ListByLesson(ctx context.Context, lessonID int64) ([]*domain.Question, error)

	// Delete removes a question from the store by its ID.
	// Returns ErrQuestionNotFound if the question does not exist.
	Delete(ctx context.Context, id int64) error

	// DeleteAll removes every question.
	DeleteAll(ctx context.Context) error

	// WithTx returns a new QuestionStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) QuestionStore
}
