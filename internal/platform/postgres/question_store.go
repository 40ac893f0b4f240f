package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kmazurek/teachme-api/internal/domain"
	"github.com/kmazurek/teachme-api/internal/platform/logger"
	"github.com/kmazurek/teachme-api/internal/store"
)

// PostgresQuestionStore implements the store.QuestionStore interface
// using a PostgreSQL database as the storage backend. The incorrect answers
// of a question are stored as a JSON-encoded array in a JSONB column.
type PostgresQuestionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresQuestionStore creates a new PostgreSQL implementation of the
// QuestionStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresQuestionStore(db store.DBTX, logger *slog.Logger) *PostgresQuestionStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresQuestionStore{
		db:     db,
		logger: logger.With(slog.String("component", "question_store")),
	}
}

// Ensure PostgresQuestionStore implements store.QuestionStore interface
var _ store.QuestionStore = (*PostgresQuestionStore)(nil)

// Create implements store.QuestionStore.Create
// It saves a new question and fills in the DB-assigned ID.
// Returns validation errors from the domain Question if data is invalid.
// Returns store.ErrReferentialIntegrity if the referenced lesson does not
// exist (foreign key violation).
func (s *PostgresQuestionStore) Create(ctx context.Context, question *domain.Question) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := question.Validate(); err != nil {
		log.Warn("question validation failed during create",
			slog.String("error", err.Error()),
			slog.Int64("lesson_id", question.LessonID))
		return err
	}

	incorrectJSON, err := json.Marshal(question.IncorrectAnswers)
	if err != nil {
		return fmt.Errorf("failed to encode incorrect answers: %w", err)
	}

	query := `
		INSERT INTO questions (lesson_id, text, correct_answer, incorrect_answers)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err = s.db.QueryRowContext(
		ctx,
		query,
		question.LessonID,
		question.Text,
		question.CorrectAnswer,
		incorrectJSON,
	).Scan(&question.ID)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during question creation",
				slog.String("error", err.Error()),
				slog.Int64("lesson_id", question.LessonID))
			return fmt.Errorf("%w: lesson with ID %d not found",
				store.ErrReferentialIntegrity, question.LessonID)
		}

		log.Error("failed to create question",
			slog.String("error", err.Error()),
			slog.Int64("lesson_id", question.LessonID))
		return MapError(err)
	}

	log.Debug("question created",
		slog.Int64("question_id", question.ID),
		slog.Int64("lesson_id", question.LessonID))
	return nil
}

// GetByID implements store.QuestionStore.GetByID
// Returns store.ErrQuestionNotFound if the question does not exist.
func (s *PostgresQuestionStore) GetByID(ctx context.Context, id int64) (*domain.Question, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, lesson_id, text, correct_answer, incorrect_answers
		FROM questions
		WHERE id = $1
	`

	question, err := scanQuestion(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("question not found", slog.Int64("question_id", id))
			return nil, store.ErrQuestionNotFound
		}
		log.Error("failed to get question by ID",
			slog.String("error", err.Error()),
			slog.Int64("question_id", id))
		return nil, MapError(err)
	}

	return question, nil
}

// ListByLesson implements store.QuestionStore.ListByLesson
// It returns the lesson's questions ordered by ID ascending.
func (s *PostgresQuestionStore) ListByLesson(ctx context.Context, lessonID int64) ([]*domain.Question, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, lesson_id, text, correct_answer, incorrect_answers
		FROM questions
		WHERE lesson_id = $1
		ORDER BY id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, lessonID)
	if err != nil {
		log.Error("failed to list questions",
			slog.String("error", err.Error()),
			slog.Int64("lesson_id", lessonID))
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	questions := make([]*domain.Question, 0)
	for rows.Next() {
		question, err := scanQuestion(rows)
		if err != nil {
			log.Error("failed to scan question row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		questions = append(questions, question)
	}
	if err := rows.Err(); err != nil {
		log.Error("row iteration failed", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return questions, nil
}

// Delete implements store.QuestionStore.Delete
// Returns store.ErrQuestionNotFound if the question does not exist.
func (s *PostgresQuestionStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete question",
			slog.String("error", err.Error()),
			slog.Int64("question_id", id))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrQuestionNotFound); err != nil {
		log.Debug("question not found for delete", slog.Int64("question_id", id))
		return err
	}

	log.Info("question deleted", slog.Int64("question_id", id))
	return nil
}

// DeleteAll implements store.QuestionStore.DeleteAll
func (s *PostgresQuestionStore) DeleteAll(ctx context.Context) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.db.ExecContext(ctx, `DELETE FROM questions`); err != nil {
		log.Error("failed to delete all questions", slog.String("error", err.Error()))
		return MapError(err)
	}

	log.Info("all questions deleted")
	return nil
}

// WithTx implements store.QuestionStore.WithTx
// It returns a new QuestionStore that runs its statements on the transaction.
func (s *PostgresQuestionStore) WithTx(tx *sql.Tx) store.QuestionStore {
	return &PostgresQuestionStore{
		db:     tx,
		logger: s.logger,
	}
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row rowScanner) (*domain.Question, error) {
	var question domain.Question
	var incorrectJSON []byte

	err := row.Scan(
		&question.ID,
		&question.LessonID,
		&question.Text,
		&question.CorrectAnswer,
		&incorrectJSON,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(incorrectJSON, &question.IncorrectAnswers); err != nil {
		return nil, fmt.Errorf("failed to decode incorrect answers: %w", err)
	}

	return &question, nil
}
