package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/kmazurek/teachme-api/internal/domain"
	"github.com/kmazurek/teachme-api/internal/platform/logger"
	"github.com/kmazurek/teachme-api/internal/store"
)

// PostgresLessonStore implements the store.LessonStore interface
// using a PostgreSQL database as the storage backend.
type PostgresLessonStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresLessonStore creates a new PostgreSQL implementation of the
// LessonStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresLessonStore(db store.DBTX, logger *slog.Logger) *PostgresLessonStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresLessonStore{
		db:     db,
		logger: logger.With(slog.String("component", "lesson_store")),
	}
}

// Ensure PostgresLessonStore implements store.LessonStore interface
var _ store.LessonStore = (*PostgresLessonStore)(nil)

// Create implements store.LessonStore.Create
// It saves a new lesson to the database and fills in the DB-assigned ID.
// Returns validation errors from the domain Lesson if data is invalid.
func (s *PostgresLessonStore) Create(ctx context.Context, lesson *domain.Lesson) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := lesson.Validate(); err != nil {
		log.Warn("lesson validation failed during create",
			slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO lessons (title, completed)
		VALUES ($1, $2)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query, lesson.Title, lesson.Completed).Scan(&lesson.ID)
	if err != nil {
		log.Error("failed to create lesson",
			slog.String("error", err.Error()),
			slog.String("title", lesson.Title))
		return MapError(err)
	}

	log.Debug("lesson created",
		slog.Int64("lesson_id", lesson.ID),
		slog.String("title", lesson.Title))
	return nil
}

// GetByID implements store.LessonStore.GetByID
// Returns store.ErrLessonNotFound if the lesson does not exist.
func (s *PostgresLessonStore) GetByID(ctx context.Context, id int64) (*domain.Lesson, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, completed
		FROM lessons
		WHERE id = $1
	`

	var lesson domain.Lesson
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&lesson.ID,
		&lesson.Title,
		&lesson.Completed,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("lesson not found", slog.Int64("lesson_id", id))
			return nil, store.ErrLessonNotFound
		}
		log.Error("failed to get lesson by ID",
			slog.String("error", err.Error()),
			slog.Int64("lesson_id", id))
		return nil, MapError(err)
	}

	return &lesson, nil
}

// List implements store.LessonStore.List
// It returns all lessons ordered by ID ascending.
func (s *PostgresLessonStore) List(ctx context.Context) ([]*domain.Lesson, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, completed
		FROM lessons
		ORDER BY id ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list lessons", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	lessons := make([]*domain.Lesson, 0)
	for rows.Next() {
		var lesson domain.Lesson
		if err := rows.Scan(&lesson.ID, &lesson.Title, &lesson.Completed); err != nil {
			log.Error("failed to scan lesson row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		lessons = append(lessons, &lesson)
	}
	if err := rows.Err(); err != nil {
		log.Error("row iteration failed", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return lessons, nil
}

// Count implements store.LessonStore.Count
func (s *PostgresLessonStore) Count(ctx context.Context) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM lessons`).Scan(&count)
	if err != nil {
		log.Error("failed to count lessons", slog.String("error", err.Error()))
		return 0, MapError(err)
	}

	return count, nil
}

// Delete implements store.LessonStore.Delete
// The questions of the deleted lesson are removed by the ON DELETE CASCADE
// foreign key on the questions table.
// Returns store.ErrLessonNotFound if the lesson does not exist.
func (s *PostgresLessonStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM lessons WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete lesson",
			slog.String("error", err.Error()),
			slog.Int64("lesson_id", id))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrLessonNotFound); err != nil {
		log.Debug("lesson not found for delete", slog.Int64("lesson_id", id))
		return err
	}

	log.Info("lesson deleted", slog.Int64("lesson_id", id))
	return nil
}

// DeleteAll implements store.LessonStore.DeleteAll
func (s *PostgresLessonStore) DeleteAll(ctx context.Context) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.db.ExecContext(ctx, `DELETE FROM lessons`); err != nil {
		log.Error("failed to delete all lessons", slog.String("error", err.Error()))
		return MapError(err)
	}

	log.Info("all lessons deleted")
	return nil
}

// MarkCompleted implements store.LessonStore.MarkCompleted
// The update targets the row regardless of its current completed value, so
// re-marking an already-completed lesson affects one row and stays a no-op
// in observable effect.
// Returns store.ErrLessonNotFound if the lesson does not exist.
func (s *PostgresLessonStore) MarkCompleted(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx,
		`UPDATE lessons SET completed = TRUE WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to mark lesson completed",
			slog.String("error", err.Error()),
			slog.Int64("lesson_id", id))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrLessonNotFound); err != nil {
		log.Debug("lesson not found for completion", slog.Int64("lesson_id", id))
		return err
	}

	log.Info("lesson marked completed", slog.Int64("lesson_id", id))
	return nil
}

// WithTx implements store.LessonStore.WithTx
// It returns a new LessonStore that runs its statements on the transaction.
func (s *PostgresLessonStore) WithTx(tx *sql.Tx) store.LessonStore {
	return &PostgresLessonStore{
		db:     tx,
		logger: s.logger,
	}
}
