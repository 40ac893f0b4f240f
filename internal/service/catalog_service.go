package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/kmazurek/teachme-api/internal/domain"
	"github.com/kmazurek/teachme-api/internal/events"
	"github.com/kmazurek/teachme-api/internal/store"
)

// CatalogService provides lesson catalog operations.
type CatalogService interface {
	// ListLessons returns all lessons ordered by ID ascending.
	ListLessons(ctx context.Context) ([]*domain.Lesson, error)

	// AddLesson creates a new lesson with the given title. When the
	// notification preference is enabled it also emits a lesson-added event
	// for background dispatch; notification failures never fail the add.
	AddLesson(ctx context.Context, title string) (*domain.Lesson, error)

	// DeleteLesson removes a lesson and, through the foreign key cascade,
	// its questions. Returns ErrLessonNotFound for an unknown ID.
	DeleteLesson(ctx context.Context, id int64) error

	// MarkCompleted sets a lesson's completed flag. Idempotent.
	// Returns ErrLessonNotFound for an unknown ID.
	MarkCompleted(ctx context.Context, id int64) error

	// SeedIfEmpty inserts the initial lessons and questions when the
	// catalog is empty. The emptiness check and the inserts share one
	// transaction, so concurrent callers produce at most one copy.
	SeedIfEmpty(ctx context.Context) error
}

// catalogServiceImpl implements the CatalogService interface.
type catalogServiceImpl struct {
	lessonStore   store.LessonStore
	questionStore store.QuestionStore
	prefStore     store.PreferenceStore
	txRunner      TxRunner
	eventEmitter  events.Emitter
	logger        *slog.Logger
}

// NewCatalogService creates a new CatalogService.
// It returns an error if any of the required dependencies are nil.
func NewCatalogService(
	lessonStore store.LessonStore,
	questionStore store.QuestionStore,
	prefStore store.PreferenceStore,
	txRunner TxRunner,
	eventEmitter events.Emitter,
	logger *slog.Logger,
) (CatalogService, error) {
	if lessonStore == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "lessonStore cannot be nil"}
	}
	if questionStore == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "questionStore cannot be nil"}
	}
	if prefStore == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "prefStore cannot be nil"}
	}
	if txRunner == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "txRunner cannot be nil"}
	}
	if eventEmitter == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "eventEmitter cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &catalogServiceImpl{
		lessonStore:   lessonStore,
		questionStore: questionStore,
		prefStore:     prefStore,
		txRunner:      txRunner,
		eventEmitter:  eventEmitter,
		logger:        logger.With("component", "catalog_service"),
	}, nil
}

// ListLessons returns all lessons ordered by ID ascending.
func (s *catalogServiceImpl) ListLessons(ctx context.Context) ([]*domain.Lesson, error) {
	lessons, err := s.lessonStore.List(ctx)
	if err != nil {
		s.logger.Error("failed to list lessons", "error", err)
		return nil, NewServiceError("list_lessons", "failed to list lessons", err)
	}
	return lessons, nil
}

// AddLesson creates a new lesson, pushes a fresh catalog snapshot, and
// requests a new-lesson notification when the preference allows it.
func (s *catalogServiceImpl) AddLesson(ctx context.Context, title string) (*domain.Lesson, error) {
	lesson, err := domain.NewLesson(title)
	if err != nil {
		s.logger.Warn("rejected invalid lesson", "error", err)
		return nil, NewServiceError("add_lesson", "invalid lesson", err)
	}

	if err := s.lessonStore.Create(ctx, lesson); err != nil {
		s.logger.Error("failed to create lesson",
			"error", err,
			"title", title)
		return nil, NewServiceError("add_lesson", "failed to save lesson", err)
	}

	s.logger.Info("lesson created",
		"lesson_id", lesson.ID,
		"title", lesson.Title)

	s.emitLessonsChanged(ctx)
	s.requestNotification(ctx, lesson)

	return lesson, nil
}

// DeleteLesson removes a lesson; its questions go with it via the cascade.
func (s *catalogServiceImpl) DeleteLesson(ctx context.Context, id int64) error {
	if err := s.lessonStore.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrLessonNotFound) {
			return ErrLessonNotFound
		}
		s.logger.Error("failed to delete lesson",
			"error", err,
			"lesson_id", id)
		return NewServiceError("delete_lesson", "failed to delete lesson", err)
	}

	s.logger.Info("lesson deleted", "lesson_id", id)
	s.emitLessonsChanged(ctx)
	return nil
}

// MarkCompleted flags a lesson as completed.
func (s *catalogServiceImpl) MarkCompleted(ctx context.Context, id int64) error {
	if err := s.lessonStore.MarkCompleted(ctx, id); err != nil {
		if errors.Is(err, store.ErrLessonNotFound) {
			return ErrLessonNotFound
		}
		s.logger.Error("failed to mark lesson completed",
			"error", err,
			"lesson_id", id)
		return NewServiceError("mark_completed", "failed to mark lesson completed", err)
	}

	s.logger.Info("lesson marked completed", "lesson_id", id)
	s.emitLessonsChanged(ctx)
	return nil
}

// SeedIfEmpty inserts the initial catalog inside a single transaction.
func (s *catalogServiceImpl) SeedIfEmpty(ctx context.Context) error {
	var seeded bool

	err := s.txRunner.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txLessons := s.lessonStore.WithTx(tx)
		txQuestions := s.questionStore.WithTx(tx)

		count, err := txLessons.Count(ctx)
		if err != nil {
			return NewServiceError("seed", "failed to count lessons", err)
		}
		if count > 0 {
			return nil
		}

		for _, sl := range seedLessons {
			lesson, err := domain.NewLesson(sl.title)
			if err != nil {
				return NewServiceError("seed", "invalid seed lesson", err)
			}
			if err := txLessons.Create(ctx, lesson); err != nil {
				return NewServiceError("seed", "failed to insert seed lesson", err)
			}

			for _, sq := range sl.questions {
				question, err := domain.NewQuestion(lesson.ID, sq.text, sq.correct, sq.incorrect)
				if err != nil {
					return NewServiceError("seed", "invalid seed question", err)
				}
				if err := txQuestions.Create(ctx, question); err != nil {
					return NewServiceError("seed", "failed to insert seed question", err)
				}
			}
		}

		seeded = true
		return nil
	})
	if err != nil {
		return err
	}

	if seeded {
		s.logger.Info("seeded empty catalog", "lesson_count", len(seedLessons))
		s.emitLessonsChanged(ctx)
	}
	return nil
}

// emitLessonsChanged pushes a fresh catalog snapshot to subscribers.
// Snapshot delivery is best effort: failures are logged, never returned,
// so a broken subscriber cannot fail a write.
func (s *catalogServiceImpl) emitLessonsChanged(ctx context.Context) {
	lessons, err := s.lessonStore.List(ctx)
	if err != nil {
		s.logger.Error("failed to load snapshot for lessons.changed event", "error", err)
		return
	}

	event, err := events.NewEvent(events.EventTypeLessonsChanged, events.LessonsChangedPayload{
		Lessons: lessons,
	})
	if err != nil {
		s.logger.Error("failed to create lessons.changed event", "error", err)
		return
	}

	if err := s.eventEmitter.EmitEvent(ctx, event); err != nil {
		s.logger.Error("failed to emit lessons.changed event",
			"error", err,
			"event_id", event.ID)
	}
}

// requestNotification emits a lesson-added event when notifications are
// enabled. Every failure path is log-only: the lesson is already saved and
// notification dispatch carries no delivery guarantee.
func (s *catalogServiceImpl) requestNotification(ctx context.Context, lesson *domain.Lesson) {
	enabled, err := s.prefStore.GetBool(ctx, store.NotificationsEnabledKey, true)
	if err != nil {
		s.logger.Error("failed to read notification preference",
			"error", err,
			"lesson_id", lesson.ID)
		return
	}
	if !enabled {
		s.logger.Debug("notifications disabled, skipping dispatch",
			"lesson_id", lesson.ID)
		return
	}

	event, err := events.NewEvent(events.EventTypeLessonAdded, events.LessonAddedPayload{
		LessonID: lesson.ID,
		Title:    lesson.Title,
	})
	if err != nil {
		s.logger.Error("failed to create lesson.added event",
			"error", err,
			"lesson_id", lesson.ID)
		return
	}

	if err := s.eventEmitter.EmitEvent(ctx, event); err != nil {
		s.logger.Error("failed to emit lesson.added event",
			"error", err,
			"lesson_id", lesson.ID,
			"event_id", event.ID)
		return
	}

	s.logger.Debug("lesson.added event emitted",
		"lesson_id", lesson.ID,
		"event_id", event.ID)
}
