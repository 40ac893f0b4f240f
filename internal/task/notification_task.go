package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/kmazurek/teachme-api/internal/domain"
	"github.com/kmazurek/teachme-api/internal/notify"
)

// Common errors
var (
	ErrNilDispatcher = errors.New("dispatcher cannot be nil")
	ErrNilLesson     = errors.New("lesson cannot be nil")
)

// NotificationTask implements the Task interface for dispatching a
// new-lesson notification through the configured dispatcher.
type NotificationTask struct {
	id         uuid.UUID
	lesson     *domain.Lesson
	dispatcher notify.Dispatcher
	logger     *slog.Logger
}

// NewNotificationTask creates a notification dispatch task for the lesson.
func NewNotificationTask(
	lesson *domain.Lesson,
	dispatcher notify.Dispatcher,
	logger *slog.Logger,
) (*NotificationTask, error) {
	if dispatcher == nil {
		return nil, ErrNilDispatcher
	}
	if lesson == nil {
		return nil, ErrNilLesson
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &NotificationTask{
		id:         uuid.New(),
		lesson:     lesson,
		dispatcher: dispatcher,
		logger:     logger.With("component", "notification_task"),
	}, nil
}

// Ensure NotificationTask implements Task
var _ Task = (*NotificationTask)(nil)

// ID returns the task's unique identifier
func (t *NotificationTask) ID() uuid.UUID {
	return t.id
}

// Type returns the task type identifier
func (t *NotificationTask) Type() string {
	return TaskTypeNotification
}

// Execute dispatches the notification. The channel registration runs first;
// the dispatcher guarantees it only takes effect once per process.
func (t *NotificationTask) Execute(ctx context.Context) error {
	if err := t.dispatcher.EnsureChannel(ctx); err != nil {
		return fmt.Errorf("failed to ensure notification channel: %w", err)
	}

	if err := t.dispatcher.NotifyNewLesson(ctx, t.lesson); err != nil {
		return fmt.Errorf("failed to dispatch notification: %w", err)
	}

	t.logger.Debug("notification dispatched",
		"lesson_id", t.lesson.ID,
		"title", t.lesson.Title)
	return nil
}

// NotificationTaskFactory creates NotificationTask instances bound to the
// process-wide dispatcher.
type NotificationTaskFactory struct {
	dispatcher notify.Dispatcher
	logger     *slog.Logger
}

// NewNotificationTaskFactory creates a factory for notification tasks.
func NewNotificationTaskFactory(dispatcher notify.Dispatcher, logger *slog.Logger) (*NotificationTaskFactory, error) {
	if dispatcher == nil {
		return nil, ErrNilDispatcher
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &NotificationTaskFactory{dispatcher: dispatcher, logger: logger}, nil
}

// CreateTask creates a new NotificationTask for the given lesson.
func (f *NotificationTaskFactory) CreateTask(lesson *domain.Lesson) (Task, error) {
	return NewNotificationTask(lesson, f.dispatcher, f.logger)
}
