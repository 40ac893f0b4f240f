package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kmazurek/teachme-api/internal/domain"
	"github.com/kmazurek/teachme-api/internal/events"
)

// NotificationEventHandler implements the events.Handler interface,
// turning lesson-added events into notification dispatch tasks on the
// runner. Keeping the hop through the event emitter means the catalog
// service never learns about the task machinery.
type NotificationEventHandler struct {
	factory *NotificationTaskFactory
	runner  *Runner
	logger  *slog.Logger
}

// NewNotificationEventHandler creates an event handler that submits a
// notification task for every lesson-added event.
func NewNotificationEventHandler(
	factory *NotificationTaskFactory,
	runner *Runner,
	logger *slog.Logger,
) *NotificationEventHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &NotificationEventHandler{
		factory: factory,
		runner:  runner,
		logger:  logger.With("component", "notification_event_handler"),
	}
}

// Ensure NotificationEventHandler implements events.Handler
var _ events.Handler = (*NotificationEventHandler)(nil)

// HandleEvent processes lesson-added events by creating and submitting a
// notification task. Events of any other type are ignored.
func (h *NotificationEventHandler) HandleEvent(ctx context.Context, event *events.Event) error {
	if event.Type != events.EventTypeLessonAdded {
		h.logger.Debug("ignoring event with unsupported type",
			"event_type", event.Type,
			"event_id", event.ID)
		return nil
	}

	var payload events.LessonAddedPayload
	if err := event.UnmarshalPayload(&payload); err != nil {
		h.logger.Error("failed to unmarshal payload",
			"error", err,
			"event_id", event.ID)
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	lesson := &domain.Lesson{ID: payload.LessonID, Title: payload.Title}

	t, err := h.factory.CreateTask(lesson)
	if err != nil {
		h.logger.Error("failed to create notification task",
			"error", err,
			"lesson_id", payload.LessonID,
			"event_id", event.ID)
		return fmt.Errorf("failed to create notification task: %w", err)
	}

	if err := h.runner.Submit(ctx, t); err != nil {
		h.logger.Error("failed to submit notification task",
			"error", err,
			"task_id", t.ID(),
			"lesson_id", payload.LessonID,
			"event_id", event.ID)
		return fmt.Errorf("failed to submit notification task: %w", err)
	}

	h.logger.Debug("notification task submitted",
		"task_id", t.ID(),
		"lesson_id", payload.LessonID,
		"event_id", event.ID)
	return nil
}
