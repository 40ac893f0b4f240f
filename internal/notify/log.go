package notify

import (
	"context"
	"log/slog"

	"github.com/kmazurek/teachme-api/internal/domain"
)

// LogDispatcher writes notifications to the structured log instead of a
// broker. It is the fallback when no AMQP URL is configured and the
// dispatcher used in tests.
type LogDispatcher struct {
	logger *slog.Logger
}

// NewLogDispatcher creates a dispatcher that only logs.
func NewLogDispatcher(logger *slog.Logger) *LogDispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogDispatcher{
		logger: logger.With(slog.String("component", "log_dispatcher")),
	}
}

// Ensure LogDispatcher implements Dispatcher
var _ Dispatcher = (*LogDispatcher)(nil)

// EnsureChannel is a no-op for the log dispatcher.
func (d *LogDispatcher) EnsureChannel(ctx context.Context) error {
	return nil
}

// NotifyNewLesson logs the notification.
func (d *LogDispatcher) NotifyNewLesson(ctx context.Context, lesson *domain.Lesson) error {
	d.logger.Info("new lesson notification",
		slog.Int64("lesson_id", lesson.ID),
		slog.String("title", lesson.Title))
	return nil
}
