// Package notify delivers the user-visible new-lesson notification.
// Dispatch is fire-and-forget: there is no retry and no delivery guarantee,
// and a dispatch failure must never block or fail lesson creation.
package notify

import (
	"context"

	"github.com/kmazurek/teachme-api/internal/domain"
)

// Dispatcher is the notification surface consumed by the catalog service's
// background pipeline.
type Dispatcher interface {
	// EnsureChannel prepares the delivery channel. It is idempotent and
	// process-wide, and must run once before the first NotifyNewLesson.
	EnsureChannel(ctx context.Context) error

	// NotifyNewLesson fires a user-visible notification about the lesson.
	// Fire-and-forget: the error is for logging only.
	NotifyNewLesson(ctx context.Context, lesson *domain.Lesson) error
}
