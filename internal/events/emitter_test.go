package events

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmazurek/teachme-api/internal/domain"
)

func TestNewEvent(t *testing.T) {
	event, err := NewEvent(EventTypeLessonAdded, LessonAddedPayload{LessonID: 7, Title: "Lesson 7"})
	require.NoError(t, err)

	assert.Equal(t, EventTypeLessonAdded, event.Type)
	assert.NotZero(t, event.ID)
	assert.False(t, event.CreatedAt.IsZero())

	var payload LessonAddedPayload
	require.NoError(t, event.UnmarshalPayload(&payload))
	assert.Equal(t, int64(7), payload.LessonID)
	assert.Equal(t, "Lesson 7", payload.Title)
}

func TestInMemoryEmitter_DeliversToAllHandlers(t *testing.T) {
	emitter := NewInMemoryEmitter(slog.Default())

	var received []string
	for i := 0; i < 3; i++ {
		emitter.RegisterHandler(HandlerFunc(func(ctx context.Context, event *Event) error {
			received = append(received, event.Type)
			return nil
		}))
	}

	event, err := NewEvent(EventTypeLessonsChanged, LessonsChangedPayload{
		Lessons: []*domain.Lesson{{ID: 1, Title: "Lesson 1"}},
	})
	require.NoError(t, err)

	require.NoError(t, emitter.EmitEvent(context.Background(), event))
	assert.Len(t, received, 3)
}

func TestInMemoryEmitter_NoHandlers(t *testing.T) {
	emitter := NewInMemoryEmitter(slog.Default())

	event, err := NewEvent(EventTypeLessonsChanged, LessonsChangedPayload{})
	require.NoError(t, err)

	assert.NoError(t, emitter.EmitEvent(context.Background(), event))
}

func TestInMemoryEmitter_HandlerErrorDoesNotStopDelivery(t *testing.T) {
	emitter := NewInMemoryEmitter(slog.Default())
	handlerErr := errors.New("handler exploded")

	emitter.RegisterHandler(HandlerFunc(func(ctx context.Context, event *Event) error {
		return handlerErr
	}))

	delivered := false
	emitter.RegisterHandler(HandlerFunc(func(ctx context.Context, event *Event) error {
		delivered = true
		return nil
	}))

	event, err := NewEvent(EventTypeQuestionsChanged, QuestionsChangedPayload{LessonID: 2})
	require.NoError(t, err)

	err = emitter.EmitEvent(context.Background(), event)
	assert.ErrorIs(t, err, handlerErr)
	assert.True(t, delivered, "remaining handlers still receive the event")
}

func TestInMemoryEmitter_UnregisterHandler(t *testing.T) {
	emitter := NewInMemoryEmitter(slog.Default())

	handler := NewChannelHandler(1, slog.Default())
	emitter.RegisterHandler(handler)
	emitter.UnregisterHandler(handler)

	event, err := NewEvent(EventTypeLessonsChanged, LessonsChangedPayload{})
	require.NoError(t, err)
	require.NoError(t, emitter.EmitEvent(context.Background(), event))

	assert.Empty(t, handler.Events())
}

func TestInMemoryEmitter_Subscribe(t *testing.T) {
	emitter := NewInMemoryEmitter(slog.Default())

	ch, cancel := emitter.Subscribe(4, EventTypeLessonsChanged)

	snapshot, err := NewEvent(EventTypeLessonsChanged, LessonsChangedPayload{})
	require.NoError(t, err)
	require.NoError(t, emitter.EmitEvent(context.Background(), snapshot))

	other, err := NewEvent(EventTypeLessonAdded, LessonAddedPayload{LessonID: 1})
	require.NoError(t, err)
	require.NoError(t, emitter.EmitEvent(context.Background(), other))

	received := <-ch
	assert.Equal(t, snapshot.ID, received.ID)

	cancel()
	_, open := <-ch
	assert.False(t, open, "cancel closes the subscription channel")
}
