package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmazurek/teachme-api/internal/events"
	"github.com/kmazurek/teachme-api/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type catalogFixture struct {
	lessons   *memLessonStore
	questions *memQuestionStore
	prefs     *memPreferenceStore
	emitter   *captureEmitter
	service   CatalogService
}

func newCatalogFixture(t *testing.T) *catalogFixture {
	t.Helper()
	lessons := newMemLessonStore()
	questions := newMemQuestionStore(lessons)
	prefs := newMemPreferenceStore()
	emitter := &captureEmitter{}

	svc, err := NewCatalogService(lessons, questions, prefs, fakeTxRunner{}, emitter, testLogger())
	require.NoError(t, err)

	return &catalogFixture{
		lessons:   lessons,
		questions: questions,
		prefs:     prefs,
		emitter:   emitter,
		service:   svc,
	}
}

func TestNewCatalogService_NilDependencies(t *testing.T) {
	lessons := newMemLessonStore()
	questions := newMemQuestionStore(lessons)
	prefs := newMemPreferenceStore()
	emitter := &captureEmitter{}

	tests := []struct {
		name string
		fn   func() (CatalogService, error)
	}{
		{"nil lesson store", func() (CatalogService, error) {
			return NewCatalogService(nil, questions, prefs, fakeTxRunner{}, emitter, nil)
		}},
		{"nil question store", func() (CatalogService, error) {
			return NewCatalogService(lessons, nil, prefs, fakeTxRunner{}, emitter, nil)
		}},
		{"nil preference store", func() (CatalogService, error) {
			return NewCatalogService(lessons, questions, nil, fakeTxRunner{}, emitter, nil)
		}},
		{"nil tx runner", func() (CatalogService, error) {
			return NewCatalogService(lessons, questions, prefs, nil, emitter, nil)
		}},
		{"nil emitter", func() (CatalogService, error) {
			return NewCatalogService(lessons, questions, prefs, fakeTxRunner{}, nil, nil)
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, err := tc.fn()
			assert.Error(t, err)
			assert.Nil(t, svc)
		})
	}
}

func TestCatalogService_AddLesson(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	lesson, err := f.service.AddLesson(ctx, "Lesson 4: TCP")
	require.NoError(t, err)
	assert.Equal(t, int64(1), lesson.ID)
	assert.Equal(t, "Lesson 4: TCP", lesson.Title)
	assert.False(t, lesson.Completed)

	changed := f.emitter.eventsOfType(events.EventTypeLessonsChanged)
	require.Len(t, changed, 1)

	var payload events.LessonsChangedPayload
	require.NoError(t, changed[0].UnmarshalPayload(&payload))
	require.Len(t, payload.Lessons, 1)
	assert.Equal(t, lesson.ID, payload.Lessons[0].ID)

	// Preference defaults to enabled, so the add requests a notification.
	added := f.emitter.eventsOfType(events.EventTypeLessonAdded)
	require.Len(t, added, 1)

	var addedPayload events.LessonAddedPayload
	require.NoError(t, added[0].UnmarshalPayload(&addedPayload))
	assert.Equal(t, lesson.ID, addedPayload.LessonID)
	assert.Equal(t, lesson.Title, addedPayload.Title)
}

func TestCatalogService_AddLessonEmptyTitle(t *testing.T) {
	f := newCatalogFixture(t)

	lesson, err := f.service.AddLesson(context.Background(), "   ")
	assert.Error(t, err)
	assert.Nil(t, lesson)
	assert.Empty(t, f.emitter.eventsOfType(events.EventTypeLessonsChanged))
}

func TestCatalogService_AddLessonNotificationsDisabled(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	require.NoError(t, f.prefs.SetBool(ctx, store.NotificationsEnabledKey, false))

	_, err := f.service.AddLesson(ctx, "Lesson 4: TCP")
	require.NoError(t, err)

	assert.Empty(t, f.emitter.eventsOfType(events.EventTypeLessonAdded),
		"disabled preference must suppress the notification request")
	assert.Len(t, f.emitter.eventsOfType(events.EventTypeLessonsChanged), 1,
		"snapshot events are not gated by the preference")
}

func TestCatalogService_AddLessonPreferenceReadFailure(t *testing.T) {
	f := newCatalogFixture(t)
	f.prefs.getErr = errors.New("connection reset")

	lesson, err := f.service.AddLesson(context.Background(), "Lesson 4: TCP")
	require.NoError(t, err, "notification trouble never fails the add")
	assert.NotNil(t, lesson)
	assert.Empty(t, f.emitter.eventsOfType(events.EventTypeLessonAdded))
}

func TestCatalogService_DeleteLesson(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	lesson, err := f.service.AddLesson(ctx, "Lesson 4: TCP")
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteLesson(ctx, lesson.ID))

	lessons, err := f.service.ListLessons(ctx)
	require.NoError(t, err)
	assert.Empty(t, lessons)

	err = f.service.DeleteLesson(ctx, lesson.ID)
	assert.ErrorIs(t, err, ErrLessonNotFound)
}

func TestCatalogService_MarkCompleted(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	lesson, err := f.service.AddLesson(ctx, "Lesson 4: TCP")
	require.NoError(t, err)

	require.NoError(t, f.service.MarkCompleted(ctx, lesson.ID))
	// Idempotent on an already-completed lesson.
	require.NoError(t, f.service.MarkCompleted(ctx, lesson.ID))

	lessons, err := f.service.ListLessons(ctx)
	require.NoError(t, err)
	require.Len(t, lessons, 1)
	assert.True(t, lessons[0].Completed)

	err = f.service.MarkCompleted(ctx, lesson.ID+100)
	assert.ErrorIs(t, err, ErrLessonNotFound)
}

func TestCatalogService_SeedIfEmpty(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	require.NoError(t, f.service.SeedIfEmpty(ctx))

	lessons, err := f.service.ListLessons(ctx)
	require.NoError(t, err)
	require.Len(t, lessons, 3)
	for _, lesson := range lessons {
		assert.False(t, lesson.Completed, "seeded lessons start incomplete")
	}
	assert.Equal(t, "Lesson 1: Networking Basics", lessons[0].Title)
	assert.Equal(t, "Lesson 2: IP Protocol", lessons[1].Title)
	assert.Equal(t, "Lesson 3: HTTP and HTTPS", lessons[2].Title)

	wantQuestionCounts := []int{2, 3, 2}
	for i, lesson := range lessons {
		questions, err := f.questions.ListByLesson(ctx, lesson.ID)
		require.NoError(t, err)
		assert.Len(t, questions, wantQuestionCounts[i])
	}
}

func TestCatalogService_SeedIfEmptyIsIdempotent(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	require.NoError(t, f.service.SeedIfEmpty(ctx))
	require.NoError(t, f.service.SeedIfEmpty(ctx))

	lessons, err := f.service.ListLessons(ctx)
	require.NoError(t, err)
	assert.Len(t, lessons, 3, "second seed call must not duplicate data")

	// Only the first call pushes a snapshot; the second changed nothing.
	assert.Len(t, f.emitter.eventsOfType(events.EventTypeLessonsChanged), 1)
}

func TestCatalogService_SeedSkipsNonEmptyCatalog(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	existing, err := f.service.AddLesson(ctx, "Handwritten lesson")
	require.NoError(t, err)

	require.NoError(t, f.service.SeedIfEmpty(ctx))

	lessons, err := f.service.ListLessons(ctx)
	require.NoError(t, err)
	require.Len(t, lessons, 1)
	assert.Equal(t, existing.ID, lessons[0].ID)
}

func TestCatalogService_ListLessonsStoreFailure(t *testing.T) {
	f := newCatalogFixture(t)
	f.lessons.listErr = store.ErrUnavailable

	lessons, err := f.service.ListLessons(context.Background())
	assert.Nil(t, lessons)
	assert.ErrorIs(t, err, store.ErrUnavailable)

	var svcErr *ServiceError
	assert.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "list_lessons", svcErr.Operation)
}
