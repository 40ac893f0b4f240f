package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmazurek/teachme-api/internal/config"
	"github.com/kmazurek/teachme-api/internal/domain"
	"github.com/kmazurek/teachme-api/internal/events"
	"github.com/kmazurek/teachme-api/internal/service"
)

// stubCatalog is a minimal service.CatalogService for route tests.
type stubCatalog struct{}

func (stubCatalog) ListLessons(ctx context.Context) ([]*domain.Lesson, error) {
	return []*domain.Lesson{{ID: 1, Title: "Lesson 1: Networking Basics"}}, nil
}

func (stubCatalog) AddLesson(ctx context.Context, title string) (*domain.Lesson, error) {
	return &domain.Lesson{ID: 2, Title: title}, nil
}

func (stubCatalog) DeleteLesson(ctx context.Context, id int64) error  { return nil }
func (stubCatalog) MarkCompleted(ctx context.Context, id int64) error { return nil }
func (stubCatalog) SeedIfEmpty(ctx context.Context) error             { return nil }

type stubQuestions struct{}

func (stubQuestions) ListQuestions(ctx context.Context, lessonID int64) ([]*domain.Question, error) {
	return nil, nil
}

func (stubQuestions) AddQuestion(
	ctx context.Context,
	lessonID int64,
	text, correctAnswer string,
	incorrectAnswers []string,
) (*domain.Question, error) {
	return &domain.Question{ID: 1, LessonID: lessonID, Text: text,
		CorrectAnswer: correctAnswer, IncorrectAnswers: incorrectAnswers}, nil
}

func (stubQuestions) DeleteQuestion(ctx context.Context, id int64) error { return nil }

type stubPreferences struct{}

func (stubPreferences) NotificationsEnabled(ctx context.Context) (bool, error) { return true, nil }

func (stubPreferences) SetNotificationsEnabled(ctx context.Context, e bool) error { return nil }

type stubSessions struct{}

func (stubSessions) Open(ctx context.Context, lessonID int64) (*domain.Session, error) {
	return domain.NewSession(lessonID, nil), nil
}

func (stubSessions) Get(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	return nil, service.ErrSessionNotFound
}

func (stubSessions) Answer(ctx context.Context, id uuid.UUID, text string, index int) (bool, error) {
	return false, service.ErrSessionNotFound
}

func (stubSessions) Back(ctx context.Context, id uuid.UUID) (bool, error) {
	return false, service.ErrSessionNotFound
}

func (stubSessions) Close(ctx context.Context, id uuid.UUID) error {
	return service.ErrSessionNotFound
}

func testApplication() *application {
	discard := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &application{
		config:            &config.Config{Server: config.ServerConfig{Port: 8080, LogLevel: "info"}},
		logger:            discard,
		eventEmitter:      events.NewInMemoryEmitter(discard),
		catalogService:    stubCatalog{},
		questionService:   stubQuestions{},
		preferenceService: stubPreferences{},
		sessionService:    stubSessions{},
	}
}

func TestRouter_Health(t *testing.T) {
	router := testApplication().setupRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestRouter_EventStream(t *testing.T) {
	router := testApplication().setupRouter()

	// A cancelled context makes the stream return right after the headers.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/events", nil).WithContext(ctx)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
}

func TestRouter_RoutesRegistered(t *testing.T) {
	router := testApplication().setupRouter()
	sessionID := uuid.NewString()

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/api/lessons", "", http.StatusOK},
		{http.MethodPost, "/api/lessons", `{"title":"Lesson 4: TCP"}`, http.StatusCreated},
		{http.MethodDelete, "/api/lessons/1", "", http.StatusNoContent},
		{http.MethodPost, "/api/lessons/1/complete", "", http.StatusNoContent},
		{http.MethodGet, "/api/lessons/1/questions", "", http.StatusOK},
		{http.MethodPost, "/api/questions",
			`{"lesson_id":1,"text":"q","correct_answer":"a","incorrect_answers":["b","c","d"]}`,
			http.StatusCreated},
		{http.MethodDelete, "/api/questions/1", "", http.StatusNoContent},
		{http.MethodGet, "/api/settings/notifications", "", http.StatusOK},
		{http.MethodPut, "/api/settings/notifications", `{"enabled":false}`, http.StatusOK},
		{http.MethodPost, "/api/sessions", `{"lesson_id":1}`, http.StatusCreated},
		{http.MethodGet, "/api/sessions/" + sessionID, "", http.StatusNotFound},
		{http.MethodDelete, "/api/sessions/" + sessionID, "", http.StatusNotFound},
		{http.MethodGet, "/api/unknown", "", http.StatusNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			var body io.Reader
			if tc.body != "" {
				body = strings.NewReader(tc.body)
			}
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(tc.method, tc.path, body)
			router.ServeHTTP(rec, req)

			require.Equal(t, tc.want, rec.Code)
		})
	}
}
