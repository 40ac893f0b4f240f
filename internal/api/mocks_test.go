package api

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/kmazurek/teachme-api/internal/domain"
	"github.com/kmazurek/teachme-api/internal/service"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockCatalogService implements service.CatalogService with function fields.
// Unset fields return zero values.
type mockCatalogService struct {
	listFn     func(ctx context.Context) ([]*domain.Lesson, error)
	addFn      func(ctx context.Context, title string) (*domain.Lesson, error)
	deleteFn   func(ctx context.Context, id int64) error
	completeFn func(ctx context.Context, id int64) error
}

var _ service.CatalogService = (*mockCatalogService)(nil)

func (m *mockCatalogService) ListLessons(ctx context.Context) ([]*domain.Lesson, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockCatalogService) AddLesson(ctx context.Context, title string) (*domain.Lesson, error) {
	if m.addFn != nil {
		return m.addFn(ctx, title)
	}
	return nil, nil
}

func (m *mockCatalogService) DeleteLesson(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockCatalogService) MarkCompleted(ctx context.Context, id int64) error {
	if m.completeFn != nil {
		return m.completeFn(ctx, id)
	}
	return nil
}

func (m *mockCatalogService) SeedIfEmpty(ctx context.Context) error { return nil }

// mockQuestionService implements service.QuestionService with function fields.
type mockQuestionService struct {
	listFn   func(ctx context.Context, lessonID int64) ([]*domain.Question, error)
	addFn    func(ctx context.Context, lessonID int64, text, correct string, incorrect []string) (*domain.Question, error)
	deleteFn func(ctx context.Context, id int64) error
}

var _ service.QuestionService = (*mockQuestionService)(nil)

func (m *mockQuestionService) ListQuestions(
	ctx context.Context,
	lessonID int64,
) ([]*domain.Question, error) {
	if m.listFn != nil {
		return m.listFn(ctx, lessonID)
	}
	return nil, nil
}

func (m *mockQuestionService) AddQuestion(
	ctx context.Context,
	lessonID int64,
	text, correctAnswer string,
	incorrectAnswers []string,
) (*domain.Question, error) {
	if m.addFn != nil {
		return m.addFn(ctx, lessonID, text, correctAnswer, incorrectAnswers)
	}
	return nil, nil
}

func (m *mockQuestionService) DeleteQuestion(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// mockPreferenceService implements service.PreferenceService.
type mockPreferenceService struct {
	getFn func(ctx context.Context) (bool, error)
	setFn func(ctx context.Context, enabled bool) error
}

var _ service.PreferenceService = (*mockPreferenceService)(nil)

func (m *mockPreferenceService) NotificationsEnabled(ctx context.Context) (bool, error) {
	if m.getFn != nil {
		return m.getFn(ctx)
	}
	return true, nil
}

func (m *mockPreferenceService) SetNotificationsEnabled(ctx context.Context, enabled bool) error {
	if m.setFn != nil {
		return m.setFn(ctx, enabled)
	}
	return nil
}

// mockSessionService implements service.SessionService over a single live
// domain session, which keeps handler tests close to real state machine
// behavior.
type mockSessionService struct {
	session *domain.Session
	openErr error
}

var _ service.SessionService = (*mockSessionService)(nil)

func (m *mockSessionService) Open(ctx context.Context, lessonID int64) (*domain.Session, error) {
	if m.openErr != nil {
		return nil, m.openErr
	}
	return m.session, nil
}

func (m *mockSessionService) Get(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	if m.session == nil || m.session.ID() != id {
		return nil, service.ErrSessionNotFound
	}
	return m.session, nil
}

func (m *mockSessionService) Answer(
	ctx context.Context,
	id uuid.UUID,
	optionText string,
	optionIndex int,
) (bool, error) {
	session, err := m.Get(ctx, id)
	if err != nil {
		return false, err
	}
	return session.Answer(optionText, optionIndex)
}

func (m *mockSessionService) Back(ctx context.Context, id uuid.UUID) (bool, error) {
	session, err := m.Get(ctx, id)
	if err != nil {
		return false, err
	}
	return session.Back()
}

func (m *mockSessionService) Close(ctx context.Context, id uuid.UUID) error {
	session, err := m.Get(ctx, id)
	if err != nil {
		return err
	}
	session.Close()
	m.session = nil
	return nil
}
