package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/kmazurek/teachme-api/internal/domain"
	"github.com/kmazurek/teachme-api/internal/store"
)

// SessionService manages live quiz sessions. Sessions are transient and
// in-memory only: a restart forgets them all. Each session is keyed by a
// UUID handed to the client when it opens the session.
type SessionService interface {
	// Open loads the lesson's questions and starts a new session.
	// Returns ErrLessonNotFound when the lesson does not exist. A lesson
	// without questions yields a session in the Loading state.
	Open(ctx context.Context, lessonID int64) (*domain.Session, error)

	// Get returns the live session with the given ID.
	// Returns ErrSessionNotFound when no such session exists.
	Get(ctx context.Context, id uuid.UUID) (*domain.Session, error)

	// Answer scores an option choice on the session's current question and
	// reports whether it was correct.
	Answer(ctx context.Context, id uuid.UUID, optionText string, optionIndex int) (bool, error)

	// Back steps the session back one question. The returned flag is true
	// when the session was already at the first question, which signals
	// the client to leave the quiz.
	Back(ctx context.Context, id uuid.UUID) (bool, error)

	// Close tears the session down, cancelling any pending advance, and
	// forgets it. Closing an unknown session returns ErrSessionNotFound.
	Close(ctx context.Context, id uuid.UUID) error
}

// sessionServiceImpl implements the SessionService interface.
type sessionServiceImpl struct {
	lessonStore   store.LessonStore
	questionStore store.QuestionStore
	catalog       CatalogService
	logger        *slog.Logger
	schedule      domain.ScheduleFunc

	mu       sync.RWMutex
	sessions map[uuid.UUID]*domain.Session
}

// SessionServiceOption configures a SessionService at construction.
type SessionServiceOption func(*sessionServiceImpl)

// WithSessionSchedule overrides the timer used for auto-advance.
// Used by tests to drive time manually.
func WithSessionSchedule(schedule domain.ScheduleFunc) SessionServiceOption {
	return func(s *sessionServiceImpl) {
		s.schedule = schedule
	}
}

// NewSessionService creates a new SessionService.
// It returns an error if any of the required dependencies are nil.
func NewSessionService(
	lessonStore store.LessonStore,
	questionStore store.QuestionStore,
	catalog CatalogService,
	logger *slog.Logger,
	opts ...SessionServiceOption,
) (SessionService, error) {
	if lessonStore == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "lessonStore cannot be nil"}
	}
	if questionStore == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "questionStore cannot be nil"}
	}
	if catalog == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "catalog cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	svc := &sessionServiceImpl{
		lessonStore:   lessonStore,
		questionStore: questionStore,
		catalog:       catalog,
		logger:        logger.With("component", "session_service"),
		sessions:      make(map[uuid.UUID]*domain.Session),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Open starts a session for the given lesson.
func (s *sessionServiceImpl) Open(
	ctx context.Context,
	lessonID int64,
) (*domain.Session, error) {
	if _, err := s.lessonStore.GetByID(ctx, lessonID); err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrLessonNotFound
		}
		s.logger.Error("failed to load lesson for session",
			"error", err,
			"lesson_id", lessonID)
		return nil, NewServiceError("open_session", "failed to load lesson", err)
	}

	questions, err := s.questionStore.ListByLesson(ctx, lessonID)
	if err != nil {
		s.logger.Error("failed to load questions for session",
			"error", err,
			"lesson_id", lessonID)
		return nil, NewServiceError("open_session", "failed to load questions", err)
	}

	sessionOpts := []domain.SessionOption{domain.WithFinishFunc(s.onSessionFinish)}
	if s.schedule != nil {
		sessionOpts = append(sessionOpts, domain.WithScheduleFunc(s.schedule))
	}
	session := domain.NewSession(lessonID, questions, sessionOpts...)

	s.mu.Lock()
	s.sessions[session.ID()] = session
	s.mu.Unlock()

	s.logger.Info("session opened",
		"session_id", session.ID(),
		"lesson_id", lessonID,
		"question_count", len(questions))
	return session, nil
}

// Get returns the live session with the given ID.
func (s *sessionServiceImpl) Get(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Answer proxies an option choice to the session's state machine.
func (s *sessionServiceImpl) Answer(
	ctx context.Context,
	id uuid.UUID,
	optionText string,
	optionIndex int,
) (bool, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}

	correct, err := session.Answer(optionText, optionIndex)
	if err != nil {
		return false, NewServiceError("answer", "answer rejected", err)
	}

	s.logger.Debug("answer scored",
		"session_id", id,
		"option_index", optionIndex,
		"correct", correct)
	return correct, nil
}

// Back steps the session back or signals exit at the first question.
func (s *sessionServiceImpl) Back(ctx context.Context, id uuid.UUID) (bool, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}

	exit, err := session.Back()
	if err != nil {
		return false, NewServiceError("back", "back rejected", err)
	}
	return exit, nil
}

// Close tears down and forgets a session.
func (s *sessionServiceImpl) Close(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	session, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}

	session.Close()
	s.logger.Info("session closed", "session_id", id)
	return nil
}

// onSessionFinish runs on the timer goroutine when a session reaches the
// Finished state. A perfect score marks the lesson completed; anything less
// leaves the lesson untouched.
func (s *sessionServiceImpl) onSessionFinish(session *domain.Session) {
	result, _ := session.Result()
	if !session.AllCorrect() {
		s.logger.Info("session finished without perfect score",
			"session_id", session.ID(),
			"lesson_id", session.LessonID(),
			"correct", result.CorrectCount,
			"wrong", result.WrongCount)
		return
	}

	ctx := context.Background()
	if err := s.catalog.MarkCompleted(ctx, session.LessonID()); err != nil {
		s.logger.Error("failed to mark lesson completed after perfect score",
			"error", err,
			"session_id", session.ID(),
			"lesson_id", session.LessonID())
		return
	}

	s.logger.Info("lesson completed with perfect score",
		"session_id", session.ID(),
		"lesson_id", session.LessonID(),
		"correct", result.CorrectCount)
}
