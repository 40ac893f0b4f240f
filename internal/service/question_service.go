package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/kmazurek/teachme-api/internal/domain"
	"github.com/kmazurek/teachme-api/internal/events"
	"github.com/kmazurek/teachme-api/internal/store"
)

// QuestionService provides question bank operations. Questions have no
// update operation: they are inserted and deleted whole.
type QuestionService interface {
	// ListQuestions returns a lesson's questions ordered by ID ascending.
	ListQuestions(ctx context.Context, lessonID int64) ([]*domain.Question, error)

	// AddQuestion creates a new question under an existing lesson.
	// Returns ErrLessonNotFound when the lesson does not exist.
	AddQuestion(
		ctx context.Context,
		lessonID int64,
		text, correctAnswer string,
		incorrectAnswers []string,
	) (*domain.Question, error)

	// DeleteQuestion removes a question by its ID.
	// Returns ErrQuestionNotFound for an unknown ID.
	DeleteQuestion(ctx context.Context, id int64) error
}

// questionServiceImpl implements the QuestionService interface.
type questionServiceImpl struct {
	questionStore store.QuestionStore
	eventEmitter  events.Emitter
	logger        *slog.Logger
}

// NewQuestionService creates a new QuestionService.
// It returns an error if any of the required dependencies are nil.
func NewQuestionService(
	questionStore store.QuestionStore,
	eventEmitter events.Emitter,
	logger *slog.Logger,
) (QuestionService, error) {
	if questionStore == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "questionStore cannot be nil"}
	}
	if eventEmitter == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "eventEmitter cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &questionServiceImpl{
		questionStore: questionStore,
		eventEmitter:  eventEmitter,
		logger:        logger.With("component", "question_service"),
	}, nil
}

// ListQuestions returns the questions of a lesson ordered by ID ascending.
func (s *questionServiceImpl) ListQuestions(
	ctx context.Context,
	lessonID int64,
) ([]*domain.Question, error) {
	questions, err := s.questionStore.ListByLesson(ctx, lessonID)
	if err != nil {
		s.logger.Error("failed to list questions",
			"error", err,
			"lesson_id", lessonID)
		return nil, NewServiceError("list_questions", "failed to list questions", err)
	}
	return questions, nil
}

// AddQuestion creates a question and pushes a fresh snapshot for its lesson.
func (s *questionServiceImpl) AddQuestion(
	ctx context.Context,
	lessonID int64,
	text, correctAnswer string,
	incorrectAnswers []string,
) (*domain.Question, error) {
	question, err := domain.NewQuestion(lessonID, text, correctAnswer, incorrectAnswers)
	if err != nil {
		s.logger.Warn("rejected invalid question",
			"error", err,
			"lesson_id", lessonID)
		return nil, NewServiceError("add_question", "invalid question", err)
	}

	if err := s.questionStore.Create(ctx, question); err != nil {
		if errors.Is(err, store.ErrReferentialIntegrity) {
			s.logger.Warn("rejected question for unknown lesson",
				"lesson_id", lessonID)
			return nil, ErrLessonNotFound
		}
		s.logger.Error("failed to create question",
			"error", err,
			"lesson_id", lessonID)
		return nil, NewServiceError("add_question", "failed to save question", err)
	}

	s.logger.Info("question created",
		"question_id", question.ID,
		"lesson_id", lessonID)

	s.emitQuestionsChanged(ctx, lessonID)
	return question, nil
}

// DeleteQuestion removes a question and pushes a fresh snapshot for the
// lesson it belonged to.
func (s *questionServiceImpl) DeleteQuestion(ctx context.Context, id int64) error {
	question, err := s.questionStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrQuestionNotFound) {
			return ErrQuestionNotFound
		}
		s.logger.Error("failed to load question for deletion",
			"error", err,
			"question_id", id)
		return NewServiceError("delete_question", "failed to load question", err)
	}

	if err := s.questionStore.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrQuestionNotFound) {
			return ErrQuestionNotFound
		}
		s.logger.Error("failed to delete question",
			"error", err,
			"question_id", id)
		return NewServiceError("delete_question", "failed to delete question", err)
	}

	s.logger.Info("question deleted",
		"question_id", id,
		"lesson_id", question.LessonID)

	s.emitQuestionsChanged(ctx, question.LessonID)
	return nil
}

// emitQuestionsChanged pushes a fresh questions snapshot for one lesson.
// Best effort: failures are logged, never returned.
func (s *questionServiceImpl) emitQuestionsChanged(ctx context.Context, lessonID int64) {
	questions, err := s.questionStore.ListByLesson(ctx, lessonID)
	if err != nil {
		s.logger.Error("failed to load snapshot for questions.changed event",
			"error", err,
			"lesson_id", lessonID)
		return
	}

	event, err := events.NewEvent(events.EventTypeQuestionsChanged, events.QuestionsChangedPayload{
		LessonID:  lessonID,
		Questions: questions,
	})
	if err != nil {
		s.logger.Error("failed to create questions.changed event",
			"error", err,
			"lesson_id", lessonID)
		return
	}

	if err := s.eventEmitter.EmitEvent(ctx, event); err != nil {
		s.logger.Error("failed to emit questions.changed event",
			"error", err,
			"lesson_id", lessonID,
			"event_id", event.ID)
	}
}
