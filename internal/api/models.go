package api

import (
	"github.com/kmazurek/teachme-api/internal/domain"
)

// LessonResponse represents the response data for a lesson.
type LessonResponse struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// QuestionResponse represents the response data for a question.
type QuestionResponse struct {
	ID               int64    `json:"id"`
	LessonID         int64    `json:"lesson_id"`
	Text             string   `json:"text"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

// AnswerMarkResponse marks the option the client chose on the current
// question, so it can be painted green or red.
type AnswerMarkResponse struct {
	OptionIndex int  `json:"option_index"`
	Correct     bool `json:"correct"`
}

// SessionResultResponse carries the final score of a finished session.
type SessionResultResponse struct {
	CorrectCount int `json:"correct_count"`
	WrongCount   int `json:"wrong_count"`
}

// SessionResponse is the full session snapshot returned by every session
// endpoint. CurrentQuestion and Mark are nil outside the in_progress state;
// Result is nil until the session finishes.
type SessionResponse struct {
	ID              string                 `json:"id"`
	LessonID        int64                  `json:"lesson_id"`
	State           string                 `json:"state"`
	CurrentIndex    int                    `json:"current_index"`
	QuestionCount   int                    `json:"question_count"`
	CorrectCount    int                    `json:"correct_count"`
	WrongCount      int                    `json:"wrong_count"`
	CurrentQuestion *QuestionResponse      `json:"current_question,omitempty"`
	Mark            *AnswerMarkResponse    `json:"mark,omitempty"`
	Result          *SessionResultResponse `json:"result,omitempty"`
}

func lessonToResponse(lesson *domain.Lesson) LessonResponse {
	return LessonResponse{
		ID:        lesson.ID,
		Title:     lesson.Title,
		Completed: lesson.Completed,
	}
}

func lessonsToResponse(lessons []*domain.Lesson) []LessonResponse {
	result := make([]LessonResponse, 0, len(lessons))
	for _, lesson := range lessons {
		result = append(result, lessonToResponse(lesson))
	}
	return result
}

func questionToResponse(question *domain.Question) QuestionResponse {
	return QuestionResponse{
		ID:               question.ID,
		LessonID:         question.LessonID,
		Text:             question.Text,
		CorrectAnswer:    question.CorrectAnswer,
		IncorrectAnswers: question.IncorrectAnswers,
	}
}

func questionsToResponse(questions []*domain.Question) []QuestionResponse {
	result := make([]QuestionResponse, 0, len(questions))
	for _, question := range questions {
		result = append(result, questionToResponse(question))
	}
	return result
}

func sessionToResponse(session *domain.Session) SessionResponse {
	index, correct, wrong := session.Progress()
	response := SessionResponse{
		ID:            session.ID().String(),
		LessonID:      session.LessonID(),
		State:         string(session.State()),
		CurrentIndex:  index,
		QuestionCount: session.QuestionCount(),
		CorrectCount:  correct,
		WrongCount:    wrong,
	}

	if question := session.CurrentQuestion(); question != nil {
		qr := questionToResponse(question)
		response.CurrentQuestion = &qr
	}
	if mark := session.Mark(); mark != nil {
		response.Mark = &AnswerMarkResponse{
			OptionIndex: mark.OptionIndex,
			Correct:     mark.Correct,
		}
	}
	if result, done := session.Result(); done {
		response.Result = &SessionResultResponse{
			CorrectCount: result.CorrectCount,
			WrongCount:   result.WrongCount,
		}
	}
	return response
}
