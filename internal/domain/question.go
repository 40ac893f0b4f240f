package domain

import (
	"errors"
	"strings"
)

// IncorrectAnswerCount is the fixed number of incorrect options every
// question carries; together with the correct answer each question is shown
// with four options.
const IncorrectAnswerCount = 3

// Question-specific validation errors
var (
	// ErrQuestionLessonIDInvalid is returned when a question's lesson ID is zero or negative.
	ErrQuestionLessonIDInvalid = errors.New("question lesson ID must be a positive integer")

	// ErrQuestionTextEmpty is returned when a question's text is empty.
	ErrQuestionTextEmpty = errors.New("question text cannot be empty")

	// ErrCorrectAnswerEmpty is returned when a question's correct answer is empty.
	ErrCorrectAnswerEmpty = errors.New("question correct answer cannot be empty")

	// ErrIncorrectAnswerCount is returned when a question does not carry
	// exactly IncorrectAnswerCount incorrect answers.
	ErrIncorrectAnswerCount = errors.New("question must have exactly three incorrect answers")

	// ErrIncorrectAnswerEmpty is returned when one of the incorrect answers is empty.
	ErrIncorrectAnswerEmpty = errors.New("incorrect answers cannot be empty")

	// ErrIncorrectContainsCorrect is returned when the incorrect answers
	// include the correct answer.
	ErrIncorrectContainsCorrect = errors.New("incorrect answers cannot contain the correct answer")
)

// Question represents one multiple-choice item scoped to a lesson, with
// exactly one correct and three incorrect options. Questions are immutable
// after creation; there is no update path, only insert and delete.
type Question struct {
	ID               int64    `json:"id"`
	LessonID         int64    `json:"lesson_id"`
	Text             string   `json:"text"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

// NewQuestion creates a new, not-yet-persisted Question for the given lesson.
// Returns an error if validation fails.
func NewQuestion(lessonID int64, text, correctAnswer string, incorrectAnswers []string) (*Question, error) {
	question := &Question{
		LessonID:         lessonID,
		Text:             text,
		CorrectAnswer:    correctAnswer,
		IncorrectAnswers: incorrectAnswers,
	}

	if err := question.Validate(); err != nil {
		return nil, err
	}

	return question, nil
}

// Validate checks if the Question has valid data.
// Returns an error if any field fails validation.
// Text and answers must contain at least one non-whitespace character,
// matching the CHECK constraints on the questions table.
func (q *Question) Validate() error {
	if q.LessonID <= 0 {
		return ErrQuestionLessonIDInvalid
	}

	if strings.TrimSpace(q.Text) == "" {
		return ErrQuestionTextEmpty
	}

	if strings.TrimSpace(q.CorrectAnswer) == "" {
		return ErrCorrectAnswerEmpty
	}

	if len(q.IncorrectAnswers) != IncorrectAnswerCount {
		return ErrIncorrectAnswerCount
	}

	for _, answer := range q.IncorrectAnswers {
		if strings.TrimSpace(answer) == "" {
			return ErrIncorrectAnswerEmpty
		}
		if answer == q.CorrectAnswer {
			return ErrIncorrectContainsCorrect
		}
	}

	return nil
}

// Options returns the answer options in display order: the correct answer
// first, followed by the incorrect answers. Correctness is judged by option
// text, so the display layer is free to shuffle.
func (q *Question) Options() []string {
	options := make([]string, 0, 1+len(q.IncorrectAnswers))
	options = append(options, q.CorrectAnswer)
	options = append(options, q.IncorrectAnswers...)
	return options
}
