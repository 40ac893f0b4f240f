package domain

import (
	"errors"
	"strings"
)

// Lesson-specific validation errors
var (
	// ErrLessonTitleEmpty is returned when a lesson title is empty.
	ErrLessonTitleEmpty = errors.New("lesson title cannot be empty")
)

// Lesson represents a named unit of study containing questions.
// The ID is assigned by the persistence store on insert; a zero ID marks a
// lesson that has not been stored yet. Completed is flipped exactly once,
// by the session-completion callback, and never unset.
type Lesson struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// NewLesson creates a new, not-yet-persisted Lesson with the given title.
// Returns an error if validation fails.
func NewLesson(title string) (*Lesson, error) {
	lesson := &Lesson{
		Title:     title,
		Completed: false,
	}

	if err := lesson.Validate(); err != nil {
		return nil, err
	}

	return lesson, nil
}

// Validate checks if the Lesson has valid data.
// Returns an error if any field fails validation.
// The title must contain at least one non-whitespace character, matching the
// CHECK constraint on the lessons table.
func (l *Lesson) Validate() error {
	if strings.TrimSpace(l.Title) == "" {
		return ErrLessonTitleEmpty
	}
	return nil
}
