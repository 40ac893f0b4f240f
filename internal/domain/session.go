package domain

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// AdvanceDelay is how long a question's verdict stays on screen before the
// session moves to the next question.
const AdvanceDelay = 1000 * time.Millisecond

// SessionState identifies the current phase of a quiz session.
type SessionState string

// Possible session states. Loading is a data-availability gate, not a real
// transition: a session holds it only while its question list is empty.
const (
	SessionStateLoading    SessionState = "loading"
	SessionStateInProgress SessionState = "in_progress"
	SessionStateFinished   SessionState = "finished"
)

// Session-specific errors
var (
	// ErrSessionClosed is returned when operating on a session that has been torn down.
	ErrSessionClosed = errors.New("session is closed")

	// ErrSessionFinished is returned when answering a session that already reached the summary.
	ErrSessionFinished = errors.New("session is finished")

	// ErrSessionLoading is returned when answering before any questions are available.
	ErrSessionLoading = errors.New("session has no questions yet")

	// ErrOptionIndexInvalid is returned when the chosen option index is out of range.
	ErrOptionIndexInvalid = errors.New("option index out of range")
)

// CancelFunc cancels a scheduled callback. It reports whether the callback
// was cancelled before running.
type CancelFunc func() bool

// ScheduleFunc schedules fn to run once after d. The returned CancelFunc
// stops the callback if it has not fired yet. The default implementation is
// backed by time.AfterFunc; tests substitute a manual trigger.
type ScheduleFunc func(d time.Duration, fn func()) CancelFunc

func defaultSchedule(d time.Duration, fn func()) CancelFunc {
	timer := time.AfterFunc(d, fn)
	return timer.Stop
}

// AnswerMark records the option chosen for the question currently on
// screen, so the display layer can paint it green or red. All other options
// stay neutral. The mark is cleared whenever the current question changes.
type AnswerMark struct {
	OptionIndex int  `json:"option_index"`
	Correct     bool `json:"correct"`
}

// Result is the final tally of a finished session.
type Result struct {
	CorrectCount int `json:"correct_count"`
	WrongCount   int `json:"wrong_count"`
}

// Session drives one run-through of a lesson's questions. It tracks the
// current question, the per-question answer record (allowing a question to
// be re-answered with score correction), and the running tally.
//
// All transitions are serialized behind an internal mutex so the scheduled
// auto-advance can never interleave with a caller's Answer or Back. The
// session is still a single-consumer object: concurrent scoring calls from
// multiple callers are not supported input.
type Session struct {
	id       uuid.UUID
	lessonID int64

	mu           sync.Mutex
	questions    []*Question
	currentIndex int
	correctCount int
	wrongCount   int
	answered     map[int]bool
	mark         *AnswerMark
	schedule     ScheduleFunc
	cancelPend   CancelFunc
	advanceSeq   uint64
	closed       bool
	onFinish     func(*Session)
}

// SessionOption customizes session construction.
type SessionOption func(*Session)

// WithScheduleFunc replaces the timer used for the auto-advance delay.
// Intended for tests that need deterministic control over the advance.
func WithScheduleFunc(schedule ScheduleFunc) SessionOption {
	return func(s *Session) {
		if schedule != nil {
			s.schedule = schedule
		}
	}
}

// WithFinishFunc registers a callback invoked once when the session
// transitions to Finished. The callback runs outside the session's lock and
// may call back into the session.
func WithFinishFunc(fn func(*Session)) SessionOption {
	return func(s *Session) {
		s.onFinish = fn
	}
}

// NewSession creates a session over the given questions for a lesson.
// An empty question list puts the session in the Loading state; questions
// can be attached later with SetQuestions once they arrive.
func NewSession(lessonID int64, questions []*Question, opts ...SessionOption) *Session {
	s := &Session{
		id:       uuid.New(),
		lessonID: lessonID,
		answered: make(map[int]bool),
		schedule: defaultSchedule,
	}
	s.questions = append(s.questions, questions...)

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// ID returns the session's unique identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// LessonID returns the lesson this session runs through.
func (s *Session) LessonID() int64 {
	return s.lessonID
}

// State reports the session's current phase.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Session) stateLocked() SessionState {
	switch {
	case len(s.questions) == 0:
		return SessionStateLoading
	case s.currentIndex >= len(s.questions):
		return SessionStateFinished
	default:
		return SessionStateInProgress
	}
}

// SetQuestions attaches the question list to a session still in the Loading
// state, moving it to InProgress at index 0. It is a no-op once questions
// are present or the session is closed.
func (s *Session) SetQuestions(questions []*Question) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || len(s.questions) > 0 || len(questions) == 0 {
		return
	}
	s.questions = append(s.questions, questions...)
}

// CurrentQuestion returns the question at the current index, or nil when
// the session is loading or finished.
func (s *Session) CurrentQuestion() *Question {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stateLocked() != SessionStateInProgress {
		return nil
	}
	return s.questions[s.currentIndex]
}

// Mark returns the answer mark for the question currently on screen, or nil
// when no option has been chosen since the last advance.
func (s *Session) Mark() *AnswerMark {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mark == nil {
		return nil
	}
	mark := *s.mark
	return &mark
}

// Answer scores the chosen option against the current question.
//
// A first answer increments the correct or wrong count and records the
// verdict. Re-answering the same question with a flipped verdict adjusts
// both counts by one to reflect the new verdict; re-answering with the same
// verdict leaves the counts untouched. Either way the chosen option is
// marked for display and a single-shot advance to the next question is
// scheduled after AdvanceDelay, replacing any advance still pending.
//
// Returns the verdict for the chosen option.
func (s *Session) Answer(optionText string, optionIndex int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false, ErrSessionClosed
	}

	switch s.stateLocked() {
	case SessionStateLoading:
		return false, ErrSessionLoading
	case SessionStateFinished:
		return false, ErrSessionFinished
	}

	question := s.questions[s.currentIndex]
	if optionIndex < 0 || optionIndex >= len(question.Options()) {
		return false, ErrOptionIndexInvalid
	}

	isCorrect := optionText == question.CorrectAnswer

	previous, wasAnswered := s.answered[s.currentIndex]
	switch {
	case !wasAnswered:
		if isCorrect {
			s.correctCount++
		} else {
			s.wrongCount++
		}
	case previous != isCorrect:
		if isCorrect {
			s.correctCount++
			s.wrongCount--
		} else {
			s.correctCount--
			s.wrongCount++
		}
	}
	s.answered[s.currentIndex] = isCorrect

	s.mark = &AnswerMark{OptionIndex: optionIndex, Correct: isCorrect}

	s.scheduleAdvanceLocked()

	return isCorrect, nil
}

// scheduleAdvanceLocked arms the auto-advance timer, replacing any pending
// one. The sequence number guards against a stale callback that lost the
// race with cancellation and fires against a later state.
func (s *Session) scheduleAdvanceLocked() {
	if s.cancelPend != nil {
		s.cancelPend()
	}
	s.advanceSeq++
	seq := s.advanceSeq
	s.cancelPend = s.schedule(AdvanceDelay, func() {
		s.advance(seq)
	})
}

// advance moves to the next question and clears the answer mark. It is a
// no-op when the session was closed, already advanced, or finished in the
// meantime. The finish callback, if any, runs after the lock is released.
func (s *Session) advance(seq uint64) {
	s.mu.Lock()

	if s.closed || seq != s.advanceSeq {
		s.mu.Unlock()
		return
	}
	s.cancelPend = nil

	if s.stateLocked() != SessionStateInProgress {
		s.mu.Unlock()
		return
	}

	s.currentIndex++
	s.mark = nil

	finished := s.stateLocked() == SessionStateFinished
	onFinish := s.onFinish
	s.mu.Unlock()

	if finished && onFinish != nil {
		onFinish(s)
	}
}

// Back steps to the previous question, clearing the answer mark but leaving
// the answer record and counts untouched. At index 0 it reports exit=true
// instead, signalling the caller to close the session. A pending
// auto-advance is cancelled either way.
func (s *Session) Back() (exit bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false, ErrSessionClosed
	}

	if s.cancelPend != nil {
		s.cancelPend()
		s.cancelPend = nil
		s.advanceSeq++
	}

	if s.currentIndex == 0 {
		return true, nil
	}

	s.currentIndex--
	s.mark = nil
	return false, nil
}

// Result returns the final tally. The second return value is false until
// the session reaches the Finished state.
func (s *Session) Result() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stateLocked() != SessionStateFinished {
		return Result{}, false
	}
	return Result{CorrectCount: s.correctCount, WrongCount: s.wrongCount}, true
}

// AllCorrect reports whether the session finished with every question
// answered correctly. Lesson completion is gated on this.
func (s *Session) AllCorrect() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stateLocked() == SessionStateFinished &&
		s.correctCount == len(s.questions) &&
		s.wrongCount == 0
}

// Progress reports the current index and running tally.
func (s *Session) Progress() (index, correct, wrong int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentIndex, s.correctCount, s.wrongCount
}

// QuestionCount returns the number of questions in the session.
func (s *Session) QuestionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.questions)
}

// AnsweredCount returns how many distinct questions have been answered.
func (s *Session) AnsweredCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.answered)
}

// Close tears the session down, cancelling any pending auto-advance.
// A timer callback that already fired concurrently finds the closed flag
// and does nothing. Close is idempotent.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	if s.cancelPend != nil {
		s.cancelPend()
		s.cancelPend = nil
	}
}

// Closed reports whether the session has been torn down.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
