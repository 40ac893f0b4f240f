package service

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"

	"github.com/kmazurek/teachme-api/internal/domain"
	"github.com/kmazurek/teachme-api/internal/events"
	"github.com/kmazurek/teachme-api/internal/store"
)

// memLessonStore is an in-memory store.LessonStore for service tests.
// Error injection fields force failures on specific operations.
type memLessonStore struct {
	mu      sync.Mutex
	nextID  int64
	lessons map[int64]*domain.Lesson

	createErr error
	listErr   error
}

func newMemLessonStore() *memLessonStore {
	return &memLessonStore{lessons: make(map[int64]*domain.Lesson)}
}

func (m *memLessonStore) Create(ctx context.Context, lesson *domain.Lesson) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	lesson.ID = m.nextID
	copied := *lesson
	m.lessons[lesson.ID] = &copied
	return nil
}

func (m *memLessonStore) GetByID(ctx context.Context, id int64) (*domain.Lesson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	lesson, ok := m.lessons[id]
	if !ok {
		return nil, store.ErrLessonNotFound
	}
	copied := *lesson
	return &copied, nil
}

func (m *memLessonStore) List(ctx context.Context) ([]*domain.Lesson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	result := make([]*domain.Lesson, 0, len(m.lessons))
	for _, lesson := range m.lessons {
		copied := *lesson
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *memLessonStore) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.lessons)), nil
}

func (m *memLessonStore) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.lessons[id]; !ok {
		return store.ErrLessonNotFound
	}
	delete(m.lessons, id)
	return nil
}

func (m *memLessonStore) DeleteAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lessons = make(map[int64]*domain.Lesson)
	return nil
}

func (m *memLessonStore) MarkCompleted(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	lesson, ok := m.lessons[id]
	if !ok {
		return store.ErrLessonNotFound
	}
	lesson.Completed = true
	return nil
}

func (m *memLessonStore) WithTx(tx *sql.Tx) store.LessonStore { return m }

// memQuestionStore is an in-memory store.QuestionStore. It checks lesson
// existence against the paired memLessonStore the way the foreign key does.
type memQuestionStore struct {
	mu        sync.Mutex
	nextID    int64
	questions map[int64]*domain.Question
	lessons   *memLessonStore

	listErr error
}

func newMemQuestionStore(lessons *memLessonStore) *memQuestionStore {
	return &memQuestionStore{
		questions: make(map[int64]*domain.Question),
		lessons:   lessons,
	}
}

func (m *memQuestionStore) Create(ctx context.Context, question *domain.Question) error {
	if _, err := m.lessons.GetByID(ctx, question.LessonID); err != nil {
		return fmt.Errorf("%w: lesson with ID %d not found",
			store.ErrReferentialIntegrity, question.LessonID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	question.ID = m.nextID
	copied := *question
	m.questions[question.ID] = &copied
	return nil
}

func (m *memQuestionStore) GetByID(ctx context.Context, id int64) (*domain.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	question, ok := m.questions[id]
	if !ok {
		return nil, store.ErrQuestionNotFound
	}
	copied := *question
	return &copied, nil
}

func (m *memQuestionStore) ListByLesson(
	ctx context.Context,
	lessonID int64,
) ([]*domain.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*domain.Question
	for _, question := range m.questions {
		if question.LessonID == lessonID {
			copied := *question
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *memQuestionStore) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.questions[id]; !ok {
		return store.ErrQuestionNotFound
	}
	delete(m.questions, id)
	return nil
}

func (m *memQuestionStore) DeleteAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.questions = make(map[int64]*domain.Question)
	return nil
}

func (m *memQuestionStore) WithTx(tx *sql.Tx) store.QuestionStore { return m }

// memPreferenceStore is an in-memory store.PreferenceStore.
type memPreferenceStore struct {
	mu     sync.Mutex
	values map[string]bool

	getErr error
}

func newMemPreferenceStore() *memPreferenceStore {
	return &memPreferenceStore{values: make(map[string]bool)}
}

func (m *memPreferenceStore) GetBool(
	ctx context.Context,
	key string,
	defaultValue bool,
) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return false, m.getErr
	}
	value, ok := m.values[key]
	if !ok {
		return defaultValue, nil
	}
	return value, nil
}

func (m *memPreferenceStore) SetBool(ctx context.Context, key string, value bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// fakeTxRunner runs the function without a real transaction. The in-memory
// stores ignore the nil *sql.Tx through their WithTx no-ops.
type fakeTxRunner struct{}

func (fakeTxRunner) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	return fn(ctx, nil)
}

// captureEmitter records emitted events for assertions.
type captureEmitter struct {
	mu     sync.Mutex
	events []*events.Event

	emitErr error
}

func (e *captureEmitter) EmitEvent(ctx context.Context, event *events.Event) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.emitErr != nil {
		return e.emitErr
	}
	e.events = append(e.events, event)
	return nil
}

func (e *captureEmitter) eventsOfType(eventType string) []*events.Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	var result []*events.Event
	for _, event := range e.events {
		if event.Type == eventType {
			result = append(result, event)
		}
	}
	return result
}
