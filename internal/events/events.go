package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/kmazurek/teachme-api/internal/domain"
)

// Event types emitted by the services.
const (
	// EventTypeLessonsChanged carries a full lessons snapshot after every
	// mutating write to the lesson collection.
	EventTypeLessonsChanged = "lessons.changed"

	// EventTypeQuestionsChanged carries a questions snapshot for one lesson
	// after every mutating write to that lesson's questions.
	EventTypeQuestionsChanged = "questions.changed"

	// EventTypeLessonAdded requests a new-lesson notification dispatch.
	// It is emitted only when the notification preference is enabled.
	EventTypeLessonAdded = "lesson.added"
)

// Event is the envelope published through the emitter. The payload is
// serialized so handlers stay decoupled from the emitting service's types.
type Event struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type identifies the event kind (one of the EventType constants)
	Type string `json:"type"`

	// Payload contains the event-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *Event) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewEvent creates a new Event with the specified type and payload.
func NewEvent(eventType string, payload interface{}) (*Event, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payloadBytes,
		CreatedAt: time.Now(),
	}, nil
}

// LessonsChangedPayload is the payload of EventTypeLessonsChanged.
type LessonsChangedPayload struct {
	Lessons []*domain.Lesson `json:"lessons"`
}

// QuestionsChangedPayload is the payload of EventTypeQuestionsChanged.
type QuestionsChangedPayload struct {
	LessonID  int64              `json:"lesson_id"`
	Questions []*domain.Question `json:"questions"`
}

// LessonAddedPayload is the payload of EventTypeLessonAdded.
type LessonAddedPayload struct {
	LessonID int64  `json:"lesson_id"`
	Title    string `json:"title"`
}

// Handler defines an interface for components that can handle events.
// Handlers are responsible for processing events and taking appropriate actions.
type Handler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *Event) error
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(ctx context.Context, event *Event) error

// HandleEvent implements Handler.
func (f HandlerFunc) HandleEvent(ctx context.Context, event *Event) error {
	return f(ctx, event)
}

// Emitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type Emitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *Event) error
}
