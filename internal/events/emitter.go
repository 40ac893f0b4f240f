package events

import (
	"context"
	"log/slog"
	"sync"
)

// InMemoryEmitter is a simple implementation of the Emitter interface
// that stores registered handlers in memory and dispatches events to them.
type InMemoryEmitter struct {
	handlers []Handler
	mu       sync.RWMutex
	logger   *slog.Logger
}

// NewInMemoryEmitter creates a new instance of InMemoryEmitter.
func NewInMemoryEmitter(logger *slog.Logger) *InMemoryEmitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &InMemoryEmitter{
		handlers: make([]Handler, 0),
		logger:   logger.With("component", "in_memory_emitter"),
	}
}

// Ensure InMemoryEmitter implements Emitter
var _ Emitter = (*InMemoryEmitter)(nil)

// RegisterHandler adds a new event handler to receive events.
func (e *InMemoryEmitter) RegisterHandler(handler Handler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers = append(e.handlers, handler)
	e.logger.Debug("registered new event handler", "handler_count", len(e.handlers))
}

// UnregisterHandler removes a previously registered handler. Unknown
// handlers are ignored.
func (e *InMemoryEmitter) UnregisterHandler(handler Handler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, registered := range e.handlers {
		if registered == handler {
			e.handlers = append(e.handlers[:i], e.handlers[i+1:]...)
			e.logger.Debug("unregistered event handler", "handler_count", len(e.handlers))
			return
		}
	}
}

// Subscribe registers a channel-backed handler and returns its event channel
// together with a cancel function that unregisters the handler and closes
// the channel. When eventTypes is non-empty only events of those types are
// delivered.
func (e *InMemoryEmitter) Subscribe(buffer int, eventTypes ...string) (<-chan *Event, func()) {
	handler := NewChannelHandler(buffer, e.logger, eventTypes...)
	e.RegisterHandler(handler)

	cancel := func() {
		e.UnregisterHandler(handler)
		handler.Close()
	}
	return handler.Events(), cancel
}

// EmitEvent publishes the given event to all registered handlers.
// If any handler returns an error, the event is still delivered to all other
// handlers, and the first error encountered is returned.
func (e *InMemoryEmitter) EmitEvent(ctx context.Context, event *Event) error {
	e.mu.RLock()
	handlers := make([]Handler, len(e.handlers))
	copy(handlers, e.handlers)
	e.mu.RUnlock()

	e.logger.Debug("emitting event",
		"event_id", event.ID,
		"event_type", event.Type,
		"handler_count", len(handlers))

	if len(handlers) == 0 {
		e.logger.Warn("no handlers registered for event",
			"event_id", event.ID,
			"event_type", event.Type)
		return nil
	}

	var firstErr error
	for i, handler := range handlers {
		if err := handler.HandleEvent(ctx, event); err != nil {
			e.logger.Error("handler failed to process event",
				"error", err,
				"handler_index", i,
				"event_id", event.ID,
				"event_type", event.Type)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}
