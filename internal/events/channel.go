package events

import (
	"context"
	"log/slog"
	"sync"
)

// ChannelHandler adapts the Handler interface to a Go channel so consumers
// can range over events instead of registering callbacks. Snapshot events
// supersede each other, so when the buffer is full the oldest pending event
// is dropped to make room for the newest.
type ChannelHandler struct {
	ch     chan *Event
	types  map[string]bool
	mu     sync.Mutex
	closed bool
	logger *slog.Logger
}

// NewChannelHandler creates a ChannelHandler with the given buffer size.
// When eventTypes is non-empty only events of those types are forwarded;
// otherwise every event is.
func NewChannelHandler(buffer int, logger *slog.Logger, eventTypes ...string) *ChannelHandler {
	if buffer <= 0 {
		buffer = 1
	}
	if logger == nil {
		logger = slog.Default()
	}

	types := make(map[string]bool, len(eventTypes))
	for _, t := range eventTypes {
		types[t] = true
	}

	return &ChannelHandler{
		ch:     make(chan *Event, buffer),
		types:  types,
		logger: logger.With("component", "channel_handler"),
	}
}

// Ensure ChannelHandler implements Handler
var _ Handler = (*ChannelHandler)(nil)

// Events returns the channel the handler forwards events onto. The channel
// is closed by Close.
func (h *ChannelHandler) Events() <-chan *Event {
	return h.ch
}

// HandleEvent implements Handler. It never blocks the emitter: when the
// buffer is full the oldest pending event is discarded.
func (h *ChannelHandler) HandleEvent(ctx context.Context, event *Event) error {
	if len(h.types) > 0 && !h.types[event.Type] {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}

	for {
		select {
		case h.ch <- event:
			return nil
		default:
		}

		select {
		case dropped := <-h.ch:
			h.logger.Debug("dropped stale event for slow consumer",
				"event_id", dropped.ID,
				"event_type", dropped.Type)
		default:
		}
	}
}

// Close stops forwarding and closes the events channel. It is safe to call
// more than once.
func (h *ChannelHandler) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	close(h.ch)
}
