package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/kmazurek/teachme-api/internal/api/shared"
	"github.com/kmazurek/teachme-api/internal/events"
	"github.com/kmazurek/teachme-api/internal/platform/logger"
)

// streamBufferSize bounds pending snapshots per subscriber; stale snapshots
// are superseded by newer ones, so a small buffer is enough.
const streamBufferSize = 8

// EventSource provides per-consumer event subscriptions.
type EventSource interface {
	// Subscribe returns a channel of events and a cancel function that
	// tears the subscription down and closes the channel.
	Subscribe(buffer int, eventTypes ...string) (<-chan *events.Event, func())
}

// StreamHandler serves catalog change snapshots over server-sent events so
// clients can keep a live lesson list without polling.
type StreamHandler struct {
	source EventSource
	logger *slog.Logger
}

// NewStreamHandler creates a new StreamHandler.
func NewStreamHandler(source EventSource, logger *slog.Logger) *StreamHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for StreamHandler")
	}

	return &StreamHandler{
		source: source,
		logger: logger.With(slog.String("component", "stream_handler")),
	}
}

// StreamEvents handles GET /events requests. It subscribes the client to
// lessons.changed and questions.changed snapshots and streams them until the
// client disconnects.
func (h *StreamHandler) StreamEvents(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	flusher, ok := w.(http.Flusher)
	if !ok {
		shared.RespondWithError(w, r, http.StatusInternalServerError,
			"Streaming is not supported")
		return
	}

	ch, cancel := h.source.Subscribe(streamBufferSize,
		events.EventTypeLessonsChanged,
		events.EventTypeQuestionsChanged)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	log.Debug("event stream opened")

	for {
		select {
		case <-r.Context().Done():
			log.Debug("event stream closed by client")
			return
		case event, open := <-ch:
			if !open {
				return
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n",
				event.Type, event.Payload); err != nil {
				log.Debug("event stream write failed", "error", err)
				return
			}
			flusher.Flush()
		}
	}
}
