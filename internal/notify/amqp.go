package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/streadway/amqp"

	"github.com/kmazurek/teachme-api/internal/domain"
)

// routingKeyNewLesson is the routing key under which new-lesson
// notifications are published on the topic exchange.
const routingKeyNewLesson = "lesson.new"

// AMQPDispatcher publishes new-lesson notifications as JSON messages on a
// RabbitMQ topic exchange. Consumers (a push gateway, a bot, an email
// worker) bind to the routing key; this service does not care who listens.
type AMQPDispatcher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	logger   *slog.Logger

	ensureOnce sync.Once
	ensureErr  error
}

// NewAMQPDispatcher connects to the broker at amqpURL. The exchange is not
// declared until EnsureChannel runs.
func NewAMQPDispatcher(amqpURL, exchange string, logger *slog.Logger) (*AMQPDispatcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to broker: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	return &AMQPDispatcher{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		logger:   logger.With(slog.String("component", "amqp_dispatcher")),
	}, nil
}

// Ensure AMQPDispatcher implements Dispatcher
var _ Dispatcher = (*AMQPDispatcher)(nil)

// EnsureChannel declares the durable topic exchange. Safe to call any
// number of times; the declaration runs once per process.
func (d *AMQPDispatcher) EnsureChannel(ctx context.Context) error {
	d.ensureOnce.Do(func() {
		d.ensureErr = d.channel.ExchangeDeclare(
			d.exchange,
			"topic",
			true,  // durable
			false, // auto-delete
			false, // internal
			false, // no-wait
			nil,
		)
		if d.ensureErr == nil {
			d.logger.Info("notification exchange declared",
				slog.String("exchange", d.exchange))
		}
	})
	return d.ensureErr
}

// NotifyNewLesson publishes the notification message. No retry, no
// delivery guarantee.
func (d *AMQPDispatcher) NotifyNewLesson(ctx context.Context, lesson *domain.Lesson) error {
	body, err := json.Marshal(map[string]interface{}{
		"type": "new_lesson",
		"payload": map[string]interface{}{
			"lesson_id": lesson.ID,
			"title":     lesson.Title,
			"message":   "A new lesson was added! Check it out in the app.",
		},
	})
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	err = d.channel.Publish(
		d.exchange,
		routingKeyNewLesson,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}

	d.logger.Info("new lesson notification published",
		slog.Int64("lesson_id", lesson.ID),
		slog.String("title", lesson.Title))
	return nil
}

// Close releases the channel and connection.
func (d *AMQPDispatcher) Close() {
	if d.channel != nil {
		_ = d.channel.Close()
	}
	if d.conn != nil {
		_ = d.conn.Close()
	}
}
