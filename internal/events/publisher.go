// Package events publishes message lifecycle events to Kafka so
// downstream consumers (notification fanout, analytics) can react to
// traffic without the API waiting on them.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"messagely/internal/models"
)

// Event type discriminators carried in every payload.
const (
	TypeMessageSent = "message.sent"
	TypeMessageRead = "message.read"
)

// Writer is the subset of kafka.Writer the publisher uses.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher emits message lifecycle events. Publishing is
// fire-and-forget from the caller's perspective: errors are returned
// for logging but must never fail the originating request.
type Publisher struct {
	writer Writer
}

// NewPublisher creates a publisher backed by a real Kafka writer.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// NewPublisherWithWriter creates a publisher with a custom writer.
func NewPublisherWithWriter(w Writer) *Publisher {
	return &Publisher{writer: w}
}

// MessageSentEvent is emitted when a message is created.
type MessageSentEvent struct {
	Type         string    `json:"type"`
	MessageID    string    `json:"message_id"`
	FromUsername string    `json:"from_username"`
	ToUsername   string    `json:"to_username"`
	SentAt       time.Time `json:"sent_at"`
}

// MessageReadEvent is emitted when the recipient marks a message read.
type MessageReadEvent struct {
	Type       string    `json:"type"`
	MessageID  string    `json:"message_id"`
	ToUsername string    `json:"to_username"`
	ReadAt     time.Time `json:"read_at"`
}

// MessageSent publishes a message.sent event keyed by recipient, so all
// events for one inbox land on the same partition in order.
func (p *Publisher) MessageSent(ctx context.Context, msg *models.MessageDB) error {
	payload, err := json.Marshal(MessageSentEvent{
		Type:         TypeMessageSent,
		MessageID:    msg.MessageID.String(),
		FromUsername: msg.FromUsername,
		ToUsername:   msg.ToUsername,
		SentAt:       msg.SentAt,
	})
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.ToUsername),
		Value: payload,
	})
}

// MessageRead publishes a message.read event keyed by recipient.
func (p *Publisher) MessageRead(ctx context.Context, msg *models.MessageDB) error {
	event := MessageReadEvent{
		Type:       TypeMessageRead,
		MessageID:  msg.MessageID.String(),
		ToUsername: msg.ToUsername,
	}
	if msg.ReadAt != nil {
		event.ReadAt = *msg.ReadAt
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.ToUsername),
		Value: payload,
	})
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
