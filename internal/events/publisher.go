// Package events publishes domain events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const TypeCompletionLogged = "completion.logged"

// CompletionLogged is emitted after a completion row is committed.
type CompletionLogged struct {
	Type         string    `json:"type"`
	CompletionID uuid.UUID `json:"completion_id"`
	UserID       uuid.UUID `json:"user_id"`
	WorkoutID    uuid.UUID `json:"workout_id"`
	CompletedAt  time.Time `json:"completed_at"`
}

type Publisher interface {
	PublishCompletion(ctx context.Context, event CompletionLogged) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes events keyed by user id so that one user's events keep
// their order within a partition.
type KafkaPublisher struct {
	writer messageWriter
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{writer: &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Compression:  kafka.Snappy,
		BatchTimeout: 50 * time.Millisecond,
	}}
}

func (p *KafkaPublisher) PublishCompletion(ctx context.Context, event CompletionLogged) error {
	if event.Type == "" {
		event.Type = TypeCompletionLogged
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode %s: %w", event.Type, err)
	}
	msg := kafka.Message{
		Key:   []byte(event.UserID.String()),
		Value: payload,
		Time:  event.CompletedAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher drops events. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) PublishCompletion(context.Context, CompletionLogged) error { return nil }
func (NopPublisher) Close() error                                              { return nil }
