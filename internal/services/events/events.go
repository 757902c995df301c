package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MyelinBots/knightrun-go/config"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

const (
	TypeUserRegistered = "user.registered"
	TypeStatUpdated    = "stat.updated"
)

type Event struct {
	ID         string                 `json:"id"`
	Type       string                 `json:"type"`
	UserID     string                 `json:"user_id"`
	OccurredAt time.Time              `json:"occurred_at"`
	Data       map[string]interface{} `json:"data,omitempty"`
}

// NewEvent stamps a fresh id and the current time.
func NewEvent(eventType, userID string, data map[string]interface{}) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		UserID:     userID,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NewPublisher returns a kafka publisher, or a no-op one when no brokers are configured.
func NewPublisher(cfg config.KafkaConfig, log zerolog.Logger) Publisher {
	if len(cfg.Brokers) == 0 {
		log.Info().Msg("kafka brokers not configured, domain events disabled")
		return NopPublisher{}
	}
	return NewKafkaPublisher(NewKafkaWriter(cfg, log))
}

/*
KAFKA
*/

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer messageWriter
}

func NewKafkaWriter(cfg config.KafkaConfig, log zerolog.Logger) *kafka.Writer {
	errLog := log.With().Str("component", "kafka").Logger()
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
		Async:                  true,
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			errLog.Error().Msgf(msg, args...)
		}),
	}
}

func NewKafkaPublisher(writer messageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("events: marshal %s: %w", event.Type, err)
	}

	msg := kafka.Message{
		Key:   []byte(event.UserID),
		Value: body,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("events: publish %s: %w", event.Type, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

/*
NOP
*/

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

func (NopPublisher) Close() error { return nil }
