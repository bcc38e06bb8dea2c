package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/cypherlabdev/match-digest-bot/internal/models"
	"github.com/cypherlabdev/match-digest-bot/internal/service"
)

// messageWriter is the subset of *kafka.Writer used by the publisher
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publishes every dispatched message as a digest event
type KafkaPublisher struct {
	writer messageWriter
	topic  string
	chatID int64
	now    func() time.Time
	logger zerolog.Logger
}

// KafkaPublisherConfig holds Kafka publisher configuration
type KafkaPublisherConfig struct {
	Brokers      []string      // e.g., ["localhost:9092"]
	Topic        string        // e.g., "match_digests"
	ChatID       int64         // Telegram chat the digest was addressed to
	WriteTimeout time.Duration // e.g., 10 * time.Second
}

// NewKafkaPublisher creates a new Kafka publisher
func NewKafkaPublisher(config KafkaPublisherConfig, logger zerolog.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(config.Brokers...),
		Topic:        config.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchSize:    1, // One event per run, don't wait for a batch
		WriteTimeout: config.WriteTimeout,
	}

	return &KafkaPublisher{
		writer: writer,
		topic:  config.Topic,
		chatID: config.ChatID,
		now:    time.Now,
		logger: logger.With().Str("component", "kafka_publisher").Logger(),
	}
}

// SendMessage implements service.Notifier by publishing a digest event
func (p *KafkaPublisher) SendMessage(ctx context.Context, text string) error {
	event := models.DigestEvent{
		ID:     uuid.New(),
		ChatID: service.ChatIDFromContext(ctx, p.chatID),
		Text:   text,
		SentAt: p.now().UTC(),
	}

	msg, err := p.buildMessage(event)
	if err != nil {
		return err
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish digest event: %w", err)
	}

	p.logger.Info().
		Str("event_id", event.ID.String()).
		Str("topic", p.topic).
		Msg("published digest event")

	return nil
}

// buildMessage encodes an event keyed by its id
func (p *KafkaPublisher) buildMessage(event models.DigestEvent) (kafka.Message, error) {
	value, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal digest event: %w", err)
	}

	return kafka.Message{
		Key:   []byte(event.ID.String()),
		Value: value,
		Time:  event.SentAt,
	}, nil
}

// Close closes the Kafka writer
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
