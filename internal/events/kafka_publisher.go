package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"frigo-service/internal/config"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// KafkaEventPublisher implements EventPublisher using Kafka
type KafkaEventPublisher struct {
	producer   sarama.SyncProducer
	logger     *zap.Logger
	topic      string
	maxRetries int
	baseDelay  time.Duration
}

// NewKafkaEventPublisher creates a new Kafka event publisher
func NewKafkaEventPublisher(cfg *config.Config, logger *zap.Logger) (*KafkaEventPublisher, error) {
	producer, err := sarama.NewSyncProducer(cfg.KafkaBrokers, newProducerConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}
	return newKafkaEventPublisher(producer, cfg, logger), nil
}

func newProducerConfig(cfg *config.Config) *sarama.Config {
	config := sarama.NewConfig()
	config.ClientID = cfg.KafkaClientID
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = cfg.KafkaRetries
	config.Producer.Idempotent = true
	config.Net.MaxOpenRequests = 1

	// Parse acks. An idempotent producer requires all replicas to ack.
	switch cfg.KafkaAcks {
	case "0":
		config.Producer.RequiredAcks = sarama.NoResponse
		config.Producer.Idempotent = false
	case "1":
		config.Producer.RequiredAcks = sarama.WaitForLocal
		config.Producer.Idempotent = false
	default:
		config.Producer.RequiredAcks = sarama.WaitForAll
	}
	return config
}

func newKafkaEventPublisher(producer sarama.SyncProducer, cfg *config.Config, logger *zap.Logger) *KafkaEventPublisher {
	maxRetries := cfg.KafkaRetries
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &KafkaEventPublisher{
		producer:   producer,
		logger:     logger,
		topic:      cfg.KafkaTopicRecords,
		maxRetries: maxRetries,
		baseDelay:  100 * time.Millisecond,
	}
}

// Publish publishes an event to Kafka with retries and exponential backoff
func (p *KafkaEventPublisher) Publish(ctx context.Context, event interface{}) error {
	eventType := EventType(event)
	if eventType == "Unknown" {
		return fmt.Errorf("unknown event type: %T", event)
	}

	// Serialize event to JSON
	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(recordID(event)),
		Value: sarama.ByteEncoder(eventJSON),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event-type"), Value: []byte(eventType)},
			{Key: []byte("event-id"), Value: []byte(uuid.New().String())},
			{Key: []byte("timestamp"), Value: []byte(time.Now().UTC().Format(time.RFC3339))},
		},
	}

	for attempt := 0; attempt < p.maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}

		partition, offset, err := p.producer.SendMessage(message)
		if err == nil {
			p.logger.Info("Event published to Kafka",
				zap.String("topic", p.topic),
				zap.Int32("partition", partition),
				zap.Int64("offset", offset),
				zap.String("event-type", eventType),
				zap.Int("attempt", attempt+1),
			)
			return nil
		}

		p.logger.Warn("Failed to publish event to Kafka, retrying",
			zap.String("topic", p.topic),
			zap.Error(err),
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", p.maxRetries),
		)

		// Exponential backoff before retry: 100ms, 200ms, 400ms...
		if attempt < p.maxRetries-1 {
			delay := p.baseDelay * time.Duration(1<<uint(attempt))
			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled during backoff: %w", ctx.Err())
			case <-time.After(delay):
			}
		}
	}

	return fmt.Errorf("failed to publish event to Kafka after %d attempts", p.maxRetries)
}

// Close closes the Kafka producer
func (p *KafkaEventPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

// NewPublisher returns the Kafka publisher when enabled, falling back to the
// in-memory publisher if Kafka is off or the producer cannot be created.
// The returned close function is never nil.
func NewPublisher(cfg *config.Config, logger *zap.Logger) (EventPublisher, func() error) {
	if !cfg.UseKafka {
		logger.Info("Kafka disabled, using in-memory event publisher")
		return NewEventPublisher(logger), func() error { return nil }
	}

	publisher, err := NewKafkaEventPublisher(cfg, logger)
	if err != nil {
		logger.Warn("Failed to initialize Kafka publisher, using in-memory fallback", zap.Error(err))
		return NewEventPublisher(logger), func() error { return nil }
	}

	logger.Info("Kafka event publisher initialized",
		zap.Strings("brokers", cfg.KafkaBrokers),
		zap.String("topic", cfg.KafkaTopicRecords),
	)
	return publisher, publisher.Close
}
