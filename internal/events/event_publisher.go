package events

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// EventPublisher defines the interface for publishing inventory change events
type EventPublisher interface {
	Publish(ctx context.Context, event interface{}) error
}

// Inventory change events
type RecordSavedEvent struct {
	RecordID       string    `json:"record_id"`
	ProductName    string    `json:"product_name"`
	Quantity       int       `json:"quantity"`
	ExpirationDate string    `json:"expiration_date,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

type RecordUpdatedEvent struct {
	RecordID       string    `json:"record_id"`
	ProductName    string    `json:"product_name"`
	Description    string    `json:"description"`
	ExpirationDate string    `json:"expiration_date,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

type QuantityUpdatedEvent struct {
	RecordID   string    `json:"record_id"`
	Quantity   int       `json:"quantity"`
	OccurredAt time.Time `json:"occurred_at"`
}

// RecordDeletedEvent is published for explicit deletes and for quantity
// updates that removed the record.
type RecordDeletedEvent struct {
	RecordID   string    `json:"record_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// InMemoryEventPublisher keeps events in process. Used when Kafka is
// disabled or unreachable.
type InMemoryEventPublisher struct {
	logger *zap.Logger
	mu     sync.Mutex
	events []interface{}
}

func NewEventPublisher(logger *zap.Logger) *InMemoryEventPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InMemoryEventPublisher{
		logger: logger,
		events: make([]interface{}, 0),
	}
}

func (p *InMemoryEventPublisher) Publish(ctx context.Context, event interface{}) error {
	p.mu.Lock()
	p.events = append(p.events, event)
	p.mu.Unlock()

	p.logger.Debug("Event published (in-memory)",
		zap.String("event-type", EventType(event)),
		zap.Any("event", event),
	)
	return nil
}

// Events returns a copy of everything published so far
func (p *InMemoryEventPublisher) Events() []interface{} {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]interface{}, len(p.events))
	copy(out, p.events)
	return out
}

// EventType returns the event type as string
func EventType(event interface{}) string {
	switch event.(type) {
	case RecordSavedEvent:
		return "RecordSaved"
	case RecordUpdatedEvent:
		return "RecordUpdated"
	case QuantityUpdatedEvent:
		return "QuantityUpdated"
	case RecordDeletedEvent:
		return "RecordDeleted"
	default:
		return "Unknown"
	}
}

// recordID returns the record the event is about, used as partition key
func recordID(event interface{}) string {
	switch e := event.(type) {
	case RecordSavedEvent:
		return e.RecordID
	case RecordUpdatedEvent:
		return e.RecordID
	case QuantityUpdatedEvent:
		return e.RecordID
	case RecordDeletedEvent:
		return e.RecordID
	}
	return ""
}
