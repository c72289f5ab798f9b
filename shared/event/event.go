package event

//go:generate go run go.uber.org/mock/mockgen -source=./event.go -destination=./mocks/event_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"spacebook/shared/timezone"

	"github.com/google/uuid"
)

// Event is the envelope written to the broker. Key is used for partitioning
// (kafka) and Type doubles as the routing key (rabbitmq).
type Event struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Key        string          `json:"key"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

func New(eventType, key string, payload any) (Event, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}

	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		Key:        key,
		OccurredAt: timezone.Now(),
		Payload:    body,
	}, nil
}

func (e Event) Decode(v any) error {
	if err := json.Unmarshal(e.Payload, v); err != nil {
		return fmt.Errorf("failed to decode %s payload: %w", e.Type, err)
	}

	return nil
}

type Publisher interface {
	Publish(ctx context.Context, events ...Event) error
	Close() error
}

// Handler processes one event. Returning an error asks the driver to redeliver.
type Handler func(ctx context.Context, evt Event) error

type Consumer interface {
	Consume(ctx context.Context, handler Handler) error
	Close() error
}

type noopPublisher struct{}

// NewNoopPublisher drops every event. Used when no broker is configured.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(_ context.Context, _ ...Event) error {
	return nil
}

func (noopPublisher) Close() error {
	return nil
}
