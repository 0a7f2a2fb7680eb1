package eventbus

import (
	"context"
	"encoding/json"
	"time"

	"go-attribution/internal/tracking"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

const (
	// EventsTopic is the topic every relayed analytics event is published on.
	EventsTopic = "analytics.events"
)

// EventBus wraps Watermill pub/sub for analytics events.
type EventBus struct {
	pubsub    *gochannel.GoChannel
	publisher message.Publisher
	logger    watermill.LoggerAdapter
	now       func() time.Time
}

// NewEventBus creates a new event bus using Go channels.
func NewEventBus(logger watermill.LoggerAdapter) *EventBus {
	pubsub := gochannel.NewGoChannel(
		gochannel.Config{
			OutputChannelBuffer: 100,
			Persistent:          false,
		},
		logger,
	)

	return &EventBus{
		pubsub:    pubsub,
		publisher: pubsub,
		logger:    logger,
		now:       time.Now,
	}
}

// Publisher returns the Watermill publisher.
func (b *EventBus) Publisher() message.Publisher {
	return b.publisher
}

// Subscriber returns the Watermill subscriber.
func (b *EventBus) Subscriber() message.Subscriber {
	return b.pubsub
}

// Publish publishes an analytics event to the event bus. Delivery does not
// depend on ctx: gochannel hands subscribers a copy without it.
func (b *EventBus) Publish(_ context.Context, e tracking.Event) error {
	msg, err := EventToMessage(e, b.now().UTC())
	if err != nil {
		return err
	}
	return b.publisher.Publish(EventsTopic, msg)
}

// Close closes the event bus.
func (b *EventBus) Close() error {
	return b.pubsub.Close()
}

// EventEnvelope wraps an analytics event for serialization.
type EventEnvelope struct {
	EventID    string          `json:"event_id"`
	Action     string          `json:"action"`
	Category   string          `json:"category"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

// Event decodes the wrapped analytics event.
func (e *EventEnvelope) Event() (tracking.Event, error) {
	var evt tracking.Event
	err := json.Unmarshal(e.Payload, &evt)
	return evt, err
}

// EventToMessage converts an analytics event to a Watermill message.
func EventToMessage(e tracking.Event, occurredAt time.Time) (*message.Message, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}

	envelope := EventEnvelope{
		EventID:    uuid.NewString(),
		Action:     e.Action(),
		Category:   e.Category(),
		OccurredAt: occurredAt,
		Payload:    payload,
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		return nil, err
	}

	msg := message.NewMessage(envelope.EventID, data)
	msg.Metadata.Set("action", e.Action())
	msg.Metadata.Set("category", e.Category())

	return msg, nil
}

// MessageToEnvelope extracts the event envelope from a Watermill message.
func MessageToEnvelope(msg *message.Message) (*EventEnvelope, error) {
	var envelope EventEnvelope
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		return nil, err
	}
	return &envelope, nil
}
