// Package consumer holds event bus handlers owned by the collector.
package consumer

import (
	"context"
	"fmt"

	"go-attribution/internal/collector/usecase"
	"go-attribution/internal/infra/eventbus"
	"go-attribution/internal/tracking"
)

// EventCounter tallies every event published on the bus.
type EventCounter struct {
	relay *usecase.EventRelay
}

// Compile-time interface check
var _ eventbus.EventHandler = (*EventCounter)(nil)

func NewEventCounter(relay *usecase.EventRelay) *EventCounter {
	return &EventCounter{relay: relay}
}

func (h *EventCounter) HandlerName() string { return "collector.event_counter" }

// Action subscribes to every action.
func (h *EventCounter) Action() string { return "" }

func (h *EventCounter) Handle(ctx context.Context, envelope *eventbus.EventEnvelope) error {
	var e tracking.Event
	if len(envelope.Payload) > 0 {
		decoded, err := envelope.Event()
		if err != nil {
			return fmt.Errorf("decode event %s: %w", envelope.EventID, err)
		}
		e = decoded
	} else {
		e = tracking.NewEvent(envelope.Action, envelope.Category)
	}
	return h.relay.Count(ctx, e, envelope.OccurredAt)
}
