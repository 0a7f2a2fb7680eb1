package usecase

import (
	"context"
	"fmt"
	"time"

	"go-attribution/internal/collector/domain"
	"go-attribution/internal/consent"
	"go-attribution/internal/tracking"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/zap"
)

// Dispatcher is the server-side event sink.
type Dispatcher interface {
	Dispatch(ctx context.Context, e tracking.Event)
}

// EventRelay forwards first-party events into the server-side sink, but only for
// visitors whose consent cookie says accepted.
type EventRelay struct {
	sink   Dispatcher
	counts EventCountRepository
	logger *zap.Logger
}

// NewEventRelay creates a relay. counts may be nil when no tally is kept.
func NewEventRelay(sink Dispatcher, counts EventCountRepository, logger *zap.Logger) *EventRelay {
	return &EventRelay{sink: sink, counts: counts, logger: logger}
}

// Relay dispatches e when decision permits analytics and reports whether it did.
func (r *EventRelay) Relay(ctx context.Context, decision consent.Decision, e tracking.Event) (bool, error) {
	if err := validation.Validate(e.Action(), validation.Required, validation.Length(1, 100)); err != nil {
		return false, fmt.Errorf("%w: action %w", domain.ErrInvalidEvent, err)
	}
	if err := validation.Validate(e.Category(), validation.Required, validation.Length(1, 100)); err != nil {
		return false, fmt.Errorf("%w: category %w", domain.ErrInvalidEvent, err)
	}

	if decision != consent.Accepted {
		r.logger.Debug("event dropped without consent",
			zap.String("action", e.Action()),
			zap.Stringer("consent", decision),
		)
		return false, nil
	}

	r.sink.Dispatch(ctx, e)
	return true, nil
}

// Count records one delivered event in the tally.
func (r *EventRelay) Count(ctx context.Context, e tracking.Event, at time.Time) error {
	if r.counts == nil {
		return nil
	}
	return r.counts.Increment(ctx, e.Action(), e.Category(), at)
}

// Stats lists the tally.
func (r *EventRelay) Stats(ctx context.Context) ([]domain.EventCount, error) {
	if r.counts == nil {
		return []domain.EventCount{}, nil
	}
	return r.counts.List(ctx)
}
