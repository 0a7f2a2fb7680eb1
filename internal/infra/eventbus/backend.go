package eventbus

import (
	"context"

	"go-attribution/internal/tracking"
)

// BackendName identifies the event bus in a tracking.Sink.
const BackendName = "eventbus"

// PageViewAction is the action page views are published under.
const PageViewAction = "page_view"

// Compile-time interface check
var _ tracking.Backend = (*Backend)(nil)

// Backend publishes tracking events onto the bus for in-process consumers.
type Backend struct {
	bus *EventBus
}

// NewLoader returns a loader that attaches the bus to a sink.
func NewLoader(bus *EventBus) tracking.Loader {
	return tracking.LoaderFunc{
		LoaderName: BackendName,
		Fn: func(context.Context) (tracking.Backend, error) {
			return &Backend{bus: bus}, nil
		},
	}
}

func (b *Backend) RecordEvent(ctx context.Context, e tracking.Event) error {
	return b.bus.Publish(ctx, e)
}

func (b *Backend) RecordPageView(ctx context.Context, url string) error {
	return b.bus.Publish(ctx, tracking.NewEvent(PageViewAction, tracking.CategoryEngagement, tracking.WithLabel(url)))
}
