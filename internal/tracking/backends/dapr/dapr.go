// Package dapr is an analytics backend that publishes events through a Dapr pub/sub component.
package dapr

import (
	"context"
	"encoding/json"

	"go-attribution/internal/tracking"

	dapr "github.com/dapr/go-sdk/client"
)

// BackendName identifies the backend in a tracking.Sink.
const BackendName = "dapr"

// Publisher is the minimal slice of the Dapr client used here.
type Publisher interface {
	PublishEvent(ctx context.Context, pubsubName, topicName string, data interface{}, opts ...dapr.PublishEventOption) error
	Close()
}

// Config names the pub/sub component and topic.
type Config struct {
	PubsubName string
	Topic      string
}

// Compile-time interface check
var _ tracking.Backend = (*Backend)(nil)

type Backend struct {
	client Publisher
	cfg    Config
}

// NewBackend wraps an existing client.
func NewBackend(client Publisher, cfg Config) *Backend {
	return &Backend{client: client, cfg: cfg}
}

// NewLoader returns a loader that connects to the sidecar on activation.
// onLoad receives the backend so the caller can close it on shutdown; it may be nil.
func NewLoader(cfg Config, onLoad func(*Backend)) tracking.Loader {
	return newLoader(cfg, func() (Publisher, error) { return dapr.NewClient() }, onLoad)
}

func newLoader(cfg Config, connect func() (Publisher, error), onLoad func(*Backend)) tracking.Loader {
	return tracking.LoaderFunc{
		LoaderName: BackendName,
		Fn: func(context.Context) (tracking.Backend, error) {
			client, err := connect()
			if err != nil {
				return nil, err
			}
			b := NewBackend(client, cfg)
			if onLoad != nil {
				onLoad(b)
			}
			return b, nil
		},
	}
}

func (b *Backend) RecordEvent(ctx context.Context, e tracking.Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return b.client.PublishEvent(ctx, b.cfg.PubsubName, b.cfg.Topic, data,
		dapr.PublishEventWithContentType("application/json"))
}

func (b *Backend) RecordPageView(ctx context.Context, url string) error {
	return b.RecordEvent(ctx, tracking.NewEvent("page_view", tracking.CategoryEngagement, tracking.WithLabel(url)))
}

// Close closes the Dapr client.
func (b *Backend) Close() {
	b.client.Close()
}
