// Package kafka is an analytics backend that produces each event to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-attribution/internal/tracking"

	"github.com/segmentio/kafka-go"
)

// BackendName identifies the backend in a tracking.Sink.
const BackendName = "kafka"

// Config selects the cluster and topic.
type Config struct {
	Brokers []string
	Topic   string
}

// MessageWriter is the part of *kafka.Writer the backend uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Compile-time interface checks
var (
	_ tracking.Backend = (*Backend)(nil)
	_ MessageWriter    = (*kafka.Writer)(nil)
)

// Backend writes one message per event, keyed by action.
type Backend struct {
	writer MessageWriter
}

// NewBackend wraps an existing writer.
func NewBackend(w MessageWriter) *Backend {
	return &Backend{writer: w}
}

// NewWriter builds an asynchronous writer so producing never blocks dispatch.
func NewWriter(cfg Config) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        true,
	}
}

// NewLoader returns a loader that creates the writer only on activation. The
// writer is also returned through onLoad so the caller can close it on shutdown.
func NewLoader(cfg Config, onLoad func(*Backend)) tracking.Loader {
	return tracking.LoaderFunc{
		LoaderName: BackendName,
		Fn: func(context.Context) (tracking.Backend, error) {
			if len(cfg.Brokers) == 0 || cfg.Topic == "" {
				return nil, errors.New("kafka: brokers and topic are required")
			}
			b := NewBackend(NewWriter(cfg))
			if onLoad != nil {
				onLoad(b)
			}
			return b, nil
		},
	}
}

func (b *Backend) RecordEvent(ctx context.Context, e tracking.Event) error {
	value, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return b.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.Action()),
		Value: value,
		Headers: []kafka.Header{
			{Key: "category", Value: []byte(e.Category())},
		},
	})
}

func (b *Backend) RecordPageView(ctx context.Context, url string) error {
	return b.RecordEvent(ctx, tracking.NewEvent("page_view", tracking.CategoryEngagement, tracking.WithLabel(url)))
}

// Close flushes and closes the writer.
func (b *Backend) Close() error {
	return b.writer.Close()
}
