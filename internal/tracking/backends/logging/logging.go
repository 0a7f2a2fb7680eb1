// Package logging is an analytics backend that writes each event as a structured log line.
package logging

import (
	"context"

	"go-attribution/internal/tracking"

	"go.uber.org/zap"
)

// BackendName identifies the backend in a tracking.Sink.
const BackendName = "log"

// Compile-time interface check
var _ tracking.Backend = (*Backend)(nil)

type Backend struct {
	logger *zap.Logger
}

// NewLoader returns a loader for a log backend writing to logger.
func NewLoader(logger *zap.Logger) tracking.Loader {
	return tracking.LoaderFunc{
		LoaderName: BackendName,
		Fn: func(context.Context) (tracking.Backend, error) {
			return &Backend{logger: logger.Named("analytics")}, nil
		},
	}
}

func (b *Backend) RecordEvent(_ context.Context, e tracking.Event) error {
	fields := []zap.Field{
		zap.String("action", e.Action()),
		zap.String("category", e.Category()),
	}
	if label, ok := e.Label(); ok {
		fields = append(fields, zap.String("label", label))
	}
	if value, ok := e.Value(); ok {
		fields = append(fields, zap.Float64("value", value))
	}
	b.logger.Info("analytics event", fields...)
	return nil
}

func (b *Backend) RecordPageView(_ context.Context, url string) error {
	b.logger.Info("analytics page view", zap.String("url", url))
	return nil
}
