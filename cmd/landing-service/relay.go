package main

import (
	"context"
	"fmt"
	"sync"

	"go-attribution/internal/config"
	"go-attribution/internal/consent"
	"go-attribution/internal/infra/eventbus"
	redisstore "go-attribution/internal/storage/redis"
	"go-attribution/internal/tracking"
	daprbackend "go-attribution/internal/tracking/backends/dapr"
	kafkabackend "go-attribution/internal/tracking/backends/kafka"
	"go-attribution/internal/tracking/backends/logging"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// relaySink owns the server-side sink and everything its backends opened.
type relaySink struct {
	sink *tracking.Sink

	mu      sync.Mutex
	closers []func()
}

func (r *relaySink) onClose(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closers = append(r.closers, fn)
}

// Close releases resources in reverse order of acquisition.
func (r *relaySink) Close() {
	r.mu.Lock()
	closers := r.closers
	r.closers = nil
	r.mu.Unlock()

	for i := len(closers) - 1; i >= 0; i-- {
		closers[i]()
	}
}

// newRelaySink registers the configured backends. Without Redis they are activated
// immediately. With Redis, a consent gate over the shared namespace decides: every
// replica activates once the fleet-wide decision is accepted.
func newRelaySink(ctx context.Context, cfg config.Config, bus *eventbus.EventBus, logger *zap.Logger) (*relaySink, error) {
	r := &relaySink{sink: tracking.NewSink(logger)}

	r.sink.Register(logging.NewLoader(logger), eventbus.NewLoader(bus))

	if len(cfg.Kafka.Brokers) > 0 {
		r.sink.Register(kafkabackend.NewLoader(
			kafkabackend.Config{Brokers: cfg.Kafka.Brokers, Topic: cfg.Kafka.Topic},
			func(b *kafkabackend.Backend) {
				r.onClose(func() {
					if err := b.Close(); err != nil {
						logger.Warn("kafka writer close failed", zap.Error(err))
					}
				})
			},
		))
	}

	if cfg.Dapr.Enabled {
		r.sink.Register(daprbackend.NewLoader(
			daprbackend.Config{PubsubName: cfg.Dapr.Pubsub, Topic: cfg.Dapr.Topic},
			func(b *daprbackend.Backend) { r.onClose(b.Close) },
		))
	}

	if cfg.Redis.Addr == "" {
		r.sink.Activate(ctx)
		return r, nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis: %w", err)
	}
	r.onClose(func() { rdb.Close() })

	shared := redisstore.NewStore(rdb, redisstore.Options{Namespace: cfg.Redis.Namespace}, logger)
	notifier := consent.NewLocalNotifier()
	decisions := consent.NewStore(shared, notifier, logger)
	gate := consent.NewGate(decisions, shared, notifier, r.sink, logger)
	gate.Start(ctx)
	r.onClose(gate.Stop)

	if raw := cfg.Redis.RelayConsent; raw != "" {
		if err := decisions.Set(ctx, consent.ParseDecision(raw)); err != nil {
			r.Close()
			return nil, fmt.Errorf("RELAY_CONSENT %q: %w", raw, err)
		}
	}

	logger.Info("relay switch attached",
		zap.String("redis_addr", cfg.Redis.Addr),
		zap.Bool("permitted", gate.Permitted()),
	)
	return r, nil
}
