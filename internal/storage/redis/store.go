// Package redis backs storage.Storage with Redis so several processes acting for the
// same visitor profile share consent and attribution state. Changes are announced on a
// pub/sub channel, which is how other contexts learn about them.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go-attribution/internal/storage"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	defaultNamespace = "attribution"
	defaultChannel   = "storage:changes"
)

// Options configures a Store.
type Options struct {
	// Namespace prefixes every key, typically one namespace per visitor profile.
	Namespace string
	// Channel is the pub/sub channel change notifications travel on.
	Channel string
}

// Compile-time interface checks
var (
	_ storage.Storage = (*Store)(nil)
	_ storage.Watcher = (*Store)(nil)
)

// Store implements storage.Storage and storage.Watcher on top of a Redis client.
type Store struct {
	rdb       *redis.Client
	namespace string
	channel   string
	origin    string
	logger    *zap.Logger
}

// changeMessage is the payload published for every write.
type changeMessage struct {
	Origin    string `json:"origin"`
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
}

// NewStore creates a Redis-backed store. Each Store is its own browsing context:
// its Watch callbacks skip changes it published itself.
func NewStore(rdb *redis.Client, opts Options, logger *zap.Logger) *Store {
	return &Store{
		rdb:       rdb,
		namespace: firstNonEmpty(opts.Namespace, defaultNamespace),
		channel:   firstNonEmpty(opts.Channel, defaultChannel),
		origin:    uuid.NewString(),
		logger:    logger,
	}
}

func (s *Store) key(k string) string {
	return s.namespace + ":" + k
}

// Get reads a key. A missing key is storage.ErrNotFound.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	val, err := s.rdb.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", storage.ErrNotFound
		}
		return "", fmt.Errorf("redis get %s: %w", key, err)
	}
	return val, nil
}

// Set writes a key without expiry and announces the change.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.rdb.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	s.publish(ctx, key)
	return nil
}

// Remove deletes a key and announces the change if something was deleted.
func (s *Store) Remove(ctx context.Context, key string) error {
	n, err := s.rdb.Del(ctx, s.key(key)).Result()
	if err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	if n > 0 {
		s.publish(ctx, key)
	}
	return nil
}

// publish is best-effort: the write already succeeded.
func (s *Store) publish(ctx context.Context, key string) {
	payload, err := json.Marshal(changeMessage{Origin: s.origin, Namespace: s.namespace, Key: key})
	if err != nil {
		return
	}
	if err := s.rdb.Publish(ctx, s.channel, payload).Err(); err != nil {
		s.logger.Warn("failed to publish storage change",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

// Watch subscribes to changes published by other Stores in the same namespace.
// Callbacks run on the subscription goroutine. The returned cancel closes the subscription.
func (s *Store) Watch(fn func(key string)) func() {
	ctx, cancel := context.WithCancel(context.Background())
	sub := s.rdb.Subscribe(ctx, s.channel)

	// Wait for the subscription to be confirmed so no change published after Watch returns is lost.
	if _, err := sub.Receive(ctx); err != nil {
		s.logger.Warn("failed to subscribe to storage changes",
			zap.String("channel", s.channel),
			zap.Error(err),
		)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range sub.Channel() {
			var change changeMessage
			if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
				s.logger.Debug("ignoring malformed storage change", zap.Error(err))
				continue
			}
			if change.Origin == s.origin || change.Namespace != s.namespace {
				continue
			}
			fn(change.Key)
		}
	}()

	return func() {
		cancel()
		_ = sub.Close()
		<-done
	}
}

func firstNonEmpty(s, def string) string {
	if strings.TrimSpace(s) != "" {
		return s
	}
	return def
}
