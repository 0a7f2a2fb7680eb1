package consent

import (
	"context"
	"errors"

	"go-attribution/internal/storage"

	"go.uber.org/zap"
)

// Store reads and writes the decision. Storage failures never reach the caller:
// reads degrade to Unset and writes become no-ops.
type Store struct {
	storage  storage.Storage
	notifier Notifier
	logger   *zap.Logger
}

// NewStore creates a consent store. notifier may be nil.
func NewStore(s storage.Storage, notifier Notifier, logger *zap.Logger) *Store {
	return &Store{
		storage:  s,
		notifier: notifier,
		logger:   logger,
	}
}

// Get returns the stored decision, or Unset when nothing usable is stored.
func (s *Store) Get(ctx context.Context) Decision {
	value, err := s.storage.Get(ctx, Key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Debug("consent read failed, treating as unset", zap.Error(err))
		}
		return Unset
	}
	return ParseDecision(value)
}

// Set records an explicit choice and raises the in-tab notification.
func (s *Store) Set(ctx context.Context, d Decision) error {
	if d != Accepted && d != Declined {
		return ErrInvalidDecision
	}

	if err := s.storage.Set(ctx, Key, d.String()); err != nil {
		s.logger.Debug("consent write failed",
			zap.Stringer("decision", d),
			zap.Error(err),
		)
	}
	s.notify()
	return nil
}

// Clear removes the decision, returning the visitor to Unset.
func (s *Store) Clear(ctx context.Context) {
	if err := s.storage.Remove(ctx, Key); err != nil {
		s.logger.Debug("consent clear failed", zap.Error(err))
	}
	s.notify()
}

// AnalyticsPermitted reports whether the stored decision is Accepted.
func (s *Store) AnalyticsPermitted(ctx context.Context) bool {
	return s.Get(ctx) == Accepted
}

func (s *Store) notify() {
	if s.notifier != nil {
		s.notifier.Notify()
	}
}
