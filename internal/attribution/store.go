package attribution

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go-attribution/internal/storage"

	"go.uber.org/zap"
)

// StorageKey is where the current record is kept.
const StorageKey = "utm-attribution"

// Policy decides whether a new capture replaces a stored record.
type Policy int

const (
	// LastTouch replaces any stored record with each capturing view.
	LastTouch Policy = iota
	// FirstTouch keeps the first non-empty record and ignores later captures.
	FirstTouch
)

func (p Policy) String() string {
	if p == FirstTouch {
		return "first-touch"
	}
	return "last-touch"
}

// Store persists the current attribution record.
type Store struct {
	storage storage.Storage
	logger  *zap.Logger
}

// NewStore creates an attribution store.
func NewStore(s storage.Storage, logger *zap.Logger) *Store {
	return &Store{storage: s, logger: logger}
}

// Persist replaces any stored record.
func (s *Store) Persist(ctx context.Context, r Record) error {
	if r == nil {
		r = Record{}
	}
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode attribution: %w", err)
	}
	if err := s.storage.Set(ctx, StorageKey, string(data)); err != nil {
		return fmt.Errorf("persist attribution: %w", err)
	}
	return nil
}

// Load returns the stored record. ok is false when nothing is stored, storage is
// unavailable or the stored value cannot be decoded.
func (s *Store) Load(ctx context.Context) (Record, bool) {
	raw, err := s.storage.Get(ctx, StorageKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Debug("attribution read failed", zap.Error(err))
		}
		return nil, false
	}

	var r Record
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		s.logger.Debug("discarding undecodable attribution record", zap.Error(err))
		return nil, false
	}
	return r.Known(), true
}

// Apply persists r according to policy and reports whether it was written.
// Persist failures are logged and reported as not written.
func (s *Store) Apply(ctx context.Context, policy Policy, r Record) bool {
	if policy == FirstTouch {
		if existing, ok := s.Load(ctx); ok && !existing.Empty() {
			return false
		}
	}
	if err := s.Persist(ctx, r); err != nil {
		s.logger.Debug("attribution not persisted", zap.Error(err))
		return false
	}
	return true
}
