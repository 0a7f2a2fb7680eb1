package usecase

import (
	"context"
	"time"

	"go-attribution/internal/collector/domain"
)

// LandingRepository persists landing aggregates.
type LandingRepository interface {
	// Record folds sub into the landing named sub.Name, creating it on first sight.
	// A submission whose events are all known already changes nothing; if its
	// landing does not exist yet, it fails with domain.ErrEventsClaimed.
	Record(ctx context.Context, sub domain.Submission, now time.Time) (*domain.Landing, error)
	FindByName(ctx context.Context, name string) (*domain.Landing, error)
	List(ctx context.Context, limit, offset int) ([]domain.Landing, error)
	Count(ctx context.Context) (int64, error)
}

// EventCountRepository tallies relayed events.
type EventCountRepository interface {
	Increment(ctx context.Context, action, category string, at time.Time) error
	List(ctx context.Context) ([]domain.EventCount, error)
}
