package sqlite

import (
	"context"
	"database/sql"
	"time"

	"go-attribution/internal/collector/domain"
	"go-attribution/internal/collector/repository/sqlite/sqlc"
	"go-attribution/internal/collector/usecase"
)

// EventCountRepository implements usecase.EventCountRepository on SQLite.
type EventCountRepository struct {
	queries *sqlc.Queries
}

func NewEventCountRepository(db *sql.DB) *EventCountRepository {
	return &EventCountRepository{queries: sqlc.New(db)}
}

var _ usecase.EventCountRepository = (*EventCountRepository)(nil)

func (r *EventCountRepository) Increment(ctx context.Context, action, category string, at time.Time) error {
	return r.queries.IncrementEventCount(ctx, sqlc.IncrementEventCountParams{
		Action:     action,
		Category:   category,
		LastSeenAt: at.UTC().UnixMilli(),
	})
}

// List orders by count, highest first.
func (r *EventCountRepository) List(ctx context.Context) ([]domain.EventCount, error) {
	rows, err := r.queries.ListEventCounts(ctx)
	if err != nil {
		return nil, err
	}

	counts := make([]domain.EventCount, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, domain.EventCount{
			Action:     row.Action,
			Category:   row.Category,
			Count:      row.Count,
			LastSeenAt: time.UnixMilli(row.LastSeenAt).UTC(),
		})
	}
	return counts, nil
}
