package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-attribution/internal/collector/domain"
	"go-attribution/internal/collector/repository/sqlite/sqlc"
	"go-attribution/internal/collector/usecase"
)

// LandingRepository implements the usecase.LandingRepository interface using sqlc
type LandingRepository struct {
	db      *sql.DB
	queries *sqlc.Queries
}

// NewLandingRepository creates a new SQLite-backed landing repository
func NewLandingRepository(db *sql.DB) *LandingRepository {
	return &LandingRepository{
		db:      db,
		queries: sqlc.New(db),
	}
}

// Ensure LandingRepository implements usecase.LandingRepository at compile time
var _ usecase.LandingRepository = (*LandingRepository)(nil)

// Record folds sub into its aggregate in one transaction.
func (r *LandingRepository) Record(ctx context.Context, sub domain.Submission, now time.Time) (*domain.Landing, error) {
	utm, err := json.Marshal(orEmpty(sub.UTM))
	if err != nil {
		return nil, fmt.Errorf("encode utm: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()
	q := r.queries.WithTx(tx)

	res, err := q.CreateLanding(ctx, sqlc.CreateLandingParams{
		Name:           sub.Name,
		Type:           sub.Type,
		Utm:            string(utm),
		Channel:        sub.Channel,
		LandingPageUrl: sub.LandingPageURL,
		CreatedAt:      now.UnixMilli(),
		UpdatedAt:      now.UnixMilli(),
	})
	if err != nil {
		return nil, fmt.Errorf("insert landing: %w", err)
	}
	created, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}

	id, err := q.GetLandingID(ctx, sub.Name)
	if err != nil {
		return nil, fmt.Errorf("find landing: %w", err)
	}

	var added int64
	for _, e := range sub.LandingEvents {
		res, err := q.AddLandingEvent(ctx, sqlc.AddLandingEventParams{
			ID:          e.ID,
			LandingID:   id,
			OccurredAt:  e.Time.UTC().UnixMilli(),
			DeviceType:  e.DeviceType,
			CountryCode: e.CountryCode,
		})
		if err != nil {
			return nil, fmt.Errorf("insert landing event: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return nil, err
		}
		added += n
	}

	// A new landing without new events would hold a zero count.
	if added == 0 && created > 0 {
		return nil, domain.ErrEventsClaimed
	}

	if added > 0 {
		if err := q.IncrementLanding(ctx, sqlc.IncrementLandingParams{
			AmountOfLanding: int64(sub.AmountOfLanding),
			UpdatedAt:       now.UnixMilli(),
			ID:              id,
		}); err != nil {
			return nil, fmt.Errorf("increment landing: %w", err)
		}
	}

	row, err := q.GetLanding(ctx, id)
	if err != nil {
		return nil, err
	}
	landing, err := withEvents(ctx, q, row)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return landing, nil
}

// FindByName retrieves a landing and its events by name
func (r *LandingRepository) FindByName(ctx context.Context, name string) (*domain.Landing, error) {
	row, err := r.queries.GetLandingByName(ctx, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrLandingNotFound
		}
		return nil, err
	}
	return withEvents(ctx, r.queries, row)
}

// List returns landings most recently updated first, with their events.
func (r *LandingRepository) List(ctx context.Context, limit, offset int) ([]domain.Landing, error) {
	rows, err := r.queries.ListLandings(ctx, sqlc.ListLandingsParams{
		Limit:  int64(limit),
		Offset: int64(offset),
	})
	if err != nil {
		return nil, err
	}

	// Events are fetched after the cursor is closed; the pool holds one connection.
	landings := make([]domain.Landing, 0, len(rows))
	for _, row := range rows {
		l, err := withEvents(ctx, r.queries, row)
		if err != nil {
			return nil, err
		}
		landings = append(landings, *l)
	}
	return landings, nil
}

func (r *LandingRepository) Count(ctx context.Context) (int64, error) {
	return r.queries.CountLandings(ctx)
}

func withEvents(ctx context.Context, q *sqlc.Queries, row sqlc.Landing) (*domain.Landing, error) {
	l, err := toLanding(row)
	if err != nil {
		return nil, err
	}

	events, err := q.ListLandingEvents(ctx, row.ID)
	if err != nil {
		return nil, err
	}
	l.LandingEvents = make([]domain.LandingEvent, 0, len(events))
	for _, e := range events {
		l.LandingEvents = append(l.LandingEvents, domain.LandingEvent{
			ID:          e.ID,
			Time:        time.UnixMilli(e.OccurredAt).UTC(),
			DeviceType:  e.DeviceType,
			CountryCode: e.CountryCode,
		})
	}
	return l, nil
}

func toLanding(row sqlc.Landing) (*domain.Landing, error) {
	l := &domain.Landing{
		ID:              row.ID,
		Name:            row.Name,
		Type:            row.Type,
		Channel:         row.Channel,
		AmountOfLanding: int(row.AmountOfLanding),
		LandingPageURL:  row.LandingPageUrl,
		CreatedAt:       time.UnixMilli(row.CreatedAt).UTC(),
		UpdatedAt:       time.UnixMilli(row.UpdatedAt).UTC(),
	}
	if err := json.Unmarshal([]byte(row.Utm), &l.UTM); err != nil {
		return nil, fmt.Errorf("decode utm: %w", err)
	}
	l.UTM = orEmpty(l.UTM)
	return l, nil
}

func orEmpty(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}
