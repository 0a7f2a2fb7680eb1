package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"go-attribution/internal/collector/domain"

	"go.uber.org/zap"
)

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// Enricher derives server-side details for a landing.
type Enricher interface {
	Profile(v domain.Visitor) domain.VisitorProfile
	Channel(source, medium string) string
}

// LandingService aggregates landing submissions.
type LandingService struct {
	repo     LandingRepository
	enricher Enricher
	logger   *zap.Logger
	now      func() time.Time
}

// NewLandingService creates a new landing service. enricher may be nil, in
// which case landings are stored as submitted.
func NewLandingService(repo LandingRepository, enricher Enricher, logger *zap.Logger) *LandingService {
	return &LandingService{
		repo:     repo,
		enricher: enricher,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// LandingListResult is one page of landings.
type LandingListResult struct {
	Landings   []domain.Landing `json:"landings"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PerPage    int              `json:"per_page"`
	TotalPages int              `json:"total_pages"`
}

// Record validates sub and folds it into its aggregate. Validation failures wrap
// both domain.ErrInvalidSubmission and the validation.Errors describing them.
func (s *LandingService) Record(ctx context.Context, sub domain.Submission, visitor domain.Visitor) (*domain.Landing, error) {
	sub.Name = strings.TrimSpace(sub.Name)
	sub.Type = strings.TrimSpace(sub.Type)

	if err := sub.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidSubmission, err)
	}

	if s.enricher != nil {
		sub = s.enrich(sub, visitor)
	}

	landing, err := s.repo.Record(ctx, sub, s.now())
	if err != nil {
		return nil, err
	}

	s.logger.Info("landing recorded",
		zap.String("name", landing.Name),
		zap.Int("amount_of_landing", landing.AmountOfLanding),
	)
	return landing, nil
}

func (s *LandingService) enrich(sub domain.Submission, visitor domain.Visitor) domain.Submission {
	profile := s.enricher.Profile(visitor)
	sub.Channel = s.enricher.Channel(sub.UTM["source"], sub.UTM["medium"])

	events := make([]domain.LandingEvent, len(sub.LandingEvents))
	for i, e := range sub.LandingEvents {
		e.DeviceType = profile.DeviceType
		e.CountryCode = profile.CountryCode
		events[i] = e
	}
	sub.LandingEvents = events
	return sub
}

// List returns one page of landings. Out-of-range paging falls back to defaults.
func (s *LandingService) List(ctx context.Context, page, perPage int) (*LandingListResult, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > MaxPerPage {
		perPage = DefaultPerPage
	}

	landings, err := s.repo.List(ctx, perPage, (page-1)*perPage)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &LandingListResult{
		Landings:   landings,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: int(math.Ceil(float64(total) / float64(perPage))),
	}, nil
}

// Get returns the landing named name.
func (s *LandingService) Get(ctx context.Context, name string) (*domain.Landing, error) {
	return s.repo.FindByName(ctx, name)
}
