package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-attribution/internal/collector/domain"
	"go-attribution/internal/collector/testutil/mocks"
	"go-attribution/internal/collector/usecase"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func validSubmission() domain.Submission {
	return domain.Submission{
		Name:            "newsletter / spring",
		Type:            "email",
		UTM:             map[string]string{"source": "newsletter"},
		AmountOfLanding: 1,
		LandingEvents:   []domain.LandingEvent{{ID: "e1", Time: time.Now()}},
	}
}

func TestLandingService_Record_Valid(t *testing.T) {
	// Setup
	repo := mocks.NewMockLandingRepository(t)
	svc := usecase.NewLandingService(repo, nil, zap.NewNop())
	sub := validSubmission()
	sub.Name = "  newsletter / spring "
	repo.On("Record", mock.Anything, mock.MatchedBy(func(s domain.Submission) bool {
		return s.Name == "newsletter / spring"
	}), mock.AnythingOfType("time.Time")).
		Return(&domain.Landing{ID: 1, Name: "newsletter / spring", AmountOfLanding: 1}, nil)

	// Act
	got, err := svc.Record(context.Background(), sub, domain.Visitor{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)
}

type stubEnricher struct{}

func (stubEnricher) Profile(domain.Visitor) domain.VisitorProfile {
	return domain.VisitorProfile{DeviceType: "Mobile", CountryCode: "DE"}
}

func (stubEnricher) Channel(source, medium string) string {
	return source + ":" + medium
}

func TestLandingService_Record_Enriches(t *testing.T) {
	repo := mocks.NewMockLandingRepository(t)
	svc := usecase.NewLandingService(repo, stubEnricher{}, zap.NewNop())
	sub := validSubmission()
	sub.UTM["medium"] = "email"
	repo.On("Record", mock.Anything, mock.MatchedBy(func(s domain.Submission) bool {
		e := s.LandingEvents[0]
		return s.Channel == "newsletter:email" && e.DeviceType == "Mobile" && e.CountryCode == "DE"
	}), mock.AnythingOfType("time.Time")).
		Return(&domain.Landing{ID: 1}, nil)

	_, err := svc.Record(context.Background(), sub, domain.Visitor{IP: "203.0.113.9", UserAgent: "test"})

	require.NoError(t, err)
}

func TestLandingService_Record_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Submission)
		field  string
	}{
		{"missing name", func(s *domain.Submission) { s.Name = "   " }, "name"},
		{"missing type", func(s *domain.Submission) { s.Type = "" }, "type"},
		{"zero amount", func(s *domain.Submission) { s.AmountOfLanding = 0 }, "amountOfLanding"},
		{"no events", func(s *domain.Submission) { s.LandingEvents = nil }, "landingEvents"},
		{"event without id", func(s *domain.Submission) { s.LandingEvents[0].ID = "" }, "landingEvents"},
		{"event without time", func(s *domain.Submission) { s.LandingEvents[0].Time = time.Time{} }, "landingEvents"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockLandingRepository(t)
			svc := usecase.NewLandingService(repo, nil, zap.NewNop())
			sub := validSubmission()
			tt.mutate(&sub)

			_, err := svc.Record(context.Background(), sub, domain.Visitor{})

			require.ErrorIs(t, err, domain.ErrInvalidSubmission)
			var verrs validation.Errors
			require.True(t, errors.As(err, &verrs))
			assert.Contains(t, verrs, tt.field)
		})
	}
}

func TestLandingService_List_Paging(t *testing.T) {
	tests := []struct {
		name                  string
		page, perPage         int
		wantLimit, wantOffset int
		wantPage, wantPerPage int
	}{
		{"defaults", 0, 0, 20, 0, 1, 20},
		{"third page", 3, 10, 10, 20, 3, 10},
		{"per page too large", 1, 500, 20, 0, 1, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockLandingRepository(t)
			svc := usecase.NewLandingService(repo, nil, zap.NewNop())
			repo.On("List", mock.Anything, tt.wantLimit, tt.wantOffset).Return([]domain.Landing{}, nil)
			repo.On("Count", mock.Anything).Return(int64(45), nil)

			got, err := svc.List(context.Background(), tt.page, tt.perPage)

			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, got.Page)
			assert.Equal(t, tt.wantPerPage, got.PerPage)
			assert.Equal(t, int64(45), got.Total)
		})
	}
}

func TestLandingService_List_RepositoryError(t *testing.T) {
	repo := mocks.NewMockLandingRepository(t)
	svc := usecase.NewLandingService(repo, nil, zap.NewNop())
	repo.On("List", mock.Anything, 20, 0).Return(nil, errors.New("disk I/O error"))

	_, err := svc.List(context.Background(), 1, 20)

	assert.EqualError(t, err, "disk I/O error")
}
