// Package mocks holds testify mocks for the collector's ports.
package mocks

import (
	"context"
	"time"

	"go-attribution/internal/collector/domain"
	"go-attribution/internal/tracking"

	"github.com/stretchr/testify/mock"
)

// MockLandingRepository is a testify mock for usecase.LandingRepository.
type MockLandingRepository struct {
	mock.Mock
}

// NewMockLandingRepository registers expectation checks on t.
func NewMockLandingRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockLandingRepository {
	m := &MockLandingRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockLandingRepository) Record(ctx context.Context, sub domain.Submission, now time.Time) (*domain.Landing, error) {
	args := m.Called(ctx, sub, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Landing), args.Error(1)
}

func (m *MockLandingRepository) FindByName(ctx context.Context, name string) (*domain.Landing, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Landing), args.Error(1)
}

func (m *MockLandingRepository) List(ctx context.Context, limit, offset int) ([]domain.Landing, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Landing), args.Error(1)
}

func (m *MockLandingRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockEventCountRepository is a testify mock for usecase.EventCountRepository.
type MockEventCountRepository struct {
	mock.Mock
}

func NewMockEventCountRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockEventCountRepository {
	m := &MockEventCountRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockEventCountRepository) Increment(ctx context.Context, action, category string, at time.Time) error {
	args := m.Called(ctx, action, category, at)
	return args.Error(0)
}

func (m *MockEventCountRepository) List(ctx context.Context) ([]domain.EventCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EventCount), args.Error(1)
}

// MockDispatcher is a testify mock for usecase.Dispatcher.
type MockDispatcher struct {
	mock.Mock
}

func NewMockDispatcher(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockDispatcher {
	m := &MockDispatcher{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockDispatcher) Dispatch(ctx context.Context, e tracking.Event) {
	m.Called(ctx, e)
}
