package testutil

import (
	"context"
	"sync"

	"go-attribution/internal/landing"
	"go-attribution/internal/storage"

	"github.com/stretchr/testify/mock"
)

// MockSubmitter is a testify mock for landing.Submitter.
type MockSubmitter struct {
	mock.Mock
}

func (m *MockSubmitter) Submit(ctx context.Context, sub landing.Submission) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

// SpyStorage wraps a storage.Storage and counts writes.
type SpyStorage struct {
	storage.Storage

	mu     sync.Mutex
	writes int
}

func (s *SpyStorage) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	s.writes++
	s.mu.Unlock()
	return s.Storage.Set(ctx, key, value)
}

func (s *SpyStorage) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	s.writes++
	s.mu.Unlock()
	return s.Storage.Remove(ctx, key)
}

// Writes returns the number of Set and Remove calls.
func (s *SpyStorage) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}
