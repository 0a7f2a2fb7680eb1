// Package testutil holds hand-written testify mocks shared across package tests.
package testutil

import (
	"context"
	"sync"

	"go-attribution/internal/tracking"

	"github.com/stretchr/testify/mock"
)

// MockBackend is a testify mock for tracking.Backend.
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) RecordEvent(ctx context.Context, e tracking.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockBackend) RecordPageView(ctx context.Context, url string) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}

// CountingLoader hands out Backend and counts how often it was instantiated.
type CountingLoader struct {
	LoaderName string
	Backend    tracking.Backend
	Err        error

	mu    sync.Mutex
	loads int
}

func (l *CountingLoader) Name() string { return l.LoaderName }

func (l *CountingLoader) Load(context.Context) (tracking.Backend, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loads++
	if l.Err != nil {
		return nil, l.Err
	}
	return l.Backend, nil
}

// Loads returns the number of Load calls so far.
func (l *CountingLoader) Loads() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loads
}

// RecordingDispatcher keeps every dispatched event.
type RecordingDispatcher struct {
	mu     sync.Mutex
	Events []tracking.Event
}

func (d *RecordingDispatcher) Dispatch(_ context.Context, e tracking.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Events = append(d.Events, e)
}
