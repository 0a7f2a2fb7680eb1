package testutil

import (
	"context"

	dapr "github.com/dapr/go-sdk/client"
	"github.com/stretchr/testify/mock"
)

// MockDaprPublisher is a testify mock covering the dapr.Client methods the
// analytics backend calls: PublishEvent and Close.
type MockDaprPublisher struct {
	mock.Mock
}

func (m *MockDaprPublisher) PublishEvent(ctx context.Context, pubsubName, topicName string, data interface{}, opts ...dapr.PublishEventOption) error {
	args := m.Called(ctx, pubsubName, topicName, data)
	return args.Error(0)
}

func (m *MockDaprPublisher) Close() {
	m.Called()
}
