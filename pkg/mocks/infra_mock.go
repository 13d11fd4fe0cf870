package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jarvishq/jarvis/pkg/eventbus"
	"github.com/jarvishq/jarvis/pkg/history"
)

// MockHistoryStore is a mock implementation of history.Store.
type MockHistoryStore struct {
	mock.Mock
}

func (m *MockHistoryStore) Append(ctx context.Context, entry history.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockHistoryStore) List(ctx context.Context, limit int) ([]history.Entry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]history.Entry), args.Error(1)
}

func (m *MockHistoryStore) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockHistoryStore) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of eventbus.EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, key string, event eventbus.Event) error {
	args := m.Called(ctx, key, event)
	return args.Error(0)
}
