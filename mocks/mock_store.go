package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"hvacbill/internal/port"
)

// MockStore is a mock implementation of port.Store.
type MockStore[T port.Record] struct {
	mock.Mock
}

func (m *MockStore[T]) Create(ctx context.Context, rec T) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockStore[T]) List(ctx context.Context) ([]T, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

func (m *MockStore[T]) GetByID(ctx context.Context, id uuid.UUID) (T, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		var zero T
		return zero, args.Error(1)
	}
	return args.Get(0).(T), args.Error(1)
}

func (m *MockStore[T]) Update(ctx context.Context, rec T) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockStore[T]) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSequence is a mock implementation of port.Sequence.
type MockSequence struct {
	mock.Mock
}

func (m *MockSequence) Next(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}

// MockPinger is a mock implementation of port.Pinger.
type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
