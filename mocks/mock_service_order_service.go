package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"hvacbill/internal/domain"
	"hvacbill/internal/service"
)

// MockServiceOrderService is a mock implementation of service.ServiceOrderService.
type MockServiceOrderService struct {
	mock.Mock
}

func (m *MockServiceOrderService) Create(ctx context.Context, input service.CreateServiceOrderInput) (*domain.ServiceOrder, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServiceOrder), args.Error(1)
}

func (m *MockServiceOrderService) List(ctx context.Context, filter service.ServiceOrderFilter) ([]*domain.ServiceOrder, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ServiceOrder), args.Error(1)
}

func (m *MockServiceOrderService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ServiceOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServiceOrder), args.Error(1)
}

func (m *MockServiceOrderService) Update(ctx context.Context, id uuid.UUID, input service.UpdateServiceOrderInput) (*domain.ServiceOrder, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServiceOrder), args.Error(1)
}

func (m *MockServiceOrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ServiceStatus) (*domain.ServiceOrder, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServiceOrder), args.Error(1)
}

func (m *MockServiceOrderService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
