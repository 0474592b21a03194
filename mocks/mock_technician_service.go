package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"hvacbill/internal/domain"
	"hvacbill/internal/service"
)

// MockTechnicianService is a mock implementation of service.TechnicianService.
type MockTechnicianService struct {
	mock.Mock
}

func (m *MockTechnicianService) Create(ctx context.Context, input service.CreateTechnicianInput) (*domain.Technician, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Technician), args.Error(1)
}

func (m *MockTechnicianService) List(ctx context.Context) ([]*domain.Technician, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Technician), args.Error(1)
}

func (m *MockTechnicianService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Technician, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Technician), args.Error(1)
}

func (m *MockTechnicianService) Update(ctx context.Context, id uuid.UUID, input service.UpdateTechnicianInput) (*domain.Technician, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Technician), args.Error(1)
}

func (m *MockTechnicianService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
