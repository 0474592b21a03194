package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"hvacbill/internal/domain"
	"hvacbill/internal/port"
)

// CreateTechnicianInput is the DTO for creating a technician.
type CreateTechnicianInput struct {
	Name  string `json:"name" validate:"required,max=200"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone"`
}

// UpdateTechnicianInput is the DTO for updating a technician.
type UpdateTechnicianInput struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=200"`
	Email *string `json:"email" validate:"omitempty,email"`
	Phone *string `json:"phone"`
}

// TechnicianService defines the technician management contract.
type TechnicianService interface {
	Create(ctx context.Context, input CreateTechnicianInput) (*domain.Technician, error)
	List(ctx context.Context) ([]*domain.Technician, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Technician, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateTechnicianInput) (*domain.Technician, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type technicianService struct {
	repo port.Store[*domain.Technician]
}

// NewTechnicianService creates a new TechnicianService implementation.
func NewTechnicianService(repo port.Store[*domain.Technician]) TechnicianService {
	return &technicianService{repo: repo}
}

func (s *technicianService) Create(ctx context.Context, input CreateTechnicianInput) (*domain.Technician, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	tech := &domain.Technician{
		Name:  strings.TrimSpace(input.Name),
		Email: strings.TrimSpace(input.Email),
		Phone: input.Phone,
	}
	if err := s.repo.Create(ctx, tech); err != nil {
		return nil, err
	}
	return tech, nil
}

func (s *technicianService) List(ctx context.Context) ([]*domain.Technician, error) {
	return s.repo.List(ctx)
}

func (s *technicianService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Technician, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *technicianService) Update(ctx context.Context, id uuid.UUID, input UpdateTechnicianInput) (*domain.Technician, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	tech, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		tech.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		tech.Email = strings.TrimSpace(*input.Email)
	}
	if input.Phone != nil {
		tech.Phone = *input.Phone
	}
	if err := s.repo.Update(ctx, tech); err != nil {
		return nil, err
	}
	return tech, nil
}

func (s *technicianService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
