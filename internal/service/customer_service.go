package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"hvacbill/internal/domain"
	"hvacbill/internal/port"
)

// CreateCustomerInput is the DTO for creating a customer.
type CreateCustomerInput struct {
	Name    string              `json:"name" validate:"required,max=200"`
	Email   string              `json:"email" validate:"omitempty,email"`
	Phone   string              `json:"phone"`
	Address string              `json:"address"`
	Type    domain.CustomerType `json:"type" validate:"omitempty,oneof=Residential Commercial Multi-unit"`
}

// UpdateCustomerInput is the DTO for updating a customer. Nil fields are left
// unchanged.
type UpdateCustomerInput struct {
	Name    *string              `json:"name" validate:"omitempty,min=1,max=200"`
	Email   *string              `json:"email" validate:"omitempty,email"`
	Phone   *string              `json:"phone"`
	Address *string              `json:"address"`
	Type    *domain.CustomerType `json:"type" validate:"omitempty,oneof=Residential Commercial Multi-unit"`
}

// CustomerService defines the customer management contract.
type CustomerService interface {
	Create(ctx context.Context, input CreateCustomerInput) (*domain.Customer, error)
	List(ctx context.Context, search string) ([]*domain.Customer, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateCustomerInput) (*domain.Customer, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type customerService struct {
	repo port.Store[*domain.Customer]
}

// NewCustomerService creates a new CustomerService implementation.
func NewCustomerService(repo port.Store[*domain.Customer]) CustomerService {
	return &customerService{repo: repo}
}

func (s *customerService) Create(ctx context.Context, input CreateCustomerInput) (*domain.Customer, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	customer := &domain.Customer{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(input.Email),
		Phone:   input.Phone,
		Address: input.Address,
		Type:    input.Type,
	}
	if customer.Type == "" {
		customer.Type = domain.CustomerTypeResidential
	}
	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// List returns every customer, narrowed to those whose name, email or phone
// contains search when it is non-empty.
func (s *customerService) List(ctx context.Context, search string) ([]*domain.Customer, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return customers, nil
	}
	out := make([]*domain.Customer, 0, len(customers))
	for _, c := range customers {
		if containsFold(c.Name, search) || containsFold(c.Email, search) || strings.Contains(c.Phone, search) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *customerService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *customerService) Update(ctx context.Context, id uuid.UUID, input UpdateCustomerInput) (*domain.Customer, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	customer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		customer.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		customer.Email = strings.TrimSpace(*input.Email)
	}
	if input.Phone != nil {
		customer.Phone = *input.Phone
	}
	if input.Address != nil {
		customer.Address = *input.Address
	}
	if input.Type != nil {
		customer.Type = *input.Type
	}

	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *customerService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// containsFold reports whether s contains the already lower-cased needle.
func containsFold(s, needle string) bool {
	return strings.Contains(strings.ToLower(s), needle)
}
