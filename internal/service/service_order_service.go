package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"hvacbill/internal/billing"
	"hvacbill/internal/domain"
	"hvacbill/internal/port"
)

// CreateServiceOrderInput is the DTO for scheduling a service visit. Either
// CustomerID or CustomerName must be given; an ID wins and fills the name,
// phone and address from the customer record.
type CreateServiceOrderInput struct {
	CustomerID     *uuid.UUID           `json:"customer_id"`
	CustomerName   string               `json:"customer"`
	Phone          string               `json:"phone"`
	Address        string               `json:"address"`
	ServiceType    string               `json:"service" validate:"required"`
	Date           string               `json:"date" validate:"required,datetime=2006-01-02"`
	TechnicianID   *uuid.UUID           `json:"technician_id"`
	TechnicianName string               `json:"technician"`
	Status         domain.ServiceStatus `json:"status"`
	Value          Amount               `json:"value"`
	Notes          string               `json:"notes"`
}

// UpdateServiceOrderInput is the DTO for editing a service order.
type UpdateServiceOrderInput struct {
	CustomerID     *uuid.UUID            `json:"customer_id"`
	CustomerName   *string               `json:"customer"`
	Phone          *string               `json:"phone"`
	Address        *string               `json:"address"`
	ServiceType    *string               `json:"service" validate:"omitempty,min=1"`
	Date           *string               `json:"date" validate:"omitempty,datetime=2006-01-02"`
	TechnicianID   *uuid.UUID            `json:"technician_id"`
	TechnicianName *string               `json:"technician"`
	Status         *domain.ServiceStatus `json:"status"`
	Value          *Amount               `json:"value"`
	Notes          *string               `json:"notes"`
}

// ServiceOrderFilter narrows ServiceOrderService.List.
type ServiceOrderFilter struct {
	Status domain.ServiceStatus
	Search string
}

// ServiceOrderService defines the service order contract.
type ServiceOrderService interface {
	Create(ctx context.Context, input CreateServiceOrderInput) (*domain.ServiceOrder, error)
	List(ctx context.Context, filter ServiceOrderFilter) ([]*domain.ServiceOrder, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ServiceOrder, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateServiceOrderInput) (*domain.ServiceOrder, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ServiceStatus) (*domain.ServiceOrder, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type serviceOrderService struct {
	repo        port.Store[*domain.ServiceOrder]
	customers   port.Store[*domain.Customer]
	technicians port.Store[*domain.Technician]
}

// NewServiceOrderService creates a new ServiceOrderService implementation.
func NewServiceOrderService(
	repo port.Store[*domain.ServiceOrder],
	customers port.Store[*domain.Customer],
	technicians port.Store[*domain.Technician],
) ServiceOrderService {
	return &serviceOrderService{repo: repo, customers: customers, technicians: technicians}
}

func (s *serviceOrderService) Create(ctx context.Context, input CreateServiceOrderInput) (*domain.ServiceOrder, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	value, err := billing.ParseAmount("value", string(input.Value))
	if err != nil {
		return nil, err
	}
	order := &domain.ServiceOrder{
		CustomerName:   strings.TrimSpace(input.CustomerName),
		Phone:          input.Phone,
		Address:        input.Address,
		ServiceType:    input.ServiceType,
		Date:           input.Date,
		TechnicianName: strings.TrimSpace(input.TechnicianName),
		Status:         input.Status,
		Value:          value,
		Notes:          input.Notes,
	}
	if order.Status == "" {
		order.Status = domain.ServiceStatusScheduled
	}
	if err := s.resolve(ctx, order, input.CustomerID, input.TechnicianID); err != nil {
		return nil, err
	}
	if err := validateServiceOrder(order); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *serviceOrderService) List(ctx context.Context, filter ServiceOrderFilter) ([]*domain.ServiceOrder, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	if filter.Status == "" && search == "" {
		return orders, nil
	}
	out := make([]*domain.ServiceOrder, 0, len(orders))
	for _, o := range orders {
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		if search != "" && !containsFold(o.CustomerName, search) && !containsFold(o.ServiceType, search) &&
			!containsFold(o.TechnicianName, search) {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (s *serviceOrderService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ServiceOrder, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *serviceOrderService) Update(ctx context.Context, id uuid.UUID, input UpdateServiceOrderInput) (*domain.ServiceOrder, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.CustomerName != nil {
		order.CustomerName = strings.TrimSpace(*input.CustomerName)
		order.CustomerID = nil
	}
	if input.Phone != nil {
		order.Phone = *input.Phone
	}
	if input.Address != nil {
		order.Address = *input.Address
	}
	if input.ServiceType != nil {
		order.ServiceType = *input.ServiceType
	}
	if input.Date != nil {
		order.Date = *input.Date
	}
	if input.TechnicianName != nil {
		order.TechnicianName = strings.TrimSpace(*input.TechnicianName)
		order.TechnicianID = nil
	}
	if input.Status != nil {
		order.Status = *input.Status
	}
	if input.Value != nil {
		v, err := billing.ParseAmount("value", string(*input.Value))
		if err != nil {
			return nil, err
		}
		order.Value = v
	}
	if input.Notes != nil {
		order.Notes = *input.Notes
	}
	if err := s.resolve(ctx, order, input.CustomerID, input.TechnicianID); err != nil {
		return nil, err
	}
	if err := validateServiceOrder(order); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *serviceOrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ServiceStatus) (*domain.ServiceOrder, error) {
	if !domain.ValidServiceStatuses[status] {
		return nil, domain.NewValidationError("status", "must be one of Scheduled, In Progress, Completed, Cancelled")
	}
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Status = status
	if err := s.repo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *serviceOrderService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// resolve copies the names of referenced customer and technician records
// onto order. The copies are not refreshed when those records change later.
func (s *serviceOrderService) resolve(ctx context.Context, order *domain.ServiceOrder, customerID, technicianID *uuid.UUID) error {
	if customerID != nil {
		c, err := s.customers.GetByID(ctx, *customerID)
		if err != nil {
			return referenceErr("customer_id", err)
		}
		order.CustomerID = &c.ID
		order.CustomerName = c.Name
		if order.Phone == "" {
			order.Phone = c.Phone
		}
		if order.Address == "" {
			order.Address = c.Address
		}
	}
	if technicianID != nil {
		t, err := s.technicians.GetByID(ctx, *technicianID)
		if err != nil {
			return referenceErr("technician_id", err)
		}
		order.TechnicianID = &t.ID
		order.TechnicianName = t.Name
	}
	return nil
}

func validateServiceOrder(order *domain.ServiceOrder) error {
	if order.CustomerName == "" {
		return domain.NewValidationError("customer", "is required")
	}
	if !domain.ValidServiceStatuses[order.Status] {
		return domain.NewValidationError("status", "must be one of Scheduled, In Progress, Completed, Cancelled")
	}
	return nil
}

// referenceErr turns a missing referenced record into a validation failure
// on field; other lookup errors pass through.
func referenceErr(field string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NewValidationError(field, "does not exist")
	}
	return err
}
