package domain

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Meta carries the store-assigned identity of a record.
type Meta struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *Meta) GetID() uuid.UUID {
	return m.ID
}

func (m *Meta) SetID(id uuid.UUID) {
	m.ID = id
}

func (m *Meta) GetCreatedAt() time.Time {
	return m.CreatedAt
}

func (m *Meta) SetCreatedAt(t time.Time) {
	m.CreatedAt = t
}

func (m *Meta) SetUpdatedAt(t time.Time) {
	m.UpdatedAt = t
}

// Customer is a person or business the company services.
type Customer struct {
	Meta
	Name    string       `json:"name"`
	Email   string       `json:"email"`
	Phone   string       `json:"phone"`
	Address string       `json:"address"`
	Type    CustomerType `json:"type"`
}

// Technician is a field engineer that can be assigned to service orders.
type Technician struct {
	Meta
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// ServiceOrder is a scheduled or completed service visit.
// CustomerName and TechnicianName are copies taken at write time; renaming the
// referenced record does not update them.
type ServiceOrder struct {
	Meta
	CustomerID     *uuid.UUID      `json:"customer_id,omitempty"`
	CustomerName   string          `json:"customer"`
	Phone          string          `json:"phone"`
	Address        string          `json:"address"`
	ServiceType    string          `json:"service"`
	Date           string          `json:"date"`
	TechnicianID   *uuid.UUID      `json:"technician_id,omitempty"`
	TechnicianName string          `json:"technician"`
	Status         ServiceStatus   `json:"status"`
	Value          decimal.Decimal `json:"value"`
	Notes          string          `json:"notes"`
}

// LineItem is a single billed row on an invoice. CGST, SGST and Total are
// derived and already rounded to 2 decimal places.
type LineItem struct {
	Serial      string          `json:"sno"`
	Description string          `json:"name"`
	HSN         string          `json:"hsn"`
	Quantity    decimal.Decimal `json:"units"`
	Unit        QuantityUnit    `json:"quantity_type"`
	Price       decimal.Decimal `json:"price"`
	GSTRate     decimal.Decimal `json:"gst"`
	CGST        decimal.Decimal `json:"cgst"`
	SGST        decimal.Decimal `json:"sgst"`
	Total       decimal.Decimal `json:"total_amount"`
}

// Invoice is the canonical bill record, shared by storage and the renderer.
type Invoice struct {
	Meta
	BillType      string          `json:"bill_type"`
	CustomerID    *uuid.UUID      `json:"customer_id,omitempty"`
	CustomerName  string          `json:"customer"`
	Address       string          `json:"address"`
	City          string          `json:"city"`
	State         string          `json:"state"`
	PostalCode    string          `json:"zip"`
	InvoiceNumber string          `json:"invoice_number"`
	IssueDate     string          `json:"date"`
	Items         []LineItem      `json:"items"`
	Notes         string          `json:"notes"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxTotal      decimal.Decimal `json:"tax_amount"`
	GrandTotal    decimal.Decimal `json:"total"`
	Status        PaymentStatus   `json:"status"`
}

// DateLayout is the layout of every calendar date field.
const DateLayout = "2006-01-02"

// Validate checks the fields an invoice cannot be saved or rendered without.
func (inv *Invoice) Validate() error {
	if inv.BillType == "" {
		return NewValidationError("bill_type", "is required")
	}
	if inv.CustomerName == "" {
		return NewValidationError("customer", "is required")
	}
	if inv.IssueDate == "" {
		return NewValidationError("date", "is required")
	}
	if _, err := time.Parse(DateLayout, inv.IssueDate); err != nil {
		return NewValidationError("date", "must be YYYY-MM-DD")
	}
	if inv.Status != "" && !ValidPaymentStatuses[inv.Status] {
		return NewValidationError("status", "must be one of Pending, Paid, Overdue")
	}
	for i := range inv.Items {
		if err := inv.Items[i].validate(i); err != nil {
			return err
		}
	}
	return nil
}

func (li *LineItem) validate(idx int) error {
	field := func(name string) string { return "items[" + strconv.Itoa(idx) + "]." + name }
	if li.Serial == "" {
		return NewValidationError(field("sno"), "is required")
	}
	if li.Description == "" {
		return NewValidationError(field("name"), "is required")
	}
	if li.HSN == "" {
		return NewValidationError(field("hsn"), "is required")
	}
	if !li.Unit.Valid() {
		return NewValidationError(field("quantity_type"), "must be unit, meter or empty")
	}
	return nil
}
