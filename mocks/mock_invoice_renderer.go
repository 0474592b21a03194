package mocks

import (
	"github.com/stretchr/testify/mock"

	"hvacbill/internal/domain"
	"hvacbill/internal/render"
)

// MockInvoiceRenderer is a mock implementation of service.InvoiceRenderer.
type MockInvoiceRenderer struct {
	mock.Mock
}

func (m *MockInvoiceRenderer) Render(inv *domain.Invoice) (*render.Document, error) {
	args := m.Called(inv)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*render.Document), args.Error(1)
}
