package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"hvacbill/internal/port"
)

// MockInvoiceArchive is a mock implementation of port.InvoiceArchive.
type MockInvoiceArchive struct {
	mock.Mock
}

func (m *MockInvoiceArchive) Put(ctx context.Context, obj port.ArchiveObject) error {
	args := m.Called(ctx, obj)
	return args.Error(0)
}

func (m *MockInvoiceArchive) URL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, key, ttl)
	return args.String(0), args.Error(1)
}

func (m *MockInvoiceArchive) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
