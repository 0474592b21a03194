package port

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Collection names shared by every store backend.
const (
	CollectionCustomers   = "customers"
	CollectionTechnicians = "technicians"
	CollectionServices    = "services"
	CollectionInvoices    = "invoices"
)

// Record is implemented by pointers to domain records embedding domain.Meta.
type Record interface {
	GetID() uuid.UUID
	SetID(id uuid.UUID)
	GetCreatedAt() time.Time
	SetCreatedAt(t time.Time)
	SetUpdatedAt(t time.Time)
}

// Store persists one collection of records in insertion order. It performs
// no filtering or uniqueness checks beyond the identifier.
type Store[T Record] interface {
	// Create assigns a new ID and timestamps to rec and appends it.
	Create(ctx context.Context, rec T) error
	List(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id uuid.UUID) (T, error)
	// Update replaces the stored record with the same ID, keeping its
	// creation time.
	Update(ctx context.Context, rec T) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Sequence hands out monotonically increasing numbers per name. Each call
// persists the new value before returning it.
type Sequence interface {
	Next(ctx context.Context, name string) (int64, error)
}

// Pinger reports whether a backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
