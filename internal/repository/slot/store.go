package slot

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"hvacbill/internal/domain"
	"hvacbill/internal/port"
)

type store[T port.Record] struct {
	slots      Slots
	collection string
	now        func() time.Time
}

// NewStore creates a Store that keeps collection as a single slot.
func NewStore[T port.Record](slots Slots, collection string) port.Store[T] {
	return &store[T]{
		slots:      slots,
		collection: collection,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *store[T]) decode(data []byte) ([]T, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var recs []T
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, &domain.StorageError{Op: "decode", Collection: s.collection, Err: err}
	}
	return recs, nil
}

func (s *store[T]) storageErr(op string, err error) error {
	return &domain.StorageError{Op: op, Collection: s.collection, Err: err}
}

// mutate runs fn over the decoded collection. Errors returned by fn or by
// decoding pass through untouched; backend failures become StorageErrors.
func (s *store[T]) mutate(ctx context.Context, op string, fn func([]T) ([]T, error)) error {
	var fnErr error
	err := s.slots.Mutate(ctx, s.collection, func(current []byte) ([]byte, error) {
		fnErr = nil
		recs, err := s.decode(current)
		if err == nil {
			recs, err = fn(recs)
		}
		if err != nil {
			fnErr = err
			return nil, err
		}
		return json.Marshal(recs)
	})
	if fnErr != nil {
		return fnErr
	}
	if err != nil {
		return s.storageErr(op, err)
	}
	return nil
}

func (s *store[T]) Create(ctx context.Context, rec T) error {
	now := s.now()
	rec.SetID(uuid.New())
	rec.SetCreatedAt(now)
	rec.SetUpdatedAt(now)
	return s.mutate(ctx, "create", func(recs []T) ([]T, error) {
		return append(recs, rec), nil
	})
}

func (s *store[T]) List(ctx context.Context) ([]T, error) {
	data, err := s.slots.Load(ctx, s.collection)
	if err != nil {
		return nil, s.storageErr("list", err)
	}
	recs, err := s.decode(data)
	if err != nil {
		return nil, err
	}
	if recs == nil {
		recs = []T{}
	}
	return recs, nil
}

func (s *store[T]) GetByID(ctx context.Context, id uuid.UUID) (T, error) {
	var zero T
	recs, err := s.List(ctx)
	if err != nil {
		return zero, err
	}
	for _, rec := range recs {
		if rec.GetID() == id {
			return rec, nil
		}
	}
	return zero, domain.ErrNotFound
}

func (s *store[T]) Update(ctx context.Context, rec T) error {
	return s.mutate(ctx, "update", func(recs []T) ([]T, error) {
		for i, existing := range recs {
			if existing.GetID() == rec.GetID() {
				rec.SetCreatedAt(existing.GetCreatedAt())
				rec.SetUpdatedAt(s.now())
				recs[i] = rec
				return recs, nil
			}
		}
		return nil, domain.ErrNotFound
	})
}

func (s *store[T]) Delete(ctx context.Context, id uuid.UUID) error {
	return s.mutate(ctx, "delete", func(recs []T) ([]T, error) {
		for i, existing := range recs {
			if existing.GetID() == id {
				return append(recs[:i], recs[i+1:]...), nil
			}
		}
		return nil, domain.ErrNotFound
	})
}
