package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"hvacbill/internal/domain"
	"hvacbill/internal/port"
)

type counterRepo struct {
	db *sqlx.DB
}

// NewCounterRepo creates a Sequence backed by the counters table.
func NewCounterRepo(db *sqlx.DB) port.Sequence {
	return &counterRepo{db: db}
}

func (r *counterRepo) Next(ctx context.Context, name string) (int64, error) {
	query := `INSERT INTO counters (name, value) VALUES ($1, 1)
		ON CONFLICT (name) DO UPDATE SET value = counters.value + 1
		RETURNING value`

	var value int64
	if err := r.db.GetContext(ctx, &value, query, name); err != nil {
		return 0, &domain.StorageError{Op: "next", Collection: "counters", Err: err}
	}
	return value, nil
}
