package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"hvacbill/internal/domain"
	"hvacbill/internal/port"
)

// recordRepo keeps every collection in the shared records table as JSONB,
// ordered by an insertion sequence.
type recordRepo[T port.Record] struct {
	db         *sqlx.DB
	collection string
}

// NewRecordRepo creates a PostgreSQL-backed Store for collection.
func NewRecordRepo[T port.Record](db *sqlx.DB, collection string) port.Store[T] {
	return &recordRepo[T]{db: db, collection: collection}
}

func (r *recordRepo[T]) fail(op string, err error) error {
	return &domain.StorageError{Op: op, Collection: r.collection, Err: err}
}

func (r *recordRepo[T]) decode(op string, data []byte) (T, error) {
	var rec T
	if err := json.Unmarshal(data, &rec); err != nil {
		return rec, r.fail(op, err)
	}
	return rec, nil
}

func (r *recordRepo[T]) Create(ctx context.Context, rec T) error {
	now := time.Now().UTC()
	rec.SetID(uuid.New())
	rec.SetCreatedAt(now)
	rec.SetUpdatedAt(now)

	data, err := json.Marshal(rec)
	if err != nil {
		return r.fail("create", err)
	}

	query := `INSERT INTO records (collection, id, data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err = r.db.ExecContext(ctx, query, r.collection, rec.GetID(), data, now, now)
	if err != nil {
		if isDuplicateInvoiceNumber(err) {
			return domain.ErrDuplicateInvoiceNumber
		}
		return r.fail("create", err)
	}
	return nil
}

func (r *recordRepo[T]) List(ctx context.Context) ([]T, error) {
	var rows [][]byte
	err := r.db.SelectContext(ctx, &rows,
		"SELECT data FROM records WHERE collection = $1 ORDER BY seq", r.collection)
	if err != nil {
		return nil, r.fail("list", err)
	}

	recs := make([]T, 0, len(rows))
	for _, data := range rows {
		rec, err := r.decode("list", data)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func (r *recordRepo[T]) GetByID(ctx context.Context, id uuid.UUID) (T, error) {
	var zero T
	var data []byte
	err := r.db.GetContext(ctx, &data,
		"SELECT data FROM records WHERE collection = $1 AND id = $2", r.collection, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return zero, domain.ErrNotFound
		}
		return zero, r.fail("get", err)
	}
	return r.decode("get", data)
}

func (r *recordRepo[T]) Update(ctx context.Context, rec T) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return r.fail("update", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var createdAt time.Time
	err = tx.GetContext(ctx, &createdAt,
		"SELECT created_at FROM records WHERE collection = $1 AND id = $2 FOR UPDATE",
		r.collection, rec.GetID())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return r.fail("update", err)
	}

	now := time.Now().UTC()
	rec.SetCreatedAt(createdAt.UTC())
	rec.SetUpdatedAt(now)
	data, err := json.Marshal(rec)
	if err != nil {
		return r.fail("update", err)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE records SET data = $1, updated_at = $2 WHERE collection = $3 AND id = $4",
		data, now, r.collection, rec.GetID())
	if err != nil {
		if isDuplicateInvoiceNumber(err) {
			return domain.ErrDuplicateInvoiceNumber
		}
		return r.fail("update", err)
	}
	if err := tx.Commit(); err != nil {
		return r.fail("update", err)
	}
	return nil
}

func (r *recordRepo[T]) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM records WHERE collection = $1 AND id = $2", r.collection, id)
	if err != nil {
		return r.fail("delete", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func isDuplicateInvoiceNumber(err error) bool {
	return strings.Contains(err.Error(), "duplicate key") &&
		strings.Contains(err.Error(), "idx_records_invoice_number")
}
