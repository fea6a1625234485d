package resource

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"minehub/internal/ops/models"
	"minehub/pkg/platform/sentinel"
	txcontext "minehub/pkg/platform/tx"
)

// Postgres stores resources in operations.resource keyed on the citext type
// column.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Postgres) q(ctx context.Context) querier {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *Postgres) Create(ctx context.Context, r *models.Resource) error {
	_, err := s.q(ctx).ExecContext(ctx,
		`INSERT INTO operations.resource (type, value, metric) VALUES ($1, $2, $3)`,
		r.Type, r.Value, r.Metric)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert resource: %w", err)
	}
	return nil
}

func (s *Postgres) Find(ctx context.Context, resourceType string) (*models.Resource, error) {
	var r models.Resource
	err := s.q(ctx).QueryRowContext(ctx,
		`SELECT type, value, metric FROM operations.resource WHERE type = $1`,
		resourceType,
	).Scan(&r.Type, &r.Value, &r.Metric)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find resource: %w", err)
	}
	return &r, nil
}

func (s *Postgres) List(ctx context.Context) ([]models.Resource, error) {
	rows, err := s.q(ctx).QueryContext(ctx,
		`SELECT type, value, metric FROM operations.resource ORDER BY type`)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	defer rows.Close()

	var out []models.Resource
	for rows.Next() {
		var r models.Resource
		if err := rows.Scan(&r.Type, &r.Value, &r.Metric); err != nil {
			return nil, fmt.Errorf("scan resource: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Postgres) Delete(ctx context.Context, resourceType string) error {
	res, err := s.q(ctx).ExecContext(ctx,
		`DELETE FROM operations.resource WHERE type = $1`, resourceType)
	if err != nil {
		return fmt.Errorf("delete resource: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
