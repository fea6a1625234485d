package performance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"minehub/internal/hr/models"
	"minehub/pkg/platform/sentinel"
	txcontext "minehub/pkg/platform/tx"
)

// Postgres stores performance rows in hr.performance keyed on
// (emp_id, performance_type). The rating column is nullable.
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

func (s *Postgres) Create(ctx context.Context, p *models.Performance) error {
	_, err := s.q(ctx).ExecContext(ctx,
		`INSERT INTO hr.performance (emp_id, performance_type, rating) VALUES ($1, $2, $3)`,
		p.EmployeeID, p.Type, nullableInt(p.Rating))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert performance: %w", err)
	}
	return nil
}

func (s *Postgres) Find(ctx context.Context, employeeID int64, perfType string) (*models.Performance, error) {
	var (
		p      models.Performance
		rating sql.NullInt64
	)
	err := s.q(ctx).QueryRowContext(ctx,
		`SELECT emp_id, performance_type, rating FROM hr.performance
		 WHERE emp_id = $1 AND performance_type = $2`,
		employeeID, perfType,
	).Scan(&p.EmployeeID, &p.Type, &rating)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find performance: %w", err)
	}
	if rating.Valid {
		r := int(rating.Int64)
		p.Rating = &r
	}
	return &p, nil
}

func (s *Postgres) List(ctx context.Context) ([]models.Performance, error) {
	return s.list(ctx,
		`SELECT emp_id, performance_type, rating FROM hr.performance ORDER BY emp_id, performance_type`)
}

func (s *Postgres) ListByEmployee(ctx context.Context, employeeID int64) ([]models.Performance, error) {
	return s.list(ctx,
		`SELECT emp_id, performance_type, rating FROM hr.performance
		 WHERE emp_id = $1 ORDER BY performance_type`,
		employeeID)
}

func (s *Postgres) UpdateRating(ctx context.Context, employeeID int64, perfType string, rating int) error {
	res, err := s.q(ctx).ExecContext(ctx,
		`UPDATE hr.performance SET rating = $1 WHERE emp_id = $2 AND performance_type = $3`,
		rating, employeeID, perfType)
	if err != nil {
		return fmt.Errorf("update performance: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) Delete(ctx context.Context, employeeID int64, perfType string) error {
	res, err := s.q(ctx).ExecContext(ctx,
		`DELETE FROM hr.performance WHERE emp_id = $1 AND performance_type = $2`,
		employeeID, perfType)
	if err != nil {
		return fmt.Errorf("delete performance: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) DeleteByEmployee(ctx context.Context, employeeID int64) error {
	_, err := s.q(ctx).ExecContext(ctx, `DELETE FROM hr.performance WHERE emp_id = $1`, employeeID)
	if err != nil {
		return fmt.Errorf("delete performance by employee: %w", err)
	}
	return nil
}

func (s *Postgres) list(ctx context.Context, query string, args ...any) ([]models.Performance, error) {
	rows, err := s.q(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list performance: %w", err)
	}
	defer rows.Close()

	var out []models.Performance
	for rows.Next() {
		var (
			p      models.Performance
			rating sql.NullInt64
		)
		if err := rows.Scan(&p.EmployeeID, &p.Type, &rating); err != nil {
			return nil, fmt.Errorf("scan performance: %w", err)
		}
		if rating.Valid {
			r := int(rating.Int64)
			p.Rating = &r
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}
