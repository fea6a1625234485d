package leave

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

// Postgres stores leave rows in hr.leave keyed on (emp_id, leave_type).
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

func (s *Postgres) Create(ctx context.Context, l *models.Leave) error {
	_, err := s.q(ctx).ExecContext(ctx,
		`INSERT INTO hr.leave (emp_id, leave_type, amount) VALUES ($1, $2, $3)`,
		l.EmployeeID, l.Type, l.Amount)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert leave: %w", err)
	}
	return nil
}

func (s *Postgres) Find(ctx context.Context, employeeID int64, leaveType string) (*models.Leave, error) {
	var l models.Leave
	err := s.q(ctx).QueryRowContext(ctx,
		`SELECT emp_id, leave_type, amount FROM hr.leave
		 WHERE emp_id = $1 AND leave_type = $2`,
		employeeID, leaveType,
	).Scan(&l.EmployeeID, &l.Type, &l.Amount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find leave: %w", err)
	}
	return &l, nil
}

func (s *Postgres) List(ctx context.Context) ([]models.Leave, error) {
	return s.list(ctx, `SELECT emp_id, leave_type, amount FROM hr.leave ORDER BY emp_id, leave_type`)
}

func (s *Postgres) ListByEmployee(ctx context.Context, employeeID int64) ([]models.Leave, error) {
	return s.list(ctx,
		`SELECT emp_id, leave_type, amount FROM hr.leave WHERE emp_id = $1 ORDER BY leave_type`,
		employeeID)
}

func (s *Postgres) UpdateAmount(ctx context.Context, employeeID int64, leaveType string, amount int) error {
	res, err := s.q(ctx).ExecContext(ctx,
		`UPDATE hr.leave SET amount = $1 WHERE emp_id = $2 AND leave_type = $3`,
		amount, employeeID, leaveType)
	if err != nil {
		return fmt.Errorf("update leave: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) Delete(ctx context.Context, employeeID int64, leaveType string) error {
	res, err := s.q(ctx).ExecContext(ctx,
		`DELETE FROM hr.leave WHERE emp_id = $1 AND leave_type = $2`,
		employeeID, leaveType)
	if err != nil {
		return fmt.Errorf("delete leave: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) DeleteByEmployee(ctx context.Context, employeeID int64) error {
	_, err := s.q(ctx).ExecContext(ctx, `DELETE FROM hr.leave WHERE emp_id = $1`, employeeID)
	if err != nil {
		return fmt.Errorf("delete leave by employee: %w", err)
	}
	return nil
}

func (s *Postgres) list(ctx context.Context, query string, args ...any) ([]models.Leave, error) {
	rows, err := s.q(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list leave: %w", err)
	}
	defer rows.Close()

	var out []models.Leave
	for rows.Next() {
		var l models.Leave
		if err := rows.Scan(&l.EmployeeID, &l.Type, &l.Amount); err != nil {
			return nil, fmt.Errorf("scan leave: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
