package department

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

// Postgres stores departments in hr.department. The department_name column is
// citext, so uniqueness and lookups are case-insensitive at the store level.
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

func (s *Postgres) Create(ctx context.Context, d *models.Department) error {
	err := s.q(ctx).QueryRowContext(ctx,
		`INSERT INTO hr.department (department_name, date_established)
		 VALUES ($1, $2)
		 RETURNING dep_id`,
		d.Name, d.Established,
	).Scan(&d.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert department: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, id int64) (*models.Department, error) {
	return s.scanOne(s.q(ctx).QueryRowContext(ctx,
		`SELECT dep_id, department_name, date_established
		 FROM hr.department WHERE dep_id = $1`, id))
}

func (s *Postgres) FindByName(ctx context.Context, name string) (*models.Department, error) {
	return s.scanOne(s.q(ctx).QueryRowContext(ctx,
		`SELECT dep_id, department_name, date_established
		 FROM hr.department WHERE department_name = $1`, name))
}

func (s *Postgres) List(ctx context.Context) ([]models.Department, error) {
	rows, err := s.q(ctx).QueryContext(ctx,
		`SELECT dep_id, department_name, date_established
		 FROM hr.department ORDER BY dep_id`)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	defer rows.Close()

	var out []models.Department
	for rows.Next() {
		var d models.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Established); err != nil {
			return nil, fmt.Errorf("scan department: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Postgres) Delete(ctx context.Context, id int64) error {
	res, err := s.q(ctx).ExecContext(ctx, `DELETE FROM hr.department WHERE dep_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete department: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) scanOne(row *sql.Row) (*models.Department, error) {
	var d models.Department
	if err := row.Scan(&d.ID, &d.Name, &d.Established); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan department: %w", err)
	}
	return &d, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
