package employee

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

const employeeColumns = `emp_id, first_name, last_name, position, dep_id, enrollment_date, salary, manager_id`

// Postgres stores employees in hr.employee. Name columns are citext.
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

func (s *Postgres) Create(ctx context.Context, e *models.Employee) error {
	err := s.q(ctx).QueryRowContext(ctx,
		`INSERT INTO hr.employee (first_name, last_name, position, dep_id, enrollment_date, salary, manager_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING emp_id`,
		e.FirstName, e.LastName, e.Position, e.DepartmentID, e.EnrollmentDate, e.Salary, e.ManagerID,
	).Scan(&e.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, id int64) (*models.Employee, error) {
	return scanOne(s.q(ctx).QueryRowContext(ctx,
		`SELECT `+employeeColumns+` FROM hr.employee WHERE emp_id = $1`, id))
}

func (s *Postgres) FindByName(ctx context.Context, firstName, lastName string) (*models.Employee, error) {
	return scanOne(s.q(ctx).QueryRowContext(ctx,
		`SELECT `+employeeColumns+` FROM hr.employee
		 WHERE first_name = $1 AND last_name = $2`, firstName, lastName))
}

func (s *Postgres) List(ctx context.Context) ([]models.Employee, error) {
	return s.list(ctx, `SELECT `+employeeColumns+` FROM hr.employee ORDER BY emp_id`)
}

func (s *Postgres) ListByDepartment(ctx context.Context, departmentID int64) ([]models.Employee, error) {
	return s.list(ctx,
		`SELECT `+employeeColumns+` FROM hr.employee WHERE dep_id = $1 ORDER BY emp_id`,
		departmentID)
}

func (s *Postgres) CountByDepartment(ctx context.Context, departmentID int64) (int, error) {
	var n int
	err := s.q(ctx).QueryRowContext(ctx,
		`SELECT count(*) FROM hr.employee WHERE dep_id = $1`, departmentID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count employees: %w", err)
	}
	return n, nil
}

func (s *Postgres) Update(ctx context.Context, e *models.Employee) error {
	res, err := s.q(ctx).ExecContext(ctx,
		`UPDATE hr.employee
		 SET position = $1, dep_id = $2, salary = $3, manager_id = $4
		 WHERE emp_id = $5`,
		e.Position, e.DepartmentID, e.Salary, e.ManagerID, e.ID)
	if err != nil {
		return fmt.Errorf("update employee: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) Delete(ctx context.Context, id int64) error {
	res, err := s.q(ctx).ExecContext(ctx, `DELETE FROM hr.employee WHERE emp_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) ClearManager(ctx context.Context, managerID int64) error {
	_, err := s.q(ctx).ExecContext(ctx,
		`UPDATE hr.employee SET manager_id = NULL WHERE manager_id = $1`, managerID)
	if err != nil {
		return fmt.Errorf("clear manager: %w", err)
	}
	return nil
}

func (s *Postgres) list(ctx context.Context, query string, args ...any) ([]models.Employee, error) {
	rows, err := s.q(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var out []models.Employee
	for rows.Next() {
		var e models.Employee
		if err := rows.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Position,
			&e.DepartmentID, &e.EnrollmentDate, &e.Salary, &e.ManagerID); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanOne(row *sql.Row) (*models.Employee, error) {
	var e models.Employee
	err := row.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Position,
		&e.DepartmentID, &e.EnrollmentDate, &e.Salary, &e.ManagerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan employee: %w", err)
	}
	return &e, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
