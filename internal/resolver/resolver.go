// Package resolver maps human-supplied names to records. Absence is a
// result, not an error: every lookup returns a found flag and reserves the
// error return for store failures.
package resolver

import (
	"context"
	"errors"
	"strings"

	hrmodels "minehub/internal/hr/models"
	opsmodels "minehub/internal/ops/models"
	"minehub/pkg/platform/sentinel"
)

type EmployeeFinder interface {
	FindByName(ctx context.Context, firstName, lastName string) (*hrmodels.Employee, error)
}

type DepartmentFinder interface {
	FindByName(ctx context.Context, name string) (*hrmodels.Department, error)
}

type MineFinder interface {
	FindByName(ctx context.Context, name string) (*opsmodels.Mine, error)
}

type LeaveFinder interface {
	Find(ctx context.Context, employeeID int64, leaveType string) (*hrmodels.Leave, error)
}

type PerformanceFinder interface {
	Find(ctx context.Context, employeeID int64, perfType string) (*hrmodels.Performance, error)
}

// Resolver bundles the name-based lookups services need before mutating.
type Resolver struct {
	employees   EmployeeFinder
	departments DepartmentFinder
	mines       MineFinder
	leave       LeaveFinder
	performance PerformanceFinder
}

func New(employees EmployeeFinder, departments DepartmentFinder, mines MineFinder, leave LeaveFinder, performance PerformanceFinder) *Resolver {
	return &Resolver{
		employees:   employees,
		departments: departments,
		mines:       mines,
		leave:       leave,
		performance: performance,
	}
}

// EmployeeByFullName splits name on a single space. Anything that does not
// split into exactly two non-empty tokens is unresolved, not malformed.
func (r *Resolver) EmployeeByFullName(ctx context.Context, name string) (*hrmodels.Employee, bool, error) {
	parts := strings.Split(name, " ")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, false, nil
	}
	return r.EmployeeByParts(ctx, parts[0], parts[1])
}

// EmployeeByParts looks up an employee by exact (first, last) pair.
func (r *Resolver) EmployeeByParts(ctx context.Context, firstName, lastName string) (*hrmodels.Employee, bool, error) {
	if firstName == "" || lastName == "" {
		return nil, false, nil
	}
	e, err := r.employees.FindByName(ctx, firstName, lastName)
	if err != nil {
		return nil, false, absent(err)
	}
	return e, true, nil
}

func (r *Resolver) DepartmentByName(ctx context.Context, name string) (*hrmodels.Department, bool, error) {
	if name == "" {
		return nil, false, nil
	}
	d, err := r.departments.FindByName(ctx, name)
	if err != nil {
		return nil, false, absent(err)
	}
	return d, true, nil
}

func (r *Resolver) MineByName(ctx context.Context, name string) (*opsmodels.Mine, bool, error) {
	if name == "" {
		return nil, false, nil
	}
	m, err := r.mines.FindByName(ctx, name)
	if err != nil {
		return nil, false, absent(err)
	}
	return m, true, nil
}

// Leave looks up the balance row for (employee, type). The type is
// upper-cased before the lookup so callers can pass user input directly.
func (r *Resolver) Leave(ctx context.Context, employeeID int64, leaveType string) (*hrmodels.Leave, bool, error) {
	if leaveType == "" {
		return nil, false, nil
	}
	l, err := r.leave.Find(ctx, employeeID, hrmodels.NormalizeType(leaveType))
	if err != nil {
		return nil, false, absent(err)
	}
	return l, true, nil
}

// Performance mirrors Leave for rating rows.
func (r *Resolver) Performance(ctx context.Context, employeeID int64, perfType string) (*hrmodels.Performance, bool, error) {
	if perfType == "" {
		return nil, false, nil
	}
	p, err := r.performance.Find(ctx, employeeID, hrmodels.NormalizeType(perfType))
	if err != nil {
		return nil, false, absent(err)
	}
	return p, true, nil
}

// absent folds the store's not-found sentinel into the found flag; any other
// error is a real failure.
func absent(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil
	}
	return err
}
