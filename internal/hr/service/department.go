package service

import (
	"context"
	"errors"

	"minehub/internal/hr/models"
	dErrors "minehub/pkg/domain-errors"
	"minehub/pkg/platform/sentinel"
)

// ListDepartments returns every department.
func (s *Service) ListDepartments(ctx context.Context) ([]models.Department, error) {
	deps, err := s.departments.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list departments")
	}
	return deps, nil
}

// GetDepartmentByID fetches one department.
func (s *Service) GetDepartmentByID(ctx context.Context, id int64) (*models.Department, error) {
	d, err := s.departments.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "There is no department with an ID matching %d.", id)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load department")
	}
	return d, nil
}

// GetDepartmentByName fetches one department by its unique name.
func (s *Service) GetDepartmentByName(ctx context.Context, name string) (*models.Department, error) {
	d, found, err := s.resolver.DepartmentByName(ctx, name)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load department")
	}
	if !found {
		return nil, dErrors.Newf(dErrors.CodeNotFound, "There is no department with a name matching %s.", name)
	}
	return d, nil
}

// CreateDepartment inserts a department, rejecting duplicate names.
func (s *Service) CreateDepartment(ctx context.Context, d *models.Department) error {
	if err := s.departments.Create(ctx, d); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return dErrors.Newf(dErrors.CodeConflict, "Department '%s' already exists.", d.Name)
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create department")
	}
	s.logger.InfoContext(ctx, "department created", "department_id", d.ID, "name", d.Name)
	return nil
}

// DeleteDepartmentByID removes a department. With retrenchEmployees the
// department's employees and their leave and performance rows go too;
// without it the delete is rejected while employees remain.
func (s *Service) DeleteDepartmentByID(ctx context.Context, id int64, retrenchEmployees bool) (*models.Department, error) {
	d, err := s.departments.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "The given id '%d' does not match any known department", id)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load department")
	}
	if err := s.deleteDepartment(ctx, d, retrenchEmployees); err != nil {
		return nil, err
	}
	return d, nil
}

// DeleteDepartmentByName is DeleteDepartmentByID addressed by name.
func (s *Service) DeleteDepartmentByName(ctx context.Context, name string, retrenchEmployees bool) (*models.Department, error) {
	d, found, err := s.resolver.DepartmentByName(ctx, name)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load department")
	}
	if !found {
		return nil, dErrors.Newf(dErrors.CodeNotFound, "The given name '%s' does not match any known department", name)
	}
	if err := s.deleteDepartment(ctx, d, retrenchEmployees); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) deleteDepartment(ctx context.Context, d *models.Department, retrenchEmployees bool) error {
	return s.runner.RunInTx(ctx, func(ctx context.Context) error {
		n, err := s.employees.CountByDepartment(ctx, d.ID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to count employees")
		}
		if n > 0 && !retrenchEmployees {
			return dErrors.Newf(dErrors.CodeConflict, "Cannot delete department '%s' as there are employees belonging to it.", d.Name)
		}
		if n > 0 {
			staff, err := s.employees.ListByDepartment(ctx, d.ID)
			if err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to list employees")
			}
			for _, e := range staff {
				if err := s.retrench(ctx, e.ID); err != nil {
					return err
				}
			}
			s.logger.InfoContext(ctx, "department employees retrenched", "department_id", d.ID, "count", n)
		}
		if err := s.departments.Delete(ctx, d.ID); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete department")
		}
		s.logger.InfoContext(ctx, "department deleted", "department_id", d.ID, "name", d.Name)
		return nil
	})
}

// retrench removes one employee and every row that references them.
func (s *Service) retrench(ctx context.Context, employeeID int64) error {
	if err := s.leave.DeleteByEmployee(ctx, employeeID); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete leave")
	}
	if err := s.performance.DeleteByEmployee(ctx, employeeID); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete performance")
	}
	if err := s.employees.ClearManager(ctx, employeeID); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to clear manager references")
	}
	if err := s.mines.ClearOverseer(ctx, employeeID); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to clear overseer references")
	}
	if err := s.employees.Delete(ctx, employeeID); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete employee")
	}
	return nil
}
