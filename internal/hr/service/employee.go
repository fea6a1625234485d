package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"minehub/internal/hr/models"
	dErrors "minehub/pkg/domain-errors"
	"minehub/pkg/platform/sentinel"
)

// EmployeeSummary is the list row: name plus position.
type EmployeeSummary struct {
	Name     string
	Position string
}

// EmployeeDetail is the single-employee view with its joins resolved to
// names. Manager is "None" when the employee reports to nobody.
type EmployeeDetail struct {
	Name           string
	Position       string
	Department     string
	Manager        string
	EnrollmentDate time.Time
}

// EmployeeInput carries the fields for create and update. Department and
// Manager are names resolved at mutation time; Manager may be empty.
type EmployeeInput struct {
	FirstName      string
	LastName       string
	Position       string
	Department     string
	Manager        string
	EnrollmentDate time.Time
	Salary         float64
}

// ListEmployees returns summaries with optional department and title filters.
// The title filter is a case-insensitive substring match.
func (s *Service) ListEmployees(ctx context.Context, departmentName, titleName string) ([]EmployeeSummary, error) {
	staff, err := s.employees.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list employees")
	}

	if departmentName != "" {
		d, found, err := s.resolver.DepartmentByName(ctx, departmentName)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load department")
		}
		if !found {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "%s is not a known department.", departmentName)
		}
		kept := staff[:0]
		for _, e := range staff {
			if e.DepartmentID == d.ID {
				kept = append(kept, e)
			}
		}
		staff = kept
	}

	if titleName != "" {
		kept := staff[:0]
		for _, e := range staff {
			if strings.Contains(strings.ToLower(e.Position), strings.ToLower(titleName)) {
				kept = append(kept, e)
			}
		}
		staff = kept
		if len(staff) == 0 {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "There are no employees with a title matching %s.", titleName)
		}
	}

	out := make([]EmployeeSummary, 0, len(staff))
	for _, e := range staff {
		out = append(out, EmployeeSummary{Name: e.FullName(), Position: e.Position})
	}
	return out, nil
}

// GetEmployeeByID returns the detail view for one employee.
func (s *Service) GetEmployeeByID(ctx context.Context, id int64) (*EmployeeDetail, error) {
	e, err := s.employees.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "There are no employees with an ID matching %d.", id)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load employee")
	}
	return s.detail(ctx, e)
}

// GetEmployeeByName returns the detail view addressed by full name.
func (s *Service) GetEmployeeByName(ctx context.Context, name string) (*EmployeeDetail, error) {
	e, found, err := s.resolver.EmployeeByFullName(ctx, name)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load employee")
	}
	if !found {
		return nil, dErrors.Newf(dErrors.CodeNotFound, "There is no employee with a name matching %s.", name)
	}
	return s.detail(ctx, e)
}

func (s *Service) detail(ctx context.Context, e *models.Employee) (*EmployeeDetail, error) {
	d, err := s.departments.FindByID(ctx, e.DepartmentID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load department")
	}

	manager := "None"
	if e.ManagerID != nil {
		m, err := s.employees.FindByID(ctx, *e.ManagerID)
		if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load manager")
		}
		if m != nil {
			manager = m.FullName()
		}
	}

	return &EmployeeDetail{
		Name:           e.FullName(),
		Position:       e.Position,
		Department:     d.Name,
		Manager:        manager,
		EnrollmentDate: e.EnrollmentDate,
	}, nil
}

// CreateEmployee inserts an employee after resolving its department and
// optional manager by name. An unresolved manager is stored as no manager.
func (s *Service) CreateEmployee(ctx context.Context, in EmployeeInput) (*models.Employee, error) {
	d, found, err := s.resolver.DepartmentByName(ctx, in.Department)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load department")
	}
	if !found {
		return nil, dErrors.Newf(dErrors.CodeNotFound, "%s is not a known department.", in.Department)
	}

	managerID, err := s.managerID(ctx, in.Manager)
	if err != nil {
		return nil, err
	}

	e := &models.Employee{
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Position:       in.Position,
		DepartmentID:   d.ID,
		EnrollmentDate: in.EnrollmentDate,
		Salary:         in.Salary,
		ManagerID:      managerID,
	}
	if err := s.employees.Create(ctx, e); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.Newf(dErrors.CodeConflict, "Employee '%s %s' already exists.", in.FirstName, in.LastName)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create employee")
	}
	s.logger.InfoContext(ctx, "employee created", "employee_id", e.ID, "name", e.FullName())
	return e, nil
}

// UpdateEmployee rewrites the mutable fields of an existing employee:
// position, department, salary and manager.
func (s *Service) UpdateEmployee(ctx context.Context, in EmployeeInput) error {
	return s.runner.RunInTx(ctx, func(ctx context.Context) error {
		e, found, err := s.resolver.EmployeeByParts(ctx, in.FirstName, in.LastName)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load employee")
		}
		if !found {
			return dErrors.Newf(dErrors.CodeNotFound, "Cannot complete operation, employee '%s %s' is not a known employee.", in.FirstName, in.LastName)
		}

		d, found, err := s.resolver.DepartmentByName(ctx, in.Department)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load department")
		}
		if !found {
			return dErrors.Newf(dErrors.CodeNotFound, "%s is not a known department.", in.Department)
		}

		managerID, err := s.managerID(ctx, in.Manager)
		if err != nil {
			return err
		}

		e.Position = in.Position
		e.DepartmentID = d.ID
		e.Salary = in.Salary
		e.ManagerID = managerID
		if err := s.employees.Update(ctx, e); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update employee")
		}
		s.logger.InfoContext(ctx, "employee updated", "employee_id", e.ID, "name", e.FullName())
		return nil
	})
}

// DeleteEmployeeByID removes an employee along with their leave and
// performance rows; manager and overseer references are nulled.
func (s *Service) DeleteEmployeeByID(ctx context.Context, id int64) (*models.Employee, error) {
	e, err := s.employees.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "The given id %d did not match any known employee", id)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load employee")
	}
	if err := s.deleteEmployee(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// DeleteEmployeeByName is DeleteEmployeeByID addressed by full name.
func (s *Service) DeleteEmployeeByName(ctx context.Context, name string) (*models.Employee, error) {
	e, found, err := s.resolver.EmployeeByFullName(ctx, name)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load employee")
	}
	if !found {
		return nil, dErrors.Newf(dErrors.CodeNotFound, "The given name %s did not match any known employee", name)
	}
	if err := s.deleteEmployee(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) deleteEmployee(ctx context.Context, e *models.Employee) error {
	err := s.runner.RunInTx(ctx, func(ctx context.Context) error {
		return s.retrench(ctx, e.ID)
	})
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "employee deleted", "employee_id", e.ID, "name", e.FullName())
	return nil
}

// managerID resolves an optional manager name. Empty or unresolved names mean
// no manager rather than an error.
func (s *Service) managerID(ctx context.Context, name string) (*int64, error) {
	if name == "" {
		return nil, nil
	}
	m, found, err := s.resolver.EmployeeByFullName(ctx, name)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load manager")
	}
	if !found {
		return nil, nil
	}
	return &m.ID, nil
}
