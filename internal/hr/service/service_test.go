package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"minehub/internal/hr/models"
	departmentStore "minehub/internal/hr/store/department"
	employeeStore "minehub/internal/hr/store/employee"
	leaveStore "minehub/internal/hr/store/leave"
	performanceStore "minehub/internal/hr/store/performance"
	opsmodels "minehub/internal/ops/models"
	mineStore "minehub/internal/ops/store/mine"
	"minehub/internal/resolver"
	dErrors "minehub/pkg/domain-errors"
	"minehub/pkg/platform/tx"
)

// =============================================================================
// HR Service Test Suite
// =============================================================================
// Justification for unit tests: leave adjustment and the rating blend carry
// arithmetic edge cases (zero deltas, negative balances, integer truncation,
// half-to-even rounding) that are awkward to pin down through HTTP tests.

type HRServiceSuite struct {
	suite.Suite
	departments *departmentStore.InMemory
	employees   *employeeStore.InMemory
	leave       *leaveStore.InMemory
	performance *performanceStore.InMemory
	mines       *mineStore.InMemory
	service     *Service
}

func TestHRServiceSuite(t *testing.T) {
	suite.Run(t, new(HRServiceSuite))
}

func (s *HRServiceSuite) SetupTest() {
	s.departments = departmentStore.NewInMemory()
	s.employees = employeeStore.NewInMemory()
	s.leave = leaveStore.NewInMemory()
	s.performance = performanceStore.NewInMemory()
	s.mines = mineStore.NewInMemory()

	res := resolver.New(s.employees, s.departments, s.mines, s.leave, s.performance)
	s.service = New(s.departments, s.employees, s.leave, s.performance, s.mines, res, tx.NopRunner{})
}

func (s *HRServiceSuite) seedDepartment(name string) *models.Department {
	d := &models.Department{Name: name, Established: time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)}
	s.Require().NoError(s.departments.Create(context.Background(), d))
	return d
}

func (s *HRServiceSuite) seedEmployee(first, last string, departmentID int64) *models.Employee {
	e := &models.Employee{
		FirstName:      first,
		LastName:       last,
		Position:       "Digger",
		DepartmentID:   departmentID,
		EnrollmentDate: time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC),
		Salary:         24000,
	}
	s.Require().NoError(s.employees.Create(context.Background(), e))
	return e
}

// =============================================================================
// Leave Tests
// =============================================================================

func (s *HRServiceSuite) TestAdjustLeave() {
	ctx := context.Background()
	d := s.seedDepartment("Mining")
	e := s.seedEmployee("John", "Doe", d.ID)
	s.Require().NoError(s.leave.Create(ctx, &models.Leave{EmployeeID: e.ID, Type: "ANNUAL", Amount: 10}))

	s.Run("applies a positive delta", func() {
		s.NoError(s.service.AdjustLeave(ctx, "John Doe", "annual", 5))

		l, err := s.leave.Find(ctx, e.ID, "ANNUAL")
		s.Require().NoError(err)
		s.Equal(15, l.Amount)
	})

	s.Run("applies a negative delta down to zero", func() {
		s.NoError(s.service.AdjustLeave(ctx, "John Doe", "annual", -15))

		l, err := s.leave.Find(ctx, e.ID, "ANNUAL")
		s.Require().NoError(err)
		s.Equal(0, l.Amount)
	})

	s.Run("rejects a zero delta", func() {
		err := s.service.AdjustLeave(ctx, "John Doe", "annual", 0)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidArgument))
		s.Contains(err.Error(), "The amount of leave days cannot be 0 (zero).")
	})

	s.Run("rejects a delta that would go negative and leaves the balance unchanged", func() {
		s.Require().NoError(s.service.AdjustLeave(ctx, "John Doe", "annual", 8))

		err := s.service.AdjustLeave(ctx, "John Doe", "annual", -9)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidArgument))
		s.Contains(err.Error(),
			"Cannot take '9' days of leave type 'annual' for employee 'John Doe' as this would result in a negative leave balance.")

		l, err := s.leave.Find(ctx, e.ID, "ANNUAL")
		s.Require().NoError(err)
		s.Equal(8, l.Amount)
	})

	s.Run("unknown employee is not found", func() {
		err := s.service.AdjustLeave(ctx, "Jane Roe", "annual", 1)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		s.Contains(err.Error(), "There is no employee with a name matching Jane Roe.")
	})

	s.Run("unknown leave type is not found", func() {
		err := s.service.AdjustLeave(ctx, "John Doe", "sick", 1)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		s.Contains(err.Error(), "There is no leave of type sick to modify for employee John Doe.")
	})
}

func (s *HRServiceSuite) TestCreateLeave() {
	ctx := context.Background()
	d := s.seedDepartment("Mining")
	e := s.seedEmployee("John", "Doe", d.ID)

	s.Run("stores the type upper-cased", func() {
		l, err := s.service.CreateLeave(ctx, "John Doe", "annual", 20)
		s.Require().NoError(err)
		s.Equal("ANNUAL", l.Type)
		s.Equal(20, l.Amount)
		s.Equal(e.ID, l.EmployeeID)
	})

	s.Run("duplicate type conflicts", func() {
		_, err := s.service.CreateLeave(ctx, "John Doe", "Annual", 5)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
		s.Contains(err.Error(), "There is already leave of type Annual for employee John Doe.")
	})
}

func (s *HRServiceSuite) TestDeleteLeave() {
	ctx := context.Background()
	d := s.seedDepartment("Mining")
	e := s.seedEmployee("John", "Doe", d.ID)
	s.Require().NoError(s.leave.Create(ctx, &models.Leave{EmployeeID: e.ID, Type: "SICK", Amount: 3}))

	s.Run("missing row is not found", func() {
		err := s.service.DeleteLeave(ctx, "John Doe", "annual")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		s.Contains(err.Error(), "There is no leave of type annual to delete from employee John Doe.")
	})

	s.Run("deletes the row", func() {
		s.NoError(s.service.DeleteLeave(ctx, "John Doe", "sick"))

		rows, err := s.leave.ListByEmployee(ctx, e.ID)
		s.Require().NoError(err)
		s.Empty(rows)
	})
}

// =============================================================================
// Performance Tests
// =============================================================================

func (s *HRServiceSuite) TestUpsertPerformance() {
	ctx := context.Background()
	d := s.seedDepartment("Mining")
	e := s.seedEmployee("John", "Doe", d.ID)

	rating := func() int {
		p, err := s.performance.Find(ctx, e.ID, "SAFETY")
		s.Require().NoError(err)
		s.Require().NotNil(p.Rating)
		return *p.Rating
	}

	s.Run("first rating is stored verbatim", func() {
		s.NoError(s.service.UpsertPerformance(ctx, "John Doe", "safety", 8))
		s.Equal(8, rating())
	})

	s.Run("repeat rating blends with the previous one", func() {
		// prev 8: 8/4 = 2, (2+6)/1.25 = 6.4, rounds to 6.
		s.NoError(s.service.UpsertPerformance(ctx, "John Doe", "safety", 6))
		s.Equal(6, rating())
	})

	s.Run("unknown employee is not found", func() {
		err := s.service.UpsertPerformance(ctx, "Jane Roe", "safety", 5)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		s.Contains(err.Error(), "There is no employee with a name matching Jane Roe.")
	})
}

func (s *HRServiceSuite) TestBlend() {
	four := 4
	three := 3
	eight := 8

	s.Run("quarters the old rating with truncation", func() {
		// 4/4 = 1, (1+1)/1.25 = 1.6, rounds half to even to 2.
		s.Equal(2, blend(&four, 1))
	})

	s.Run("old rating below four truncates to zero", func() {
		// 3/4 = 0, (0+0)/1.25 = 0.
		s.Equal(0, blend(&three, 0))
	})

	s.Run("rounds half to even", func() {
		// 8/4 = 2, (2+6)/1.25 = 6.4 -> 6.
		s.Equal(6, blend(&eight, 6))
	})

	s.Run("nil prior substitutes the new rating", func() {
		// prev 7: 7/4 = 1, (1+7)/1.25 = 6.4 -> 6.
		s.Equal(6, blend(nil, 7))
	})
}

func (s *HRServiceSuite) TestDeletePerformance() {
	ctx := context.Background()
	d := s.seedDepartment("Mining")
	e := s.seedEmployee("John", "Doe", d.ID)
	five := 5
	s.Require().NoError(s.performance.Create(ctx, &models.Performance{EmployeeID: e.ID, Type: "SAFETY", Rating: &five}))

	s.Run("missing row is not found", func() {
		err := s.service.DeletePerformance(ctx, "John Doe", "output")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		s.Contains(err.Error(), "There is no Performance of type output to delete from employee John Doe.")
	})

	s.Run("deletes the row", func() {
		s.NoError(s.service.DeletePerformance(ctx, "John Doe", "safety"))

		rows, err := s.performance.ListByEmployee(ctx, e.ID)
		s.Require().NoError(err)
		s.Empty(rows)
	})
}

// =============================================================================
// Department Tests
// =============================================================================

func (s *HRServiceSuite) TestCreateDepartment() {
	ctx := context.Background()
	s.seedDepartment("Mining")

	s.Run("duplicate name conflicts", func() {
		err := s.service.CreateDepartment(ctx, &models.Department{Name: "Mining"})
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
		s.Contains(err.Error(), "Department 'Mining' already exists.")
	})

	s.Run("creates a department", func() {
		d := &models.Department{Name: "Logistics", Established: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)}
		s.NoError(s.service.CreateDepartment(ctx, d))
		s.NotZero(d.ID)
	})
}

func (s *HRServiceSuite) TestDeleteDepartment() {
	ctx := context.Background()
	d := s.seedDepartment("Mining")
	e := s.seedEmployee("John", "Doe", d.ID)
	s.Require().NoError(s.leave.Create(ctx, &models.Leave{EmployeeID: e.ID, Type: "ANNUAL", Amount: 10}))

	s.Run("rejected while employees remain and nothing is removed", func() {
		_, err := s.service.DeleteDepartmentByID(ctx, d.ID, false)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
		s.Contains(err.Error(), "Cannot delete department 'Mining' as there are employees belonging to it.")

		_, err = s.departments.FindByID(ctx, d.ID)
		s.NoError(err)
		_, err = s.employees.FindByID(ctx, e.ID)
		s.NoError(err)
	})

	s.Run("retrench flag removes employees and their rows", func() {
		deleted, err := s.service.DeleteDepartmentByID(ctx, d.ID, true)
		s.Require().NoError(err)
		s.Equal("Mining", deleted.Name)

		_, err = s.employees.FindByID(ctx, e.ID)
		s.Error(err)
		rows, err := s.leave.ListByEmployee(ctx, e.ID)
		s.Require().NoError(err)
		s.Empty(rows)
	})

	s.Run("unknown id is not found", func() {
		_, err := s.service.DeleteDepartmentByID(ctx, 999, false)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		s.Contains(err.Error(), "The given id '999' does not match any known department")
	})

	s.Run("unknown name is not found", func() {
		_, err := s.service.DeleteDepartmentByName(ctx, "Catering", false)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		s.Contains(err.Error(), "The given name 'Catering' does not match any known department")
	})
}

// =============================================================================
// Employee Tests
// =============================================================================

func (s *HRServiceSuite) TestListEmployees() {
	ctx := context.Background()
	mining := s.seedDepartment("Mining")
	logistics := s.seedDepartment("Logistics")
	s.seedEmployee("John", "Doe", mining.ID)
	driver := s.seedEmployee("Jane", "Roe", logistics.ID)
	driver.Position = "Driver"
	s.Require().NoError(s.employees.Update(ctx, driver))

	s.Run("filters by department", func() {
		out, err := s.service.ListEmployees(ctx, "Logistics", "")
		s.Require().NoError(err)
		s.Require().Len(out, 1)
		s.Equal("Jane Roe", out[0].Name)
	})

	s.Run("unknown department is not found", func() {
		_, err := s.service.ListEmployees(ctx, "Catering", "")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		s.Contains(err.Error(), "Catering is not a known department.")
	})

	s.Run("title filter matches case-insensitive substrings", func() {
		out, err := s.service.ListEmployees(ctx, "", "driv")
		s.Require().NoError(err)
		s.Require().Len(out, 1)
		s.Equal("Driver", out[0].Position)
	})

	s.Run("title filter with no matches is not found", func() {
		_, err := s.service.ListEmployees(ctx, "", "Surveyor")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		s.Contains(err.Error(), "There are no employees with a title matching Surveyor.")
	})
}

func (s *HRServiceSuite) TestCreateEmployee() {
	ctx := context.Background()
	d := s.seedDepartment("Mining")
	manager := s.seedEmployee("Jane", "Roe", d.ID)

	s.Run("resolves department and manager by name", func() {
		e, err := s.service.CreateEmployee(ctx, EmployeeInput{
			FirstName:  "John",
			LastName:   "Doe",
			Position:   "Digger",
			Department: "Mining",
			Manager:    "Jane Roe",
			Salary:     24000,
		})
		s.Require().NoError(err)
		s.Equal(d.ID, e.DepartmentID)
		s.Require().NotNil(e.ManagerID)
		s.Equal(manager.ID, *e.ManagerID)
	})

	s.Run("unresolved manager means no manager", func() {
		e, err := s.service.CreateEmployee(ctx, EmployeeInput{
			FirstName:  "Sam",
			LastName:   "Hill",
			Position:   "Digger",
			Department: "Mining",
			Manager:    "Nobody Here",
		})
		s.Require().NoError(err)
		s.Nil(e.ManagerID)
	})

	s.Run("unknown department is not found", func() {
		_, err := s.service.CreateEmployee(ctx, EmployeeInput{
			FirstName:  "Ann",
			LastName:   "Lee",
			Department: "Catering",
		})
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		s.Contains(err.Error(), "Catering is not a known department.")
	})

	s.Run("duplicate name conflicts", func() {
		_, err := s.service.CreateEmployee(ctx, EmployeeInput{
			FirstName:  "John",
			LastName:   "Doe",
			Department: "Mining",
		})
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
		s.Contains(err.Error(), "Employee 'John Doe' already exists.")
	})
}

func (s *HRServiceSuite) TestDeleteEmployee() {
	ctx := context.Background()
	d := s.seedDepartment("Mining")
	manager := s.seedEmployee("Jane", "Roe", d.ID)
	e := s.seedEmployee("John", "Doe", d.ID)
	e.ManagerID = &manager.ID
	s.Require().NoError(s.employees.Update(ctx, e))

	mine := &opsmodels.Mine{Name: "North Shaft", ResourceType: "gold", OverseerID: &manager.ID}
	s.Require().NoError(s.mines.Create(ctx, mine))
	s.Require().NoError(s.leave.Create(ctx, &models.Leave{EmployeeID: manager.ID, Type: "ANNUAL", Amount: 10}))

	s.Run("nulls manager and overseer references", func() {
		deleted, err := s.service.DeleteEmployeeByName(ctx, "Jane Roe")
		s.Require().NoError(err)
		s.Equal(manager.ID, deleted.ID)

		reloaded, err := s.employees.FindByID(ctx, e.ID)
		s.Require().NoError(err)
		s.Nil(reloaded.ManagerID)

		m, err := s.mines.FindByID(ctx, mine.ID)
		s.Require().NoError(err)
		s.Nil(m.OverseerID)

		rows, err := s.leave.ListByEmployee(ctx, manager.ID)
		s.Require().NoError(err)
		s.Empty(rows)
	})

	s.Run("unknown id is not found", func() {
		_, err := s.service.DeleteEmployeeByID(ctx, 999)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		s.Contains(err.Error(), "The given id 999 did not match any known employee")
	})

	s.Run("unknown name is not found", func() {
		_, err := s.service.DeleteEmployeeByName(ctx, "Ghost Worker")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		s.Contains(err.Error(), "The given name Ghost Worker did not match any known employee")
	})
}

func (s *HRServiceSuite) TestGetEmployee() {
	ctx := context.Background()
	d := s.seedDepartment("Mining")
	e := s.seedEmployee("John", "Doe", d.ID)

	s.Run("manager defaults to None", func() {
		detail, err := s.service.GetEmployeeByID(ctx, e.ID)
		s.Require().NoError(err)
		s.Equal("John Doe", detail.Name)
		s.Equal("Mining", detail.Department)
		s.Equal("None", detail.Manager)
	})

	s.Run("unknown id is not found", func() {
		_, err := s.service.GetEmployeeByID(ctx, 999)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		s.Contains(err.Error(), "There are no employees with an ID matching 999.")
	})
}
