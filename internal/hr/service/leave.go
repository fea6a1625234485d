package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"minehub/internal/hr/models"
	dErrors "minehub/pkg/domain-errors"
	"minehub/pkg/platform/sentinel"
)

// LeaveRow is a leave balance joined with its employee's name.
type LeaveRow struct {
	EmployeeName string
	LeaveType    string
	Amount       int
}

// ListLeave returns every leave balance with employee names resolved.
func (s *Service) ListLeave(ctx context.Context) ([]LeaveRow, error) {
	rows, err := s.leave.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list leave")
	}

	out := make([]LeaveRow, 0, len(rows))
	for _, l := range rows {
		e, err := s.employees.FindByID(ctx, l.EmployeeID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				continue
			}
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load employee")
		}
		out = append(out, LeaveRow{EmployeeName: e.FullName(), LeaveType: l.Type, Amount: l.Amount})
	}
	return out, nil
}

// ListLeaveByEmployee returns the balances of one employee.
func (s *Service) ListLeaveByEmployee(ctx context.Context, employeeName string) ([]LeaveRow, error) {
	e, found, err := s.resolver.EmployeeByFullName(ctx, employeeName)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load employee")
	}
	if !found {
		return nil, dErrors.Newf(dErrors.CodeNotFound, "There is no employee with a name matching %s.", employeeName)
	}

	rows, err := s.leave.ListByEmployee(ctx, e.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list leave")
	}
	out := make([]LeaveRow, 0, len(rows))
	for _, l := range rows {
		out = append(out, LeaveRow{EmployeeName: e.FullName(), LeaveType: l.Type, Amount: l.Amount})
	}
	return out, nil
}

// AdjustLeave applies a signed day delta to an existing balance. A zero delta
// is rejected, as is any delta that would leave the balance negative; a
// rejected adjustment leaves the stored amount untouched.
func (s *Service) AdjustLeave(ctx context.Context, employeeName, leaveType string, amount int) error {
	start := time.Now()
	defer s.metrics.ObserveMutation("adjust_leave", start)

	err := s.runner.RunInTx(ctx, func(ctx context.Context) error {
		e, found, err := s.resolver.EmployeeByFullName(ctx, employeeName)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load employee")
		}
		if !found {
			return dErrors.Newf(dErrors.CodeNotFound, "There is no employee with a name matching %s.", employeeName)
		}

		l, found, err := s.resolver.Leave(ctx, e.ID, leaveType)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load leave")
		}
		if !found {
			return dErrors.Newf(dErrors.CodeNotFound, "There is no leave of type %s to modify for employee %s.", leaveType, employeeName)
		}

		if amount == 0 {
			return dErrors.NewValidation("The amount of leave days cannot be 0 (zero).")
		}

		remaining := l.Amount + amount
		if remaining < 0 {
			return dErrors.NewValidation(fmt.Sprintf(
				"Cannot take '%d' days of leave type '%s' for employee '%s' as this would result in a negative leave balance.",
				-amount, leaveType, employeeName))
		}

		if err := s.leave.UpdateAmount(ctx, e.ID, l.Type, remaining); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update leave")
		}
		s.logger.InfoContext(ctx, "leave adjusted",
			"employee_id", e.ID, "leave_type", l.Type, "delta", amount, "remaining", remaining)
		return nil
	})
	if err != nil {
		s.metrics.IncrementLeaveAdjustment("rejected")
		return err
	}
	s.metrics.IncrementLeaveAdjustment("applied")
	return nil
}

// CreateLeave inserts a new balance row for (employee, type). The type is
// stored upper-cased; the initial amount is taken as given.
func (s *Service) CreateLeave(ctx context.Context, employeeName, leaveType string, amount int) (*models.Leave, error) {
	e, found, err := s.resolver.EmployeeByFullName(ctx, employeeName)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load employee")
	}
	if !found {
		return nil, dErrors.Newf(dErrors.CodeNotFound, "There is no employee with a name matching %s.", employeeName)
	}

	l := &models.Leave{
		EmployeeID: e.ID,
		Type:       models.NormalizeType(leaveType),
		Amount:     amount,
	}
	if err := s.leave.Create(ctx, l); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.Newf(dErrors.CodeConflict, "There is already leave of type %s for employee %s.", leaveType, employeeName)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create leave")
	}
	s.logger.InfoContext(ctx, "leave created", "employee_id", e.ID, "leave_type", l.Type, "amount", amount)
	return l, nil
}

// DeleteLeave removes one balance row.
func (s *Service) DeleteLeave(ctx context.Context, employeeName, leaveType string) error {
	e, found, err := s.resolver.EmployeeByFullName(ctx, employeeName)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load employee")
	}
	if !found {
		return dErrors.Newf(dErrors.CodeNotFound, "There is no employee with a name matching %s.", employeeName)
	}

	l, found, err := s.resolver.Leave(ctx, e.ID, leaveType)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load leave")
	}
	if !found {
		return dErrors.Newf(dErrors.CodeNotFound, "There is no leave of type %s to delete from employee %s.", leaveType, employeeName)
	}

	if err := s.leave.Delete(ctx, e.ID, l.Type); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete leave")
	}
	s.logger.InfoContext(ctx, "leave deleted", "employee_id", e.ID, "leave_type", l.Type)
	return nil
}
