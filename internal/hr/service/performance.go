package service

import (
	"context"
	"errors"
	"math"
	"time"

	"minehub/internal/hr/models"
	dErrors "minehub/pkg/domain-errors"
	"minehub/pkg/platform/sentinel"
)

// PerformanceRow is a rating row joined with its employee's name. Rating is
// nil for rows that were created without one.
type PerformanceRow struct {
	EmployeeName    string
	PerformanceType string
	Rating          *int
}

// ListPerformance returns every rating row with employee names resolved.
func (s *Service) ListPerformance(ctx context.Context) ([]PerformanceRow, error) {
	rows, err := s.performance.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list performance")
	}

	out := make([]PerformanceRow, 0, len(rows))
	for _, p := range rows {
		e, err := s.employees.FindByID(ctx, p.EmployeeID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				continue
			}
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load employee")
		}
		out = append(out, PerformanceRow{EmployeeName: e.FullName(), PerformanceType: p.Type, Rating: p.Rating})
	}
	return out, nil
}

// ListPerformanceByEmployee returns the rating rows of one employee.
func (s *Service) ListPerformanceByEmployee(ctx context.Context, employeeName string) ([]PerformanceRow, error) {
	e, found, err := s.resolver.EmployeeByFullName(ctx, employeeName)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load employee")
	}
	if !found {
		return nil, dErrors.Newf(dErrors.CodeNotFound, "There is no employee with a name matching %s.", employeeName)
	}

	rows, err := s.performance.ListByEmployee(ctx, e.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list performance")
	}
	out := make([]PerformanceRow, 0, len(rows))
	for _, p := range rows {
		out = append(out, PerformanceRow{EmployeeName: e.FullName(), PerformanceType: p.Type, Rating: p.Rating})
	}
	return out, nil
}

// UpsertPerformance stores a rating for (employee, type). A first rating is
// stored verbatim; a repeat rating is blended with the previous one, weighting
// the new observation roughly four times the old.
func (s *Service) UpsertPerformance(ctx context.Context, employeeName, perfType string, rating int) error {
	start := time.Now()
	defer s.metrics.ObserveMutation("upsert_performance", start)

	return s.runner.RunInTx(ctx, func(ctx context.Context) error {
		e, found, err := s.resolver.EmployeeByFullName(ctx, employeeName)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load employee")
		}
		if !found {
			return dErrors.Newf(dErrors.CodeNotFound, "There is no employee with a name matching %s.", employeeName)
		}

		existing, found, err := s.resolver.Performance(ctx, e.ID, perfType)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load performance")
		}

		if !found {
			p := &models.Performance{
				EmployeeID: e.ID,
				Type:       models.NormalizeType(perfType),
				Rating:     &rating,
			}
			if err := s.performance.Create(ctx, p); err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create performance")
			}
			s.metrics.IncrementPerformanceUpsert("created")
			s.logger.InfoContext(ctx, "performance created",
				"employee_id", e.ID, "performance_type", p.Type, "rating", rating)
			return nil
		}

		blended := blend(existing.Rating, rating)
		if err := s.performance.UpdateRating(ctx, e.ID, existing.Type, blended); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update performance")
		}
		s.metrics.IncrementPerformanceUpsert("blended")
		s.logger.InfoContext(ctx, "performance blended",
			"employee_id", e.ID, "performance_type", existing.Type, "rating", blended)
		return nil
	})
}

// DeletePerformance removes one rating row.
func (s *Service) DeletePerformance(ctx context.Context, employeeName, perfType string) error {
	e, found, err := s.resolver.EmployeeByFullName(ctx, employeeName)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load employee")
	}
	if !found {
		return dErrors.Newf(dErrors.CodeNotFound, "There is no employee with a name matching %s.", employeeName)
	}

	p, found, err := s.resolver.Performance(ctx, e.ID, perfType)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load performance")
	}
	if !found {
		return dErrors.Newf(dErrors.CodeNotFound, "There is no Performance of type %s to delete from employee %s.", perfType, employeeName)
	}

	if err := s.performance.Delete(ctx, e.ID, p.Type); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete performance")
	}
	s.logger.InfoContext(ctx, "performance deleted", "employee_id", e.ID, "performance_type", p.Type)
	return nil
}

// blend combines a previous rating with a new observation. The old rating is
// quartered with integer truncation before the weighted sum, and the result
// rounds half to even. A row with no prior rating substitutes the new rating
// as the old value.
func blend(old *int, rating int) int {
	prev := rating
	if old != nil {
		prev = *old
	}
	return int(math.RoundToEven(float64(prev/4+rating) / 1.25))
}
