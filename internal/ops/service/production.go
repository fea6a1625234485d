package service

import (
	"context"
	"errors"
	"time"

	"minehub/internal/ops/models"
	dErrors "minehub/pkg/domain-errors"
	"minehub/pkg/platform/sentinel"
	"minehub/pkg/requestcontext"
)

// LogProduction records one day's reading for a mine. A zero date defaults to
// the request day; a second reading for the same (mine, day) is rejected.
func (s *Service) LogProduction(ctx context.Context, mineID int64, amount float64, dateLogged time.Time) (*models.Production, error) {
	if _, err := s.mines.FindByID(ctx, mineID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "Cannot find a mine with ID of %d.", mineID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load mine")
	}

	if dateLogged.IsZero() {
		dateLogged = requestcontext.Now(ctx)
	}

	p := &models.Production{
		MineID:     mineID,
		Amount:     amount,
		DateLogged: models.DateOnly(dateLogged),
	}
	if err := s.production.Create(ctx, p); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.Newf(dErrors.CodeConflict,
				"Production data for mine '%d' on '%s' has already been logged.", mineID, p.DateLogged.Format("2006-01-02"))
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create production")
	}
	s.logger.InfoContext(ctx, "production logged",
		"mine_id", mineID, "amount", amount, "date_logged", p.DateLogged.Format("2006-01-02"))
	return p, nil
}

// ProductionByDay lists readings for one day, optionally restricted to a
// mine id. A zero id matches every mine and a zero date means the request
// day. An empty day is an empty list, not an error.
func (s *Service) ProductionByDay(ctx context.Context, mineID int64, day time.Time) ([]models.Production, error) {
	if day.IsZero() {
		day = requestcontext.Now(ctx)
	}
	rows, err := s.production.ListByDay(ctx, day, mineID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list production")
	}
	return rows, nil
}

// ProductionByDayForMine is ProductionByDay with the mine addressed by name.
func (s *Service) ProductionByDayForMine(ctx context.Context, mineName string, day time.Time) ([]models.Production, error) {
	m, found, err := s.resolver.MineByName(ctx, mineName)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load mine")
	}
	if !found {
		return nil, dErrors.Newf(dErrors.CodeNotFound, "Cannot find a mine with the given name of %s.", mineName)
	}
	return s.ProductionByDay(ctx, m.ID, day)
}
