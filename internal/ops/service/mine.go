package service

import (
	"context"
	"errors"
	"fmt"

	"minehub/internal/ops/models"
	dErrors "minehub/pkg/domain-errors"
	"minehub/pkg/platform/sentinel"
)

// MineView is a mine with its overseer resolved to a display name.
type MineView struct {
	MineID       int64
	Name         string
	ResourceType string
	Latitude     float64
	Longitude    float64
	OverseerName string
}

// MineInput carries the fields for mine creation. OverseerName is a full
// employee name and may be empty.
type MineInput struct {
	Name         string
	ResourceType string
	Latitude     float64
	Longitude    float64
	OverseerName string
}

// ListMines returns mines with overseer names, optionally filtered by
// resource type. Mines without an overseer are omitted, matching the report
// consumers that group by overseer.
func (s *Service) ListMines(ctx context.Context, resourceType string) ([]MineView, error) {
	mines, err := s.mines.List(ctx, resourceType)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list mines")
	}

	out := make([]MineView, 0, len(mines))
	for _, m := range mines {
		if m.OverseerID == nil {
			continue
		}
		e, err := s.employees.FindByID(ctx, *m.OverseerID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				continue
			}
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load overseer")
		}
		out = append(out, view(&m, e.FullName()))
	}
	return out, nil
}

// GetMineByID fetches one mine with its overseer name, "None" when the mine
// has no overseer.
func (s *Service) GetMineByID(ctx context.Context, id int64) (*MineView, error) {
	m, err := s.mines.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "Cannot find a mine with ID of %d.", id)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load mine")
	}
	return s.withOverseer(ctx, m)
}

// GetMineByName is GetMineByID addressed by the unique mine name.
func (s *Service) GetMineByName(ctx context.Context, name string) (*MineView, error) {
	m, found, err := s.resolver.MineByName(ctx, name)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load mine")
	}
	if !found {
		return nil, dErrors.Newf(dErrors.CodeNotFound, "Cannot find a mine with the given name of %s.", name)
	}
	return s.withOverseer(ctx, m)
}

// SetOverseer points a mine's overseer reference at an employee, both
// addressed by name. Misses are reported in one combined message naming
// whichever side failed to resolve.
func (s *Service) SetOverseer(ctx context.Context, mineName, employeeName string) error {
	if mineName == "" || employeeName == "" {
		return dErrors.NewValidation("Please provide a valid Mine Name and the Employee Name of the new overseer.")
	}

	m, mineFound, err := s.resolver.MineByName(ctx, mineName)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load mine")
	}
	e, empFound, err := s.resolver.EmployeeByFullName(ctx, employeeName)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load employee")
	}

	if !mineFound || !empFound {
		msg := ""
		if !mineFound {
			msg += fmt.Sprintf("Mine with name '%s' was not found. ", mineName)
		}
		if !empFound {
			msg += fmt.Sprintf("Employee with name '%s' was not found.", employeeName)
		}
		return dErrors.New(dErrors.CodeNotFound, msg)
	}

	if err := s.mines.SetOverseer(ctx, m.ID, e.ID); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to set overseer")
	}
	s.logger.InfoContext(ctx, "mine overseer updated", "mine_id", m.ID, "overseer_id", e.ID)
	return nil
}

// CreateMine inserts a mine. The resource type must exist; the overseer name
// is optional and unresolved names leave the mine without an overseer.
func (s *Service) CreateMine(ctx context.Context, in MineInput) (*models.Mine, error) {
	if _, err := s.resources.Find(ctx, in.ResourceType); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "Resource of type '%s' does not exist.", in.ResourceType)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load resource")
	}

	var overseerID *int64
	if in.OverseerName != "" {
		e, found, err := s.resolver.EmployeeByFullName(ctx, in.OverseerName)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load overseer")
		}
		if found {
			overseerID = &e.ID
		}
	}

	m := &models.Mine{
		Name:         in.Name,
		ResourceType: in.ResourceType,
		Latitude:     in.Latitude,
		Longitude:    in.Longitude,
		OverseerID:   overseerID,
	}
	if err := s.mines.Create(ctx, m); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.Newf(dErrors.CodeConflict, "Mine '%s' already exists.", in.Name)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create mine")
	}
	s.logger.InfoContext(ctx, "mine created", "mine_id", m.ID, "name", m.Name)
	return m, nil
}

// DeleteMineByID removes a mine. Logged production blocks the delete unless
// removeProduction is set, in which case the readings go with the mine.
func (s *Service) DeleteMineByID(ctx context.Context, id int64, removeProduction bool) (*models.Mine, error) {
	m, err := s.mines.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "Cannot find a mine with ID of %d.", id)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load mine")
	}
	if err := s.deleteMine(ctx, m, removeProduction); err != nil {
		return nil, err
	}
	return m, nil
}

// DeleteMineByName is DeleteMineByID addressed by name.
func (s *Service) DeleteMineByName(ctx context.Context, name string, removeProduction bool) (*models.Mine, error) {
	m, found, err := s.resolver.MineByName(ctx, name)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load mine")
	}
	if !found {
		return nil, dErrors.Newf(dErrors.CodeNotFound, "Cannot find a mine with name of %s.", name)
	}
	if err := s.deleteMine(ctx, m, removeProduction); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) deleteMine(ctx context.Context, m *models.Mine, removeProduction bool) error {
	return s.runner.RunInTx(ctx, func(ctx context.Context) error {
		n, err := s.production.CountByMine(ctx, m.ID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to count production")
		}
		if n > 0 && !removeProduction {
			return dErrors.Newf(dErrors.CodeConflict, "Cannot delete mine '%s' as there is production data logged for it.", m.Name)
		}
		if n > 0 {
			if err := s.production.DeleteByMine(ctx, m.ID); err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete production")
			}
		}
		if err := s.mines.Delete(ctx, m.ID); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete mine")
		}
		s.logger.InfoContext(ctx, "mine deleted", "mine_id", m.ID, "name", m.Name)
		return nil
	})
}

func (s *Service) withOverseer(ctx context.Context, m *models.Mine) (*MineView, error) {
	overseer := "None"
	if m.OverseerID != nil {
		e, err := s.employees.FindByID(ctx, *m.OverseerID)
		if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load overseer")
		}
		if e != nil {
			overseer = e.FullName()
		}
	}
	v := view(m, overseer)
	return &v, nil
}

func view(m *models.Mine, overseerName string) MineView {
	return MineView{
		MineID:       m.ID,
		Name:         m.Name,
		ResourceType: m.ResourceType,
		Latitude:     m.Latitude,
		Longitude:    m.Longitude,
		OverseerName: overseerName,
	}
}
