package service

import (
	"context"
	"errors"

	"minehub/internal/ops/models"
	dErrors "minehub/pkg/domain-errors"
	"minehub/pkg/platform/sentinel"
)

// ListResources returns every resource type.
func (s *Service) ListResources(ctx context.Context) ([]models.Resource, error) {
	resources, err := s.resources.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list resources")
	}
	return resources, nil
}

// CreateResource inserts a resource type, defaulting the metric when none is
// given.
func (s *Service) CreateResource(ctx context.Context, r *models.Resource) error {
	if r.Metric == "" {
		r.Metric = models.DefaultMetric
	}
	if err := s.resources.Create(ctx, r); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return dErrors.Newf(dErrors.CodeConflict, "Resource of type '%s' already exists.", r.Type)
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create resource")
	}
	s.logger.InfoContext(ctx, "resource created", "type", r.Type)
	return nil
}

// DeleteResource removes a resource type. Mines extracting it block the
// delete.
func (s *Service) DeleteResource(ctx context.Context, resourceType string) error {
	return s.runner.RunInTx(ctx, func(ctx context.Context) error {
		n, err := s.mines.CountByResource(ctx, resourceType)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to count mines")
		}
		if n > 0 {
			return dErrors.Newf(dErrors.CodeConflict, "Cannot delete resource '%s' as there are mines of that type.", resourceType)
		}
		if err := s.resources.Delete(ctx, resourceType); err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.Newf(dErrors.CodeNotFound, "Resource of type '%s' does not exist.", resourceType)
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete resource")
		}
		s.logger.InfoContext(ctx, "resource deleted", "type", resourceType)
		return nil
	})
}
