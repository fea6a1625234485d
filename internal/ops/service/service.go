// Package service implements the operations business rules: mine and
// resource lifecycle, overseer reassignment and daily production logging.
package service

import (
	"context"
	"log/slog"
	"time"

	hrmodels "minehub/internal/hr/models"
	"minehub/internal/ops/models"
	"minehub/internal/resolver"
	"minehub/pkg/platform/tx"
)

type MineStore interface {
	Create(ctx context.Context, m *models.Mine) error
	FindByID(ctx context.Context, id int64) (*models.Mine, error)
	FindByName(ctx context.Context, name string) (*models.Mine, error)
	List(ctx context.Context, resourceType string) ([]models.Mine, error)
	SetOverseer(ctx context.Context, mineID, overseerID int64) error
	CountByResource(ctx context.Context, resourceType string) (int, error)
	Delete(ctx context.Context, id int64) error
}

type ResourceStore interface {
	Create(ctx context.Context, r *models.Resource) error
	Find(ctx context.Context, resourceType string) (*models.Resource, error)
	List(ctx context.Context) ([]models.Resource, error)
	Delete(ctx context.Context, resourceType string) error
}

type ProductionStore interface {
	Create(ctx context.Context, p *models.Production) error
	ListByDay(ctx context.Context, day time.Time, mineID int64) ([]models.Production, error)
	CountByMine(ctx context.Context, mineID int64) (int, error)
	DeleteByMine(ctx context.Context, mineID int64) error
}

// EmployeeFinder resolves overseer ids to employees for display.
type EmployeeFinder interface {
	FindByID(ctx context.Context, id int64) (*hrmodels.Employee, error)
}

// Service orchestrates operations mutations.
type Service struct {
	mines      MineStore
	resources  ResourceStore
	production ProductionStore
	employees  EmployeeFinder
	resolver   *resolver.Resolver
	runner     tx.Runner
	logger     *slog.Logger
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New constructs a Service.
func New(
	mines MineStore,
	resources ResourceStore,
	production ProductionStore,
	employees EmployeeFinder,
	res *resolver.Resolver,
	runner tx.Runner,
	opts ...Option,
) *Service {
	s := &Service{
		mines:      mines,
		resources:  resources,
		production: production,
		employees:  employees,
		resolver:   res,
		runner:     runner,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
