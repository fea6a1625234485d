// Package service implements the HR business rules: department and employee
// lifecycle, leave balance adjustment and the performance rating blend.
// Stores report sentinel errors; this layer translates them into coded domain
// errors with the user-facing wording the API returns verbatim.
package service

import (
	"context"
	"log/slog"

	"minehub/internal/hr/metrics"
	"minehub/internal/hr/models"
	"minehub/internal/resolver"
	"minehub/pkg/platform/tx"
)

type DepartmentStore interface {
	Create(ctx context.Context, d *models.Department) error
	FindByID(ctx context.Context, id int64) (*models.Department, error)
	FindByName(ctx context.Context, name string) (*models.Department, error)
	List(ctx context.Context) ([]models.Department, error)
	Delete(ctx context.Context, id int64) error
}

type EmployeeStore interface {
	Create(ctx context.Context, e *models.Employee) error
	FindByID(ctx context.Context, id int64) (*models.Employee, error)
	FindByName(ctx context.Context, firstName, lastName string) (*models.Employee, error)
	List(ctx context.Context) ([]models.Employee, error)
	ListByDepartment(ctx context.Context, departmentID int64) ([]models.Employee, error)
	CountByDepartment(ctx context.Context, departmentID int64) (int, error)
	Update(ctx context.Context, e *models.Employee) error
	Delete(ctx context.Context, id int64) error
	ClearManager(ctx context.Context, managerID int64) error
}

type LeaveStore interface {
	Create(ctx context.Context, l *models.Leave) error
	List(ctx context.Context) ([]models.Leave, error)
	ListByEmployee(ctx context.Context, employeeID int64) ([]models.Leave, error)
	UpdateAmount(ctx context.Context, employeeID int64, leaveType string, amount int) error
	Delete(ctx context.Context, employeeID int64, leaveType string) error
	DeleteByEmployee(ctx context.Context, employeeID int64) error
}

type PerformanceStore interface {
	Create(ctx context.Context, p *models.Performance) error
	List(ctx context.Context) ([]models.Performance, error)
	ListByEmployee(ctx context.Context, employeeID int64) ([]models.Performance, error)
	UpdateRating(ctx context.Context, employeeID int64, perfType string, rating int) error
	Delete(ctx context.Context, employeeID int64, perfType string) error
	DeleteByEmployee(ctx context.Context, employeeID int64) error
}

// OverseerClearer nulls mine overseer references when their employee goes
// away. Implemented by the operations mine store.
type OverseerClearer interface {
	ClearOverseer(ctx context.Context, employeeID int64) error
}

// Service orchestrates HR mutations. Multi-step deletes and read-modify-write
// updates run inside the transaction runner so a rejected step leaves the
// store unchanged.
type Service struct {
	departments DepartmentStore
	employees   EmployeeStore
	leave       LeaveStore
	performance PerformanceStore
	mines       OverseerClearer
	resolver    *resolver.Resolver
	runner      tx.Runner
	logger      *slog.Logger
	metrics     *metrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a Service.
func New(
	departments DepartmentStore,
	employees EmployeeStore,
	leave LeaveStore,
	performance PerformanceStore,
	mines OverseerClearer,
	res *resolver.Resolver,
	runner tx.Runner,
	opts ...Option,
) *Service {
	s := &Service{
		departments: departments,
		employees:   employees,
		leave:       leave,
		performance: performance,
		mines:       mines,
		resolver:    res,
		runner:      runner,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
