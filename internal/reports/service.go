// Package reports builds the aggregation views: latest production per mine,
// production sums and averages, and the per-overseer revenue rollup. Reports
// are read-only joins over the HR and operations stores computed per request.
package reports

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	hrmodels "minehub/internal/hr/models"
	opsmodels "minehub/internal/ops/models"
	"minehub/internal/reports/metrics"
	"minehub/internal/resolver"
	dErrors "minehub/pkg/domain-errors"
)

var tracer trace.Tracer = otel.Tracer("minehub/internal/reports")

type EmployeeLister interface {
	List(ctx context.Context) ([]hrmodels.Employee, error)
}

type MineLister interface {
	List(ctx context.Context, resourceType string) ([]opsmodels.Mine, error)
}

type ResourceLister interface {
	List(ctx context.Context) ([]opsmodels.Resource, error)
}

type ProductionReader interface {
	Latest(ctx context.Context) ([]opsmodels.Production, error)
	ListByMine(ctx context.Context, mineID int64) ([]opsmodels.Production, error)
}

// OverseerReport counts the mines one employee oversees.
type OverseerReport struct {
	Name      string
	Position  string
	MineCount int
}

// ResourceReport counts the mines extracting one resource type.
type ResourceReport struct {
	Type      string
	Value     float64
	MineCount int
}

// RevenueReport rolls production up per overseer. TotalRevenue sums the raw
// production amounts of the overseen mines; the resource unit value is joined
// in but not applied, which is under review with the product owners.
type RevenueReport struct {
	EmployeeName string
	Position     string
	MineAverage  float64
	MineCount    int
	TotalRevenue float64
}

// Service builds reports.
type Service struct {
	employees  EmployeeLister
	mines      MineLister
	resources  ResourceLister
	production ProductionReader
	resolver   *resolver.Resolver
	logger     *slog.Logger
	metrics    *metrics.Metrics
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

// NewService constructs a Service.
func NewService(
	employees EmployeeLister,
	mines MineLister,
	resources ResourceLister,
	production ProductionReader,
	res *resolver.Resolver,
	opts ...Option,
) *Service {
	s := &Service{
		employees:  employees,
		mines:      mines,
		resources:  resources,
		production: production,
		resolver:   res,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LatestProduction returns the most recent reading of every mine.
func (s *Service) LatestProduction(ctx context.Context) ([]opsmodels.Production, error) {
	ctx, span := tracer.Start(ctx, "reports.LatestProduction")
	defer span.End()
	defer s.metrics.ObserveBuild("latest_production", time.Now())

	rows, err := s.production.Latest(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load latest production")
	}
	return rows, nil
}

// ProductionAverage averages the readings of one mine, or of all mines when
// mineID is zero, rounded to three decimal places. No readings is NotFound.
func (s *Service) ProductionAverage(ctx context.Context, mineID int64) (float64, error) {
	ctx, span := tracer.Start(ctx, "reports.ProductionAverage")
	defer span.End()
	defer s.metrics.ObserveBuild("production_average", time.Now())

	amounts, err := s.amounts(ctx, mineID)
	if err != nil {
		return 0, err
	}
	sum := 0.0
	for _, a := range amounts {
		sum += a
	}
	return round(sum/float64(len(amounts)), 3), nil
}

// ProductionSum sums the readings of one mine, or of all mines when mineID is
// zero. No readings is NotFound.
func (s *Service) ProductionSum(ctx context.Context, mineID int64) (float64, error) {
	ctx, span := tracer.Start(ctx, "reports.ProductionSum")
	defer span.End()
	defer s.metrics.ObserveBuild("production_sum", time.Now())

	amounts, err := s.amounts(ctx, mineID)
	if err != nil {
		return 0, err
	}
	sum := 0.0
	for _, a := range amounts {
		sum += a
	}
	return sum, nil
}

// ProductionAverageByName is ProductionAverage with the mine addressed by
// name.
func (s *Service) ProductionAverageByName(ctx context.Context, mineName string) (float64, error) {
	id, err := s.mineID(ctx, mineName)
	if err != nil {
		return 0, err
	}
	return s.ProductionAverage(ctx, id)
}

// ProductionSumByName is ProductionSum with the mine addressed by name.
func (s *Service) ProductionSumByName(ctx context.Context, mineName string) (float64, error) {
	id, err := s.mineID(ctx, mineName)
	if err != nil {
		return 0, err
	}
	return s.ProductionSum(ctx, id)
}

// Overseers lists employees overseeing at least one mine with their mine
// counts. Employees without mines never appear.
func (s *Service) Overseers(ctx context.Context) ([]OverseerReport, error) {
	ctx, span := tracer.Start(ctx, "reports.Overseers")
	defer span.End()
	defer s.metrics.ObserveBuild("overseers", time.Now())

	staff, mines, err := s.staffAndMines(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[int64]int)
	for _, m := range mines {
		if m.OverseerID != nil {
			counts[*m.OverseerID]++
		}
	}

	out := make([]OverseerReport, 0, len(counts))
	for _, e := range staff {
		if n := counts[e.ID]; n > 0 {
			out = append(out, OverseerReport{Name: e.FullName(), Position: e.Position, MineCount: n})
		}
	}
	return out, nil
}

// ResourceSummary lists resource types extracted by at least one mine with
// their unit values and mine counts.
func (s *Service) ResourceSummary(ctx context.Context) ([]ResourceReport, error) {
	ctx, span := tracer.Start(ctx, "reports.ResourceSummary")
	defer span.End()
	defer s.metrics.ObserveBuild("resource_summary", time.Now())

	resources, err := s.resources.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list resources")
	}
	mines, err := s.mines.List(ctx, "")
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list mines")
	}

	out := make([]ResourceReport, 0, len(resources))
	for _, r := range resources {
		n := 0
		for _, m := range mines {
			if strings.EqualFold(m.ResourceType, r.Type) {
				n++
			}
		}
		if n > 0 {
			out = append(out, ResourceReport{Type: r.Type, Value: r.Value, MineCount: n})
		}
	}
	return out, nil
}

// Revenue rolls production up per overseer, sorted by total revenue
// descending. Mines without an overseer, without readings or with an unknown
// resource type contribute nothing; overseers left with no rows are excluded.
func (s *Service) Revenue(ctx context.Context) ([]RevenueReport, error) {
	ctx, span := tracer.Start(ctx, "reports.Revenue")
	defer span.End()
	defer s.metrics.ObserveBuild("revenue", time.Now())

	staff, mines, err := s.staffAndMines(ctx)
	if err != nil {
		return nil, err
	}
	resources, err := s.resources.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list resources")
	}

	known := make(map[string]bool, len(resources))
	for _, r := range resources {
		known[strings.ToLower(r.Type)] = true
	}

	type group struct {
		position string
		amounts  []float64
		mineIDs  map[int64]bool
	}
	order := make([]string, 0, len(staff))
	groups := make(map[string]*group)

	for _, e := range staff {
		for _, m := range mines {
			if m.OverseerID == nil || *m.OverseerID != e.ID {
				continue
			}
			if !known[strings.ToLower(m.ResourceType)] {
				continue
			}
			rows, err := s.production.ListByMine(ctx, m.ID)
			if err != nil {
				return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load production")
			}
			if len(rows) == 0 {
				continue
			}
			g, ok := groups[e.FullName()]
			if !ok {
				g = &group{position: e.Position, mineIDs: make(map[int64]bool)}
				groups[e.FullName()] = g
				order = append(order, e.FullName())
			}
			for _, p := range rows {
				g.amounts = append(g.amounts, p.Amount)
			}
			g.mineIDs[m.ID] = true
		}
	}

	out := make([]RevenueReport, 0, len(order))
	for _, name := range order {
		g := groups[name]
		sum := 0.0
		for _, a := range g.amounts {
			sum += a
		}
		out = append(out, RevenueReport{
			EmployeeName: name,
			Position:     g.position,
			MineAverage:  round(sum/float64(len(g.amounts)), 2),
			MineCount:    len(g.mineIDs),
			TotalRevenue: sum,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalRevenue > out[j].TotalRevenue })
	return out, nil
}

func (s *Service) amounts(ctx context.Context, mineID int64) ([]float64, error) {
	rows, err := s.production.ListByMine(ctx, mineID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load production")
	}
	if len(rows) == 0 {
		return nil, dErrors.Newf(dErrors.CodeNotFound, "The given id '%d' did not match any known mine", mineID)
	}
	amounts := make([]float64, 0, len(rows))
	for _, p := range rows {
		amounts = append(amounts, p.Amount)
	}
	return amounts, nil
}

func (s *Service) mineID(ctx context.Context, mineName string) (int64, error) {
	m, found, err := s.resolver.MineByName(ctx, mineName)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load mine")
	}
	if !found {
		return 0, dErrors.Newf(dErrors.CodeNotFound, "Cannot find a mine with the given name of %s.", mineName)
	}
	return m.ID, nil
}

func (s *Service) staffAndMines(ctx context.Context) ([]hrmodels.Employee, []opsmodels.Mine, error) {
	staff, err := s.employees.List(ctx)
	if err != nil {
		return nil, nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list employees")
	}
	mines, err := s.mines.List(ctx, "")
	if err != nil {
		return nil, nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list mines")
	}
	return staff, mines, nil
}

func round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
