package performance

import (
	"context"
	"sort"
	"sync"

	"minehub/internal/hr/models"
	"minehub/pkg/platform/sentinel"
)

type key struct {
	employeeID int64
	perfType   string
}

// InMemory keys performance rows on (employee, type). Types arrive already
// upper-cased.
type InMemory struct {
	mu   sync.Mutex
	rows map[key]models.Performance
}

func NewInMemory() *InMemory {
	return &InMemory{rows: make(map[key]models.Performance)}
}

func (s *InMemory) Create(ctx context.Context, p *models.Performance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key{p.EmployeeID, p.Type}
	if _, ok := s.rows[k]; ok {
		return sentinel.ErrConflict
	}
	s.rows[k] = clone(*p)
	return nil
}

func (s *InMemory) Find(ctx context.Context, employeeID int64, perfType string) (*models.Performance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.rows[key{employeeID, perfType}]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	p = clone(p)
	return &p, nil
}

func (s *InMemory) List(ctx context.Context) ([]models.Performance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listLocked(func(models.Performance) bool { return true }), nil
}

func (s *InMemory) ListByEmployee(ctx context.Context, employeeID int64) ([]models.Performance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listLocked(func(p models.Performance) bool { return p.EmployeeID == employeeID }), nil
}

func (s *InMemory) UpdateRating(ctx context.Context, employeeID int64, perfType string, rating int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key{employeeID, perfType}
	p, ok := s.rows[k]
	if !ok {
		return sentinel.ErrNotFound
	}
	p.Rating = &rating
	s.rows[k] = p
	return nil
}

func (s *InMemory) Delete(ctx context.Context, employeeID int64, perfType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key{employeeID, perfType}
	if _, ok := s.rows[k]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.rows, k)
	return nil
}

func (s *InMemory) DeleteByEmployee(ctx context.Context, employeeID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k := range s.rows {
		if k.employeeID == employeeID {
			delete(s.rows, k)
		}
	}
	return nil
}

func (s *InMemory) listLocked(keep func(models.Performance) bool) []models.Performance {
	var out []models.Performance
	for _, p := range s.rows {
		if keep(p) {
			out = append(out, clone(p))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].EmployeeID != out[j].EmployeeID {
			return out[i].EmployeeID < out[j].EmployeeID
		}
		return out[i].Type < out[j].Type
	})
	return out
}

// clone deep-copies the nullable rating so callers cannot alias store state.
func clone(p models.Performance) models.Performance {
	if p.Rating != nil {
		r := *p.Rating
		p.Rating = &r
	}
	return p
}
