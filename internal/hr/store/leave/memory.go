package leave

import (
	"context"
	"sort"
	"sync"

	"minehub/internal/hr/models"
	"minehub/pkg/platform/sentinel"
)

type key struct {
	employeeID int64
	leaveType  string
}

// InMemory keys leave rows on (employee, type). Callers pass the type already
// normalized to upper case; the store matches exactly.
type InMemory struct {
	mu   sync.Mutex
	rows map[key]models.Leave
}

func NewInMemory() *InMemory {
	return &InMemory{rows: make(map[key]models.Leave)}
}

func (s *InMemory) Create(ctx context.Context, l *models.Leave) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key{l.EmployeeID, l.Type}
	if _, ok := s.rows[k]; ok {
		return sentinel.ErrConflict
	}
	s.rows[k] = *l
	return nil
}

func (s *InMemory) Find(ctx context.Context, employeeID int64, leaveType string) (*models.Leave, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.rows[key{employeeID, leaveType}]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &l, nil
}

func (s *InMemory) List(ctx context.Context) ([]models.Leave, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listLocked(func(models.Leave) bool { return true }), nil
}

func (s *InMemory) ListByEmployee(ctx context.Context, employeeID int64) ([]models.Leave, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listLocked(func(l models.Leave) bool { return l.EmployeeID == employeeID }), nil
}

func (s *InMemory) UpdateAmount(ctx context.Context, employeeID int64, leaveType string, amount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key{employeeID, leaveType}
	l, ok := s.rows[k]
	if !ok {
		return sentinel.ErrNotFound
	}
	l.Amount = amount
	s.rows[k] = l
	return nil
}

func (s *InMemory) Delete(ctx context.Context, employeeID int64, leaveType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key{employeeID, leaveType}
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

func (s *InMemory) listLocked(keep func(models.Leave) bool) []models.Leave {
	var out []models.Leave
	for _, l := range s.rows {
		if keep(l) {
			out = append(out, l)
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
