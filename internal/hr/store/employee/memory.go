package employee

import (
	"context"
	"sort"
	"strings"
	"sync"

	"minehub/internal/hr/models"
	"minehub/pkg/platform/sentinel"
)

// InMemory is a mutex-guarded employee store. The (first, last) name pair is
// unique case-insensitively, matching the citext columns in postgres.
type InMemory struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]models.Employee
}

func NewInMemory() *InMemory {
	return &InMemory{nextID: 1, byID: make(map[int64]models.Employee)}
}

func (s *InMemory) Create(ctx context.Context, e *models.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.byID {
		if strings.EqualFold(existing.FirstName, e.FirstName) &&
			strings.EqualFold(existing.LastName, e.LastName) {
			return sentinel.ErrConflict
		}
	}

	e.ID = s.nextID
	s.nextID++
	s.byID[e.ID] = *e
	return nil
}

func (s *InMemory) FindByID(ctx context.Context, id int64) (*models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.byID[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &e, nil
}

func (s *InMemory) FindByName(ctx context.Context, firstName, lastName string) (*models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.byID {
		if strings.EqualFold(e.FirstName, firstName) && strings.EqualFold(e.LastName, lastName) {
			return &e, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) List(ctx context.Context) ([]models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listLocked(func(models.Employee) bool { return true }), nil
}

func (s *InMemory) ListByDepartment(ctx context.Context, departmentID int64) ([]models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listLocked(func(e models.Employee) bool { return e.DepartmentID == departmentID }), nil
}

func (s *InMemory) CountByDepartment(ctx context.Context, departmentID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, e := range s.byID {
		if e.DepartmentID == departmentID {
			n++
		}
	}
	return n, nil
}

func (s *InMemory) Update(ctx context.Context, e *models.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[e.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.byID[e.ID] = *e
	return nil
}

func (s *InMemory) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.byID, id)
	return nil
}

// ClearManager nulls the manager reference on every report of the given
// employee, mirroring the ON DELETE SET NULL constraint in postgres.
func (s *InMemory) ClearManager(ctx context.Context, managerID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, e := range s.byID {
		if e.ManagerID != nil && *e.ManagerID == managerID {
			e.ManagerID = nil
			s.byID[id] = e
		}
	}
	return nil
}

func (s *InMemory) listLocked(keep func(models.Employee) bool) []models.Employee {
	var out []models.Employee
	for _, e := range s.byID {
		if keep(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
