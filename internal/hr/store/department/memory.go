package department

import (
	"context"
	"sort"
	"strings"
	"sync"

	"minehub/internal/hr/models"
	"minehub/pkg/platform/sentinel"
)

// InMemory is a mutex-guarded department store for tests and local runs.
// Name matching is case-insensitive to mirror the citext column in postgres.
type InMemory struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]models.Department
}

func NewInMemory() *InMemory {
	return &InMemory{nextID: 1, byID: make(map[int64]models.Department)}
}

func (s *InMemory) Create(ctx context.Context, d *models.Department) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.byID {
		if strings.EqualFold(existing.Name, d.Name) {
			return sentinel.ErrConflict
		}
	}

	d.ID = s.nextID
	s.nextID++
	s.byID[d.ID] = *d
	return nil
}

func (s *InMemory) FindByID(ctx context.Context, id int64) (*models.Department, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.byID[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &d, nil
}

func (s *InMemory) FindByName(ctx context.Context, name string) (*models.Department, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range s.byID {
		if strings.EqualFold(d.Name, name) {
			return &d, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) List(ctx context.Context) ([]models.Department, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Department, 0, len(s.byID))
	for _, d := range s.byID {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
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
