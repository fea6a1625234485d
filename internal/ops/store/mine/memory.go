package mine

import (
	"context"
	"sort"
	"strings"
	"sync"

	"minehub/internal/ops/models"
	"minehub/pkg/platform/sentinel"
)

// InMemory is a mutex-guarded mine store. Name and resource-type matching is
// case-insensitive to mirror the citext columns in postgres.
type InMemory struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]models.Mine
}

func NewInMemory() *InMemory {
	return &InMemory{nextID: 1, byID: make(map[int64]models.Mine)}
}

func (s *InMemory) Create(ctx context.Context, m *models.Mine) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.byID {
		if strings.EqualFold(existing.Name, m.Name) {
			return sentinel.ErrConflict
		}
	}

	m.ID = s.nextID
	s.nextID++
	s.byID[m.ID] = clone(*m)
	return nil
}

func (s *InMemory) FindByID(ctx context.Context, id int64) (*models.Mine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.byID[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	m = clone(m)
	return &m, nil
}

func (s *InMemory) FindByName(ctx context.Context, name string) (*models.Mine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.byID {
		if strings.EqualFold(m.Name, name) {
			m = clone(m)
			return &m, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

// List returns all mines, optionally filtered by resource type. An empty
// resourceType matches everything.
func (s *InMemory) List(ctx context.Context, resourceType string) ([]models.Mine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Mine
	for _, m := range s.byID {
		if resourceType == "" || strings.EqualFold(m.ResourceType, resourceType) {
			out = append(out, clone(m))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *InMemory) SetOverseer(ctx context.Context, mineID, overseerID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.byID[mineID]
	if !ok {
		return sentinel.ErrNotFound
	}
	m.OverseerID = &overseerID
	s.byID[mineID] = m
	return nil
}

// ClearOverseer nulls the overseer reference on every mine the employee
// oversees, mirroring the ON DELETE SET NULL constraint in postgres.
func (s *InMemory) ClearOverseer(ctx context.Context, employeeID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, m := range s.byID {
		if m.OverseerID != nil && *m.OverseerID == employeeID {
			m.OverseerID = nil
			s.byID[id] = m
		}
	}
	return nil
}

func (s *InMemory) CountByResource(ctx context.Context, resourceType string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, m := range s.byID {
		if strings.EqualFold(m.ResourceType, resourceType) {
			n++
		}
	}
	return n, nil
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

func clone(m models.Mine) models.Mine {
	if m.OverseerID != nil {
		id := *m.OverseerID
		m.OverseerID = &id
	}
	return m
}
