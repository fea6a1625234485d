package resource

import (
	"context"
	"sort"
	"strings"
	"sync"

	"minehub/internal/ops/models"
	"minehub/pkg/platform/sentinel"
)

// InMemory keys resources on their type name, case-insensitively.
type InMemory struct {
	mu   sync.Mutex
	rows map[string]models.Resource
}

func NewInMemory() *InMemory {
	return &InMemory{rows: make(map[string]models.Resource)}
}

func (s *InMemory) Create(ctx context.Context, r *models.Resource) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := strings.ToLower(r.Type)
	if _, ok := s.rows[k]; ok {
		return sentinel.ErrConflict
	}
	s.rows[k] = *r
	return nil
}

func (s *InMemory) Find(ctx context.Context, resourceType string) (*models.Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rows[strings.ToLower(resourceType)]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &r, nil
}

func (s *InMemory) List(ctx context.Context) ([]models.Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Resource, 0, len(s.rows))
	for _, r := range s.rows {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out, nil
}

func (s *InMemory) Delete(ctx context.Context, resourceType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := strings.ToLower(resourceType)
	if _, ok := s.rows[k]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.rows, k)
	return nil
}
