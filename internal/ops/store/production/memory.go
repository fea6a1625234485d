package production

import (
	"context"
	"sort"
	"sync"
	"time"

	"minehub/internal/ops/models"
	"minehub/pkg/platform/sentinel"
)

// InMemory is a mutex-guarded production store. The (mine, date) pair is
// unique; dates are stored at date granularity.
type InMemory struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]models.Production
}

func NewInMemory() *InMemory {
	return &InMemory{nextID: 1, rows: make(map[int64]models.Production)}
}

func (s *InMemory) Create(ctx context.Context, p *models.Production) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.DateLogged = models.DateOnly(p.DateLogged)
	for _, existing := range s.rows {
		if existing.MineID == p.MineID && existing.DateLogged.Equal(p.DateLogged) {
			return sentinel.ErrConflict
		}
	}

	p.ID = s.nextID
	s.nextID++
	s.rows[p.ID] = *p
	return nil
}

// ListByDay returns readings for one day, optionally restricted to a mine.
// A mineID of zero matches every mine.
func (s *InMemory) ListByDay(ctx context.Context, day time.Time, mineID int64) ([]models.Production, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	day = models.DateOnly(day)
	return s.listLocked(func(p models.Production) bool {
		if mineID != 0 && p.MineID != mineID {
			return false
		}
		return p.DateLogged.Equal(day)
	}), nil
}

// ListByMine returns every reading for a mine; a mineID of zero returns all
// readings.
func (s *InMemory) ListByMine(ctx context.Context, mineID int64) ([]models.Production, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.listLocked(func(p models.Production) bool {
		return mineID == 0 || p.MineID == mineID
	}), nil
}

func (s *InMemory) CountByMine(ctx context.Context, mineID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, p := range s.rows {
		if p.MineID == mineID {
			n++
		}
	}
	return n, nil
}

// Latest returns the most recent reading per mine. Multiple rows sharing the
// max date should not exist given the (mine, date) uniqueness, but are
// tolerated: the lowest row id wins.
func (s *InMemory) Latest(ctx context.Context) ([]models.Production, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	best := make(map[int64]models.Production)
	for _, p := range s.rows {
		cur, ok := best[p.MineID]
		switch {
		case !ok:
			best[p.MineID] = p
		case p.DateLogged.After(cur.DateLogged):
			best[p.MineID] = p
		case p.DateLogged.Equal(cur.DateLogged) && p.ID < cur.ID:
			best[p.MineID] = p
		}
	}

	out := make([]models.Production, 0, len(best))
	for _, p := range best {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MineID < out[j].MineID })
	return out, nil
}

func (s *InMemory) DeleteByMine(ctx context.Context, mineID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, p := range s.rows {
		if p.MineID == mineID {
			delete(s.rows, id)
		}
	}
	return nil
}

func (s *InMemory) listLocked(keep func(models.Production) bool) []models.Production {
	var out []models.Production
	for _, p := range s.rows {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
