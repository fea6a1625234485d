package production

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"minehub/internal/ops/models"
	"minehub/pkg/platform/sentinel"
)

type ProductionStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *ProductionStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestProductionStoreSuite(t *testing.T) {
	suite.Run(t, new(ProductionStoreSuite))
}

func (s *ProductionStoreSuite) log(mineID int64, amount float64, t time.Time) *models.Production {
	p := &models.Production{MineID: mineID, Amount: amount, DateLogged: t}
	s.Require().NoError(s.store.Create(s.ctx, p))
	return p
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TestCreate verifies date truncation and the (mine, date) uniqueness.
func (s *ProductionStoreSuite) TestCreate() {
	s.Run("truncates timestamps to the day", func() {
		p := s.log(1, 50, time.Date(2026, 5, 1, 14, 30, 12, 0, time.UTC))
		s.Equal(day(2026, 5, 1), p.DateLogged)
		s.NotZero(p.ID)
	})

	s.Run("rejects a second row for the same mine and day", func() {
		err := s.store.Create(s.ctx, &models.Production{MineID: 1, Amount: 70, DateLogged: day(2026, 5, 1)})
		s.Require().ErrorIs(err, sentinel.ErrConflict)
	})

	s.Run("same day for another mine is fine", func() {
		s.log(2, 70, day(2026, 5, 1))
	})
}

// TestListByDay verifies the day filter and the all-mines wildcard.
func (s *ProductionStoreSuite) TestListByDay() {
	s.log(1, 10, day(2026, 5, 1))
	s.log(2, 20, day(2026, 5, 1))
	s.log(1, 30, day(2026, 5, 2))

	s.Run("zero mine id matches every mine", func() {
		rows, err := s.store.ListByDay(s.ctx, day(2026, 5, 1), 0)
		s.Require().NoError(err)
		s.Len(rows, 2)
	})

	s.Run("restricts to one mine", func() {
		rows, err := s.store.ListByDay(s.ctx, day(2026, 5, 1), 1)
		s.Require().NoError(err)
		s.Require().Len(rows, 1)
		s.Equal(10.0, rows[0].Amount)
	})

	s.Run("timestamps within the day still match", func() {
		rows, err := s.store.ListByDay(s.ctx, time.Date(2026, 5, 2, 23, 59, 0, 0, time.UTC), 0)
		s.Require().NoError(err)
		s.Len(rows, 1)
	})

	s.Run("empty day is an empty list", func() {
		rows, err := s.store.ListByDay(s.ctx, day(2026, 6, 1), 0)
		s.Require().NoError(err)
		s.Empty(rows)
	})
}

// TestLatest verifies the per-mine most-recent selection.
func (s *ProductionStoreSuite) TestLatest() {
	s.log(1, 10, day(2026, 1, 1))
	s.log(1, 20, day(2026, 1, 5))
	s.log(2, 30, day(2026, 1, 3))

	rows, err := s.store.Latest(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(rows, 2)
	s.Equal(int64(1), rows[0].MineID)
	s.Equal(20.0, rows[0].Amount)
	s.Equal(int64(2), rows[1].MineID)
	s.Equal(30.0, rows[1].Amount)
}

// TestDeleteByMine verifies only the target mine's rows go.
func (s *ProductionStoreSuite) TestDeleteByMine() {
	s.log(1, 10, day(2026, 1, 1))
	s.log(1, 20, day(2026, 1, 2))
	s.log(2, 30, day(2026, 1, 1))

	s.Require().NoError(s.store.DeleteByMine(s.ctx, 1))

	n, err := s.store.CountByMine(s.ctx, 1)
	s.Require().NoError(err)
	s.Zero(n)

	n, err = s.store.CountByMine(s.ctx, 2)
	s.Require().NoError(err)
	s.Equal(1, n)
}
