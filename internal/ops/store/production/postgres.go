package production

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"minehub/internal/ops/models"
	"minehub/pkg/platform/sentinel"
	txcontext "minehub/pkg/platform/tx"
)

// Postgres stores readings in operations.production with a unique
// (mine_id, date_logged) index.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Postgres) q(ctx context.Context) querier {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *Postgres) Create(ctx context.Context, p *models.Production) error {
	p.DateLogged = models.DateOnly(p.DateLogged)
	err := s.q(ctx).QueryRowContext(ctx,
		`INSERT INTO operations.production (mine_id, amount, date_logged)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		p.MineID, p.Amount, p.DateLogged,
	).Scan(&p.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert production: %w", err)
	}
	return nil
}

func (s *Postgres) ListByDay(ctx context.Context, day time.Time, mineID int64) ([]models.Production, error) {
	day = models.DateOnly(day)
	if mineID != 0 {
		return s.list(ctx,
			`SELECT id, mine_id, amount, date_logged FROM operations.production
			 WHERE date_logged = $1 AND mine_id = $2 ORDER BY id`,
			day, mineID)
	}
	return s.list(ctx,
		`SELECT id, mine_id, amount, date_logged FROM operations.production
		 WHERE date_logged = $1 ORDER BY id`,
		day)
}

func (s *Postgres) ListByMine(ctx context.Context, mineID int64) ([]models.Production, error) {
	if mineID != 0 {
		return s.list(ctx,
			`SELECT id, mine_id, amount, date_logged FROM operations.production
			 WHERE mine_id = $1 ORDER BY id`,
			mineID)
	}
	return s.list(ctx,
		`SELECT id, mine_id, amount, date_logged FROM operations.production ORDER BY id`)
}

func (s *Postgres) CountByMine(ctx context.Context, mineID int64) (int, error) {
	var n int
	err := s.q(ctx).QueryRowContext(ctx,
		`SELECT count(*) FROM operations.production WHERE mine_id = $1`, mineID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count production: %w", err)
	}
	return n, nil
}

// Latest selects the newest reading per mine; DISTINCT ON with the id
// tie-break keeps the result deterministic even if duplicate dates slip in.
func (s *Postgres) Latest(ctx context.Context) ([]models.Production, error) {
	return s.list(ctx,
		`SELECT DISTINCT ON (mine_id) id, mine_id, amount, date_logged
		 FROM operations.production
		 ORDER BY mine_id, date_logged DESC, id ASC`)
}

func (s *Postgres) DeleteByMine(ctx context.Context, mineID int64) error {
	_, err := s.q(ctx).ExecContext(ctx,
		`DELETE FROM operations.production WHERE mine_id = $1`, mineID)
	if err != nil {
		return fmt.Errorf("delete production by mine: %w", err)
	}
	return nil
}

func (s *Postgres) list(ctx context.Context, query string, args ...any) ([]models.Production, error) {
	rows, err := s.q(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list production: %w", err)
	}
	defer rows.Close()

	var out []models.Production
	for rows.Next() {
		var p models.Production
		if err := rows.Scan(&p.ID, &p.MineID, &p.Amount, &p.DateLogged); err != nil {
			return nil, fmt.Errorf("scan production: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
