package mine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"minehub/internal/ops/models"
	"minehub/pkg/platform/sentinel"
	txcontext "minehub/pkg/platform/tx"
)

const mineColumns = `mine_id, name, type, latitude, longitude, overseer_id`

// Postgres stores mines in operations.mine. Name and type columns are citext.
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

func (s *Postgres) Create(ctx context.Context, m *models.Mine) error {
	err := s.q(ctx).QueryRowContext(ctx,
		`INSERT INTO operations.mine (name, type, latitude, longitude, overseer_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING mine_id`,
		m.Name, m.ResourceType, m.Latitude, m.Longitude, m.OverseerID,
	).Scan(&m.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert mine: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, id int64) (*models.Mine, error) {
	return scanOne(s.q(ctx).QueryRowContext(ctx,
		`SELECT `+mineColumns+` FROM operations.mine WHERE mine_id = $1`, id))
}

func (s *Postgres) FindByName(ctx context.Context, name string) (*models.Mine, error) {
	return scanOne(s.q(ctx).QueryRowContext(ctx,
		`SELECT `+mineColumns+` FROM operations.mine WHERE name = $1`, name))
}

func (s *Postgres) List(ctx context.Context, resourceType string) ([]models.Mine, error) {
	query := `SELECT ` + mineColumns + ` FROM operations.mine`
	args := []any{}
	if resourceType != "" {
		query += ` WHERE type = $1`
		args = append(args, resourceType)
	}
	query += ` ORDER BY mine_id`

	rows, err := s.q(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list mines: %w", err)
	}
	defer rows.Close()

	var out []models.Mine
	for rows.Next() {
		var m models.Mine
		if err := rows.Scan(&m.ID, &m.Name, &m.ResourceType, &m.Latitude, &m.Longitude, &m.OverseerID); err != nil {
			return nil, fmt.Errorf("scan mine: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Postgres) SetOverseer(ctx context.Context, mineID, overseerID int64) error {
	res, err := s.q(ctx).ExecContext(ctx,
		`UPDATE operations.mine SET overseer_id = $1 WHERE mine_id = $2`,
		overseerID, mineID)
	if err != nil {
		return fmt.Errorf("set overseer: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) ClearOverseer(ctx context.Context, employeeID int64) error {
	_, err := s.q(ctx).ExecContext(ctx,
		`UPDATE operations.mine SET overseer_id = NULL WHERE overseer_id = $1`, employeeID)
	if err != nil {
		return fmt.Errorf("clear overseer: %w", err)
	}
	return nil
}

func (s *Postgres) CountByResource(ctx context.Context, resourceType string) (int, error) {
	var n int
	err := s.q(ctx).QueryRowContext(ctx,
		`SELECT count(*) FROM operations.mine WHERE type = $1`, resourceType).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count mines: %w", err)
	}
	return n, nil
}

func (s *Postgres) Delete(ctx context.Context, id int64) error {
	res, err := s.q(ctx).ExecContext(ctx, `DELETE FROM operations.mine WHERE mine_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete mine: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func scanOne(row *sql.Row) (*models.Mine, error) {
	var m models.Mine
	err := row.Scan(&m.ID, &m.Name, &m.ResourceType, &m.Latitude, &m.Longitude, &m.OverseerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan mine: %w", err)
	}
	return &m, nil
}
