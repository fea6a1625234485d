// Package tx carries a SQL transaction through context so stores can join an
// enclosing transaction without knowing who opened it. Every rejected mutation
// must leave the store unchanged, so services run read-modify-write sequences
// through a Runner and stores pick the transaction up via From.
package tx

import (
	"context"
	"database/sql"
	"fmt"
)

type ctxKey struct{}

var txKey = ctxKey{}

// WithTx stores a SQL transaction in context for downstream store usage.
func WithTx(ctx context.Context, tx *sql.Tx) context.Context {
	if tx == nil {
		return ctx
	}
	return context.WithValue(ctx, txKey, tx)
}

// From extracts a SQL transaction from context if present.
func From(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(txKey).(*sql.Tx)
	return tx, ok
}

// Runner executes a function within one logical transaction.
type Runner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// SQLRunner wraps fn in a database transaction. The transaction is injected
// into the context so postgres stores execute against it.
type SQLRunner struct {
	db *sql.DB
}

func NewSQLRunner(db *sql.DB) *SQLRunner {
	return &SQLRunner{db: db}
}

func (r *SQLRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	dbtx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(WithTx(ctx, dbtx)); err != nil {
		if rbErr := dbtx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback after %w: %v", err, rbErr)
		}
		return err
	}
	if err := dbtx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// NopRunner satisfies Runner for in-memory stores, which serialize on their
// own mutex and have no transaction to join.
type NopRunner struct{}

func (NopRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
