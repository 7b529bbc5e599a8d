package postgres

import (
	"context"
	"fmt"

	"point-anchor/internal/core/ports"

	"github.com/jackc/pgx/v5"
)

// Transactor implements ports.Transactor. Session state is set with
// transaction-local set_config calls (is_local = true), so the bypass flag
// and actor identity end with the transaction — nothing leaks into the
// pooled connection.
type Transactor struct {
	pool Pool
}

// NewTransactor creates a new Transactor wrapping the connection pool.
func NewTransactor(pool Pool) *Transactor {
	return &Transactor{pool: pool}
}

// Begin starts a database transaction carrying the given session options.
func (t *Transactor) Begin(ctx context.Context, opts ports.SessionOptions) (pgx.Tx, error) {
	tx, err := t.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}

	bypass := "off"
	if opts.Bypass {
		bypass = "on"
	}
	actor := opts.Actor
	if actor == "" {
		actor = "anonymous"
	}

	if _, err := tx.Exec(ctx, `SELECT set_config('app.rls_bypass', $1, true)`, bypass); err != nil {
		_ = tx.Rollback(ctx)
		return nil, fmt.Errorf("set rls bypass: %w", err)
	}
	if _, err := tx.Exec(ctx, `SELECT set_config('app.actor_id', $1, true)`, actor); err != nil {
		_ = tx.Rollback(ctx)
		return nil, fmt.Errorf("set actor id: %w", err)
	}

	if opts.StatementTimeout > 0 {
		// SET LOCAL does not take bind parameters.
		q := fmt.Sprintf("SET LOCAL statement_timeout = %d", opts.StatementTimeout.Milliseconds())
		if _, err := tx.Exec(ctx, q); err != nil {
			_ = tx.Rollback(ctx)
			return nil, fmt.Errorf("set statement timeout: %w", err)
		}
	}

	return tx, nil
}
