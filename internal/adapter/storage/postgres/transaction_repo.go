package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"point-anchor/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

const txColumns = `id, from_wallet, to_wallet, from_point_change, to_point_change, reason, created_by, created_at`

// TransactionRepo implements ports.TransactionRepository. This core only
// reads t_transactions; the transfer flow owns the writes.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// OldestUncommitted returns the oldest transaction with no proof rows.
// "Uncommitted" is structural — the absence of proof rows — which keeps the
// scan resumable after a failed cycle without any status flag to reset.
func (r *TransactionRepo) OldestUncommitted(ctx context.Context, tx pgx.Tx) (*domain.PointTransaction, error) {
	query := `SELECT ` + txColumns + `
		FROM t_transactions t
		WHERE NOT EXISTS (SELECT 1 FROM t_merkle_proofs p WHERE p.tx_id = t.id)
		ORDER BY created_at ASC
		LIMIT 1`

	return scanTransaction(tx.QueryRow(ctx, query))
}

// UncommittedSince returns all proof-less transactions created at or after
// since, in createdAt ascending order. No upper bound: everything pending up
// to "now" joins the batch.
func (r *TransactionRepo) UncommittedSince(ctx context.Context, tx pgx.Tx, since time.Time) ([]domain.PointTransaction, error) {
	query := `SELECT ` + txColumns + `
		FROM t_transactions t
		WHERE t.created_at >= $1
		  AND NOT EXISTS (SELECT 1 FROM t_merkle_proofs p WHERE p.tx_id = t.id)
		ORDER BY created_at ASC`

	rows, err := tx.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("query uncommitted since: %w", err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

// UncommittedInPeriod bounds both ends of the createdAt range. The recovery
// scan uses it to rebuild the exact batch an intent recorded.
func (r *TransactionRepo) UncommittedInPeriod(ctx context.Context, tx pgx.Tx, start, end time.Time) ([]domain.PointTransaction, error) {
	query := `SELECT ` + txColumns + `
		FROM t_transactions t
		WHERE t.created_at >= $1 AND t.created_at <= $2
		  AND NOT EXISTS (SELECT 1 FROM t_merkle_proofs p WHERE p.tx_id = t.id)
		ORDER BY created_at ASC`

	rows, err := tx.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("query uncommitted in period: %w", err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

// GetByID fetches a transaction under the normal session. Returns nil, nil
// when the id is unknown.
func (r *TransactionRepo) GetByID(ctx context.Context, id string) (*domain.PointTransaction, error) {
	query := `SELECT ` + txColumns + ` FROM t_transactions WHERE id = $1`
	return scanTransaction(r.pool.QueryRow(ctx, query, id))
}

func collectTransactions(rows pgx.Rows) ([]domain.PointTransaction, error) {
	var txns []domain.PointTransaction
	for rows.Next() {
		var t domain.PointTransaction
		err := rows.Scan(
			&t.ID, &t.FromWallet, &t.ToWallet,
			&t.FromPointChange, &t.ToPointChange,
			&t.Reason, &t.CreatedBy, &t.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction rows: %w", err)
	}
	return txns, nil
}

func scanTransaction(row pgx.Row) (*domain.PointTransaction, error) {
	t := &domain.PointTransaction{}
	err := row.Scan(
		&t.ID, &t.FromWallet, &t.ToWallet,
		&t.FromPointChange, &t.ToPointChange,
		&t.Reason, &t.CreatedBy, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan transaction: %w", err)
	}
	return t, nil
}
