package postgres

import (
	"context"
	"fmt"
	"time"

	"point-anchor/internal/core/domain"
)

// IntentRepo implements ports.IntentRepository. Each write is a single
// autocommitted statement: intents must survive the batch transaction they
// guard, so they never share it.
type IntentRepo struct {
	pool Pool
}

// NewIntentRepo creates a new IntentRepo.
func NewIntentRepo(pool Pool) *IntentRepo {
	return &IntentRepo{pool: pool}
}

// Create inserts a PENDING intent.
func (r *IntentRepo) Create(ctx context.Context, intent *domain.CommitIntent) error {
	query := `INSERT INTO t_commit_intents
		(id, label, root_hash, period_start, period_end, tx_count, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)`

	_, err := r.pool.Exec(ctx, query,
		intent.ID, intent.Label, intent.RootHash,
		intent.PeriodStart, intent.PeriodEnd, intent.TxCount,
		string(domain.IntentStatusPending), intent.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert commit intent: %w", err)
	}
	return nil
}

// MarkSubmitted stamps the anchor transaction id right after on-chain
// submission succeeded.
func (r *IntentRepo) MarkSubmitted(ctx context.Context, id string, anchorTxID string) error {
	return r.setStatus(ctx, id, domain.IntentStatusSubmitted, &anchorTxID)
}

// MarkCompleted records that commit and proof rows are durably persisted.
func (r *IntentRepo) MarkCompleted(ctx context.Context, id string) error {
	return r.setStatus(ctx, id, domain.IntentStatusCompleted, nil)
}

// MarkFailed records an aborted submission or an unrecoverable mismatch.
func (r *IntentRepo) MarkFailed(ctx context.Context, id string) error {
	return r.setStatus(ctx, id, domain.IntentStatusFailed, nil)
}

func (r *IntentRepo) setStatus(ctx context.Context, id string, status domain.IntentStatus, anchorTxID *string) error {
	var err error
	if anchorTxID != nil {
		_, err = r.pool.Exec(ctx,
			`UPDATE t_commit_intents SET status = $1, anchor_tx_id = $2, updated_at = $3 WHERE id = $4`,
			string(status), *anchorTxID, time.Now().UTC(), id)
	} else {
		_, err = r.pool.Exec(ctx,
			`UPDATE t_commit_intents SET status = $1, updated_at = $2 WHERE id = $3`,
			string(status), time.Now().UTC(), id)
	}
	if err != nil {
		return fmt.Errorf("update commit intent %s: %w", id, err)
	}
	return nil
}

// ListSubmitted returns intents anchored on-chain whose local rows were never
// confirmed, oldest first.
func (r *IntentRepo) ListSubmitted(ctx context.Context) ([]domain.CommitIntent, error) {
	query := `SELECT id, label, root_hash, period_start, period_end, tx_count, anchor_tx_id, status, created_at, updated_at
		FROM t_commit_intents
		WHERE status = $1
		ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, string(domain.IntentStatusSubmitted))
	if err != nil {
		return nil, fmt.Errorf("query submitted intents: %w", err)
	}
	defer rows.Close()

	var intents []domain.CommitIntent
	for rows.Next() {
		var in domain.CommitIntent
		var status string
		err := rows.Scan(&in.ID, &in.Label, &in.RootHash, &in.PeriodStart, &in.PeriodEnd,
			&in.TxCount, &in.AnchorTxID, &status, &in.CreatedAt, &in.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan commit intent: %w", err)
		}
		in.Status = domain.IntentStatus(status)
		intents = append(intents, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate commit intents: %w", err)
	}
	return intents, nil
}
