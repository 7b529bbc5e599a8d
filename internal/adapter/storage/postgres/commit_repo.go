package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"point-anchor/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// proofChunkSize caps one bulk insert; a weekly batch can carry tens of
// thousands of proof rows.
const proofChunkSize = 1000

// CommitRepo implements ports.CommitRepository over t_merkle_commits and
// t_merkle_proofs. The commit cycle is the only writer.
type CommitRepo struct {
	pool Pool
}

// NewCommitRepo creates a new CommitRepo.
func NewCommitRepo(pool Pool) *CommitRepo {
	return &CommitRepo{pool: pool}
}

// NextLabel allocates the next metadata label inside the caller's
// transaction. UNIQUE(label) makes a concurrent allocation fail the insert
// instead of producing a duplicate.
func (r *CommitRepo) NextLabel(ctx context.Context, tx pgx.Tx) (int64, error) {
	var next int64
	err := tx.QueryRow(ctx, `SELECT COALESCE(MAX(label), 0) + 1 FROM t_merkle_commits`).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("next commit label: %w", err)
	}
	return next, nil
}

// Create inserts the commit row, keyed by the anchor transaction hash.
func (r *CommitRepo) Create(ctx context.Context, tx pgx.Tx, commit *domain.MerkleCommit) error {
	query := `INSERT INTO t_merkle_commits (id, root_hash, label, period_start, period_end, committed_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := tx.Exec(ctx, query,
		commit.ID, commit.RootHash, commit.Label,
		commit.PeriodStart, commit.PeriodEnd, commit.CommittedAt,
	)
	if err != nil {
		return fmt.Errorf("insert merkle commit: %w", err)
	}
	return nil
}

// CreateProofs bulk-inserts proof rows in chunks of proofChunkSize. The
// caller's transaction must carry an extended statement timeout; a large
// batch legitimately takes tens of seconds.
func (r *CommitRepo) CreateProofs(ctx context.Context, tx pgx.Tx, proofs []domain.MerkleProof) error {
	for start := 0; start < len(proofs); start += proofChunkSize {
		end := start + proofChunkSize
		if end > len(proofs) {
			end = len(proofs)
		}
		if err := insertProofChunk(ctx, tx, proofs[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func insertProofChunk(ctx context.Context, tx pgx.Tx, chunk []domain.MerkleProof) error {
	var sb strings.Builder
	sb.WriteString(`INSERT INTO t_merkle_proofs (commit_id, tx_id, path_index, sibling, position) VALUES `)

	args := make([]any, 0, len(chunk)*5)
	for i, p := range chunk {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 5
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4, base+5)
		args = append(args, p.CommitID, p.TxID, p.Index, p.Sibling, string(p.Position))
	}

	if _, err := tx.Exec(ctx, sb.String(), args...); err != nil {
		return fmt.Errorf("insert merkle proof chunk: %w", err)
	}
	return nil
}

// GetByID fetches a commit by anchor transaction id. Returns nil, nil when
// absent — the recovery scan relies on that to detect the two-phase gap.
func (r *CommitRepo) GetByID(ctx context.Context, id string) (*domain.MerkleCommit, error) {
	query := `SELECT id, root_hash, label, period_start, period_end, committed_at
		FROM t_merkle_commits WHERE id = $1`
	return scanCommit(r.pool.QueryRow(ctx, query, id))
}

// ProofsForTransaction returns the transaction's ordered proof path, or nil
// when the transaction is uncommitted.
func (r *CommitRepo) ProofsForTransaction(ctx context.Context, txID string) ([]domain.MerkleProof, error) {
	query := `SELECT commit_id, tx_id, path_index, sibling, position
		FROM t_merkle_proofs
		WHERE tx_id = $1
		ORDER BY path_index ASC`

	rows, err := r.pool.Query(ctx, query, txID)
	if err != nil {
		return nil, fmt.Errorf("query proofs for transaction: %w", err)
	}
	defer rows.Close()

	var proofs []domain.MerkleProof
	for rows.Next() {
		var p domain.MerkleProof
		var pos string
		if err := rows.Scan(&p.CommitID, &p.TxID, &p.Index, &p.Sibling, &pos); err != nil {
			return nil, fmt.Errorf("scan proof row: %w", err)
		}
		p.Position = domain.Position(pos)
		proofs = append(proofs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate proof rows: %w", err)
	}
	return proofs, nil
}

// CommitForTransaction resolves the commit that owns a transaction's proof
// rows. Returns nil, nil for uncommitted transactions.
func (r *CommitRepo) CommitForTransaction(ctx context.Context, txID string) (*domain.MerkleCommit, error) {
	query := `SELECT c.id, c.root_hash, c.label, c.period_start, c.period_end, c.committed_at
		FROM t_merkle_commits c
		JOIN t_merkle_proofs p ON p.commit_id = c.id
		WHERE p.tx_id = $1
		LIMIT 1`
	return scanCommit(r.pool.QueryRow(ctx, query, txID))
}

func scanCommit(row pgx.Row) (*domain.MerkleCommit, error) {
	c := &domain.MerkleCommit{}
	err := row.Scan(&c.ID, &c.RootHash, &c.Label, &c.PeriodStart, &c.PeriodEnd, &c.CommittedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan merkle commit: %w", err)
	}
	return c, nil
}
