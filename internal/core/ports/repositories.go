package ports

import (
	"context"
	"time"

	"point-anchor/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

//go:generate mockgen -source=repositories.go -destination=mocks/repositories_mock.go -package=mocks

// SessionOptions configures the execution context of one database transaction.
// Privilege is scoped lexically: it applies from Begin until commit/rollback
// and nowhere else.
type SessionOptions struct {
	Bypass           bool          // bypass row-level policies for this transaction only
	Actor            string        // actor identity recorded against writes
	StatementTimeout time.Duration // 0 = server default; the proof-write step needs an extended value
}

// Transactor opens database transactions with an explicit session context.
type Transactor interface {
	Begin(ctx context.Context, opts SessionOptions) (pgx.Tx, error)
}

// TransactionRepository reads point-transfer rows. This core never writes them.
// Methods taking pgx.Tx run inside the batch-cycle transaction; the others use
// the normal session.
type TransactionRepository interface {
	// OldestUncommitted returns the oldest transaction with zero proof rows,
	// by createdAt ascending. nil, nil when everything is committed.
	OldestUncommitted(ctx context.Context, tx pgx.Tx) (*domain.PointTransaction, error)
	// UncommittedSince returns every transaction with zero proof rows and
	// createdAt >= since, ascending. The upper bound is open on purpose.
	UncommittedSince(ctx context.Context, tx pgx.Tx, since time.Time) ([]domain.PointTransaction, error)
	// UncommittedInPeriod bounds both ends; used by the recovery scan to
	// rebuild an intent's batch.
	UncommittedInPeriod(ctx context.Context, tx pgx.Tx, start, end time.Time) ([]domain.PointTransaction, error)
	// GetByID returns nil, nil when the id is unknown.
	GetByID(ctx context.Context, id string) (*domain.PointTransaction, error)
}

// CommitRepository persists and reads merkle commits and proof rows.
// The commit cycle is the sole writer.
type CommitRepository interface {
	// NextLabel reads max(label)+1 inside the given transaction. The UNIQUE
	// constraint on label turns a concurrent allocation into a failed
	// transaction instead of a duplicate.
	NextLabel(ctx context.Context, tx pgx.Tx) (int64, error)
	Create(ctx context.Context, tx pgx.Tx, commit *domain.MerkleCommit) error
	// CreateProofs bulk-inserts proof rows in chunks (store bulk limit).
	CreateProofs(ctx context.Context, tx pgx.Tx, proofs []domain.MerkleProof) error
	// GetByID returns nil, nil when no commit row exists for the anchor tx id.
	GetByID(ctx context.Context, id string) (*domain.MerkleCommit, error)
	// ProofsForTransaction returns the ordered path, or nil when uncommitted.
	ProofsForTransaction(ctx context.Context, txID string) ([]domain.MerkleProof, error)
	// CommitForTransaction resolves the commit owning a transaction's proofs.
	CommitForTransaction(ctx context.Context, txID string) (*domain.MerkleCommit, error)
}

// IntentRepository persists commit intents. Intent writes run in their own
// short transactions so they survive a failed batch transaction.
type IntentRepository interface {
	Create(ctx context.Context, intent *domain.CommitIntent) error
	MarkSubmitted(ctx context.Context, id string, anchorTxID string) error
	MarkCompleted(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string) error
	// ListSubmitted returns intents stuck in SUBMITTED: anchored on-chain but
	// with no confirmed local commit.
	ListSubmitted(ctx context.Context) ([]domain.CommitIntent, error)
}
