package ports

import (
	"context"
	"time"

	"point-anchor/internal/core/domain"
)

//go:generate mockgen -source=services.go -destination=mocks/services_mock.go -package=mocks

// AnchorMetadata is the content read back from an anchor transaction.
type AnchorMetadata struct {
	Label   int64  `json:"label"`
	Payload string `json:"payload"` // the anchored root hash, hex
}

// ChainAnchor submits and reads immutable anchor records on the public ledger.
type ChainAnchor interface {
	// Commit embeds payload as metadata under label in a new on-chain
	// transaction and returns its hash. The input is chosen from the wallet's
	// unspent outputs: largest balance first, subject to a minimum reserve.
	Commit(ctx context.Context, label int64, payload string) (string, error)
	// WaitForConfirmation polls the indexer until the transaction is in a
	// block or attempts are exhausted. Exhaustion is false, nil — a normal
	// outcome, not an error.
	WaitForConfirmation(ctx context.Context, anchorTxID string, maxAttempts int, interval time.Duration) (bool, error)
	// GetMetadata reads back previously anchored content.
	GetMetadata(ctx context.Context, anchorTxID string) (*AnchorMetadata, error)
	// Address returns the anchor wallet's address.
	Address() string
	// Balance returns the wallet's spendable balance in lovelace.
	Balance(ctx context.Context) (int64, error)
}

// CommitService runs one batch cycle: collect uncommitted transactions, build
// the tree, anchor the root, persist commit and proofs.
type CommitService interface {
	Commit(ctx context.Context) (*domain.CommitResult, error)
}

// VerifyService independently re-verifies transaction ids against the
// anchored roots. The batch call always succeeds; failures are per item.
type VerifyService interface {
	Verify(ctx context.Context, txIDs []string) []domain.VerifyResult
}

// RunLock serializes commit cycles across process instances. Best effort: the
// real guarantee is the single-active-scheduler deployment constraint.
type RunLock interface {
	// Acquire returns true if the lock was taken.
	Acquire(ctx context.Context, ttl time.Duration) (bool, error)
	Release(ctx context.Context) error
}
