package domain

import "time"

// Position is the side a proof sibling occupied when the proof was generated.
// Replay uses sorted-pair hashing and does not depend on it; it is kept for
// schema compatibility and debuggability.
type Position string

const (
	PositionLeft  Position = "LEFT"
	PositionRight Position = "RIGHT"
)

// MerkleCommit records one anchored batch. ID equals the on-chain anchor
// transaction hash. Label is the monotonic metadata key, starting at 1.
// Rows are written exactly once per successful cycle and never mutated.
type MerkleCommit struct {
	ID          string    `json:"id"`
	RootHash    string    `json:"root_hash"` // lowercase hex SHA-256
	Label       int64     `json:"label"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
	CommittedAt time.Time `json:"committed_at"`
}

// MerkleProof is one step of a transaction's inclusion path. A transaction has
// either no proof rows (uncommitted) or the complete ordered path for exactly
// one commit.
type MerkleProof struct {
	CommitID string   `json:"commit_id"`
	TxID     string   `json:"tx_id"`
	Index    int      `json:"index"` // 0-based position in the path
	Sibling  string   `json:"sibling"` // lowercase hex SHA-256
	Position Position `json:"position"`
}

// IntentStatus tracks a commit intent through the two-phase anchor flow.
type IntentStatus string

const (
	IntentStatusPending   IntentStatus = "PENDING"   // written, anchor not yet submitted
	IntentStatusSubmitted IntentStatus = "SUBMITTED" // anchored on-chain, local rows not yet confirmed
	IntentStatusCompleted IntentStatus = "COMPLETED" // commit + proofs persisted
	IntentStatusFailed    IntentStatus = "FAILED"    // anchor submission failed, or unrecoverable mismatch
)

// CommitIntent is the durable record written before the on-chain submission.
// A SUBMITTED intent with no matching MerkleCommit marks the cross-system gap
// the recovery scan repairs: the batch is still structurally uncommitted, so
// the tree can be rebuilt and checked against RootHash.
type CommitIntent struct {
	ID          string       `json:"id"` // uuid
	Label       int64        `json:"label"`
	RootHash    string       `json:"root_hash"`
	PeriodStart time.Time    `json:"period_start"`
	PeriodEnd   time.Time    `json:"period_end"`
	TxCount     int          `json:"tx_count"`
	AnchorTxID  *string      `json:"anchor_tx_id,omitempty"`
	Status      IntentStatus `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// CommitResult is returned by one batch cycle. A zero value (empty AnchorTxID)
// means there was nothing to commit.
type CommitResult struct {
	AnchorTxID    string    `json:"anchor_tx_id"`
	Label         int64     `json:"label"`
	RootHash      string    `json:"root_hash"`
	PeriodStart   time.Time `json:"period_start"`
	PeriodEnd     time.Time `json:"period_end"`
	TxCount       int       `json:"tx_count"`
	AnchorAddress string    `json:"anchor_address"`
}

// IsEmpty reports whether the cycle was a no-op (no uncommitted transactions).
func (r *CommitResult) IsEmpty() bool {
	return r.AnchorTxID == ""
}
