package domain

// VerifyStatus is the per-transaction verification outcome.
type VerifyStatus string

const (
	VerifyStatusVerified    VerifyStatus = "verified"
	VerifyStatusNotVerified VerifyStatus = "not_verified"
)

// VerifyResult is the outcome of independently re-verifying one transaction id.
// On failure the hash fields carry whatever partial data was resolved before the
// step that missed.
type VerifyResult struct {
	TxID       string       `json:"tx_id"`
	Status     VerifyStatus `json:"status"`
	AnchorTxID string       `json:"anchor_tx_id,omitempty"` // owning commit id
	RootHash   string       `json:"root_hash,omitempty"`    // anchored root used for replay
	Label      int64        `json:"label,omitempty"`
}
