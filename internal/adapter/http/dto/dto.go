package dto

import (
	"time"

	"point-anchor/internal/core/domain"
)

// VerifyRequest is the request body for batch verification.
type VerifyRequest struct {
	TxIDs []string `json:"tx_ids" binding:"required,min=1,max=100,dive,required"`
}

// VerifyItemResponse is one transaction's verification outcome.
type VerifyItemResponse struct {
	TxID       string `json:"tx_id"`
	Status     string `json:"status"`
	AnchorTxID string `json:"anchor_tx_id,omitempty"`
	RootHash   string `json:"root_hash,omitempty"`
	Label      int64  `json:"label,omitempty"`
}

// CommitResponse is the response body for a commit cycle.
type CommitResponse struct {
	AnchorTxID    string     `json:"anchor_tx_id,omitempty"`
	Label         int64      `json:"label,omitempty"`
	RootHash      string     `json:"root_hash,omitempty"`
	PeriodStart   *time.Time `json:"period_start,omitempty"`
	PeriodEnd     *time.Time `json:"period_end,omitempty"`
	TxCount       int        `json:"tx_count"`
	AnchorAddress string     `json:"anchor_address,omitempty"`
}

// CommitDetailResponse is the stored record of one anchored batch.
type CommitDetailResponse struct {
	AnchorTxID  string    `json:"anchor_tx_id"`
	RootHash    string    `json:"root_hash"`
	Label       int64     `json:"label"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
	CommittedAt time.Time `json:"committed_at"`
}

// MetadataResponse is the on-chain readback of an anchor transaction.
type MetadataResponse struct {
	AnchorTxID string `json:"anchor_tx_id"`
	Label      int64  `json:"label"`
	Payload    string `json:"payload"`
}

// WalletResponse reports the anchor wallet's address and balance.
type WalletResponse struct {
	Address  string `json:"address"`
	Lovelace int64  `json:"lovelace"`
}

// ToVerifyItemResponse converts a domain verify result.
func ToVerifyItemResponse(r domain.VerifyResult) VerifyItemResponse {
	return VerifyItemResponse{
		TxID:       r.TxID,
		Status:     string(r.Status),
		AnchorTxID: r.AnchorTxID,
		RootHash:   r.RootHash,
		Label:      r.Label,
	}
}

// ToCommitResponse converts a commit cycle result. An empty cycle yields a
// body with zero tx_count and no anchor fields.
func ToCommitResponse(r *domain.CommitResult) CommitResponse {
	resp := CommitResponse{TxCount: r.TxCount}
	if r.IsEmpty() {
		return resp
	}
	resp.AnchorTxID = r.AnchorTxID
	resp.Label = r.Label
	resp.RootHash = r.RootHash
	resp.PeriodStart = &r.PeriodStart
	resp.PeriodEnd = &r.PeriodEnd
	resp.AnchorAddress = r.AnchorAddress
	return resp
}

// ToCommitDetailResponse converts a stored commit row.
func ToCommitDetailResponse(c *domain.MerkleCommit) CommitDetailResponse {
	return CommitDetailResponse{
		AnchorTxID:  c.ID,
		RootHash:    c.RootHash,
		Label:       c.Label,
		PeriodStart: c.PeriodStart,
		PeriodEnd:   c.PeriodEnd,
		CommittedAt: c.CommittedAt,
	}
}
