package service

import (
	"context"

	"point-anchor/internal/core/domain"
	"point-anchor/internal/core/ports"
	"point-anchor/internal/merkle"

	"github.com/rs/zerolog"
)

// VerifyServiceImpl implements ports.VerifyService. Verification is
// independent of the commit path: the leaf is recomputed from the
// transaction's current fields and replayed against the root read back from
// the chain, so any divergence between ledger, proofs, and anchor surfaces as
// not_verified.
type VerifyServiceImpl struct {
	txRepo     ports.TransactionRepository
	commitRepo ports.CommitRepository
	anchor     ports.ChainAnchor
	log        zerolog.Logger
}

// NewVerifyService creates a new VerifyServiceImpl.
func NewVerifyService(
	txRepo ports.TransactionRepository,
	commitRepo ports.CommitRepository,
	anchor ports.ChainAnchor,
	log zerolog.Logger,
) *VerifyServiceImpl {
	return &VerifyServiceImpl{
		txRepo:     txRepo,
		commitRepo: commitRepo,
		anchor:     anchor,
		log:        log,
	}
}

// Verify re-verifies each transaction id in isolation. A failure on one id
// never affects another; the batch call itself cannot fail.
func (s *VerifyServiceImpl) Verify(ctx context.Context, txIDs []string) []domain.VerifyResult {
	results := make([]domain.VerifyResult, 0, len(txIDs))
	for _, id := range txIDs {
		results = append(results, s.verifyOne(ctx, id))
	}
	return results
}

func (s *VerifyServiceImpl) verifyOne(ctx context.Context, txID string) domain.VerifyResult {
	result := domain.VerifyResult{TxID: txID, Status: domain.VerifyStatusNotVerified}

	tx, err := s.txRepo.GetByID(ctx, txID)
	if err != nil {
		s.log.Warn().Err(err).Str("tx_id", txID).Msg("Transaction lookup failed")
		return result
	}
	if tx == nil {
		s.log.Debug().Str("tx_id", txID).Msg("Unknown transaction id")
		return result
	}

	proofs, err := s.commitRepo.ProofsForTransaction(ctx, txID)
	if err != nil {
		s.log.Warn().Err(err).Str("tx_id", txID).Msg("Proof lookup failed")
		return result
	}
	if len(proofs) == 0 {
		s.log.Debug().Str("tx_id", txID).Msg("Transaction not yet committed")
		return result
	}

	commit, err := s.commitRepo.CommitForTransaction(ctx, txID)
	if err != nil {
		s.log.Warn().Err(err).Str("tx_id", txID).Msg("Commit lookup failed")
		return result
	}
	if commit == nil {
		s.log.Debug().Str("tx_id", txID).Msg("Transaction not yet committed")
		return result
	}
	result.AnchorTxID = commit.ID
	result.Label = commit.Label
	result.RootHash = commit.RootHash

	// The anchored value, not the stored one, is the authority.
	meta, err := s.anchor.GetMetadata(ctx, commit.ID)
	if err != nil {
		s.log.Warn().Err(err).Str("tx_id", txID).Str("anchor_tx_id", commit.ID).Msg("Metadata readback failed")
		return result
	}
	result.RootHash = meta.Payload

	steps := make([]merkle.Step, len(proofs))
	for i, p := range proofs {
		steps[i] = merkle.Step{Sibling: p.Sibling, Position: p.Position}
	}

	if merkle.Verify(*tx, steps, meta.Payload) {
		result.Status = domain.VerifyStatusVerified
	} else {
		s.log.Warn().Str("tx_id", txID).Str("anchor_tx_id", commit.ID).Msg("Proof replay does not reproduce the anchored root")
	}
	return result
}
