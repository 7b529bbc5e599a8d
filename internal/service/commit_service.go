package service

import (
	"context"
	"fmt"
	"time"

	"point-anchor/config"
	"point-anchor/internal/core/domain"
	"point-anchor/internal/core/ports"
	"point-anchor/internal/merkle"
	"point-anchor/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CommitServiceImpl implements ports.CommitService: one batch cycle collecting
// every structurally uncommitted transaction, anchoring the tree root on-chain
// and persisting the commit and proof rows.
type CommitServiceImpl struct {
	transactor ports.Transactor
	txRepo     ports.TransactionRepository
	commitRepo ports.CommitRepository
	intentRepo ports.IntentRepository
	anchor     ports.ChainAnchor
	commitCfg  config.CommitConfig
	chainCfg   config.ChainConfig
	log        zerolog.Logger
}

// NewCommitService creates a new CommitServiceImpl.
func NewCommitService(
	transactor ports.Transactor,
	txRepo ports.TransactionRepository,
	commitRepo ports.CommitRepository,
	intentRepo ports.IntentRepository,
	anchor ports.ChainAnchor,
	commitCfg config.CommitConfig,
	chainCfg config.ChainConfig,
	log zerolog.Logger,
) *CommitServiceImpl {
	return &CommitServiceImpl{
		transactor: transactor,
		txRepo:     txRepo,
		commitRepo: commitRepo,
		intentRepo: intentRepo,
		anchor:     anchor,
		commitCfg:  commitCfg,
		chainCfg:   chainCfg,
		log:        log,
	}
}

func (s *CommitServiceImpl) elevated() ports.SessionOptions {
	return ports.SessionOptions{
		Bypass:           true,
		Actor:            s.commitCfg.SystemActor,
		StatementTimeout: s.commitCfg.TxTimeout,
	}
}

// Commit runs one batch cycle. An empty ledger is a no-op returning an empty
// result. Any intent left SUBMITTED by a previous crash is repaired first.
func (s *CommitServiceImpl) Commit(ctx context.Context) (*domain.CommitResult, error) {
	if err := s.recoverSubmitted(ctx); err != nil {
		return nil, err
	}

	dbTx, err := s.transactor.Begin(ctx, s.elevated())
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin commit tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	// 1. Oldest transaction without proof rows anchors the batch window.
	oldest, err := s.txRepo.OldestUncommitted(ctx, dbTx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("find oldest uncommitted: %w", err))
	}
	if oldest == nil {
		s.log.Info().Msg("No uncommitted transactions, nothing to commit")
		return &domain.CommitResult{}, nil
	}

	// 2. Everything uncommitted from that point on, createdAt ascending.
	batch, err := s.txRepo.UncommittedSince(ctx, dbTx, oldest.CreatedAt)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("collect uncommitted batch: %w", err))
	}

	// 3. Build the tree.
	tree, err := merkle.Build(batch)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("build merkle tree: %w", err))
	}
	root := tree.Root()

	// 4. Label allocation shares the transaction with the commit insert;
	// UNIQUE(label) turns a race into a failed transaction.
	label, err := s.commitRepo.NextLabel(ctx, dbTx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("allocate label: %w", err))
	}

	periodStart := oldest.CreatedAt
	periodEnd := batch[len(batch)-1].CreatedAt
	now := time.Now().UTC()

	// 5. Durable intent before the on-chain submission, so a crash between
	// submission and local persistence leaves a repairable trace.
	intent := &domain.CommitIntent{
		ID:          uuid.NewString(),
		Label:       label,
		RootHash:    root,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		TxCount:     tree.Size(),
		Status:      domain.IntentStatusPending,
		CreatedAt:   now,
	}
	if err := s.intentRepo.Create(ctx, intent); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create commit intent: %w", err))
	}

	s.log.Info().
		Int64("label", label).
		Str("root_hash", root).
		Int("tx_count", tree.Size()).
		Msg("Anchoring batch root on-chain")

	anchorTxID, err := s.anchor.Commit(ctx, label, root)
	if err != nil {
		// No ledger rows were written; the next cycle rebuilds the same batch.
		if markErr := s.intentRepo.MarkFailed(ctx, intent.ID); markErr != nil {
			s.log.Error().Err(markErr).Str("intent_id", intent.ID).Msg("Failed to mark intent FAILED")
		}
		return nil, err
	}

	// 6. The anchor is on-chain from here on: every failure below leaves a
	// SUBMITTED intent for the recovery scan.
	if err := s.intentRepo.MarkSubmitted(ctx, intent.ID, anchorTxID); err != nil {
		return nil, apperror.ErrCommitInconsistency(fmt.Errorf("mark intent submitted: %w", err))
	}

	commit := &domain.MerkleCommit{
		ID:          anchorTxID,
		RootHash:    root,
		Label:       label,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		CommittedAt: now,
	}
	if err := s.commitRepo.Create(ctx, dbTx, commit); err != nil {
		return nil, apperror.ErrCommitInconsistency(fmt.Errorf("persist commit row: %w", err))
	}

	// 7-8. Every leaf's path, flattened and bulk-inserted.
	if err := s.commitRepo.CreateProofs(ctx, dbTx, proofRows(tree, batch, anchorTxID)); err != nil {
		return nil, apperror.ErrCommitInconsistency(fmt.Errorf("persist proof rows: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.ErrCommitInconsistency(fmt.Errorf("commit batch tx: %w", err))
	}

	if err := s.intentRepo.MarkCompleted(ctx, intent.ID); err != nil {
		// The commit row exists; the next recovery scan completes the intent.
		s.log.Warn().Err(err).Str("intent_id", intent.ID).Msg("Failed to mark intent COMPLETED")
	}

	s.log.Info().
		Str("anchor_tx_id", anchorTxID).
		Int64("label", label).
		Str("root_hash", root).
		Int("tx_count", tree.Size()).
		Msg("Batch committed")

	s.awaitConfirmation(ctx, anchorTxID)

	return &domain.CommitResult{
		AnchorTxID:    anchorTxID,
		Label:         label,
		RootHash:      root,
		PeriodStart:   periodStart,
		PeriodEnd:     periodEnd,
		TxCount:       tree.Size(),
		AnchorAddress: s.anchor.Address(),
	}, nil
}

// awaitConfirmation is best effort: the commit is already durable on both
// sides, so a timeout is only logged.
func (s *CommitServiceImpl) awaitConfirmation(ctx context.Context, anchorTxID string) {
	if s.chainCfg.ConfirmMaxAttempts <= 0 {
		return
	}
	confirmed, err := s.anchor.WaitForConfirmation(ctx, anchorTxID, s.chainCfg.ConfirmMaxAttempts, s.chainCfg.ConfirmInterval)
	if err != nil {
		s.log.Warn().Err(err).Str("anchor_tx_id", anchorTxID).Msg("Confirmation polling aborted")
		return
	}
	if !confirmed {
		s.log.Warn().Str("anchor_tx_id", anchorTxID).Msg("Anchor not confirmed within polling window")
	}
}

// recoverSubmitted repairs the cross-system gap: intents anchored on-chain
// whose commit rows never landed. The batch is still structurally uncommitted,
// so it can be rebuilt and checked against the anchored root.
func (s *CommitServiceImpl) recoverSubmitted(ctx context.Context) error {
	intents, err := s.intentRepo.ListSubmitted(ctx)
	if err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("list submitted intents: %w", err))
	}

	for _, intent := range intents {
		if intent.AnchorTxID == nil {
			// SUBMITTED without an anchor id cannot be repaired automatically.
			s.log.Error().Str("intent_id", intent.ID).Msg("Submitted intent carries no anchor tx id")
			if err := s.intentRepo.MarkFailed(ctx, intent.ID); err != nil {
				return apperror.ErrDatabaseError(err)
			}
			continue
		}

		existing, err := s.commitRepo.GetByID(ctx, *intent.AnchorTxID)
		if err != nil {
			return apperror.ErrDatabaseError(fmt.Errorf("check commit for intent %s: %w", intent.ID, err))
		}
		if existing != nil {
			// Rows landed, only the COMPLETED stamp was lost.
			if err := s.intentRepo.MarkCompleted(ctx, intent.ID); err != nil {
				return apperror.ErrDatabaseError(err)
			}
			continue
		}

		if err := s.backfillIntent(ctx, intent); err != nil {
			return err
		}
	}
	return nil
}

func (s *CommitServiceImpl) backfillIntent(ctx context.Context, intent domain.CommitIntent) error {
	s.log.Warn().
		Str("intent_id", intent.ID).
		Str("anchor_tx_id", *intent.AnchorTxID).
		Int64("label", intent.Label).
		Msg("Backfilling anchored commit with missing local rows")

	dbTx, err := s.transactor.Begin(ctx, s.elevated())
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin recovery tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	batch, err := s.txRepo.UncommittedInPeriod(ctx, dbTx, intent.PeriodStart, intent.PeriodEnd)
	if err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("rebuild intent batch: %w", err))
	}

	tree, err := merkle.Build(batch)
	if err != nil || tree.Root() != intent.RootHash {
		// The off-chain rows no longer reproduce the anchored root.
		if markErr := s.intentRepo.MarkFailed(ctx, intent.ID); markErr != nil {
			s.log.Error().Err(markErr).Str("intent_id", intent.ID).Msg("Failed to mark intent FAILED")
		}
		return apperror.ErrIntentMismatch(intent.ID)
	}

	commit := &domain.MerkleCommit{
		ID:          *intent.AnchorTxID,
		RootHash:    intent.RootHash,
		Label:       intent.Label,
		PeriodStart: intent.PeriodStart,
		PeriodEnd:   intent.PeriodEnd,
		CommittedAt: time.Now().UTC(),
	}
	if err := s.commitRepo.Create(ctx, dbTx, commit); err != nil {
		return apperror.ErrCommitInconsistency(fmt.Errorf("backfill commit row: %w", err))
	}
	if err := s.commitRepo.CreateProofs(ctx, dbTx, proofRows(tree, batch, commit.ID)); err != nil {
		return apperror.ErrCommitInconsistency(fmt.Errorf("backfill proof rows: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return apperror.ErrCommitInconsistency(fmt.Errorf("commit recovery tx: %w", err))
	}
	if err := s.intentRepo.MarkCompleted(ctx, intent.ID); err != nil {
		return apperror.ErrDatabaseError(err)
	}

	s.log.Info().Str("intent_id", intent.ID).Str("anchor_tx_id", commit.ID).Msg("Intent backfilled")
	return nil
}

// proofRows flattens every leaf's path into insertable rows, batch order
// preserved, step order indexed from zero.
func proofRows(tree *merkle.Tree, batch []domain.PointTransaction, commitID string) []domain.MerkleProof {
	all := tree.AllProofs()
	rows := make([]domain.MerkleProof, 0, len(batch))
	for _, tx := range batch {
		for i, step := range all[tx.ID] {
			rows = append(rows, domain.MerkleProof{
				CommitID: commitID,
				TxID:     tx.ID,
				Index:    i,
				Sibling:  step.Sibling,
				Position: step.Position,
			})
		}
	}
	return rows
}
