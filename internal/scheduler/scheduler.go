package scheduler

import (
	"context"
	"errors"
	"time"

	"point-anchor/config"
	"point-anchor/internal/core/domain"
	"point-anchor/internal/core/ports"
	"point-anchor/pkg/apperror"

	"github.com/rs/zerolog"
)

// Scheduler invokes the commit cycle on a fixed period. The deployment runs a
// single active instance; the redis run-lock only turns an accidental second
// instance into a skip instead of a race on label allocation and output
// selection.
type Scheduler struct {
	commits ports.CommitService
	lock    ports.RunLock
	period  time.Duration
	lockTTL time.Duration
	log     zerolog.Logger
}

// New creates a Scheduler.
func New(commits ports.CommitService, lock ports.RunLock, cfg config.CommitConfig, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		commits: commits,
		lock:    lock,
		period:  cfg.Period,
		lockTTL: cfg.LockTTL,
		log:     log.With().Str("component", "scheduler").Logger(),
	}
}

// Run ticks until the context is canceled. It blocks; callers start it in its
// own goroutine.
func (s *Scheduler) Run(ctx context.Context) {
	s.log.Info().Dur("period", s.period).Msg("Commit scheduler started")

	ticker := time.NewTicker(s.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("Commit scheduler stopped")
			return
		case <-ticker.C:
			if _, err := s.RunOnce(ctx); err != nil {
				var appErr *apperror.AppError
				if errors.As(err, &appErr) && appErr.Code == "SYS_002" {
					s.log.Info().Msg("Commit cycle skipped, lock held elsewhere")
					continue
				}
				s.log.Error().Err(err).Msg("Scheduled commit cycle failed")
			}
		}
	}
}

// RunOnce runs a single lock-guarded commit cycle. The on-demand HTTP trigger
// goes through here too, so it shares the lock with the ticker.
func (s *Scheduler) RunOnce(ctx context.Context) (*domain.CommitResult, error) {
	acquired, err := s.lock.Acquire(ctx, s.lockTTL)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if !acquired {
		return nil, apperror.ErrLockHeld()
	}
	defer func() {
		if err := s.lock.Release(ctx); err != nil {
			s.log.Warn().Err(err).Msg("Failed to release run lock")
		}
	}()

	result, err := s.commits.Commit(ctx)
	if err != nil {
		return nil, err
	}
	if result.IsEmpty() {
		s.log.Info().Msg("Commit cycle ran, nothing to commit")
	} else {
		s.log.Info().
			Str("anchor_tx_id", result.AnchorTxID).
			Int64("label", result.Label).
			Int("tx_count", result.TxCount).
			Msg("Commit cycle finished")
	}
	return result, nil
}
