// Package scheduler hosts the periodic background drivers: the expired
// reset-token sweep and the email-outbox dispatch.
package scheduler

import (
	"context"
	"time"

	"github.com/ViniciusHP/autenticacao-api/internal/logging"
	"github.com/ViniciusHP/autenticacao-api/internal/server/passwordreset"
)

// ResetLedger is the slice of the reset service the sweeper needs.
type ResetLedger interface {
	FindExpiredBefore(ctx context.Context, before time.Time, skip, limit int) ([]*passwordreset.Record, error)
	DeleteAll(ctx context.Context, records []*passwordreset.Record) error
}

// ResetSweeper periodically removes expired reset tokens in fixed-size
// batches so the ledger does not grow without bound.
type ResetSweeper struct {
	ledger    ResetLedger
	logger    logging.Logger
	interval  time.Duration
	batchSize int
}

func NewResetSweeper(ledger ResetLedger, logger logging.Logger, interval time.Duration, batchSize int) *ResetSweeper {
	return &ResetSweeper{
		ledger:    ledger,
		logger:    logger.With("module", "reset-sweeper"),
		interval:  interval,
		batchSize: batchSize,
	}
}

// Run drives the sweep on the configured interval until the context is
// cancelled. Passes never overlap: a slow sweep delays the next tick.
func (s *ResetSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.Sweep(ctx); err != nil {
				s.logger.Error(ctx, "error sweeping expired reset tokens", "error", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

// Sweep deletes every reset token already expired at the moment the pass
// starts, batch by batch. When the ledger holds no expired tokens the pass
// is silent.
func (s *ResetSweeper) Sweep(ctx context.Context) error {
	started := false
	removed := 0

	// Each deleted batch frees the next page, so the query always starts
	// at offset zero. A zero cutoff means "expired as of now".
	for {
		expired, err := s.ledger.FindExpiredBefore(ctx, time.Time{}, 0, s.batchSize)
		if err != nil {
			return err
		}
		if len(expired) == 0 {
			break
		}

		if !started {
			started = true
			s.logger.Info(ctx, "starting expired reset token sweep")
		}

		if err := s.ledger.DeleteAll(ctx, expired); err != nil {
			return err
		}
		removed += len(expired)

		if len(expired) < s.batchSize {
			break
		}
	}

	if started {
		s.logger.Info(ctx, "finished expired reset token sweep", "removed", removed)
	}
	return nil
}
