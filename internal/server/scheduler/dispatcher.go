package scheduler

import (
	"context"
	"time"

	"github.com/ViniciusHP/autenticacao-api/internal/logging"
	"github.com/ViniciusHP/autenticacao-api/internal/server/emails"
	"github.com/ViniciusHP/autenticacao-api/internal/server/mail"
	"github.com/ViniciusHP/autenticacao-api/internal/timex"
)

// Outbox is the slice of the email service the dispatcher needs.
type Outbox interface {
	FindUnprocessed(ctx context.Context, skip, limit int) ([]*emails.Email, error)
	UpdateAll(ctx context.Context, batch []*emails.Email) error
}

// EmailDispatcher periodically drains the outbox, sending one batch per
// pass. A failed item is marked with its error and never blocks delivery
// of the rest of the batch.
type EmailDispatcher struct {
	outbox    Outbox
	sender    mail.Sender
	clock     timex.Clock
	logger    logging.Logger
	interval  time.Duration
	batchSize int
}

func NewEmailDispatcher(outbox Outbox, sender mail.Sender, clock timex.Clock, logger logging.Logger, interval time.Duration, batchSize int) *EmailDispatcher {
	return &EmailDispatcher{
		outbox:    outbox,
		sender:    sender,
		clock:     clock,
		logger:    logger.With("module", "email-dispatcher"),
		interval:  interval,
		batchSize: batchSize,
	}
}

// Run drives the dispatch on the configured interval until the context is
// cancelled.
func (d *EmailDispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := d.Dispatch(ctx); err != nil {
				d.logger.Error(ctx, "error dispatching outbox emails", "error", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

// Dispatch sends up to one batch of unprocessed items and persists every
// outcome, successes and failures alike.
func (d *EmailDispatcher) Dispatch(ctx context.Context) error {
	batch, err := d.outbox.FindUnprocessed(ctx, 0, d.batchSize)
	if err != nil {
		return err
	}
	if len(batch) == 0 {
		return nil
	}

	d.logger.Info(ctx, "dispatching outbox emails", "count", len(batch))

	failures := 0
	for _, email := range batch {
		if err := d.sender.Send(ctx, email); err != nil {
			failures++
			email.Status = emails.StatusError
			email.ErrorMessage = err.Error()
			d.logger.Warn(ctx, "error sending email", "email_id", email.ID, "error", err)
			continue
		}

		now := d.clock.Now()
		email.Status = emails.StatusProcessed
		email.ErrorMessage = ""
		email.ProcessedAt = &now
	}

	if err := d.outbox.UpdateAll(ctx, batch); err != nil {
		return err
	}

	d.logger.Info(ctx, "finished dispatching outbox emails", "sent", len(batch)-failures, "failed", failures)
	return nil
}
