package emails

import (
	"context"
	"strings"

	"github.com/ViniciusHP/autenticacao-api/internal/server/config"
	"github.com/ViniciusHP/autenticacao-api/internal/server/domain"
)

// Outgoing describes a message to be queued for delivery. Sender fields are
// filled in by the service from configuration.
type Outgoing struct {
	Subject    string
	Recipients []string
	Body       string
}

// Service queues outbound messages and exposes the batches the dispatch
// driver works on.
type Service struct {
	repo Repository
	mail config.MailConfig
}

func NewService(repo Repository, mail config.MailConfig) *Service {
	return &Service{
		repo: repo,
		mail: mail,
	}
}

// Enqueue validates and persists an unprocessed outbox item. The message is
// not sent here; delivery happens on the dispatch driver's schedule.
func (s *Service) Enqueue(ctx context.Context, outgoing *Outgoing) error {
	if err := validateOutgoing(outgoing); err != nil {
		return err
	}

	email := &Email{
		SenderAddress: s.mail.Username,
		SenderName:    s.mail.SenderName,
		Recipients:    outgoing.Recipients,
		Subject:       outgoing.Subject,
		Body:          outgoing.Body,
		Status:        StatusUnprocessed,
	}

	_, err := s.repo.Create(ctx, email)
	return err
}

// FindUnprocessed returns queued items awaiting delivery in creation order.
func (s *Service) FindUnprocessed(ctx context.Context, skip, limit int) ([]*Email, error) {
	return s.repo.FindByStatus(ctx, StatusUnprocessed, skip, limit)
}

// UpdateAll persists dispatch outcomes. Empty batches are rejected: the
// driver must not call this without work.
func (s *Service) UpdateAll(ctx context.Context, batch []*Email) error {
	if len(batch) == 0 {
		return domain.ErrInvalidArgument("email batch must not be empty")
	}
	return s.repo.UpdateAll(ctx, batch)
}

func validateOutgoing(outgoing *Outgoing) error {
	if outgoing == nil {
		return domain.ErrInvalidArgument("email must be informed")
	}
	if strings.TrimSpace(outgoing.Subject) == "" {
		return domain.ErrInvalidArgument("email subject must not be empty")
	}
	if strings.TrimSpace(outgoing.Body) == "" {
		return domain.ErrInvalidArgument("email body must not be empty")
	}
	if len(outgoing.Recipients) == 0 {
		return domain.ErrInvalidArgument("email recipients must be informed")
	}
	for _, recipient := range outgoing.Recipients {
		if strings.TrimSpace(recipient) == "" {
			return domain.ErrInvalidArgument("email recipients must not be empty")
		}
	}
	return nil
}
