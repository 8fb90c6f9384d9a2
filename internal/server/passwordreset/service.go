package passwordreset

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ViniciusHP/autenticacao-api/internal/common"
	"github.com/ViniciusHP/autenticacao-api/internal/server/domain"
	"github.com/ViniciusHP/autenticacao-api/internal/timex"
)

// Service is the ledger of outstanding password-reset tokens. Multiple
// concurrent records per user are permitted; each is independently valid
// until consumed or expired.
type Service struct {
	repo     Repository
	clock    timex.Clock
	validity time.Duration
}

func NewService(repo Repository, clock timex.Clock, validity time.Duration) *Service {
	return &Service{
		repo:     repo,
		clock:    clock,
		validity: validity,
	}
}

// Issue creates a reset record for the given user with an unpredictable
// token and an expiry of now plus the configured validity window.
func (s *Service) Issue(ctx context.Context, userID uuid.UUID) (*Record, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrInvalidArgument("user must be informed")
	}

	record := &Record{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: s.clock.Now().Add(s.validity),
	}

	return s.repo.Create(ctx, record)
}

// Resolve returns the live record for the given token. Blank, unknown and
// expired tokens all fail with the same expired-token error so callers
// cannot distinguish them.
func (s *Service) Resolve(ctx context.Context, token string) (*Record, error) {
	if strings.TrimSpace(token) == "" {
		return nil, domain.ErrResetTokenExpired()
	}

	record, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, domain.ErrResetTokenExpired()
		}
		return nil, err
	}

	if !s.IsLive(record) {
		return nil, domain.ErrResetTokenExpired()
	}

	return record, nil
}

// IsLive reports whether the record has not yet expired. The comparison is
// strict: a record expiring at exactly "now" is no longer live. Nil records
// are never live.
func (s *Service) IsLive(record *Record) bool {
	if record == nil {
		return false
	}
	return s.clock.Now().Before(record.ExpiresAt)
}

// FindExpiredBefore returns expired records in creation order, paginated by
// skip/limit. A zero `before` defaults to the current instant.
func (s *Service) FindExpiredBefore(ctx context.Context, before time.Time, skip, limit int) ([]*Record, error) {
	if before.IsZero() {
		before = s.clock.Now()
	}
	return s.repo.FindExpiredBefore(ctx, before, skip, limit)
}

// Consume removes a record after a successful password reset so the token
// becomes single-use immediately.
func (s *Service) Consume(ctx context.Context, record *Record) error {
	if record == nil {
		return nil
	}
	return s.repo.Delete(ctx, record.ID)
}

// DeleteAll removes the given batch of records. Empty and nil batches are a
// no-op and must not reach the repository.
func (s *Service) DeleteAll(ctx context.Context, records []*Record) error {
	if len(records) == 0 {
		return nil
	}
	return s.repo.DeleteAll(ctx, records)
}
