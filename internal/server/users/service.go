package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ViniciusHP/autenticacao-api/internal/common"
	"github.com/ViniciusHP/autenticacao-api/internal/logging"
	"github.com/ViniciusHP/autenticacao-api/internal/server/domain"
	"github.com/ViniciusHP/autenticacao-api/internal/server/emails"
	"github.com/ViniciusHP/autenticacao-api/internal/server/passwordreset"
)

// ResetLedger issues and settles password-reset tokens.
type ResetLedger interface {
	Issue(ctx context.Context, userID uuid.UUID) (*passwordreset.Record, error)
	Resolve(ctx context.Context, token string) (*passwordreset.Record, error)
	Consume(ctx context.Context, record *passwordreset.Record) error
}

// Outbox queues outbound messages for later delivery.
type Outbox interface {
	Enqueue(ctx context.Context, outgoing *emails.Outgoing) error
}

// RecoveryRenderer builds the body of a password-recovery message.
type RecoveryRenderer interface {
	Render(name, token string) (string, error)
}

const recoverySubject = "Redefinição de senha"

// Service implements account management: registration, credential checks
// and the password-recovery flow.
type Service struct {
	repo     Repository
	resets   ResetLedger
	outbox   Outbox
	renderer RecoveryRenderer
	logger   logging.Logger
}

func NewService(repo Repository, resets ResetLedger, outbox Outbox, renderer RecoveryRenderer, logger logging.Logger) *Service {
	return &Service{
		repo:     repo,
		resets:   resets,
		outbox:   outbox,
		renderer: renderer,
		logger:   logger.With("module", "users"),
	}
}

// EmailAvailable reports whether no account is registered under the email.
func (s *Service) EmailAvailable(ctx context.Context, email string) (bool, error) {
	if strings.TrimSpace(email) == "" {
		return false, domain.ErrInvalidArgument("email must be informed")
	}

	_, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return true, nil
		}
		return false, err
	}
	return false, nil
}

// Register creates an active account with a hashed password. Registration
// under an email already in use fails with a registered-email error.
func (s *Service) Register(ctx context.Context, name, email, password string) (*User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.ErrInvalidArgument("name must be informed")
	}
	if strings.TrimSpace(email) == "" {
		return nil, domain.ErrInvalidArgument("email must be informed")
	}
	if strings.TrimSpace(password) == "" {
		return nil, domain.ErrInvalidArgument("password must be informed")
	}

	available, err := s.EmailAvailable(ctx, email)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, domain.ErrEmailAlreadyRegistered(email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %v", err)
	}

	user := &User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Active:       true,
	}

	return s.repo.Create(ctx, user)
}

// FindByID resolves a principal id to its account. Unknown and inactive
// accounts fail with an invalid-user error.
func (s *Service) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, domain.ErrInvalidUser()
		}
		return nil, err
	}
	if !user.Active {
		return nil, domain.ErrInvalidUser()
	}
	return user, nil
}

// FindByEmail resolves an email to its account.
func (s *Service) FindByEmail(ctx context.Context, email string) (*User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, domain.ErrInvalidUser()
		}
		return nil, err
	}
	return user, nil
}

// Authenticate verifies a credential pair. Unknown emails, inactive
// accounts and wrong passwords are all reported the same way so callers
// cannot probe for registered emails.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, err
	}

	if !user.Active {
		return nil, common.ErrorUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, common.ErrorUnauthorized
	}

	return user, nil
}

// RecoverPassword starts the reset flow for a registered email: it issues a
// reset token and queues the recovery message. Unknown emails fail with a
// not-registered error.
func (s *Service) RecoverPassword(ctx context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return domain.ErrInvalidArgument("email must be informed")
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return domain.ErrEmailNotRegistered(email)
		}
		return err
	}

	record, err := s.resets.Issue(ctx, user.ID)
	if err != nil {
		return err
	}

	body, err := s.renderer.Render(user.Name, record.Token)
	if err != nil {
		return err
	}

	err = s.outbox.Enqueue(ctx, &emails.Outgoing{
		Subject:    recoverySubject,
		Recipients: []string{user.Email},
		Body:       body,
	})
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "password recovery requested", "user_id", user.ID)
	return nil
}

// ResetPassword settles a reset token: the new password replaces the old
// one and the token is consumed so it cannot be replayed.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	if strings.TrimSpace(newPassword) == "" {
		return domain.ErrInvalidArgument("password must be informed")
	}

	record, err := s.resets.Resolve(ctx, token)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("error hashing password: %v", err)
	}

	if err := s.repo.UpdatePassword(ctx, record.UserID, string(hash)); err != nil {
		return err
	}

	if err := s.resets.Consume(ctx, record); err != nil {
		return err
	}

	s.logger.Info(ctx, "password reset completed", "user_id", record.UserID)
	return nil
}
