// Package passwordreset issues, validates and garbage-collects the
// time-bounded tokens of the credential-recovery flow.
package passwordreset

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines persistence operations for password-reset records.
type Repository interface {
	// Create inserts a new reset record and returns it with the generated id.
	// Token uniqueness is enforced by the store at creation time.
	Create(ctx context.Context, record *Record) (*Record, error)

	// FindByToken looks up a record by its opaque token string.
	// Implementations return common.ErrorNotFound when absent.
	FindByToken(ctx context.Context, token string) (*Record, error)

	// FindExpiredBefore returns records whose expiry is at or before the
	// given instant, ordered by creation ascending, paginated by skip/limit.
	FindExpiredBefore(ctx context.Context, before time.Time, skip, limit int) ([]*Record, error)

	// Delete removes a single record by id. Deleting a record that no longer
	// exists is not an error.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteAll removes every record of the batch.
	DeleteAll(ctx context.Context, records []*Record) error
}
