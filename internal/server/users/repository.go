// Package users manages principal records: registration, lookup and
// credential updates.
package users

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for principal records.
type Repository interface {
	// Create inserts a new user and returns it with the generated id.
	Create(ctx context.Context, user *User) (*User, error)

	// FindByEmail looks up a user by email. Implementations return
	// common.ErrorNotFound when no user matches.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByID looks up a user by id. Implementations return
	// common.ErrorNotFound when no user matches.
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// UpdatePassword replaces the stored credential hash for the given user.
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}
