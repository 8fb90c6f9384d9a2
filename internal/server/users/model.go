package users

import (
	"time"

	"github.com/google/uuid"
)

// User is the principal record. The authentication core only reads ID and
// Name for claim embedding; the password hash is replaced on reset completion.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Active       bool
	CreatedAt    time.Time
}
