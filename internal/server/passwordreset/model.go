package passwordreset

import (
	"time"

	"github.com/google/uuid"
)

// Record is a persisted, time-bounded password-reset token. A record is
// either live (now strictly before ExpiresAt) or expired; expired records are
// never valid and are eligible for deletion by the sweep.
type Record struct {
	ID        uuid.UUID
	Token     string
	UserID    uuid.UUID
	ExpiresAt time.Time
	CreatedAt time.Time
}
