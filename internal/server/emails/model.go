package emails

import (
	"time"

	"github.com/google/uuid"
)

// Status tracks an outbox item through the dispatch pipeline.
type Status string

const (
	StatusUnprocessed Status = "UNPROCESSED"
	StatusProcessed   Status = "PROCESSED"
	StatusError       Status = "ERROR"
)

// Email is a persisted outbox item. Items are created unprocessed and moved
// to processed or error by the dispatch driver; a failed item records its
// error message without affecting sibling items.
type Email struct {
	ID            uuid.UUID
	SenderAddress string
	SenderName    string
	Recipients    []string
	Subject       string
	Body          string
	Status        Status
	ErrorMessage  string
	CreatedAt     time.Time
	ProcessedAt   *time.Time
}
