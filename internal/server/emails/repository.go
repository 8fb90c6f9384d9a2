// Package emails maintains the outbound-email outbox: recovery messages are
// queued here and delivered later by the dispatch driver.
package emails

import "context"

// Repository defines persistence operations for the email outbox.
type Repository interface {
	// Create inserts a new outbox item and returns it with the generated id.
	Create(ctx context.Context, email *Email) (*Email, error)

	// FindByStatus returns items with the given status, ordered by creation
	// ascending, paginated by skip/limit.
	FindByStatus(ctx context.Context, status Status, skip, limit int) ([]*Email, error)

	// UpdateAll persists the dispatch outcome (status, error message,
	// processed timestamp) of every item in the batch.
	UpdateAll(ctx context.Context, batch []*Email) error
}
