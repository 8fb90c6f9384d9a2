package emails

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ViniciusHP/autenticacao-api/internal/dbx"
)

// recipientSeparator joins recipient addresses into a single column.
// Addresses cannot contain commas, so the join is unambiguous.
const recipientSeparator = ","

// PostgresRepository implements Repository over *sql.DB. Batch updates run
// inside a transaction, so the concrete handle is required here.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, email *Email) (*Email, error) {
	query := `
		INSERT INTO emails (sender_address, sender_name, recipients, subject, body, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		email.SenderAddress, email.SenderName,
		strings.Join(email.Recipients, recipientSeparator),
		email.Subject, email.Body, email.Status).Scan(&email.ID, &email.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return email, nil
}

func (r *PostgresRepository) FindByStatus(ctx context.Context, status Status, skip, limit int) ([]*Email, error) {
	query := `
		SELECT id, sender_address, sender_name, recipients, subject, body, status, error_message, created_at, processed_at
		FROM emails
		WHERE status = $1
		ORDER BY created_at ASC
		OFFSET $2 LIMIT $3
	`
	rows, err := r.db.QueryContext(ctx, query, status, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}
	defer rows.Close()

	var batch []*Email
	for rows.Next() {
		email := &Email{}
		var recipients string
		var errorMessage sql.NullString
		var processedAt sql.NullTime
		err := rows.Scan(&email.ID, &email.SenderAddress, &email.SenderName, &recipients,
			&email.Subject, &email.Body, &email.Status, &errorMessage, &email.CreatedAt, &processedAt)
		if err != nil {
			return nil, fmt.Errorf("error performing sql request: %v", err)
		}
		if recipients != "" {
			email.Recipients = strings.Split(recipients, recipientSeparator)
		}
		if errorMessage.Valid {
			email.ErrorMessage = errorMessage.String
		}
		if processedAt.Valid {
			t := processedAt.Time
			email.ProcessedAt = &t
		}
		batch = append(batch, email)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return batch, nil
}

// UpdateAll persists the batch atomically: either every outcome lands or
// none do, so a crash mid-batch cannot leave half-marked items.
func (r *PostgresRepository) UpdateAll(ctx context.Context, batch []*Email) error {
	query := `
		UPDATE emails
		SET status = $2, error_message = $3, processed_at = $4
		WHERE id = $1
	`
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, email := range batch {
			var errorMessage sql.NullString
			if email.ErrorMessage != "" {
				errorMessage = sql.NullString{String: email.ErrorMessage, Valid: true}
			}
			var processedAt sql.NullTime
			if email.ProcessedAt != nil {
				processedAt = sql.NullTime{Time: *email.ProcessedAt, Valid: true}
			}
			if _, err := tx.ExecContext(ctx, query, email.ID, email.Status, errorMessage, processedAt); err != nil {
				return fmt.Errorf("error performing sql request: %v", err)
			}
		}
		return nil
	})
}
