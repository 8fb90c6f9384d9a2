package passwordreset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ViniciusHP/autenticacao-api/internal/common"
	"github.com/ViniciusHP/autenticacao-api/internal/dbx"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, record *Record) (*Record, error) {
	query := `
		INSERT INTO password_resets (token, user_id, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		record.Token, record.UserID, record.ExpiresAt).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return record, nil
}

func (r *PostgresRepository) FindByToken(ctx context.Context, token string) (*Record, error) {
	query := `
		SELECT id, token, user_id, expires_at, created_at
		FROM password_resets
		WHERE token = $1
	`
	record := &Record{}
	err := r.db.QueryRowContext(ctx, query, token).
		Scan(&record.ID, &record.Token, &record.UserID, &record.ExpiresAt, &record.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return record, nil
}

func (r *PostgresRepository) FindExpiredBefore(ctx context.Context, before time.Time, skip, limit int) ([]*Record, error) {
	query := `
		SELECT id, token, user_id, expires_at, created_at
		FROM password_resets
		WHERE expires_at <= $1
		ORDER BY created_at ASC
		OFFSET $2 LIMIT $3
	`
	rows, err := r.db.QueryContext(ctx, query, before, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		record := &Record{}
		if err := rows.Scan(&record.ID, &record.Token, &record.UserID, &record.ExpiresAt, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("error performing sql request: %v", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return records, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM password_resets
		WHERE id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("error performing sql request: %v", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteAll(ctx context.Context, records []*Record) error {
	if len(records) == 0 {
		return nil
	}

	placeholders := make([]string, 0, len(records))
	args := make([]any, 0, len(records))
	for i, record := range records {
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
		args = append(args, record.ID)
	}

	query := fmt.Sprintf("DELETE FROM password_resets WHERE id IN (%s)", strings.Join(placeholders, ", "))
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("error performing sql request: %v", err)
	}
	return nil
}
