package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/ViniciusHP/autenticacao-api/internal/server/emails"
	"github.com/ViniciusHP/autenticacao-api/internal/server/migrations"
	"github.com/ViniciusHP/autenticacao-api/internal/server/passwordreset"
	"github.com/ViniciusHP/autenticacao-api/internal/server/users"
)

type PostgresRepositoryManager struct {
	db             *sql.DB
	users          users.Repository
	passwordResets passwordreset.Repository
	emails         emails.Repository
}

func (m *PostgresRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *PostgresRepositoryManager) PasswordResets() passwordreset.Repository {
	return m.passwordResets
}

func (m *PostgresRepositoryManager) Emails() emails.Repository {
	return m.emails
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return err
	}

	return nil
}

func NewPostgresRepositoryManager(dsn string) (RepositoryManager, error) {

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	m := &PostgresRepositoryManager{
		db:             db,
		users:          users.NewPostgresRepository(db),
		passwordResets: passwordreset.NewPostgresRepository(db),
		emails:         emails.NewPostgresRepository(db),
	}

	err = m.RunMigrations(context.Background())
	if err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}
