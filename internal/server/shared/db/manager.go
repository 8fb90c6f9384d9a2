// Package db wires the Postgres connection, the repository constructors and
// the embedded schema migrations.
package db

import (
	"context"
	"database/sql"

	"github.com/ViniciusHP/autenticacao-api/internal/server/emails"
	"github.com/ViniciusHP/autenticacao-api/internal/server/passwordreset"
	"github.com/ViniciusHP/autenticacao-api/internal/server/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Users() users.Repository
	PasswordResets() passwordreset.Repository
	Emails() emails.Repository
}
