package emails

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_JoinsRecipients(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*INSERT\s+INTO\s+emails\s*\(sender_address,\s*sender_name,\s*recipients,\s*subject,\s*body,\s*status\)`

	id := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "created_at"}).AddRow(id, time.Now())
	mock.ExpectQuery(q).
		WithArgs("noreply@example.com", "Autenticação", "a@b.com,c@d.com", "Assunto", "<p>corpo</p>", StatusUnprocessed).
		WillReturnRows(rows)

	email := &Email{
		SenderAddress: "noreply@example.com",
		SenderName:    "Autenticação",
		Recipients:    []string{"a@b.com", "c@d.com"},
		Subject:       "Assunto",
		Body:          "<p>corpo</p>",
		Status:        StatusUnprocessed,
	}
	got, err := repo.Create(context.Background(), email)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != id {
		t.Fatalf("unexpected email: %+v", got)
	}
}

func TestFindByStatus_SplitsRecipients(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)SELECT\s+id,\s*sender_address,.*FROM\s+emails\s+WHERE\s+status\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s+ASC\s+OFFSET\s+\$2\s+LIMIT\s+\$3`

	id := uuid.New()
	rows := sqlmock.NewRows([]string{
		"id", "sender_address", "sender_name", "recipients", "subject", "body",
		"status", "error_message", "created_at", "processed_at",
	}).AddRow(id, "noreply@example.com", "Autenticação", "a@b.com,c@d.com", "Assunto", "corpo",
		StatusUnprocessed, nil, time.Now(), nil)
	mock.ExpectQuery(q).
		WithArgs(StatusUnprocessed, 0, 10).
		WillReturnRows(rows)

	got, err := repo.FindByStatus(context.Background(), StatusUnprocessed, 0, 10)
	if err != nil {
		t.Fatalf("FindByStatus error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected one email, got %d", len(got))
	}
	if len(got[0].Recipients) != 2 || got[0].Recipients[1] != "c@d.com" {
		t.Fatalf("unexpected recipients: %+v", got[0].Recipients)
	}
	if got[0].ProcessedAt != nil || got[0].ErrorMessage != "" {
		t.Fatalf("unexpected processing state: %+v", got[0])
	}
}

func TestUpdateAll_PersistsEveryOutcome(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)UPDATE\s+emails\s+SET\s+status\s*=\s*\$2,\s*error_message\s*=\s*\$3,\s*processed_at\s*=\s*\$4\s+WHERE\s+id\s*=\s*\$1`

	now := time.Now()
	sent := &Email{ID: uuid.New(), Status: StatusProcessed, ProcessedAt: &now}
	failed := &Email{ID: uuid.New(), Status: StatusError, ErrorMessage: "connection refused"}

	mock.ExpectBegin()
	mock.ExpectExec(q).
		WithArgs(sent.ID, StatusProcessed, sql.NullString{}, sql.NullTime{Time: now, Valid: true}).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q).
		WithArgs(failed.ID, StatusError, sql.NullString{String: "connection refused", Valid: true}, sql.NullTime{}).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.UpdateAll(context.Background(), []*Email{sent, failed}); err != nil {
		t.Fatalf("UpdateAll error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateAll_RollsBackOnError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	item := &Email{ID: uuid.New(), Status: StatusProcessed}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE\s+emails`).
		WillReturnError(errors.New("db down"))
	mock.ExpectRollback()

	if err := repo.UpdateAll(context.Background(), []*Email{item}); err == nil {
		t.Fatal("expected error, got nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
