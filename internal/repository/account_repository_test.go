package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"alexandria-server/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func newAccountRepoWithMock(t *testing.T) (*PostgresAccountRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresAccountRepository(db), mock
}

var (
	insertUserQuery = regexp.QuoteMeta(`INSERT INTO users (id, email, password_hash, display_name)`)
	selectUserQuery = regexp.QuoteMeta(`SELECT id, email, password_hash, display_name, is_verified_librarian, reputation, created_at`)
)

func TestAccountCreate_Success(t *testing.T) {
	repo, mock := newAccountRepoWithMock(t)
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery(insertUserQuery).
		WithArgs("id-1", "a@x.com", "hash", nil).
		WillReturnRows(sqlmock.NewRows([]string{"is_verified_librarian", "reputation", "created_at"}).
			AddRow(false, int64(0), created))

	account := &domain.Account{ID: "id-1", Email: "a@x.com", PasswordHash: "hash"}
	require.NoError(t, repo.Create(context.Background(), account))
	require.Equal(t, created, account.CreatedAt)
	require.False(t, account.IsVerifiedLibrarian)
	require.Zero(t, account.Reputation)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountCreate_WithDisplayName(t *testing.T) {
	repo, mock := newAccountRepoWithMock(t)
	name := "Hypatia"

	mock.ExpectQuery(insertUserQuery).
		WithArgs("id-2", "h@x.com", "hash", "Hypatia").
		WillReturnRows(sqlmock.NewRows([]string{"is_verified_librarian", "reputation", "created_at"}).
			AddRow(false, int64(0), time.Now()))

	err := repo.Create(context.Background(), &domain.Account{ID: "id-2", Email: "h@x.com", PasswordHash: "hash", DisplayName: &name})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountCreate_UniqueViolation(t *testing.T) {
	repo, mock := newAccountRepoWithMock(t)

	mock.ExpectQuery(insertUserQuery).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	err := repo.Create(context.Background(), &domain.Account{ID: "id-3", Email: "a@x.com", PasswordHash: "hash"})
	require.ErrorIs(t, err, domain.ErrEmailAlreadyRegistered)
}

func TestAccountCreate_DBError(t *testing.T) {
	repo, mock := newAccountRepoWithMock(t)

	mock.ExpectQuery(insertUserQuery).WillReturnError(errors.New("db down"))

	err := repo.Create(context.Background(), &domain.Account{ID: "id-4", Email: "a@x.com", PasswordHash: "hash"})
	require.Error(t, err)
	require.NotErrorIs(t, err, domain.ErrEmailAlreadyRegistered)
	require.Regexp(t, `db error: .*db down`, err.Error())
}

func TestAccountGetByEmail_Found(t *testing.T) {
	repo, mock := newAccountRepoWithMock(t)

	mock.ExpectQuery(selectUserQuery).
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "display_name", "is_verified_librarian", "reputation", "created_at"}).
			AddRow("id-1", "a@x.com", "hash", "Callimachus", true, int64(12), time.Now()))

	account, err := repo.GetByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.Equal(t, "id-1", account.ID)
	require.NotNil(t, account.DisplayName)
	require.Equal(t, "Callimachus", *account.DisplayName)
	require.True(t, account.IsVerifiedLibrarian)
	require.Equal(t, 12, account.Reputation)
}

func TestAccountGetByEmail_NullDisplayName(t *testing.T) {
	repo, mock := newAccountRepoWithMock(t)

	mock.ExpectQuery(selectUserQuery).
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "display_name", "is_verified_librarian", "reputation", "created_at"}).
			AddRow("id-1", "a@x.com", "hash", nil, false, int64(0), time.Now()))

	account, err := repo.GetByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.Nil(t, account.DisplayName)
}

func TestAccountGetByEmail_NotFound(t *testing.T) {
	repo, mock := newAccountRepoWithMock(t)

	mock.ExpectQuery(selectUserQuery).WithArgs("ghost@x.com").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "ghost@x.com")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}
