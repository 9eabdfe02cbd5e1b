package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"alexandria-server/internal/domain"
)

// PostgresAccountRepository stores librarians in the users table.
type PostgresAccountRepository struct {
	db DBTX
}

func NewPostgresAccountRepository(db DBTX) *PostgresAccountRepository {
	return &PostgresAccountRepository{db: db}
}

// Create inserts a single row. There is no prior existence check: the
// users_email_key constraint is the only duplicate signal.
func (r *PostgresAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	query :=
		`INSERT INTO users (id, email, password_hash, display_name)
		 VALUES ($1, $2, $3, $4)
		 RETURNING is_verified_librarian, reputation, created_at`

	var displayName sql.NullString
	if account.DisplayName != nil {
		displayName = sql.NullString{String: *account.DisplayName, Valid: true}
	}

	err := r.db.QueryRowContext(ctx, query,
		account.ID, account.Email, account.PasswordHash, displayName,
	).Scan(&account.IsVerifiedLibrarian, &account.Reputation, &account.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyRegistered
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresAccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	query :=
		`SELECT id, email, password_hash, display_name, is_verified_librarian, reputation, created_at
		 FROM users
		 WHERE email = $1`

	var (
		account     domain.Account
		displayName sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&account.ID,
		&account.Email,
		&account.PasswordHash,
		&displayName,
		&account.IsVerifiedLibrarian,
		&account.Reputation,
		&account.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if displayName.Valid {
		account.DisplayName = &displayName.String
	}

	return &account, nil
}
