package domain

import (
	"context"
	"strings"
	"time"
)

// Account represents a registered librarian.
type Account struct {
	ID                  string
	Email               string
	PasswordHash        string
	DisplayName         *string
	IsVerifiedLibrarian bool
	Reputation          int
	CreatedAt           time.Time
}

// SessionClaims are the account fields embedded in a session token.
type SessionClaims struct {
	ID                  string  `json:"id"`
	Email               string  `json:"email"`
	DisplayName         *string `json:"display_name"`
	IsVerifiedLibrarian bool    `json:"is_verified_librarian"`
	Reputation          int     `json:"reputation"`
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	DisplayName *string `json:"display_name,omitempty"`
}

// Validate checks that email and password are present.
func (r *RegisterRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return &ValidationError{Field: "email", Message: "email is required"}
	}
	if r.Password == "" {
		return &ValidationError{Field: "password", Message: "password is required"}
	}
	return nil
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks that email and password are present.
func (r *LoginRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return &ValidationError{Field: "email", Message: "email is required"}
	}
	if r.Password == "" {
		return &ValidationError{Field: "password", Message: "password is required"}
	}
	return nil
}

// AccountRepository persists librarian accounts.
type AccountRepository interface {
	// Create inserts the account. It returns ErrEmailAlreadyRegistered when the
	// email unique constraint rejects the row.
	Create(ctx context.Context, account *Account) error
	GetByEmail(ctx context.Context, email string) (*Account, error)
}

// AuthService registers librarians and issues session tokens.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) error
	Login(ctx context.Context, req LoginRequest) (string, error)
	ValidateToken(token string) (*SessionClaims, error)
}
