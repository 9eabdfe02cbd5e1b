package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"alexandria-server/internal/domain"
	apperrors "alexandria-server/pkg/errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	bcryptCost = 10

	msgEmailTaken         = "Email already registered."
	msgInvalidCredentials = "Invalid credentials."
	msgServerError        = "Server error."
)

type authService struct {
	accounts domain.AccountRepository
	tokens   *TokenIssuer
	logger   domain.Logger

	// compared against when the email is unknown so both login failure
	// branches pay for one bcrypt comparison
	dummyHash []byte
}

func NewAuthService(
	accounts domain.AccountRepository,
	tokens *TokenIssuer,
	logger domain.Logger,
) (*authService, error) {
	dummy, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare auth service: %w", err)
	}
	return &authService{
		accounts:  accounts,
		tokens:    tokens,
		logger:    logger,
		dummyHash: dummy,
	}, nil
}

// Register hashes the password and inserts the account. A duplicate email
// is reported by the unique constraint, never by a prior lookup.
func (s *authService) Register(ctx context.Context, req domain.RegisterRequest) error {
	if err := req.Validate(); err != nil {
		return apperrors.NewValidationError("Email and password required.", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return apperrors.NewValidationError("Password is too long.", err)
		}
		s.logger.Error("Failed to hash password", err)
		return apperrors.NewInternalError(msgServerError, err)
	}

	account := &domain.Account{
		ID:           uuid.NewString(),
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: string(hash),
		DisplayName:  req.DisplayName,
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyRegistered) {
			return apperrors.NewConflictError(msgEmailTaken, err)
		}
		s.logger.Error("Failed to create account", err)
		return apperrors.NewInternalError(msgServerError, err)
	}

	s.logger.Info("Librarian registered", "account_id", account.ID)
	return nil
}

// Login returns a session token when the password matches the stored hash.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, req domain.LoginRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", apperrors.NewValidationError("Email and password required.", err)
	}

	account, err := s.accounts.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(req.Password))
			return "", apperrors.NewUnauthorizedError(msgInvalidCredentials, domain.ErrInvalidCredentials)
		}
		s.logger.Error("Failed to load account", err)
		return "", apperrors.NewInternalError(msgServerError, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return "", apperrors.NewUnauthorizedError(msgInvalidCredentials, domain.ErrInvalidCredentials)
		}
		s.logger.Error("Stored password hash is unusable", err, "account_id", account.ID)
		return "", apperrors.NewInternalError(msgServerError, err)
	}

	token, err := s.tokens.Issue(account)
	if err != nil {
		s.logger.Error("Failed to issue session token", err, "account_id", account.ID)
		return "", apperrors.NewInternalError(msgServerError, err)
	}

	s.logger.Info("Librarian logged in", "account_id", account.ID)
	return token, nil
}

// ValidateToken validates a session token and returns its claims
func (s *authService) ValidateToken(token string) (*domain.SessionClaims, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		s.logger.Debug("Rejected session token", "error", err)
		return nil, err
	}
	return claims, nil
}
