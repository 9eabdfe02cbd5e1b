package service

import (
	"errors"
	"fmt"
	"time"

	"alexandria-server/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// sessionClaims is the JWT body handed to librarians after login.
type sessionClaims struct {
	jwt.RegisteredClaims
	Email               string  `json:"email"`
	ID                  string  `json:"id"`
	DisplayName         *string `json:"display_name"`
	IsVerifiedLibrarian bool    `json:"is_verified_librarian"`
	Reputation          int     `json:"reputation"`
}

// TokenIssuer signs and verifies HS256 session tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue returns a signed token for account that expires after the issuer's TTL.
func (t *TokenIssuer) Issue(account *domain.Account) (string, error) {
	issuedAt := t.now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(t.ttl)),
		},
		Email:               account.Email,
		ID:                  account.ID,
		DisplayName:         account.DisplayName,
		IsVerifiedLibrarian: account.IsVerifiedLibrarian,
		Reputation:          account.Reputation,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies signature and expiry and returns the session claims.
func (t *TokenIssuer) Parse(tokenString string) (*domain.SessionClaims, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(t.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, domain.ErrInvalidToken
	}
	if claims.ID == "" {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, errors.New("missing id claim"))
	}

	return &domain.SessionClaims{
		ID:                  claims.ID,
		Email:               claims.Email,
		DisplayName:         claims.DisplayName,
		IsVerifiedLibrarian: claims.IsVerifiedLibrarian,
		Reputation:          claims.Reputation,
	}, nil
}
