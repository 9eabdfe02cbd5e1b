package service

import (
	"testing"
	"time"

	"alexandria-server/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", 2*time.Hour)
	name := "Callimachus"

	token, err := issuer.Issue(&domain.Account{ID: "id-1", Email: "c@x.com", DisplayName: &name, IsVerifiedLibrarian: true, Reputation: 7})
	require.NoError(t, err)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	require.Equal(t, &domain.SessionClaims{ID: "id-1", Email: "c@x.com", DisplayName: &name, IsVerifiedLibrarian: true, Reputation: 7}, claims)
}

func TestTokenIssuer_Rejects(t *testing.T) {
	issuer := NewTokenIssuer("secret", 2*time.Hour)
	account := &domain.Account{ID: "id-1", Email: "c@x.com"}

	t.Run("Wrong secret", func(t *testing.T) {
		token, err := NewTokenIssuer("other", time.Hour).Issue(account)
		require.NoError(t, err)
		_, err = issuer.Parse(token)
		require.ErrorIs(t, err, domain.ErrInvalidToken)
	})

	t.Run("Expired", func(t *testing.T) {
		old := NewTokenIssuer("secret", 2*time.Hour)
		old.now = func() time.Time { return time.Now().Add(-3 * time.Hour) }
		token, err := old.Issue(account)
		require.NoError(t, err)
		_, err = issuer.Parse(token)
		require.ErrorIs(t, err, domain.ErrInvalidToken)
	})

	t.Run("Unexpected algorithm", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
			"id":  "id-1",
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		signed, err := token.SignedString([]byte("secret"))
		require.NoError(t, err)
		_, err = issuer.Parse(signed)
		require.ErrorIs(t, err, domain.ErrInvalidToken)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := issuer.Parse("not.a.token")
		require.ErrorIs(t, err, domain.ErrInvalidToken)
	})
}
