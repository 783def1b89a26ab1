package jwtx

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func signHS256(t *testing.T, secret []byte, claims Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	raw, err := token.SignedString(secret)
	require.NoError(t, err)
	return raw
}

func TestHS256Verifier(t *testing.T) {
	secret := []byte("test-secret")
	v := &HS256Verifier{Secret: secret, Issuer: "shiftbook"}

	base := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "shiftbook",
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Scopes: []string{"invites:write"},
		Email:  "admin@example.com",
	}

	t.Run("valid token round-trips claims", func(t *testing.T) {
		claims, err := v.Verify(signHS256(t, secret, base))
		require.NoError(t, err)
		require.Equal(t, "user-1", claims.Subject)
		require.Equal(t, []string{"invites:write"}, claims.Scopes)
		require.Equal(t, "admin@example.com", claims.Email)
	})

	t.Run("rejects wrong secret", func(t *testing.T) {
		_, err := v.Verify(signHS256(t, []byte("other-secret"), base))
		require.Error(t, err)
	})

	t.Run("rejects wrong issuer", func(t *testing.T) {
		bad := base
		bad.Issuer = "someone-else"
		_, err := v.Verify(signHS256(t, secret, bad))
		require.ErrorIs(t, err, ErrIssuer)
	})

	t.Run("rejects unsigned token", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, base)
		raw, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = v.Verify(raw)
		require.Error(t, err)
	})
}

func TestClaimsValidateExpiry(t *testing.T) {
	t.Run("expired token", func(t *testing.T) {
		c := Claims{RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		}}
		require.ErrorIs(t, c.ValidateExpiry(), ErrExpired)
	})

	t.Run("not yet valid", func(t *testing.T) {
		c := Claims{RegisteredClaims: jwt.RegisteredClaims{
			NotBefore: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		}}
		require.ErrorIs(t, c.ValidateExpiry(), ErrNotYetValid)
	})

	t.Run("current token", func(t *testing.T) {
		c := Claims{RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}
		require.NoError(t, c.ValidateExpiry())
	})
}
