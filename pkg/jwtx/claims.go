package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the access-token claims the invitation service cares about.
// Tokens are minted by the main application; this service only verifies.
type Claims struct {
	jwt.RegisteredClaims

	// Permission scopes, e.g. "invites:read invites:write".
	Scopes []string `json:"scopes,omitempty"`

	// Email of the authenticated user, used for audit fields.
	Email string `json:"email,omitempty"`
}

// ValidateIssuer checks the issuer matches the expected value. An empty
// expected issuer enforces nothing.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't used before
// it is valid (nbf).
func (c *Claims) ValidateExpiry() error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}

	return nil
}
