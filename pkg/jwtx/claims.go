// Package jwtx builds, signs and verifies the session tokens minted after a
// successful GitHub login. Tokens are stateless: expiry is enforced purely by
// signature and timestamp validation, nothing is stored server-side.
package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/emberchat/ember/pkg/idx"
)

// DefaultSessionTTL is the lifetime of a session token. Sessions are not
// refreshable; after a day the user signs in through GitHub again.
const DefaultSessionTTL = 24 * time.Hour

// SessionUser is the public subset of a user embedded in the token payload.
// Downstream services render identity from this without a user-store lookup.
type SessionUser struct {
	ID        string `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

// SessionClaims are the claims carried by a session token. The subject always
// duplicates User.ID so standard JWT tooling can identify the principal.
type SessionClaims struct {
	jwt.RegisteredClaims

	User SessionUser `json:"user"`
}

// NewSessionClaims builds minimally-correct session claims for a user.
func NewSessionClaims(user SessionUser, issuer string, ttl time.Duration, now time.Time) SessionClaims {
	return SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        idx.New().String(),
		},
		User: user,
	}
}

// ValidateIssuer checks the issuer claim against the expected value.
// An empty expected issuer enforces nothing.
func (c *SessionClaims) ValidateIssuer(expected string) error {
	if expected != "" && c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't used before
// it becomes valid (nbf).
func (c *SessionClaims) ValidateExpiry() error {
	return c.ValidateExpiryWithLeeway(0)
}

// ValidateExpiryWithLeeway allows a small grace period for clock skew.
func (c *SessionClaims) ValidateExpiryWithLeeway(leeway time.Duration) error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}

	return nil
}
