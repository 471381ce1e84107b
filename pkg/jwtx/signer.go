package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLen is the minimum accepted HMAC secret length in bytes. Anything
// shorter than the hash output weakens HS256.
const MinSecretLen = 32

// Signer signs session claims into a compact JWT.
type Signer interface {
	Alg() string
	Sign(SessionClaims) (string, error)
}

// HS256Signer signs session tokens with a process-wide shared secret.
type HS256Signer struct {
	secret []byte
}

// NewSignerHS256 creates an HS256 signer. The secret must be at least
// MinSecretLen bytes; a short secret is a configuration fault, not something
// to degrade around.
func NewSignerHS256(secret []byte) (*HS256Signer, error) {
	if len(secret) < MinSecretLen {
		return nil, errors.New("jwtx: HS256 secret must be at least 32 bytes")
	}
	return &HS256Signer{secret: secret}, nil
}

func (s *HS256Signer) Alg() string { return jwt.SigningMethodHS256.Alg() }

// Sign turns the claims into a signed compact JWT string.
func (s *HS256Signer) Sign(claims SessionClaims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
