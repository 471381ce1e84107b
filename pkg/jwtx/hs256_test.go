package jwtx

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func testUser() SessionUser {
	return SessionUser{
		ID:        "01J0000000000000000000TEST",
		Login:     "octocat",
		Name:      "The Octocat",
		AvatarURL: "https://avatars.example/u/42",
	}
}

func TestNewSignerHS256RejectsShortSecret(t *testing.T) {
	t.Parallel()

	_, err := NewSignerHS256([]byte("too-short"))
	require.Error(t, err)

	_, err = NewVerifierHS256([]byte("too-short"), "")
	require.Error(t, err)
}

func TestSignAndVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	signer, err := NewSignerHS256(testSecret)
	require.NoError(t, err)

	verifier, err := NewVerifierHS256(testSecret, "ember-auth")
	require.NoError(t, err)

	now := time.Now().UTC().Truncate(time.Second)
	user := testUser()
	claims := NewSessionClaims(user, "ember-auth", DefaultSessionTTL, now)

	token, err := signer.Sign(claims)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, user, got.User)
	require.Equal(t, user.ID, got.Subject)
	require.NotEmpty(t, got.ID, "jti must be set")
}

func TestSessionClaimsExpiry(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC().Truncate(time.Second)
	claims := NewSessionClaims(testUser(), "ember-auth", DefaultSessionTTL, now)

	require.Equal(t, now.Add(24*time.Hour), claims.ExpiresAt.Time)
	require.Equal(t, now, claims.IssuedAt.Time)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	signer, err := NewSignerHS256(testSecret)
	require.NoError(t, err)
	verifier, err := NewVerifierHS256(testSecret, "")
	require.NoError(t, err)

	issued := time.Now().UTC().Add(-48 * time.Hour)
	claims := NewSessionClaims(testUser(), "ember-auth", DefaultSessionTTL, issued)

	token, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrExpired)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	signer, err := NewSignerHS256(testSecret)
	require.NoError(t, err)
	verifier, err := NewVerifierHS256([]byte("ffffffffffffffffffffffffffffffff"), "")
	require.NoError(t, err)

	token, err := signer.Sign(NewSessionClaims(testUser(), "ember-auth", DefaultSessionTTL, time.Now()))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrInvalidSig)
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	t.Parallel()

	signer, err := NewSignerHS256(testSecret)
	require.NoError(t, err)
	verifier, err := NewVerifierHS256(testSecret, "")
	require.NoError(t, err)

	token, err := signer.Sign(NewSessionClaims(testUser(), "ember-auth", DefaultSessionTTL, time.Now()))
	require.NoError(t, err)

	// Flip part of the payload segment.
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	payload := []byte(parts[1])
	payload[0] ^= 0x01
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, err = verifier.Verify(tampered)
	require.Error(t, err)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	t.Parallel()

	signer, err := NewSignerHS256(testSecret)
	require.NoError(t, err)
	verifier, err := NewVerifierHS256(testSecret, "ember-auth")
	require.NoError(t, err)

	token, err := signer.Sign(NewSessionClaims(testUser(), "someone-else", DefaultSessionTTL, time.Now()))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrIssuer)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	t.Parallel()

	verifier, err := NewVerifierHS256(testSecret, "")
	require.NoError(t, err)

	_, err = verifier.Verify("not.a.jwt")
	require.Error(t, err)
}
