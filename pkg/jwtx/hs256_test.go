package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSignAndVerifySession(t *testing.T) {
	h := NewHS256([]byte("test-secret"), "portal-test")
	now := time.Now()

	token, err := h.Sign(NewSessionClaims("user-1", h.Issuer(), time.Hour, now))
	require.NoError(t, err)

	claims, err := h.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
	require.False(t, claims.Temp)
}

func TestPendingClaimsCarryTempMarker(t *testing.T) {
	h := NewHS256([]byte("test-secret"), "portal-test")

	token, err := h.Sign(NewPendingClaims("user-1", h.Issuer(), time.Minute, time.Now()))
	require.NoError(t, err)

	claims, err := h.Verify(token)
	require.NoError(t, err)
	require.True(t, claims.Temp)
}

func TestVerifyExpired(t *testing.T) {
	h := NewHS256([]byte("test-secret"), "portal-test")

	token, err := h.Sign(NewSessionClaims("user-1", h.Issuer(), time.Minute, time.Now().Add(-time.Hour)))
	require.NoError(t, err)

	_, err = h.Verify(token)
	require.ErrorIs(t, err, ErrExpired)
}

func TestVerifyWrongSecret(t *testing.T) {
	signer := NewHS256([]byte("secret-a"), "portal-test")
	verifier := NewHS256([]byte("secret-b"), "portal-test")

	token, err := signer.Sign(NewSessionClaims("user-1", "portal-test", time.Hour, time.Now()))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrInvalidSig)
}

func TestVerifyIssuerMismatch(t *testing.T) {
	signer := NewHS256([]byte("shared"), "someone-else")
	verifier := NewHS256([]byte("shared"), "portal-test")

	token, err := signer.Sign(NewSessionClaims("user-1", "someone-else", time.Hour, time.Now()))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrIssuer)
}

func TestVerifyMalformed(t *testing.T) {
	h := NewHS256([]byte("test-secret"), "portal-test")
	_, err := h.Verify("not.a.jwt")
	require.ErrorIs(t, err, ErrMalformed)
}
