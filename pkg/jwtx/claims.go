package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token TTLs. Sessions are deliberately long-lived (field crews
// stay signed in on shared tablets for a work week); the pending token
// only needs to survive the walk to wherever the phone is charging.
const (
	DefaultSessionTTL = 7 * 24 * time.Hour
	DefaultPendingTTL = 5 * time.Minute
)

// Claims are the session-token claims used across the portal. The Temp
// marker distinguishes a pending two-factor login token from a full
// session token; a full token never carries it.
type Claims struct {
	jwt.RegisteredClaims

	// Temp marks a short-lived token issued after the password check but
	// before the second factor. It is accepted ONLY by the two-factor
	// login-verification endpoint.
	Temp bool `json:"temp,omitempty"`
}

// NewSessionClaims builds claims for a full session token.
func NewSessionClaims(userID, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

// NewPendingClaims builds claims for a temporary 2FA-pending token.
func NewPendingClaims(userID, issuer string, ttl time.Duration, now time.Time) Claims {
	c := NewSessionClaims(userID, issuer, ttl, now)
	c.Temp = true
	return c
}
