package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed  = errors.New("jwtx: malformed token")
	ErrInvalidSig = errors.New("jwtx: invalid signature")
	ErrExpired    = errors.New("jwtx: token expired")
	ErrIssuer     = errors.New("jwtx: issuer mismatch")
)

// Verifier validates a JWT and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// HS256 signs and verifies tokens with a single shared HMAC secret.
// The portal is a single service, so symmetric signing keeps the key
// handling down to one config value.
type HS256 struct {
	secret []byte
	issuer string
}

func NewHS256(secret []byte, issuer string) *HS256 {
	return &HS256{secret: secret, issuer: issuer}
}

// Issuer returns the configured issuer claim value.
func (h *HS256) Issuer() string { return h.issuer }

// Sign produces a compact serialized token for the given claims.
func (h *HS256) Sign(claims Claims) (string, error) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(h.secret)
}

// Verify parses and validates a token. Expired-but-otherwise-valid
// tokens return ErrExpired so callers can tell the user to log in again
// rather than treating it as a forgery.
func (h *HS256) Verify(token string) (Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return h.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(h.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrInvalidSig
		case errors.Is(err, jwt.ErrTokenInvalidIssuer):
			return Claims{}, ErrIssuer
		default:
			return Claims{}, ErrMalformed
		}
	}
	return claims, nil
}
