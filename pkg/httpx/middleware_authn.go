package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/stuccorite/fieldforms/pkg/jwtx"
	"github.com/stuccorite/fieldforms/pkg/slogx"
)

// AuthnMiddleware enforces a valid bearer session token. Expired tokens
// get a 401 with retry guidance; anything else wrong with the token is a
// 403 with no hints. Pending two-factor tokens are never accepted here,
// only the login-verification endpoint may consume them.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw := bearerToken(r)
			if raw == "" {
				WriteError(w, http.StatusUnauthorized, "Access denied. No token provided.")
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				if errors.Is(err, jwtx.ErrExpired) {
					WriteError(w, http.StatusUnauthorized, "Token expired. Please login again.")
					return
				}
				log.Warn("jwt verify failed", "err", err)
				WriteError(w, http.StatusForbidden, "Invalid token.")
				return
			}
			if claims.Temp {
				WriteError(w, http.StatusForbidden, "Invalid token.")
				return
			}

			ctx = context.WithValue(ctx, CtxKeyUserID, claims.Subject)
			ctx = slogx.WithUser(ctx, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuthn attaches the user ID when a valid session token is
// present and otherwise lets the request through unauthenticated.
func OptionalAuthn(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if raw := bearerToken(r); raw != "" {
				if claims, err := v.Verify(raw); err == nil && !claims.Temp {
					ctx := context.WithValue(r.Context(), CtxKeyUserID, claims.Subject)
					r = r.WithContext(slogx.WithUser(ctx, claims.Subject))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	authz := r.Header.Get("Authorization")
	if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))
}
