package portal_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterLoginAndMe(t *testing.T) {
	baseURL := setupServer(t)

	token := registerUser(t, baseURL, "msanchez")

	// The registration token works immediately.
	status, body := doJSON(t, http.MethodGet, baseURL+"/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	user := body["user"].(map[string]any)
	require.Equal(t, "msanchez", user["username"])
	require.Equal(t, "msanchez@stuccorite.test", user["email"])
	require.Equal(t, false, user["twoFactorEnabled"])

	// Email works as the login identifier too.
	status, body = doJSON(t, http.MethodPost, baseURL+"/api/auth/login", "", map[string]any{
		"username": "msanchez@stuccorite.test",
		"password": testPassword,
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Login successful", body["message"])
	require.NotEmpty(t, body["token"])

	status, body = doJSON(t, http.MethodPost, baseURL+"/api/auth/login", "", map[string]any{
		"username": "msanchez",
		"password": "wrong-password",
	})
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "Invalid credentials", body["message"])
}

func TestRegisterRejectsBadInvite(t *testing.T) {
	baseURL := setupServer(t)

	status, body := doJSON(t, http.MethodPost, baseURL+"/api/auth/register", "", map[string]any{
		"username":   "intruder",
		"email":      "intruder@stuccorite.test",
		"password":   testPassword,
		"fullName":   "Not Invited",
		"inviteCode": "LETMEIN",
	})
	require.Equal(t, http.StatusForbidden, status)
	require.Equal(t, "Invalid invite code. Please contact your administrator.", body["message"])
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	baseURL := setupServer(t)
	registerUser(t, baseURL, "msanchez")

	status, body := doJSON(t, http.MethodPost, baseURL+"/api/auth/register", "", map[string]any{
		"username":   "msanchez",
		"email":      "different@stuccorite.test",
		"password":   testPassword,
		"fullName":   "Copy Cat",
		"inviteCode": testInviteCode,
	})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Username already taken", body["message"])

	status, body = doJSON(t, http.MethodPost, baseURL+"/api/auth/register", "", map[string]any{
		"username":   "msanchez2",
		"email":      "msanchez@stuccorite.test",
		"password":   testPassword,
		"fullName":   "Copy Cat",
		"inviteCode": testInviteCode,
	})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Email already registered", body["message"])
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	baseURL := setupServer(t)

	status, body := doJSON(t, http.MethodGet, baseURL+"/api/auth/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "Access denied. No token provided.", body["message"])

	status, body = doJSON(t, http.MethodGet, baseURL+"/api/auth/me", "garbage-token", nil)
	require.Equal(t, http.StatusForbidden, status)
	require.Equal(t, "Invalid token.", body["message"])
}

func TestHealthEndpoints(t *testing.T) {
	baseURL := setupServer(t)

	status, body := doJSON(t, http.MethodGet, baseURL+"/api/health", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "OK", body["status"])

	status, body = doJSON(t, http.MethodGet, baseURL+"/readyz", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "ok", body["status"])
}
