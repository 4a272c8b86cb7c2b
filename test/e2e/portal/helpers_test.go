package portal_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/stuccorite/fieldforms/internal/portal/app"
	"github.com/stuccorite/fieldforms/pkg/httpx"
)

/*
 * Common constants and helper functions for portal end-to-end tests.
 * The server runs in-process against a temp SQLite database, so the
 * suite needs no external services.
 */

const (
	testInviteCode = "STUCCO2024"
	testPassword   = "Sp4ckle-and-Trowel!"
)

// TestMain loosens the rate limits before any server is assembled.
// Tests make many rapid requests which would otherwise hit the strict
// production limits.
func TestMain(m *testing.M) {
	relaxed := httpx.RateLimitConfig{RequestsPerWindow: 1000, Window: time.Minute, Burst: 1000}
	httpx.StrictLimit = relaxed
	httpx.ModerateLimit = relaxed
	httpx.LenientLimit = relaxed

	os.Exit(m.Run())
}

// setupServer assembles the full application against a fresh database
// and serves it over a local listener.
func setupServer(t *testing.T) string {
	t.Helper()

	cfg := app.Config{
		JWTSecret:           "e2e-test-secret",
		InviteCode:          testInviteCode,
		Issuer:              "Stucco Rite Inc",
		DatabaseFile:        filepath.Join(t.TempDir(), "portal.db"),
		SessionTTL:          7 * 24 * time.Hour,
		PendingTTL:          5 * time.Minute,
		GeocoderBaseURL:     "http://127.0.0.1:1", // never reached in these tests
		GeocoderCacheSize:   16,
		GeocoderCacheTTL:    time.Hour,
		Env:                 "test",
		LogLevel:            "error",
		LogFormat:           "text",
		ShutdownGracePeriod: 2 * time.Second,
	}

	application, err := app.New(cfg)
	require.NoError(t, err)

	srv := httptest.NewServer(application.Handler())
	t.Cleanup(func() {
		srv.Close()
		_ = application.Shutdown()
	})

	return srv.URL
}

// doJSON performs a JSON request and decodes the JSON response body.
func doJSON(t *testing.T, method, url, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

// doRaw performs a request and returns the raw response for endpoints
// that answer with something other than JSON.
func doRaw(t *testing.T, method, url, token string) (*http.Response, []byte) {
	t.Helper()

	req, err := http.NewRequest(method, url, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

// registerUser creates an account and returns its session token.
func registerUser(t *testing.T, baseURL, username string) string {
	t.Helper()

	status, body := doJSON(t, http.MethodPost, baseURL+"/api/auth/register", "", map[string]any{
		"username":   username,
		"email":      username + "@stuccorite.test",
		"password":   testPassword,
		"fullName":   "Test Crew Member",
		"inviteCode": testInviteCode,
	})
	require.Equal(t, http.StatusCreated, status, "register response: %v", body)

	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

// dataField digs the "data" object out of a response envelope.
func dataField(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	data, ok := body["data"].(map[string]any)
	require.True(t, ok, "response has no data object: %v", body)
	return data
}
