package slogx

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	require.Equal(t, slog.LevelWarn, ParseLevel("WARNING"))
	require.Equal(t, slog.LevelError, ParseLevel("error"))
	require.Equal(t, slog.LevelInfo, ParseLevel(""))
	require.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
}

func TestWithUserTagsRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Service: "portal", Level: "info", Output: &buf})

	ctx := WithContext(t.Context(), logger)
	ctx = WithUser(ctx, "user-42")
	FromContext(ctx).Info("something happened")

	require.Contains(t, buf.String(), `"user_id":"user-42"`)
}

func TestHTTPMiddlewareSkipsQuietPaths(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Service: "portal", Level: "info", Output: &buf})

	h := HTTPMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/livez", nil))
	require.NotContains(t, buf.String(), "http_request")

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/forms/daily-log", nil))
	require.Contains(t, buf.String(), "http_request")
	require.Contains(t, buf.String(), `"path":"/api/forms/daily-log"`)
}

func TestHTTPMiddlewareLogsFailedProbes(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Service: "portal", Level: "info", Output: &buf})

	h := HTTPMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Contains(t, buf.String(), "http_request")
	require.Contains(t, buf.String(), `"status":503`)
}
