package slogx

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/stuccorite/fieldforms/pkg/idx"
)

// quietPaths are probe endpoints polled every few seconds by monitors
// and the frontend; logging every successful hit would drown the real
// traffic. Failures are still logged.
var quietPaths = map[string]bool{
	"/livez":      true,
	"/readyz":     true,
	"/api/health": true,
}

// HTTPMiddleware attaches a request-scoped logger to the context and
// writes one access-log entry per request.
func HTTPMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}

			reqID := r.Header.Get("X-Request-ID")
			if reqID == "" {
				reqID = idx.New().String()
			}

			logger := base.With(
				"req_id", reqID,
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
			)

			ctx := WithContext(r.Context(), logger)
			next.ServeHTTP(rw, r.WithContext(ctx))

			if quietPaths[r.URL.Path] && rw.status < http.StatusBadRequest {
				return
			}

			logger.Info("http_request",
				"status", rw.status,
				"duration_ms", time.Since(start).Milliseconds(),
				"user_agent", r.UserAgent(),
			)
		})
	}
}

type responseWriter struct {
	http.ResponseWriter

	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}
