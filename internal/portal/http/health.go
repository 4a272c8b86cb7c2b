package http

import (
	"net/http"
	"time"

	"github.com/stuccorite/fieldforms/internal/portal/store"
	"github.com/stuccorite/fieldforms/pkg/httpx"
)

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Uptime  string `json:"uptime,omitempty"`
	Version string `json:"version,omitempty"`
}

// HealthHandler godoc
//
//	@Summary	Simple health check used by the frontend
//	@Tags		health
//	@Produce	json
//	@Router		/api/health [get]
func HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, healthResponse{
			Status:  "OK",
			Message: "Server is running",
		})
	}
}

// LivezHandler godoc
//
//	@Summary	Liveness probe with uptime and build version
//	@Tags		health
//	@Produce	json
//	@Router		/livez [get]
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, healthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}

// ReadyzHandler godoc
//
//	@Summary	Readiness probe, checks database connectivity
//	@Tags		health
//	@Produce	json
//	@Router		/readyz [get]
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		code := http.StatusOK
		if err := st.Ping(r.Context()); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		httpx.WriteJSON(w, code, healthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}
