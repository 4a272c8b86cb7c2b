package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/stuccorite/fieldforms/internal/portal/domain"
	"github.com/stuccorite/fieldforms/internal/portal/geo"
	"github.com/stuccorite/fieldforms/internal/portal/service"
	"github.com/stuccorite/fieldforms/pkg/httpx"
)

type JobSitesHandler struct {
	JobSites *service.JobSiteService
}

// List godoc
//
//	@Summary	Job sites aggregated from form submissions, newest first
//	@Tags		forms
//	@Param		limit	query	int	false	"maximum rows, default 15"
//	@Router		/api/forms/meta/job-sites [get]
func (h *JobSitesHandler) List(w http.ResponseWriter, r *http.Request) {
	sites, err := h.JobSites.List(r.Context())
	if err != nil {
		writeInternal(w, r, "list job sites", err)
		return
	}

	for i := range sites {
		if strings.TrimSpace(sites[i].JobName) == "" {
			sites[i].JobName = "Untitled Job"
		}
	}

	limit := queryInt(r, "limit", 15)
	if len(sites) > limit {
		sites = sites[:limit]
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Job sites retrieved successfully",
		"data":    sites,
		"count":   len(sites),
	})
}

type siteStatusRequest struct {
	JobName  string `json:"jobName"`
	Address  string `json:"address"`
	IsActive *bool  `json:"isActive"`
}

// SetStatus godoc
//
//	@Summary	Archive or restore a job site
//	@Tags		forms
//	@Security	BearerAuth
//	@Router		/api/forms/meta/job-sites/status [put]
func (h *JobSitesHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req siteStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Address) == "" || req.IsActive == nil {
		httpx.WriteError(w, http.StatusBadRequest, "Address and isActive are required")
		return
	}

	userID := httpx.UserIDFromContext(r.Context())
	if err := h.JobSites.SetActive(r.Context(), req.JobName, req.Address, *req.IsActive, userID); err != nil {
		writeInternal(w, r, "update job site status", err)
		return
	}

	message := "Job site archived"
	if *req.IsActive {
		message = "Job site restored"
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": message})
}

// Locate godoc
//
//	@Summary	Resolve a job-site address to map coordinates
//	@Tags		forms
//	@Param		address	query	string	true	"street address to resolve"
//	@Router		/api/forms/meta/job-sites/locate [get]
func (h *JobSitesHandler) Locate(w http.ResponseWriter, r *http.Request) {
	coords, err := h.JobSites.Locate(r.Context(), r.URL.Query().Get("address"))
	switch {
	case domain.IsValidation(err):
		httpx.WriteError(w, http.StatusBadRequest, "Address is required")
		return
	case errors.Is(err, geo.ErrNoResult):
		httpx.WriteError(w, http.StatusNotFound, "Address not found")
		return
	case err != nil:
		writeInternal(w, r, "locate job site", err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Address resolved successfully",
		"data":    coords,
	})
}
