package portal_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormDraftToCompletedFlow(t *testing.T) {
	baseURL := setupServer(t)
	token := registerUser(t, baseURL, "msanchez")

	// Drafts may be created anonymously and incomplete.
	status, body := doJSON(t, http.MethodPost, baseURL+"/api/forms/daily-log", "", map[string]any{
		"status": "draft",
		"job":    "Maple Street Duplex",
	})
	require.Equal(t, http.StatusCreated, status, "create response: %v", body)
	require.Equal(t, "Form created successfully", body["message"])
	formID := dataField(t, body)["id"].(string)

	// Completing without the required fields is rejected.
	status, body = doJSON(t, http.MethodPut, baseURL+"/api/forms/daily-log/"+formID, token, map[string]any{
		"status":              "completed",
		"date":                "2024-03-15T00:00:00Z",
		"job":                 "Maple Street Duplex",
		"personInCharge":      "Sam Ortiz",
		"personCompletingLog": "Maria Sanchez",
	})
	require.Equal(t, http.StatusBadRequest, status, "expected validation failure, got: %v", body)

	// A full submission by an authenticated user records attribution.
	status, body = doJSON(t, http.MethodPut, baseURL+"/api/forms/daily-log/"+formID, token, map[string]any{
		"status":              "completed",
		"date":                "2024-03-15T00:00:00Z",
		"job":                 "Maple Street Duplex",
		"personInCharge":      "Sam Ortiz",
		"personCompletingLog": "Maria Sanchez",
		"dailyReport":         "Scratch coat on the north elevation.",
	})
	require.Equal(t, http.StatusOK, status, "update response: %v", body)
	data := dataField(t, body)
	require.Equal(t, "completed", data["status"])
	require.Equal(t, "Test Crew Member", data["completedByName"])

	// List filtering by status.
	status, body = doJSON(t, http.MethodGet, baseURL+"/api/forms/daily-log?status=completed", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, float64(1), body["count"])

	status, body = doJSON(t, http.MethodGet, baseURL+"/api/forms/daily-log?status=draft", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, float64(0), body["count"])
}

func TestInvalidFormType(t *testing.T) {
	baseURL := setupServer(t)

	status, body := doJSON(t, http.MethodGet, baseURL+"/api/forms/timesheet", "", nil)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Invalid form type", body["message"])
}

func TestFormExport(t *testing.T) {
	baseURL := setupServer(t)

	status, body := doJSON(t, http.MethodPost, baseURL+"/api/forms/safety-meeting", "", map[string]any{
		"status":     "completed",
		"date":       "2024-03-15T00:00:00Z",
		"jobName":    "Harbor Plaza",
		"jobAddress": "12 Dock Rd",
		"topic":      "Ladder safety",
		"attendees": []map[string]any{
			{"name": "Alex Mason"},
			// A corrupt signature must not break the export.
			{"name": "Riley Chu", "signature": "data:image/png;base64,!!!not-base64!!!"},
		},
	})
	require.Equal(t, http.StatusCreated, status, "create response: %v", body)
	formID := dataField(t, body)["id"].(string)

	resp, raw := doRaw(t, http.MethodGet, baseURL+"/api/forms/safety-meeting/"+formID+"/export", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	require.Contains(t, resp.Header.Get("Content-Disposition"), "safety-meeting-"+formID+".pdf")
	require.True(t, strings.HasPrefix(string(raw), "%PDF-1.4"))

	// The summary variant exports through the compact emitter.
	resp, raw = doRaw(t, http.MethodGet, baseURL+"/api/forms/safety-meeting/"+formID+"/export?format=summary", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, strings.HasPrefix(string(raw), "%PDF-1.4"))
	require.Contains(t, string(raw), "Harbor Plaza")

	resp, _ = doRaw(t, http.MethodGet, baseURL+"/api/forms/safety-meeting/nope/export", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestJobSitesAggregation(t *testing.T) {
	baseURL := setupServer(t)
	token := registerUser(t, baseURL, "msanchez")

	// Same site reported through two form kinds with different casing.
	status, body := doJSON(t, http.MethodPost, baseURL+"/api/forms/daily-log", "", map[string]any{
		"status":     "draft",
		"job":        "Harbor Plaza",
		"jobAddress": "12 Dock Rd",
	})
	require.Equal(t, http.StatusCreated, status, "create response: %v", body)

	status, _ = doJSON(t, http.MethodPost, baseURL+"/api/forms/safety-meeting", "", map[string]any{
		"status":     "draft",
		"jobName":    "HARBOR PLAZA",
		"jobAddress": "12 DOCK RD",
	})
	require.Equal(t, http.StatusCreated, status)

	// Address-less forms do not produce sites.
	status, _ = doJSON(t, http.MethodPost, baseURL+"/api/forms/daily-log", "", map[string]any{
		"status": "draft",
		"job":    "Paperwork Only",
	})
	require.Equal(t, http.StatusCreated, status)

	status, body = doJSON(t, http.MethodGet, baseURL+"/api/forms/meta/job-sites", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, float64(1), body["count"])
	sites := body["data"].([]any)
	site := sites[0].(map[string]any)
	require.Equal(t, true, site["isActive"])

	// Archiving needs a session and flips the marker.
	status, _ = doJSON(t, http.MethodPut, baseURL+"/api/forms/meta/job-sites/status", token, map[string]any{
		"jobName":  site["jobName"],
		"address":  site["address"],
		"isActive": false,
	})
	require.Equal(t, http.StatusOK, status)

	status, body = doJSON(t, http.MethodGet, baseURL+"/api/forms/meta/job-sites", "", nil)
	require.Equal(t, http.StatusOK, status)
	site = body["data"].([]any)[0].(map[string]any)
	require.Equal(t, false, site["isActive"])
}

func TestSignatureUpload(t *testing.T) {
	baseURL := setupServer(t)

	status, body := doJSON(t, http.MethodPost, baseURL+"/api/signatures/upload", "", map[string]any{
		"signature": "data:image/png;base64,iVBORw0KGgo=",
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Signature uploaded successfully", body["message"])
	require.Equal(t, "data:image/png;base64,iVBORw0KGgo=", body["signatureUrl"])

	status, body = doJSON(t, http.MethodPost, baseURL+"/api/signatures/upload", "", map[string]any{
		"signature": "",
	})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Signature data is required", body["message"])
}
