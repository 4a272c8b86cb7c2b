package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/stuccorite/fieldforms/pkg/httpx"
)

// SignaturesHandler accepts signature images as base64 data URIs. The
// image travels back to the client unchanged and is later embedded in
// the form payload; nothing is written to disk.
type SignaturesHandler struct{}

type signatureRequest struct {
	Signature string `json:"signature"`
}

// Upload godoc
//
//	@Summary	Upload a drawn signature as a base64 data URI
//	@Tags		signatures
//	@Accept		json
//	@Produce	json
//	@Router		/api/signatures/upload [post]
func (h *SignaturesHandler) Upload(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxFormBody)

	var req signatureRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Signature) == "" {
		httpx.WriteError(w, http.StatusBadRequest, "Signature data is required")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"message":      "Signature uploaded successfully",
		"signatureUrl": req.Signature,
	})
}
