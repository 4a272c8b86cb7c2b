package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/stuccorite/fieldforms/internal/portal/domain"
	"github.com/stuccorite/fieldforms/internal/portal/service"
	"github.com/stuccorite/fieldforms/pkg/httpx"
)

// maxFormBody caps form payloads; signatures arrive inline as base64
// blobs so the limit is generous.
const maxFormBody = 10 << 20

type FormsHandler struct {
	Forms *service.FormService
	Auth  *service.AuthService
}

func (h *FormsHandler) formType(w http.ResponseWriter, r *http.Request) (domain.FormType, bool) {
	t, err := domain.ParseFormType(r.PathValue("formType"))
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid form type")
		return "", false
	}
	return t, true
}

// submitter resolves the optionally-authenticated user for completion
// attribution; anonymous submissions are allowed.
func (h *FormsHandler) submitter(r *http.Request) *domain.User {
	userID := httpx.UserIDFromContext(r.Context())
	if userID == "" {
		return nil
	}
	user, err := h.Auth.GetUser(r.Context(), userID)
	if err != nil {
		return nil
	}
	return user
}

// Create godoc
//
//	@Summary	Create a form document (draft or completed)
//	@Tags		forms
//	@Accept		json
//	@Produce	json
//	@Router		/api/forms/{formType} [post]
func (h *FormsHandler) Create(w http.ResponseWriter, r *http.Request) {
	t, ok := h.formType(w, r)
	if !ok {
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxFormBody))
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Request body too large")
		return
	}

	form, err := h.Forms.Create(r.Context(), t, body, h.submitter(r))
	if err != nil {
		writeFormError(w, r, "create form", err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "Form created successfully",
		"data":    form,
	})
}

// List godoc
//
//	@Summary	List forms of a kind, newest first
//	@Tags		forms
//	@Param		status	query	string	false	"filter by draft or completed"
//	@Param		limit	query	int		false	"maximum rows, default 10"
//	@Router		/api/forms/{formType} [get]
func (h *FormsHandler) List(w http.ResponseWriter, r *http.Request) {
	t, ok := h.formType(w, r)
	if !ok {
		return
	}

	status := domain.FormStatus(r.URL.Query().Get("status"))
	forms, err := h.Forms.List(r.Context(), t, status)
	if err != nil {
		writeInternal(w, r, "list forms", err)
		return
	}

	limit := queryInt(r, "limit", 10)
	if len(forms) > limit {
		forms = forms[:limit]
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Forms retrieved successfully",
		"data":    forms,
		"count":   len(forms),
	})
}

// Get godoc
//
//	@Summary	Fetch one form by id
//	@Tags		forms
//	@Router		/api/forms/{formType}/{id} [get]
func (h *FormsHandler) Get(w http.ResponseWriter, r *http.Request) {
	t, ok := h.formType(w, r)
	if !ok {
		return
	}

	form, err := h.Forms.Get(r.Context(), t, r.PathValue("id"))
	if err != nil {
		writeFormError(w, r, "fetch form", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Form retrieved successfully",
		"data":    form,
	})
}

// Update godoc
//
//	@Summary	Replace a form's contents
//	@Tags		forms
//	@Router		/api/forms/{formType}/{id} [put]
func (h *FormsHandler) Update(w http.ResponseWriter, r *http.Request) {
	t, ok := h.formType(w, r)
	if !ok {
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxFormBody))
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Request body too large")
		return
	}

	form, err := h.Forms.Update(r.Context(), t, r.PathValue("id"), body, h.submitter(r))
	if err != nil {
		writeFormError(w, r, "update form", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Form updated successfully",
		"data":    form,
	})
}

// Delete godoc
//
//	@Summary	Delete a form
//	@Tags		forms
//	@Router		/api/forms/{formType}/{id} [delete]
func (h *FormsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	t, ok := h.formType(w, r)
	if !ok {
		return
	}

	if err := h.Forms.Delete(r.Context(), t, r.PathValue("id")); err != nil {
		writeFormError(w, r, "delete form", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Form deleted successfully",
	})
}

// Export godoc
//
//	@Summary	Export a form as PDF
//	@Tags		forms
//	@Param		format	query	string	false	"summary for the compact text-only export"
//	@Produce	application/pdf
//	@Router		/api/forms/{formType}/{id}/export [get]
func (h *FormsHandler) Export(w http.ResponseWriter, r *http.Request) {
	t, ok := h.formType(w, r)
	if !ok {
		return
	}

	summary := r.URL.Query().Get("format") == "summary"
	out, filename, err := h.Forms.Export(r.Context(), t, r.PathValue("id"), summary)
	if err != nil {
		writeFormError(w, r, "export form", err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

func writeFormError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case domain.IsValidation(err):
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrFormNotFound):
		httpx.WriteError(w, http.StatusNotFound, "Form not found")
	default:
		writeInternal(w, r, op, err)
	}
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return fallback
	}
	return v
}
