// Package http wires the portal's REST surface: request decoding,
// service dispatch and the error envelope every response shares.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/stuccorite/fieldforms/internal/portal/service"
	"github.com/stuccorite/fieldforms/internal/portal/store"
	"github.com/stuccorite/fieldforms/pkg/httpx"
	"github.com/stuccorite/fieldforms/pkg/slogx"
)

type AuthHandler struct {
	Auth *service.AuthService
}

type registerRequest struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	FullName   string `json:"fullName"`
	InviteCode string `json:"inviteCode"`
}

// Register godoc
//
//	@Summary	Register a new account with the company invite code
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Router		/api/auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Email) == "" ||
		req.Password == "" || strings.TrimSpace(req.FullName) == "" {
		httpx.WriteError(w, http.StatusBadRequest, "All fields are required")
		return
	}

	user, token, err := h.Auth.Register(r.Context(), service.RegisterParams{
		Username:   strings.TrimSpace(req.Username),
		Email:      strings.TrimSpace(req.Email),
		Password:   req.Password,
		FullName:   strings.TrimSpace(req.FullName),
		InviteCode: req.InviteCode,
	})
	switch {
	case errors.Is(err, service.ErrInvalidInviteCode):
		httpx.WriteError(w, http.StatusForbidden, "Invalid invite code. Please contact your administrator.")
		return
	case errors.Is(err, service.ErrEmailTaken):
		httpx.WriteError(w, http.StatusBadRequest, "Email already registered")
		return
	case errors.Is(err, service.ErrUsernameTaken):
		httpx.WriteError(w, http.StatusBadRequest, "Username already taken")
		return
	case err != nil:
		writeInternal(w, r, "register", err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "Registration successful",
		"token":   token,
		"user":    user.PublicView(),
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login godoc
//
//	@Summary	Login with username or email; may require a second factor
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Router		/api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := h.Auth.Login(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	case err != nil:
		writeInternal(w, r, "login", err)
		return
	}

	httpx.NoCache(w)
	if res.RequiresTwoFactor {
		httpx.WriteJSON(w, http.StatusOK, map[string]any{
			"message":           "Two-factor authentication required",
			"requiresTwoFactor": true,
			"tempToken":         res.Token,
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"token":   res.Token,
		"user":    res.User.PublicView(),
	})
}

// Logout godoc
//
//	@Summary	Logout (stateless tokens, client discards its copy)
//	@Tags		auth
//	@Router		/api/auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

// Me godoc
//
//	@Summary	Current authenticated user
//	@Tags		auth
//	@Security	BearerAuth
//	@Router		/api/auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())
	user, err := h.Auth.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "User not found")
			return
		}
		writeInternal(w, r, "load current user", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"user": user.PublicView()})
}

// writeInternal logs the cause server-side and answers with a generic
// message; internals never leak to clients.
func writeInternal(w http.ResponseWriter, r *http.Request, op string, err error) {
	slogx.FromContext(r.Context()).Error(op+" failed", slog.Any("err", err))
	httpx.WriteError(w, http.StatusInternalServerError, "Something went wrong. Please try again.")
}
