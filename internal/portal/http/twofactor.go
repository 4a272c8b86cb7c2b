package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/stuccorite/fieldforms/internal/portal/service"
	"github.com/stuccorite/fieldforms/pkg/httpx"
	"github.com/stuccorite/fieldforms/pkg/jwtx"
)

type TwoFactorHandler struct {
	TwoFactor *service.TwoFactorService
	Auth      *service.AuthService
	Verifier  jwtx.Verifier
}

// Setup godoc
//
//	@Summary	Begin 2FA enrolment: returns QR code and manual-entry secret
//	@Tags		auth
//	@Security	BearerAuth
//	@Router		/api/auth/2fa/setup [post]
func (h *TwoFactorHandler) Setup(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())

	res, err := h.TwoFactor.Setup(r.Context(), userID)
	if err != nil {
		writeInternal(w, r, "2fa setup", err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Scan this QR code with your authenticator app",
		"qrCode":  res.QRCode,
		"secret":  res.Secret,
	})
}

type codeRequest struct {
	Code string `json:"code"`
}

// VerifySetup godoc
//
//	@Summary	Confirm the first authenticator code and activate 2FA
//	@Tags		auth
//	@Security	BearerAuth
//	@Router		/api/auth/2fa/verify-setup [post]
func (h *TwoFactorHandler) VerifySetup(w http.ResponseWriter, r *http.Request) {
	var req codeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	userID := httpx.UserIDFromContext(r.Context())

	codes, err := h.TwoFactor.VerifySetup(r.Context(), userID, req.Code)
	switch {
	case errors.Is(err, service.ErrNotPending):
		httpx.WriteError(w, http.StatusBadRequest, "Please set up 2FA first")
		return
	case errors.Is(err, service.ErrInvalidCode):
		httpx.WriteError(w, http.StatusBadRequest, "Invalid verification code")
		return
	case err != nil:
		writeInternal(w, r, "2fa verify setup", err)
		return
	}

	// Backup codes are shown exactly once.
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"message":     "Two-factor authentication enabled successfully",
		"backupCodes": codes,
	})
}

type verifyLoginRequest struct {
	TempToken string `json:"tempToken"`
	Code      string `json:"code"`
}

// VerifyLogin godoc
//
//	@Summary	Exchange a pending-login token plus code for a full session
//	@Tags		auth
//	@Router		/api/auth/2fa/verify-login [post]
func (h *TwoFactorHandler) VerifyLogin(w http.ResponseWriter, r *http.Request) {
	var req verifyLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.TempToken == "" || req.Code == "" {
		httpx.WriteError(w, http.StatusBadRequest, "Token and code are required")
		return
	}

	// The pending token arrives in the body, not as a bearer header:
	// the client does not hold a session yet.
	claims, err := h.Verifier.Verify(req.TempToken)
	if err != nil {
		httpx.WriteError(w, http.StatusUnauthorized, "Invalid or expired token. Please login again.")
		return
	}
	if !claims.Temp {
		httpx.WriteError(w, http.StatusUnauthorized, "Invalid token type")
		return
	}

	token, err := h.TwoFactor.VerifyLogin(r.Context(), claims.Subject, req.Code)
	switch {
	case errors.Is(err, service.ErrInvalidCode):
		// The token was fine, only the second factor is wrong.
		httpx.WriteError(w, http.StatusBadRequest, "Invalid verification code")
		return
	case errors.Is(err, service.ErrTwoFactorDisabled):
		httpx.WriteError(w, http.StatusBadRequest, "Two-factor authentication is not enabled")
		return
	case err != nil:
		writeInternal(w, r, "2fa verify login", err)
		return
	}

	user, err := h.Auth.GetUser(r.Context(), claims.Subject)
	if err != nil {
		writeInternal(w, r, "load user after 2fa", err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"token":   token,
		"user":    user.PublicView(),
	})
}

type disableRequest struct {
	Password string `json:"password"`
}

// Disable godoc
//
//	@Summary	Turn off 2FA after re-confirming the account password
//	@Tags		auth
//	@Security	BearerAuth
//	@Router		/api/auth/2fa/disable [post]
func (h *TwoFactorHandler) Disable(w http.ResponseWriter, r *http.Request) {
	var req disableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	userID := httpx.UserIDFromContext(r.Context())

	err := h.TwoFactor.Disable(r.Context(), userID, req.Password)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "Invalid password")
		return
	case errors.Is(err, service.ErrTwoFactorDisabled):
		httpx.WriteError(w, http.StatusBadRequest, "Two-factor authentication is not enabled")
		return
	case err != nil:
		writeInternal(w, r, "2fa disable", err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Two-factor authentication disabled",
	})
}
