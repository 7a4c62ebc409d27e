package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/coursehub/internal/common"
	"github.com/dmitrijs2005/coursehub/internal/server/authz"
	"github.com/dmitrijs2005/coursehub/internal/server/models"
)

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, common.ErrValidation):
		return ErrCodeInvalidRequest
	case errors.Is(err, common.ErrDuplicateEmail):
		return ErrCodeEmailTaken
	case errors.Is(err, common.ErrInvalidCredentials):
		return ErrCodeInvalidCreds
	case errors.Is(err, common.ErrEmailNotVerified):
		return ErrCodeNotVerified
	case errors.Is(err, common.ErrInvalidOrExpiredToken):
		return ErrCodeInvalidToken
	case errors.Is(err, common.ErrUnauthorized):
		return ErrCodeUnauthorized
	default:
		return ErrCodeInternal
	}
}

// fail records the event outcome and writes the error response.
func (h *handler) fail(w http.ResponseWriter, event string, err error) {
	h.metrics.Record(event, outcome(err))
	writeServiceError(w, err)
}

type registerRequest struct {
	DisplayName string `json:"displayName" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,max=254"`
	Password    string `json:"password" validate:"required,max=128"`
	Role        string `json:"role" validate:"omitempty,oneof=student instructor"`
}

type registerResponse struct {
	Account            models.AccountView `json:"account"`
	VerificationHandle string             `json:"verificationHandle,omitempty"`
	DeliveryFailed     bool               `json:"deliveryFailed,omitempty"`
}

func (h *handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := h.decode(w, r, &req); err != nil {
		h.fail(w, "register", err)
		return
	}

	res, err := h.identity.Register(r.Context(), req.DisplayName, req.Email, req.Password, req.Role)
	if err != nil {
		h.fail(w, "register", err)
		return
	}
	h.metrics.Record("register", "ok")

	resp := registerResponse{Account: res.Account.View(), DeliveryFailed: res.DeliveryErr != nil}
	if h.cfg.Development {
		resp.VerificationHandle = res.VerificationHandle
	}
	writeJSON(w, http.StatusCreated, resp)
}

type tokenRequest struct {
	Token string `json:"token" validate:"required,max=256"`
}

func (h *handler) verifyEmail(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := h.decode(w, r, &req); err != nil {
		h.fail(w, "verify_email", err)
		return
	}

	if _, err := h.identity.VerifyEmail(r.Context(), req.Token); err != nil {
		h.fail(w, "verify_email", err)
		return
	}
	h.metrics.Record("verify_email", "ok")
	writeJSON(w, http.StatusOK, map[string]string{"status": "verified"})
}

type emailRequest struct {
	Email string `json:"email" validate:"required,max=254"`
}

type resendResponse struct {
	Status             string `json:"status"`
	VerificationHandle string `json:"verificationHandle,omitempty"`
	DeliveryFailed     bool   `json:"deliveryFailed,omitempty"`
}

func (h *handler) resendVerification(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := h.decode(w, r, &req); err != nil {
		h.fail(w, "resend_verification", err)
		return
	}

	res, err := h.identity.ResendVerification(r.Context(), req.Email)
	if err != nil {
		h.fail(w, "resend_verification", err)
		return
	}
	h.metrics.Record("resend_verification", "ok")

	resp := resendResponse{Status: "sent", DeliveryFailed: res.DeliveryErr != nil}
	if res.AlreadyVerified {
		resp.Status = "already_verified"
	}
	if h.cfg.Development {
		resp.VerificationHandle = res.VerificationHandle
	}
	writeJSON(w, http.StatusOK, resp)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,max=254"`
	Password string `json:"password" validate:"required,max=128"`
}

type accessResponse struct {
	AccessToken string              `json:"accessToken"`
	TokenType   string              `json:"tokenType"`
	ExpiresIn   int64               `json:"expiresIn"`
	Account     *models.AccountView `json:"account,omitempty"`
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := h.decode(w, r, &req); err != nil {
		h.fail(w, "login", err)
		return
	}

	res, err := h.identity.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(w, "login", err)
		return
	}
	h.metrics.Record("login", "ok")

	http.SetCookie(w, h.refreshCookie(res.RefreshToken, h.cfg.RefreshTokenTTL))
	view := res.Account.View()
	writeJSON(w, http.StatusOK, accessResponse{
		AccessToken: res.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(h.cfg.AccessTokenTTL.Seconds()),
		Account:     &view,
	})
}

func (h *handler) refreshToken(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(common.RefreshTokenCookieName)
	if err != nil || c.Value == "" {
		h.fail(w, "refresh", common.ErrUnauthorized)
		return
	}

	access, _, err := h.identity.RefreshAccessToken(r.Context(), c.Value)
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			http.SetCookie(w, h.clearRefreshCookie())
		}
		h.fail(w, "refresh", err)
		return
	}
	h.metrics.Record("refresh", "ok")

	writeJSON(w, http.StatusOK, accessResponse{
		AccessToken: access,
		TokenType:   "Bearer",
		ExpiresIn:   int64(h.cfg.AccessTokenTTL.Seconds()),
	})
}

// logout only drops the cookie; refresh tokens are not revocable.
func (h *handler) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.clearRefreshCookie())
	w.WriteHeader(http.StatusNoContent)
}

type forgotResponse struct {
	Status      string `json:"status"`
	ResetHandle string `json:"resetHandle,omitempty"`
}

func (h *handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := h.decode(w, r, &req); err != nil {
		h.fail(w, "forgot_password", err)
		return
	}

	res, err := h.identity.ForgotPassword(r.Context(), req.Email)
	if err != nil {
		h.fail(w, "forgot_password", err)
		return
	}
	h.metrics.Record("forgot_password", "ok")

	resp := forgotResponse{Status: "accepted"}
	if h.cfg.Development {
		resp.ResetHandle = res.ResetHandle
	}
	writeJSON(w, http.StatusAccepted, resp)
}

type resetRequest struct {
	Token       string `json:"token" validate:"required,max=256"`
	NewPassword string `json:"newPassword" validate:"required,max=128"`
}

func (h *handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := h.decode(w, r, &req); err != nil {
		h.fail(w, "reset_password", err)
		return
	}

	if err := h.identity.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		h.fail(w, "reset_password", err)
		return
	}
	h.metrics.Record("reset_password", "ok")
	writeJSON(w, http.StatusOK, map[string]string{"status": "password_reset"})
}

func (h *handler) profile(w http.ResponseWriter, r *http.Request) {
	acc, err := h.identity.GetProfile(r.Context(), authz.FromContext(r.Context()).AccountID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, acc.View())
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required,max=128"`
	NewPassword     string `json:"newPassword" validate:"required,max=128"`
}

func (h *handler) changePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := h.decode(w, r, &req); err != nil {
		h.fail(w, "change_password", err)
		return
	}

	id := authz.FromContext(r.Context())
	if err := h.identity.ChangePassword(r.Context(), id.AccountID, req.CurrentPassword, req.NewPassword); err != nil {
		h.fail(w, "change_password", err)
		return
	}
	h.metrics.Record("change_password", "ok")
	writeJSON(w, http.StatusOK, map[string]string{"status": "password_changed"})
}
