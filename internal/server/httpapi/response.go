package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/coursehub/internal/common"
)

const (
	ErrCodeInvalidRequest   = "invalid_request"
	ErrCodeEmailTaken       = "email_taken"
	ErrCodeInvalidCreds     = "invalid_credentials"
	ErrCodeNotVerified      = "email_not_verified"
	ErrCodeInvalidToken     = "invalid_or_expired_token"
	ErrCodeUnauthorized     = "unauthorized"
	ErrCodeForbidden        = "forbidden"
	ErrCodeNotFound         = "not_found"
	ErrCodeInternal         = "internal_error"
	ErrCodeRouteNotFound    = "route_not_found"
	ErrCodeMethodNotAllowed = "method_not_allowed"
)

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeErr(w http.ResponseWriter, code int, errCode, message string) {
	writeJSON(w, code, errorBody{Error: message, Code: errCode})
}

// writeServiceError maps a service error to a status code. Messages for the
// anti-enumeration errors are fixed strings.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrValidation):
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
	case errors.Is(err, common.ErrDuplicateEmail):
		writeErr(w, http.StatusConflict, ErrCodeEmailTaken, "email already registered")
	case errors.Is(err, common.ErrInvalidCredentials):
		writeErr(w, http.StatusUnauthorized, ErrCodeInvalidCreds, "invalid email or password")
	case errors.Is(err, common.ErrEmailNotVerified):
		writeErr(w, http.StatusForbidden, ErrCodeNotVerified, "email not verified")
	case errors.Is(err, common.ErrInvalidOrExpiredToken):
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidToken, "invalid or expired token")
	case errors.Is(err, common.ErrUnauthorized):
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
	case errors.Is(err, common.ErrForbidden):
		writeErr(w, http.StatusForbidden, ErrCodeForbidden, "insufficient role")
	case errors.Is(err, common.ErrorNotFound):
		writeErr(w, http.StatusNotFound, ErrCodeNotFound, "not found")
	default:
		writeErr(w, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
	}
}
