package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/coursehub/internal/common"
)

const refreshCookiePath = "/api/auth"

// refreshCookie carries the refresh token. It is HttpOnly so page script
// never sees it, and scoped to the auth routes.
func (h *handler) refreshCookie(token string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     common.RefreshTokenCookieName,
		Value:    token,
		Path:     refreshCookiePath,
		MaxAge:   int(ttl / time.Second),
		Expires:  h.now().Add(ttl),
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteStrictMode,
	}
}

func (h *handler) clearRefreshCookie() *http.Cookie {
	return &http.Cookie{
		Name:     common.RefreshTokenCookieName,
		Value:    "",
		Path:     refreshCookiePath,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteStrictMode,
	}
}
