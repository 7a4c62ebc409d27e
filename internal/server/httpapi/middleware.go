package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/coursehub/internal/logging"
	"github.com/dmitrijs2005/coursehub/internal/server/authz"
	"github.com/dmitrijs2005/coursehub/internal/server/models"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/unrolled/secure"
)

func requestLogger(l logging.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimid.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			l.Info(r.Context(), "request",
				"request_id", chimid.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
			)
		})
	}
}

func secureHeaders(development bool) func(http.Handler) http.Handler {
	return secure.New(secure.Options{
		IsDevelopment:         development,
		ContentTypeNosniff:    true,
		FrameDeny:             true,
		BrowserXssFilter:      true,
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
		ReferrerPolicy:        "no-referrer",
	}).Handler
}

// authenticate runs the gate and stores the identity in the request context.
func authenticate(g *authz.Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := g.Authenticate(r.Context(), r.Header.Get("Authorization"))
			if err != nil {
				writeServiceError(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(authz.WithIdentity(r.Context(), id)))
		})
	}
}

// requireRole must run after authenticate.
func requireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := authz.RequireRole(authz.FromContext(r.Context()), roles...); err != nil {
				writeServiceError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func noStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

