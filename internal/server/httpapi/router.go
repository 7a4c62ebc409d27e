// Package httpapi exposes the identity operations as a JSON HTTP API.
package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/coursehub/internal/logging"
	"github.com/dmitrijs2005/coursehub/internal/server/authz"
	"github.com/dmitrijs2005/coursehub/internal/server/models"
	"github.com/dmitrijs2005/coursehub/internal/server/services"
	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	CookieSecure    bool
	// Development echoes raw verification and reset tokens in responses.
	Development bool
}

type handler struct {
	identity *services.IdentityService
	admin    *services.AdminService
	avatars  *services.AvatarService
	metrics  *Metrics
	validate *validator.Validate
	logger   logging.Logger
	cfg      Config
	now      func() time.Time
}

func NewRouter(cfg Config, identity *services.IdentityService, admin *services.AdminService, avatars *services.AvatarService, gate *authz.Gate, m *Metrics, l logging.Logger) http.Handler {
	h := &handler{
		identity: identity,
		admin:    admin,
		avatars:  avatars,
		metrics:  m,
		validate: newValidator(),
		logger:   l.With("module", "http"),
		cfg:      cfg,
		now:      time.Now,
	}

	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(requestLogger(h.logger))
	r.Use(chimid.Recoverer)
	r.Use(m.Middleware)
	r.Use(secureHeaders(cfg.Development))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeErr(w, http.StatusNotFound, ErrCodeRouteNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeErr(w, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "method not allowed")
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", m.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(noStore)

		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(chimid.AllowContentType("application/json"))
				r.Post("/register", h.register)
				r.Post("/verify-email", h.verifyEmail)
				r.Post("/resend-verification", h.resendVerification)
				r.Post("/login", h.login)
				r.Post("/forgot-password", h.forgotPassword)
				r.Post("/reset-password", h.resetPassword)
			})
			r.Post("/refresh-token", h.refreshToken)
			r.Post("/logout", h.logout)

			r.Group(func(r chi.Router) {
				r.Use(authenticate(gate))
				r.Get("/profile", h.profile)
				r.With(chimid.AllowContentType("application/json")).Post("/change-password", h.changePassword)

				r.Route("/avatar", func(r chi.Router) {
					r.Get("/", h.avatarURL)
					r.Delete("/", h.removeAvatar)
					r.With(chimid.AllowContentType("application/json")).Put("/", h.confirmAvatar)
					r.With(chimid.AllowContentType("application/json")).Post("/upload-url", h.avatarUploadURL)
				})
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(authenticate(gate))
			r.Use(requireRole(models.RoleAdmin))
			r.Get("/users", h.listUsers)
			r.Get("/analytics", h.analytics)
			r.With(chimid.AllowContentType("application/json")).Put("/users/{id}/role", h.changeRole)
			r.Delete("/users/{id}", h.deleteUser)
		})
	})

	return r
}
