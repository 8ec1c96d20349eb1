package routes

import (
	"context"
	"net/http"
	"time"

	"Chirp/internal/api/handlers"
	"Chirp/internal/api/middleware"
	"Chirp/internal/core/posts"
	"Chirp/internal/core/users"
	"Chirp/internal/metrics"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"github.com/sirupsen/logrus"
)

// healthCheckTimeout bounds each dependency ping in /health
const healthCheckTimeout = 2 * time.Second

// HealthCheck pings one dependency
type HealthCheck func(ctx context.Context) error

// Dependencies are the handles the router mounts endpoints for
type Dependencies struct {
	PostService    posts.Service
	UserService    users.UserService
	Auth           *middleware.AuthMiddleware
	IPLimiter      *middleware.RateLimiter
	DevSessions    sessions.Store
	HealthChecks   map[string]HealthCheck
	Logger         logrus.FieldLogger
	AllowedOrigins []string

	// TrustProxyHeaders rewrites RemoteAddr from X-Real-IP / X-Forwarded-For.
	// Only set it when a proxy we control overwrites those headers.
	TrustProxyHeaders bool
}

// NewRouter builds the HTTP surface: /api RPC endpoints, /health, /metrics and,
// when a dev session store is given, the dev sign-in endpoints.
func NewRouter(deps Dependencies) chi.Router {
	r := chi.NewRouter()

	if deps.TrustProxyHeaders {
		r.Use(chiMiddleware.RealIP)
	}
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(chiMiddleware.Recoverer)

	r.Get("/health", healthHandler(deps.HealthChecks, deps.Logger))
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Use(CORSMiddleware(deps.AllowedOrigins))
		if deps.IPLimiter != nil {
			api.Use(deps.IPLimiter.Middleware)
		}

		RegisterPostRoutes(api, deps.PostService, deps.Auth, deps.Logger)
		RegisterProfileRoutes(api, deps.UserService, deps.Logger)
	})

	if deps.DevSessions != nil {
		RegisterDevAuthRoutes(r, deps.DevSessions, deps.Logger)
	}

	return r
}

type healthResponse struct {
	Checks map[string]string `json:"checks,omitempty"`
	Status string            `json:"status"`
}

func healthHandler(checks map[string]HealthCheck, logger logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		failed := make(map[string]string)
		for name, check := range checks {
			ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
			err := check(ctx)
			cancel()
			if err != nil {
				logger.WithField("dependency", name).WithError(err).Warn("health check failed")
				failed[name] = "unavailable"
			}
		}

		if len(failed) > 0 {
			handlers.WriteJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable", Checks: failed})
			return
		}
		handlers.WriteJSON(w, http.StatusOK, healthResponse{Status: "ok"})
	}
}
