package routes

import (
	"net/http"

	"Chirp/internal/api/handlers/post"
	"Chirp/internal/api/middleware"
	"Chirp/internal/core/posts"
	"Chirp/internal/metrics"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// RegisterPostRoutes registers the posts.* RPC endpoints on the router
func RegisterPostRoutes(r chi.Router, service posts.Service, authMiddleware *middleware.AuthMiddleware, logger logrus.FieldLogger) {
	listHandler := post.NewListHandler(service, logger)
	getHandler := post.NewGetHandler(service, logger)
	createHandler := post.NewCreateHandler(service, logger)

	// Public reads; optional auth only tags logs with the viewer
	r.With(authMiddleware.OptionalAuth).Get("/posts.getAll", listHandler.HandleGetAll)
	r.With(authMiddleware.OptionalAuth).Get("/posts.getPostsByUserId", listHandler.HandleGetByUserID)
	r.With(authMiddleware.OptionalAuth).Get("/posts.getById", getHandler.HandleGetByID)

	// Procedure endpoint (POST) - requires authentication
	r.With(countUnauthenticated, authMiddleware.RequireAuth).Post("/posts.create", createHandler.HandleCreate)
}

// countUnauthenticated records a 401 on posts.create as a rejected post.
func countUnauthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		if ww.Status() == http.StatusUnauthorized {
			metrics.RecordPostRejected("unauthenticated")
		}
	})
}
