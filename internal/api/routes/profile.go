package routes

import (
	"Chirp/internal/api/handlers/profile"
	"Chirp/internal/core/users"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// RegisterProfileRoutes registers the profile.* RPC endpoints on the router
func RegisterProfileRoutes(r chi.Router, service users.UserService, logger logrus.FieldLogger) {
	getUserHandler := profile.NewGetUserHandler(service, logger)

	r.Get("/profile.getUserByUsername", getUserHandler.HandleGetByUsername)
}
