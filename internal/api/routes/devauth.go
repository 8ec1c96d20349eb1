package routes

import (
	"Chirp/internal/api/handlers/devauth"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/sirupsen/logrus"
)

// RegisterDevAuthRoutes registers dev sign-in endpoints. Only call this when DEV_AUTH is enabled.
func RegisterDevAuthRoutes(r chi.Router, store sessions.Store, logger logrus.FieldLogger) {
	handler := devauth.NewHandler(store, logger)

	r.Post("/dev/signin", handler.HandleSignIn)
	r.Post("/dev/signout", handler.HandleSignOut)
}
