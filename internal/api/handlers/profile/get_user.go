package profile

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"Chirp/internal/api/handlers"
	"Chirp/internal/core/users"
)

// GetUserHandler serves public profiles
type GetUserHandler struct {
	service users.UserService
	logger  logrus.FieldLogger
}

// NewGetUserHandler creates a new profile handler
func NewGetUserHandler(service users.UserService, logger logrus.FieldLogger) *GetUserHandler {
	return &GetUserHandler{
		service: service,
		logger:  logger,
	}
}

// HandleGetByUsername handles GET /api/profile.getUserByUsername?username=
// Accepts "alice" or "@alice".
func (h *GetUserHandler) HandleGetByUsername(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")

	profile, err := h.service.GetProfileByUsername(r.Context(), username)
	if err != nil {
		h.handleServiceError(w, username, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, profile)
}

func (h *GetUserHandler) handleServiceError(w http.ResponseWriter, username string, err error) {
	var invalid *users.InvalidUsernameError

	switch {
	case errors.As(err, &invalid):
		handlers.WriteFieldError(w, http.StatusBadRequest, handlers.KindValidation, "username", invalid.Reason)

	case errors.Is(err, users.ErrUserNotFound):
		handlers.WriteError(w, http.StatusNotFound, handlers.KindNotFound, "User not found")

	default:
		h.logger.WithField("username", username).WithError(err).Error("profile lookup failed")
		handlers.WriteError(w, http.StatusInternalServerError, handlers.KindInternal, "An internal error occurred")
	}
}
