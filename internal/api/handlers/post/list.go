package post

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"Chirp/internal/api/handlers"
	"Chirp/internal/api/middleware"
	"Chirp/internal/core/posts"
)

// ListHandler serves the global feed and per-author feeds
type ListHandler struct {
	service posts.Service
	logger  logrus.FieldLogger
}

// NewListHandler creates a new list handler
func NewListHandler(service posts.Service, logger logrus.FieldLogger) *ListHandler {
	return &ListHandler{
		service: service,
		logger:  logger,
	}
}

// HandleGetAll handles GET /api/posts.getAll
func (h *ListHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListAll(r.Context())
	if err != nil {
		handleServiceError(w, h.logger.WithField("viewer_id", middleware.GetUserID(r)), err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, result)
}

// HandleGetByUserID handles GET /api/posts.getPostsByUserId?userId=
func (h *ListHandler) HandleGetByUserID(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")

	result, err := h.service.ListByAuthor(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.logger.WithField("author_id", userID), err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, result)
}
