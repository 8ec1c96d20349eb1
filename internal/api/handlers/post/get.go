package post

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"Chirp/internal/api/handlers"
	"Chirp/internal/core/posts"
)

// GetHandler serves single posts
type GetHandler struct {
	service posts.Service
	logger  logrus.FieldLogger
}

// NewGetHandler creates a new get handler
func NewGetHandler(service posts.Service, logger logrus.FieldLogger) *GetHandler {
	return &GetHandler{
		service: service,
		logger:  logger,
	}
}

// HandleGetByID handles GET /api/posts.getById?id=
func (h *GetHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")

	result, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.logger.WithField("post_id", id), err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, result)
}
