package post

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"Chirp/internal/api/handlers"
	"Chirp/internal/api/middleware"
	"Chirp/internal/core/posts"
)

// maxCreateBodyBytes allows 280 emoji with room for JSON escaping
const maxCreateBodyBytes = 64 * 1024

// CreateHandler handles post creation requests
type CreateHandler struct {
	service posts.Service
	logger  logrus.FieldLogger
}

// NewCreateHandler creates a new create handler
func NewCreateHandler(service posts.Service, logger logrus.FieldLogger) *CreateHandler {
	return &CreateHandler{
		service: service,
		logger:  logger,
	}
}

// HandleCreate handles POST /api/posts.create
// Body: {"content": "..."}. The author is always the authenticated caller.
func (h *CreateHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == "" {
		handlers.WriteError(w, http.StatusUnauthorized, handlers.KindUnauthenticated, "Unauthenticated")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxCreateBodyBytes)

	var req posts.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			handlers.WriteFieldError(w, http.StatusBadRequest, handlers.KindValidation, "content",
				"Request body too large")
			return
		}
		handlers.WriteError(w, http.StatusBadRequest, handlers.KindValidation, "Invalid request body")
		return
	}

	req.AuthorID = userID

	post, err := h.service.CreatePost(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, post)
}
