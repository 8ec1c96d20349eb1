package post

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"Chirp/internal/api/handlers"
	"Chirp/internal/core/posts"
)

// handleServiceError maps service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, logger logrus.FieldLogger, err error) {
	var valErr *posts.ValidationError

	switch {
	case errors.As(err, &valErr):
		handlers.WriteFieldError(w, http.StatusBadRequest, handlers.KindValidation, valErr.Field, valErr.Message)

	case errors.Is(err, posts.ErrAuthRequired):
		handlers.WriteError(w, http.StatusUnauthorized, handlers.KindUnauthenticated, "Unauthenticated")

	case errors.Is(err, posts.ErrRateLimitExceeded):
		handlers.WriteError(w, http.StatusTooManyRequests, handlers.KindTooManyRequests,
			"You are posting too fast. Please wait a moment.")

	case errors.Is(err, posts.ErrNotFound):
		handlers.WriteError(w, http.StatusNotFound, handlers.KindNotFound, "Post not found")

	case errors.Is(err, posts.ErrAuthorNotFound):
		logger.WithError(err).Error("post author missing from identity directory")
		handlers.WriteError(w, http.StatusInternalServerError, handlers.KindInternal, "Author for post not found")

	default:
		// Don't leak internal error details to clients
		logger.WithError(err).Error("unexpected error in post handler")
		handlers.WriteError(w, http.StatusInternalServerError, handlers.KindInternal,
			"An internal error occurred")
	}
}
