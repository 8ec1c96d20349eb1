// Package devauth lets local developers sign in as any user id without the
// identity provider. Routes are only mounted when DEV_AUTH is enabled.
package devauth

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
	"github.com/sirupsen/logrus"

	"Chirp/internal/api/handlers"
	"Chirp/internal/api/middleware"
)

const (
	maxUserIDLength = 128

	// SessionMaxAge is the dev session cookie lifetime in seconds.
	SessionMaxAge = 7 * 24 * 60 * 60
)

// NewSessionStore returns the cookie store dev sessions are issued from.
// Cookie options live here only; handlers never override them on sign-in.
func NewSessionStore(secret []byte) *sessions.CookieStore {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   SessionMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// Handler issues and clears dev session cookies
type Handler struct {
	store  sessions.Store
	logger logrus.FieldLogger
}

// NewHandler creates a dev sign-in handler backed by store
func NewHandler(store sessions.Store, logger logrus.FieldLogger) *Handler {
	return &Handler{
		store:  store,
		logger: logger,
	}
}

type signInRequest struct {
	UserID string `json:"userId"`
}

type signInResponse struct {
	UserID string `json:"userId"`
}

// HandleSignIn handles POST /dev/signin {"userId": "..."}
func (h *Handler) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 4*1024)

	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, handlers.KindValidation, "Invalid request body")
		return
	}

	userID := strings.TrimSpace(req.UserID)
	if userID == "" || len(userID) > maxUserIDLength {
		handlers.WriteFieldError(w, http.StatusBadRequest, handlers.KindValidation, "userId",
			"userId is required")
		return
	}

	// A decode error means a stale or foreign cookie; overwrite it
	session, _ := h.store.Get(r, middleware.DevSessionName)
	session.Values[middleware.DevSessionUserKey] = userID

	if err := session.Save(r, w); err != nil {
		h.logger.WithError(err).Error("failed to save dev session")
		handlers.WriteError(w, http.StatusInternalServerError, handlers.KindInternal, "An internal error occurred")
		return
	}

	h.logger.WithField("user_id", userID).Warn("dev sign-in issued")
	handlers.WriteJSON(w, http.StatusOK, signInResponse{UserID: userID})
}

// HandleSignOut handles POST /dev/signout
func (h *Handler) HandleSignOut(w http.ResponseWriter, r *http.Request) {
	session, _ := h.store.Get(r, middleware.DevSessionName)
	expired := sessions.Options{Path: "/"}
	if session.Options != nil {
		expired = *session.Options
	}
	expired.MaxAge = -1
	session.Options = &expired
	delete(session.Values, middleware.DevSessionUserKey)

	if err := session.Save(r, w); err != nil {
		h.logger.WithError(err).Error("failed to clear dev session")
		handlers.WriteError(w, http.StatusInternalServerError, handlers.KindInternal, "An internal error occurred")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
