package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
	"github.com/sirupsen/logrus"

	"Chirp/internal/api/handlers"
	"Chirp/internal/auth"
)

// Context keys for storing user information
type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	JWTClaimsKey contextKey = "jwt_claims"
)

const (
	// SessionCookieName is the cookie the identity provider's frontend SDK sets
	SessionCookieName = "__session"

	// DevSessionName is the gorilla session used by dev sign-in
	DevSessionName = "chirp_dev_session"

	// DevSessionUserKey holds the signed-in user id inside the dev session
	DevSessionUserKey = "user_id"
)

var errNoCredentials = errors.New("no credentials")

// TokenVerifier validates a session token and returns its claims
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*auth.Claims, error)
}

// AuthMiddleware authenticates requests with the identity provider's session token.
// The token is read from the Authorization header, then the __session cookie.
// When a dev session store is configured, a signed dev cookie is accepted as well.
type AuthMiddleware struct {
	verifier    TokenVerifier
	devSessions sessions.Store
	logger      logrus.FieldLogger
}

// NewAuthMiddleware creates the auth middleware. verifier may be nil when only
// dev sign-in is enabled; devSessions may be nil to disable dev sign-in.
func NewAuthMiddleware(verifier TokenVerifier, devSessions sessions.Store, logger logrus.FieldLogger) *AuthMiddleware {
	return &AuthMiddleware{
		verifier:    verifier,
		devSessions: devSessions,
		logger:      logger,
	}
}

// RequireAuth rejects unauthenticated requests with 401
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, claims, err := m.authenticate(r)
		if err != nil {
			if !errors.Is(err, errNoCredentials) {
				m.logger.WithFields(logrus.Fields{
					"ip":     r.RemoteAddr,
					"method": r.Method,
					"path":   r.URL.Path,
				}).WithError(err).Warn("authentication failed")
			}
			handlers.WriteError(w, http.StatusUnauthorized, handlers.KindUnauthenticated, "Unauthenticated")
			return
		}

		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), userID, claims)))
	})
}

// OptionalAuth loads the caller's identity when present but never rejects
func (m *AuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, claims, err := m.authenticate(r)
		if err != nil {
			if !errors.Is(err, errNoCredentials) {
				m.logger.WithError(err).Debug("optional auth failed")
			}
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), userID, claims)))
	})
}

func (m *AuthMiddleware) authenticate(r *http.Request) (string, *auth.Claims, error) {
	if token := extractToken(r); token != "" && m.verifier != nil {
		claims, err := m.verifier.Verify(r.Context(), token)
		if err != nil {
			return "", nil, err
		}
		return claims.UserID(), claims, nil
	}

	if m.devSessions != nil {
		session, err := m.devSessions.Get(r, DevSessionName)
		if err != nil {
			return "", nil, err
		}
		if userID, ok := session.Values[DevSessionUserKey].(string); ok && userID != "" {
			return userID, nil, nil
		}
	}

	return "", nil, errNoCredentials
}

func extractToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if strings.HasPrefix(header, "Bearer ") {
			return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		}
		return ""
	}

	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

func withUser(ctx context.Context, userID string, claims *auth.Claims) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, userID)
	if claims != nil {
		ctx = context.WithValue(ctx, JWTClaimsKey, claims)
	}
	return ctx
}

// GetUserID extracts the user id from the request context
// Returns empty string if not authenticated
func GetUserID(r *http.Request) string {
	return GetAuthenticatedUserID(r.Context())
}

// GetAuthenticatedUserID extracts the authenticated user id from the context
func GetAuthenticatedUserID(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDKey).(string)
	return userID
}

// GetJWTClaims extracts the session token claims from the request context
// Returns nil for dev sessions and anonymous requests
func GetJWTClaims(r *http.Request) *auth.Claims {
	claims, _ := r.Context().Value(JWTClaimsKey).(*auth.Claims)
	return claims
}

// SetTestUserID sets the user id in the context for testing purposes
// This function should ONLY be used in tests to mock authenticated users
func SetTestUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}
