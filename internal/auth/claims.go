package auth

import "github.com/golang-jwt/jwt/v5"

// Claims are the session token claims the identity provider issues.
// The subject is the user id.
type Claims struct {
	jwt.RegisteredClaims
	AuthorizedParty string `json:"azp,omitempty"`
	SessionID       string `json:"sid,omitempty"`
}

// UserID returns the authenticated user id
func (c *Claims) UserID() string {
	return c.Subject
}
