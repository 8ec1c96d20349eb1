package auth

import "errors"

var (
	// ErrInvalidToken is returned for tokens that fail parsing, signature or claim checks
	ErrInvalidToken = errors.New("invalid session token")

	// ErrUnknownKey is returned when no published key matches the token's kid
	ErrUnknownKey = errors.New("signing key not found")

	// ErrUnauthorizedParty is returned when the token's azp is not an allowed origin
	ErrUnauthorizedParty = errors.New("token issued for an unauthorized party")
)
