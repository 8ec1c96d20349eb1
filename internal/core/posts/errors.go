package posts

import (
	"errors"
	"fmt"
)

// Sentinel errors for common post operations
var (
	// ErrNotFound is returned when a post is not found by id
	ErrNotFound = errors.New("post not found")

	// ErrRateLimitExceeded is returned when the author's posting quota is exhausted
	ErrRateLimitExceeded = errors.New("too many requests")

	// ErrAuthRequired is returned when a write is attempted without a caller identity
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthorNotFound is returned when a post's author cannot be resolved to a
	// displayable profile. This is an internal error: the store and the directory disagree.
	ErrAuthorNotFound = errors.New("author not found")
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error (%s): %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) error {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// IsValidationError checks if error is a validation error
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}

// AuthorNotFoundError identifies which author failed to resolve
type AuthorNotFoundError struct {
	AuthorID string
	Reason   string
}

func (e *AuthorNotFoundError) Error() string {
	return fmt.Sprintf("author not found for %s: %s", e.AuthorID, e.Reason)
}

// Is lets errors.Is(err, ErrAuthorNotFound) match
func (e *AuthorNotFoundError) Is(target error) bool {
	return target == ErrAuthorNotFound
}
