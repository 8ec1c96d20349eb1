package identity

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is returned when the directory rejects the secret key
var ErrUnauthorized = errors.New("identity directory rejected credentials")

// APIError wraps a non-success response from the directory that we couldn't map
type APIError struct {
	Message    string
	Code       string
	StatusCode int
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("identity directory error (%d %s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("identity directory error (%d): %s", e.StatusCode, e.Message)
}
