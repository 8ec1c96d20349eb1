package users

import (
	"errors"
	"fmt"
)

// ErrUserNotFound is returned when a user lookup finds no matching record
var ErrUserNotFound = errors.New("user not found")

// InvalidUsernameError is returned for usernames that cannot be looked up
type InvalidUsernameError struct {
	Username string
	Reason   string
}

func (e *InvalidUsernameError) Error() string {
	return fmt.Sprintf("invalid username %q: %s", e.Username, e.Reason)
}

// IsInvalidUsername checks if err is an InvalidUsernameError
func IsInvalidUsername(err error) bool {
	var invalid *InvalidUsernameError
	return errors.As(err, &invalid)
}
