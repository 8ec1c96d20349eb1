package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// maxUsernameLength matches the identity provider's username limit
const maxUsernameLength = 64

type userService struct {
	directory Directory
	logger    logrus.FieldLogger
}

// NewUserService creates a new user service
func NewUserService(directory Directory, logger logrus.FieldLogger) UserService {
	return &userService{
		directory: directory,
		logger:    logger,
	}
}

// GetProfileByUsername performs a single directory lookup by exact username
func (s *userService) GetProfileByUsername(ctx context.Context, username string) (*AuthorSummary, error) {
	username = strings.TrimPrefix(strings.TrimSpace(username), "@")
	if username == "" {
		return nil, &InvalidUsernameError{Username: username, Reason: "username is required"}
	}
	if len(username) > maxUsernameLength {
		return nil, &InvalidUsernameError{Username: username, Reason: "username is too long"}
	}

	records, err := s.directory.GetUsersByUsernames(ctx, []string{username}, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user %s: %w", username, err)
	}

	// The directory's username filter is authoritative; take its first usable record.
	for _, record := range records {
		if summary, ok := record.Summary(); ok {
			return summary, nil
		}
	}

	s.logger.WithField("username", username).Debug("profile lookup found no user")
	return nil, ErrUserNotFound
}
