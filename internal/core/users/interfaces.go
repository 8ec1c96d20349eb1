package users

import "context"

// MaxDirectoryBatch is the largest number of identities requested in one directory call
const MaxDirectoryBatch = 100

// Directory is the external system of record for user identity and profile data
type Directory interface {
	// GetUsersByIDs returns the records matching ids, at most limit of them.
	// Unknown ids are not an error; they are simply absent from the result.
	GetUsersByIDs(ctx context.Context, ids []string, limit int) ([]*User, error)

	// GetUsersByUsernames returns the records whose username exactly matches one of usernames.
	GetUsersByUsernames(ctx context.Context, usernames []string, limit int) ([]*User, error)
}

// UserService defines the interface for profile lookups
type UserService interface {
	// GetProfileByUsername returns the public profile for an exact username.
	// A leading "@" (as used in profile URLs) is ignored.
	GetProfileByUsername(ctx context.Context, username string) (*AuthorSummary, error)
}
