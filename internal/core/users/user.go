package users

// User is an identity record as returned by the external identity directory.
// Username is nullable upstream: accounts created through social sign-in may not have one.
type User struct {
	Username        *string `json:"username"`
	ID              string  `json:"id"`
	ProfileImageURL string  `json:"profileImageUrl"`
}

// AuthorSummary is the public, display-ready view of a user.
// It is never persisted; it is derived per request from the directory.
type AuthorSummary struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	ProfileImageURL string `json:"profileImageUrl"`
}

// Summary converts a directory record into an AuthorSummary.
// Returns false if the record has no usable username.
func (u *User) Summary() (*AuthorSummary, bool) {
	if u == nil || u.Username == nil || *u.Username == "" {
		return nil, false
	}
	return &AuthorSummary{
		ID:              u.ID,
		Username:        *u.Username,
		ProfileImageURL: u.ProfileImageURL,
	}, true
}
