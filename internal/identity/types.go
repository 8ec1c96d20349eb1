package identity

import "Chirp/internal/core/users"

// userRecord is the subset of the Backend API user object we read
type userRecord struct {
	Username        *string `json:"username"`
	ID              string  `json:"id"`
	ImageURL        string  `json:"image_url"`
	ProfileImageURL string  `json:"profile_image_url"`
}

func (r userRecord) toUser() *users.User {
	image := r.ImageURL
	if image == "" {
		image = r.ProfileImageURL
	}
	return &users.User{
		ID:              r.ID,
		Username:        r.Username,
		ProfileImageURL: image,
	}
}

// errorResponse is the Backend API error envelope
type errorResponse struct {
	Errors []struct {
		Message     string `json:"message"`
		LongMessage string `json:"long_message"`
		Code        string `json:"code"`
	} `json:"errors"`
}
