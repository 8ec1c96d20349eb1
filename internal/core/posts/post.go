package posts

import (
	"time"

	"Chirp/internal/core/users"
)

const (
	// MaxContentLength is the maximum post length in user-perceived characters (grapheme clusters)
	MaxContentLength = 280

	// DefaultListLimit caps every feed read. It is a hard cap, not a page size.
	DefaultListLimit = 100
)

// Post represents a post in the relational store
// Posts are created only through CreatePost and never mutated or deleted
type Post struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	ID        string    `json:"id" db:"id"`
	AuthorID  string    `json:"authorId" db:"author_id"`
	Content   string    `json:"content" db:"content"`
}

// PostWithAuthor is a post joined with its author's public profile
// Author is always resolved; a post without a displayable author is never returned
type PostWithAuthor struct {
	Post   *Post                `json:"post"`
	Author *users.AuthorSummary `json:"author"`
}

// CreatePostRequest represents input for creating a new post
type CreatePostRequest struct {
	Content string `json:"content"`
	// AuthorID is set from the authenticated caller, never from the request body
	AuthorID string `json:"-"`
}
