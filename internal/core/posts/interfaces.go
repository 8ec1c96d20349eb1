package posts

import "context"

// Service defines the business logic interface for posts
type Service interface {
	// ListAll returns the most recent posts across all authors, newest first
	ListAll(ctx context.Context) ([]*PostWithAuthor, error)

	// ListByAuthor returns the most recent posts by a single author, newest first
	ListByAuthor(ctx context.Context, authorID string) ([]*PostWithAuthor, error)

	// GetByID returns a single post with its author
	GetByID(ctx context.Context, id string) (*PostWithAuthor, error)

	// CreatePost validates, rate limits and stores a new post
	// Flow: Validate -> CheckAndConsume -> Insert
	CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error)
}

// Repository defines the data access interface for posts
type Repository interface {
	// ListRecent returns up to limit posts ordered by created_at DESC, id DESC
	ListRecent(ctx context.Context, limit int) ([]*Post, error)

	// ListByAuthor returns up to limit posts by authorID with the same ordering as ListRecent
	ListByAuthor(ctx context.Context, authorID string, limit int) ([]*Post, error)

	// GetByID returns ErrNotFound if no post has the given id
	GetByID(ctx context.Context, id string) (*Post, error)

	// Insert stores a post. id and createdAt are assigned server-side.
	Insert(ctx context.Context, authorID, content string) (*Post, error)
}

// RateLimiter admits or rejects writes per key
type RateLimiter interface {
	// CheckAndConsume returns false (and no error) when the key's quota is exhausted.
	// An error means the decision could not be made; callers must fail closed.
	CheckAndConsume(ctx context.Context, key string) (bool, error)
}

// AuthorResolver joins posts with their authors' profiles
type AuthorResolver interface {
	// Resolve is all-or-nothing: if any post's author cannot be resolved the whole call fails
	Resolve(ctx context.Context, posts []*Post) ([]*PostWithAuthor, error)
}
