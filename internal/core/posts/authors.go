package posts

import (
	"context"
	"fmt"

	"Chirp/internal/core/users"
)

type authorResolver struct {
	directory users.Directory
}

// NewAuthorResolver creates a resolver backed by the identity directory
func NewAuthorResolver(directory users.Directory) AuthorResolver {
	return &authorResolver{directory: directory}
}

// Resolve issues one batched directory lookup for the distinct authors in posts and
// joins the results by author id. The join is strict: a missing record or a record
// without a username fails the whole batch instead of dropping the post.
func (r *authorResolver) Resolve(ctx context.Context, posts []*Post) ([]*PostWithAuthor, error) {
	if len(posts) == 0 {
		return []*PostWithAuthor{}, nil
	}

	authorIDs := distinctAuthorIDs(posts)

	records, err := r.directory.GetUsersByIDs(ctx, authorIDs, users.MaxDirectoryBatch)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch authors: %w", err)
	}

	byID := make(map[string]*users.User, len(records))
	for _, record := range records {
		if record != nil {
			byID[record.ID] = record
		}
	}

	result := make([]*PostWithAuthor, 0, len(posts))
	for _, post := range posts {
		record, found := byID[post.AuthorID]
		if !found {
			return nil, &AuthorNotFoundError{AuthorID: post.AuthorID, Reason: "no directory record"}
		}

		author, ok := record.Summary()
		if !ok {
			return nil, &AuthorNotFoundError{AuthorID: post.AuthorID, Reason: "record has no username"}
		}

		result = append(result, &PostWithAuthor{
			Post:   post,
			Author: author,
		})
	}

	return result, nil
}

// distinctAuthorIDs returns each author id once, in first-seen order
func distinctAuthorIDs(posts []*Post) []string {
	seen := make(map[string]struct{}, len(posts))
	ids := make([]string, 0, len(posts))
	for _, post := range posts {
		if _, dup := seen[post.AuthorID]; dup {
			continue
		}
		seen[post.AuthorID] = struct{}{}
		ids = append(ids, post.AuthorID)
	}
	return ids
}
