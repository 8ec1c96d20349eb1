package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"Chirp/internal/core/posts"
)

const postColumns = `id, author_id, content, created_at`

type postgresPostRepo struct {
	db *sql.DB
}

// NewPostRepository creates a new PostgreSQL post repository
func NewPostRepository(db *sql.DB) posts.Repository {
	return &postgresPostRepo{db: db}
}

// ListRecent returns the newest posts across all authors
func (r *postgresPostRepo) ListRecent(ctx context.Context, limit int) ([]*posts.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list recent posts: %w", err)
	}
	return scanPosts(rows)
}

// ListByAuthor returns the newest posts by one author
func (r *postgresPostRepo) ListByAuthor(ctx context.Context, authorID string, limit int) ([]*posts.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts
		WHERE author_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, authorID, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list posts by author: %w", err)
	}
	return scanPosts(rows)
}

// GetByID retrieves a single post. Malformed ids are reported as not found
// rather than surfacing a uuid cast error from Postgres.
func (r *postgresPostRepo) GetByID(ctx context.Context, id string) (*posts.Post, error) {
	postID, err := uuid.Parse(id)
	if err != nil {
		return nil, posts.ErrNotFound
	}

	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	var post posts.Post
	err = r.db.QueryRowContext(ctx, query, postID.String()).Scan(
		&post.ID, &post.AuthorID, &post.Content, &post.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, posts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post by id: %w", err)
	}

	return &post, nil
}

// Insert stores a new post. The id is generated here; created_at comes from the database clock.
func (r *postgresPostRepo) Insert(ctx context.Context, authorID, content string) (*posts.Post, error) {
	query := `
		INSERT INTO posts (id, author_id, content)
		VALUES ($1, $2, $3)
		RETURNING ` + postColumns

	var post posts.Post
	err := r.db.QueryRowContext(ctx, query, uuid.NewString(), authorID, content).Scan(
		&post.ID, &post.AuthorID, &post.Content, &post.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert post: %w", err)
	}

	return &post, nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > posts.DefaultListLimit {
		return posts.DefaultListLimit
	}
	return limit
}

func scanPosts(rows *sql.Rows) ([]*posts.Post, error) {
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*posts.Post, 0)
	for rows.Next() {
		var post posts.Post
		if err := rows.Scan(&post.ID, &post.AuthorID, &post.Content, &post.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		result = append(result, &post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}

	return result, nil
}
