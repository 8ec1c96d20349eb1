package posts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"Chirp/internal/metrics"
)

type postService struct {
	repo     Repository
	resolver AuthorResolver
	limiter  RateLimiter
	logger   logrus.FieldLogger
}

// NewPostService creates a new post service
func NewPostService(
	repo Repository,
	resolver AuthorResolver,
	limiter RateLimiter,
	logger logrus.FieldLogger,
) Service {
	return &postService{
		repo:     repo,
		resolver: resolver,
		limiter:  limiter,
		logger:   logger,
	}
}

// ListAll returns up to DefaultListLimit recent posts with their authors
func (s *postService) ListAll(ctx context.Context) ([]*PostWithAuthor, error) {
	rows, err := s.repo.ListRecent(ctx, DefaultListLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return s.resolve(ctx, rows)
}

// ListByAuthor returns up to DefaultListLimit recent posts by one author
func (s *postService) ListByAuthor(ctx context.Context, authorID string) ([]*PostWithAuthor, error) {
	authorID = strings.TrimSpace(authorID)
	if authorID == "" {
		return nil, NewValidationError("userId", "userId is required")
	}

	rows, err := s.repo.ListByAuthor(ctx, authorID, DefaultListLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts for author %s: %w", authorID, err)
	}

	return s.resolve(ctx, rows)
}

// GetByID returns a single post with its author
func (s *postService) GetByID(ctx context.Context, id string) (*PostWithAuthor, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, NewValidationError("id", "id is required")
	}

	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resolved, err := s.resolve(ctx, []*Post{post})
	if err != nil {
		return nil, err
	}
	return resolved[0], nil
}

// CreatePost creates a new post
// Flow:
// 1. Require an authenticated author
// 2. Validate content (emoji only, 1..MaxContentLength)
// 3. Consume one unit of the author's sliding-window quota (fails closed)
// 4. Insert
func (s *postService) CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error) {
	if req.AuthorID == "" {
		return nil, ErrAuthRequired
	}

	if err := ValidateContent(req.Content); err != nil {
		metrics.RecordPostRejected("validation")
		return nil, err
	}

	allowed, err := s.limiter.CheckAndConsume(ctx, req.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("rate limiter unavailable: %w", err)
	}
	metrics.RecordRateLimitDecision(allowed)
	if !allowed {
		metrics.RecordPostRejected("rate_limited")
		s.logger.WithField("author_id", req.AuthorID).Info("post rejected by rate limiter")
		return nil, ErrRateLimitExceeded
	}

	post, err := s.repo.Insert(ctx, req.AuthorID, req.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to insert post: %w", err)
	}

	metrics.RecordPostCreated()
	s.logger.WithFields(logrus.Fields{
		"author_id": post.AuthorID,
		"post_id":   post.ID,
	}).Info("post created")

	return post, nil
}

func (s *postService) resolve(ctx context.Context, rows []*Post) ([]*PostWithAuthor, error) {
	resolved, err := s.resolver.Resolve(ctx, rows)
	if err != nil {
		if errors.Is(err, ErrAuthorNotFound) {
			s.logger.WithError(err).Error("post author could not be resolved")
		}
		return nil, err
	}
	return resolved, nil
}
