package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/msomdec/inkwell/internal/domain"
)

// CommentService handles adding and listing comments on posts.
type CommentService struct {
	comments domain.CommentRepository
	posts    domain.PostRepository
}

// NewCommentService creates a new CommentService.
func NewCommentService(comments domain.CommentRepository, posts domain.PostRepository) *CommentService {
	return &CommentService{comments: comments, posts: posts}
}

// Add attaches a comment by the principal to the given post. Anonymous
// principals get domain.ErrUnauthorized; a missing post is
// domain.ErrNotFound.
func (s *CommentService) Add(ctx context.Context, principal *domain.User, postID int64, text string) (*domain.Comment, error) {
	if principal == nil {
		return nil, domain.ErrUnauthorized
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: comment text is required", domain.ErrInvalidInput)
	}

	// The parent post must exist at creation time.
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		PostID:   postID,
		AuthorID: principal.ID,
		Text:     text,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

// ListByPost returns a post's comments in insertion order.
// A missing post is domain.ErrNotFound.
func (s *CommentService) ListByPost(ctx context.Context, postID int64) ([]domain.Comment, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.comments.ListByPost(ctx, postID)
}

// CountByPost returns how many comments a post has. Callers pass IDs of
// posts they already hold, so there is no existence check here.
func (s *CommentService) CountByPost(ctx context.Context, postID int64) (int, error) {
	return s.comments.CountByPost(ctx, postID)
}
