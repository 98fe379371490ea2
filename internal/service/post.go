package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/msomdec/inkwell/internal/domain"
)

// dateLayout is the human-readable publication date shown on posts.
const dateLayout = "January 02, 2006"

// PostService handles post CRUD. Create, Update, and Delete are restricted
// to the single admin author.
type PostService struct {
	posts   domain.PostRepository
	adminID int64
	now     func() time.Time
}

// NewPostService creates a new PostService. adminID names the one user
// allowed to manage posts.
func NewPostService(posts domain.PostRepository, adminID int64) *PostService {
	return &PostService{posts: posts, adminID: adminID, now: time.Now}
}

// List returns all posts in insertion order.
func (s *PostService) List(ctx context.Context) ([]domain.Post, error) {
	return s.posts.List(ctx)
}

// GetByID returns a post by ID, or domain.ErrNotFound.
func (s *PostService) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	return s.posts.GetByID(ctx, id)
}

// ListByAuthor returns all posts written by the given user.
func (s *PostService) ListByAuthor(ctx context.Context, authorID int64) ([]domain.Post, error) {
	return s.posts.ListByAuthor(ctx, authorID)
}

// Create creates a new post authored by the principal. The publication
// date is assigned here and never changes afterwards.
func (s *PostService) Create(ctx context.Context, principal *domain.User, post *domain.Post) error {
	if err := s.requireAdmin(principal); err != nil {
		return err
	}
	if err := validatePost(post); err != nil {
		return err
	}

	post.AuthorID = principal.ID
	post.Date = s.now().Format(dateLayout)

	if err := s.posts.Create(ctx, post); err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

// Update overwrites every mutable field of an existing post. Last writer
// wins; there is no partial update and no concurrency check.
func (s *PostService) Update(ctx context.Context, principal *domain.User, post *domain.Post) error {
	if err := s.requireAdmin(principal); err != nil {
		return err
	}
	if err := validatePost(post); err != nil {
		return err
	}

	existing, err := s.posts.GetByID(ctx, post.ID)
	if err != nil {
		return err
	}

	if post.AuthorID == 0 {
		post.AuthorID = existing.AuthorID
	}
	post.Date = existing.Date

	if err := s.posts.Update(ctx, post); err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return nil
}

// Delete removes a post and, through the store's cascade, its comments.
func (s *PostService) Delete(ctx context.Context, principal *domain.User, id int64) error {
	if err := s.requireAdmin(principal); err != nil {
		return err
	}
	return s.posts.Delete(ctx, id)
}

// requireAdmin is the single-admin gate: only the configured admin user
// may manage posts. Anonymous principals are denied like everyone else.
func (s *PostService) requireAdmin(principal *domain.User) error {
	if principal == nil || principal.ID != s.adminID {
		return domain.ErrForbidden
	}
	return nil
}

func validatePost(post *domain.Post) error {
	if strings.TrimSpace(post.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(post.Subtitle) == "" {
		return fmt.Errorf("%w: subtitle is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(post.Body) == "" {
		return fmt.Errorf("%w: body is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(post.ImageURL) == "" {
		return fmt.Errorf("%w: image URL is required", domain.ErrInvalidInput)
	}
	return nil
}
