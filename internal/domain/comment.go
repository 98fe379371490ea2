package domain

import (
	"context"
	"time"
)

// Comment is a reader's comment on a post. Comments are append-only:
// there is no edit or delete in the repository interface on purpose.
type Comment struct {
	ID        int64
	PostID    int64
	AuthorID  int64
	Text      string
	CreatedAt time.Time
}

// CommentRepository defines persistence operations for comments.
// Comments are only ever read through their post, so lookups are
// keyed by post ID.
type CommentRepository interface {
	Create(ctx context.Context, comment *Comment) error
	ListByPost(ctx context.Context, postID int64) ([]Comment, error)
	CountByPost(ctx context.Context, postID int64) (int, error)
}
