package domain

import (
	"context"
	"time"
)

// Post is a blog entry written by the admin author.
// Date is the human-readable publication date ("April 05, 2025"),
// fixed when the post is created and preserved across edits.
type Post struct {
	ID        int64
	AuthorID  int64
	Title     string
	Subtitle  string
	Date      string
	Body      string
	ImageURL  string
	CreatedAt time.Time
}

// PostRepository defines persistence operations for posts.
// List returns posts in insertion order.
type PostRepository interface {
	Create(ctx context.Context, post *Post) error
	GetByID(ctx context.Context, id int64) (*Post, error)
	List(ctx context.Context) ([]Post, error)
	ListByAuthor(ctx context.Context, authorID int64) ([]Post, error)
	Update(ctx context.Context, post *Post) error
	Delete(ctx context.Context, id int64) error
}
