package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/msomdec/inkwell/internal/domain"
)

// CommentRepository implements domain.CommentRepository using SQLite.
type CommentRepository struct {
	db *sql.DB
}

// NewCommentRepository creates a new SQLite-backed CommentRepository.
func NewCommentRepository(db *DB) *CommentRepository {
	return &CommentRepository{db: db.SqlDB}
}

func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO comments (post_id, author_id, text, created_at)
		 VALUES (?, ?, ?, ?)`,
		comment.PostID, comment.AuthorID, comment.Text, now,
	)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	comment.ID = id
	comment.CreatedAt = now
	return nil
}

// ListByPost returns a post's comments in insertion order.
func (r *CommentRepository) ListByPost(ctx context.Context, postID int64) ([]domain.Comment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, post_id, author_id, text, created_at
		 FROM comments WHERE post_id = ? ORDER BY id`, postID)
	if err != nil {
		return nil, fmt.Errorf("query comments by post: %w", err)
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Text, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *CommentRepository) CountByPost(ctx context.Context, postID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM comments WHERE post_id = ?`, postID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count comments by post: %w", err)
	}
	return count, nil
}
