package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/inkwell/internal/domain"
)

// PostRepository implements domain.PostRepository using SQLite.
type PostRepository struct {
	db *sql.DB
}

// NewPostRepository creates a new SQLite-backed PostRepository.
func NewPostRepository(db *DB) *PostRepository {
	return &PostRepository{db: db.SqlDB}
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO posts (author_id, title, subtitle, date, body, image_url, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		post.AuthorID, post.Title, post.Subtitle, post.Date, post.Body, post.ImageURL, now,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return domain.ErrDuplicateTitle
		}
		return fmt.Errorf("insert post: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	post.ID = id
	post.CreatedAt = now
	return nil
}

func (r *PostRepository) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	post := &domain.Post{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, author_id, title, subtitle, date, body, image_url, created_at
		 FROM posts WHERE id = ?`, id,
	).Scan(&post.ID, &post.AuthorID, &post.Title, &post.Subtitle, &post.Date, &post.Body, &post.ImageURL, &post.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query post by id: %w", err)
	}
	return post, nil
}

// List returns all posts in insertion order.
func (r *PostRepository) List(ctx context.Context) ([]domain.Post, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, author_id, title, subtitle, date, body, image_url, created_at
		 FROM posts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	return scanPosts(rows)
}

func (r *PostRepository) ListByAuthor(ctx context.Context, authorID int64) ([]domain.Post, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, author_id, title, subtitle, date, body, image_url, created_at
		 FROM posts WHERE author_id = ? ORDER BY id`, authorID)
	if err != nil {
		return nil, fmt.Errorf("query posts by author: %w", err)
	}
	defer rows.Close()

	return scanPosts(rows)
}

// Update overwrites every mutable field of the post. The display date is
// not among them; it keeps the value assigned at creation.
func (r *PostRepository) Update(ctx context.Context, post *domain.Post) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE posts SET author_id = ?, title = ?, subtitle = ?, body = ?, image_url = ?
		 WHERE id = ?`,
		post.AuthorID, post.Title, post.Subtitle, post.Body, post.ImageURL, post.ID,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return domain.ErrDuplicateTitle
		}
		return fmt.Errorf("update post: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the post. Its comments go with it via the foreign
// key cascade.
func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanPosts(rows *sql.Rows) ([]domain.Post, error) {
	var posts []domain.Post
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.Title, &p.Subtitle, &p.Date, &p.Body, &p.ImageURL, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}
