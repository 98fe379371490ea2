package domain

import (
	"context"
	"time"
)

// User represents a registered user of the blog.
type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}

// UserRepository defines persistence operations for users.
// Users are immutable after registration, so there is no update or delete.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
