package handler

import (
	"crypto/md5"
	"fmt"
	"strings"
	"time"

	"github.com/msomdec/inkwell/internal/domain"
)

// UserDTO is the JSON representation of a user. The password hash
// never leaves the service layer.
type UserDTO struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

// PostDTO is the JSON representation of a post.
type PostDTO struct {
	ID        int64  `json:"id"`
	AuthorID  int64  `json:"authorId"`
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle"`
	Date      string `json:"date"`
	Body      string `json:"body"`
	ImageURL  string `json:"imageUrl"`
	CreatedAt string `json:"createdAt"`
}

func toPostDTO(p *domain.Post) PostDTO {
	return PostDTO{
		ID:        p.ID,
		AuthorID:  p.AuthorID,
		Title:     p.Title,
		Subtitle:  p.Subtitle,
		Date:      p.Date,
		Body:      p.Body,
		ImageURL:  p.ImageURL,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
}

// PostListItemDTO is a post as it appears in the index listing, with
// its comment count alongside.
type PostListItemDTO struct {
	PostDTO
	CommentCount int `json:"commentCount"`
}

// CommentDTO is the JSON representation of a comment. AvatarURL is the
// commenter's gravatar, derived from their email.
type CommentDTO struct {
	ID        int64  `json:"id"`
	PostID    int64  `json:"postId"`
	AuthorID  int64  `json:"authorId"`
	Text      string `json:"text"`
	AvatarURL string `json:"avatarUrl"`
	CreatedAt string `json:"createdAt"`
}

func toCommentDTO(c domain.Comment, authorEmail string) CommentDTO {
	return CommentDTO{
		ID:        c.ID,
		PostID:    c.PostID,
		AuthorID:  c.AuthorID,
		Text:      c.Text,
		AvatarURL: gravatarURL(authorEmail),
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}

// gravatarURL builds the gravatar avatar URL for an email address.
func gravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?d=identicon&s=80", sum)
}
