package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/msomdec/inkwell/internal/domain"
)

func TestCommentService_Add(t *testing.T) {
	posts, comments, admin, reader := newTestContentServices(t)
	ctx := context.Background()

	post := testPostFields("Commented")
	if err := posts.Create(ctx, admin, post); err != nil {
		t.Fatalf("Create post: %v", err)
	}

	comment, err := comments.Add(ctx, reader, post.ID, "Great read!")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if comment.ID == 0 {
		t.Fatal("expected comment ID to be set")
	}
	if comment.PostID != post.ID {
		t.Fatalf("expected post ID %d, got %d", post.ID, comment.PostID)
	}
	if comment.AuthorID != reader.ID {
		t.Fatalf("expected author %d, got %d", reader.ID, comment.AuthorID)
	}
}

func TestCommentService_Add_Anonymous(t *testing.T) {
	posts, comments, admin, _ := newTestContentServices(t)
	ctx := context.Background()

	post := testPostFields("No Anon")
	if err := posts.Create(ctx, admin, post); err != nil {
		t.Fatalf("Create post: %v", err)
	}

	_, err := comments.Add(ctx, nil, post.ID, "drive-by")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestCommentService_Add_MissingPost(t *testing.T) {
	_, comments, _, reader := newTestContentServices(t)

	_, err := comments.Add(context.Background(), reader, 99999, "into the void")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCommentService_Add_EmptyText(t *testing.T) {
	posts, comments, admin, reader := newTestContentServices(t)
	ctx := context.Background()

	post := testPostFields("Empty Text")
	if err := posts.Create(ctx, admin, post); err != nil {
		t.Fatalf("Create post: %v", err)
	}

	_, err := comments.Add(ctx, reader, post.ID, "   ")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCommentService_ListByPost(t *testing.T) {
	posts, comments, admin, reader := newTestContentServices(t)
	ctx := context.Background()

	post := testPostFields("Listed")
	if err := posts.Create(ctx, admin, post); err != nil {
		t.Fatalf("Create post: %v", err)
	}

	texts := []string{"first", "second"}
	for _, text := range texts {
		if _, err := comments.Add(ctx, reader, post.ID, text); err != nil {
			t.Fatalf("Add %q: %v", text, err)
		}
	}

	listed, err := comments.ListByPost(ctx, post.ID)
	if err != nil {
		t.Fatalf("ListByPost: %v", err)
	}
	if len(listed) != len(texts) {
		t.Fatalf("expected %d comments, got %d", len(texts), len(listed))
	}
	for i, text := range texts {
		if listed[i].Text != text {
			t.Fatalf("position %d: expected %q, got %q", i, text, listed[i].Text)
		}
	}
}

func TestCommentService_CountByPost(t *testing.T) {
	posts, comments, admin, reader := newTestContentServices(t)
	ctx := context.Background()

	post := testPostFields("Counted")
	if err := posts.Create(ctx, admin, post); err != nil {
		t.Fatalf("Create post: %v", err)
	}
	quiet := testPostFields("Quiet")
	if err := posts.Create(ctx, admin, quiet); err != nil {
		t.Fatalf("Create post: %v", err)
	}

	for _, text := range []string{"one", "two", "three"} {
		if _, err := comments.Add(ctx, reader, post.ID, text); err != nil {
			t.Fatalf("Add %q: %v", text, err)
		}
	}

	count, err := comments.CountByPost(ctx, post.ID)
	if err != nil {
		t.Fatalf("CountByPost: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected count 3, got %d", count)
	}

	count, err = comments.CountByPost(ctx, quiet.ID)
	if err != nil {
		t.Fatalf("CountByPost (quiet): %v", err)
	}
	if count != 0 {
		t.Fatalf("expected count 0, got %d", count)
	}
}

func TestCommentService_ListByPost_MissingPost(t *testing.T) {
	_, comments, _, _ := newTestContentServices(t)

	_, err := comments.ListByPost(context.Background(), 99999)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
