package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/msomdec/inkwell/internal/domain"
	"github.com/msomdec/inkwell/internal/repository/sqlite"
)

func createTestUser(t *testing.T, db *sqlite.DB, email string) *domain.User {
	t.Helper()
	user := &domain.User{Email: email, Name: "Author", PasswordHash: "hash"}
	if err := sqlite.NewUserRepository(db).Create(context.Background(), user); err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return user
}

func createTestPost(t *testing.T, db *sqlite.DB, authorID int64, title string) *domain.Post {
	t.Helper()
	post := &domain.Post{
		AuthorID: authorID,
		Title:    title,
		Subtitle: "A subtitle",
		Date:     "April 05, 2025",
		Body:     "<p>Body text</p>",
		ImageURL: "https://example.com/img.jpg",
	}
	if err := sqlite.NewPostRepository(db).Create(context.Background(), post); err != nil {
		t.Fatalf("create test post: %v", err)
	}
	return post
}

func TestPostRepository_Create(t *testing.T) {
	db := newTestDB(t)
	author := createTestUser(t, db, "author@example.com")

	post := createTestPost(t, db, author.ID, "First Post")

	if post.ID == 0 {
		t.Fatal("expected post ID to be set after create")
	}
	if post.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be set")
	}
}

func TestPostRepository_Create_DuplicateTitle(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewPostRepository(db)
	ctx := context.Background()
	author := createTestUser(t, db, "author@example.com")

	createTestPost(t, db, author.ID, "Hello")

	dup := &domain.Post{
		AuthorID: author.ID,
		Title:    "Hello",
		Subtitle: "Again",
		Date:     "April 06, 2025",
		Body:     "body",
		ImageURL: "https://example.com/2.jpg",
	}
	err := repo.Create(ctx, dup)
	if !errors.Is(err, domain.ErrDuplicateTitle) {
		t.Fatalf("expected ErrDuplicateTitle, got %v", err)
	}

	var count int
	if err := db.SqlDB.QueryRow("SELECT COUNT(*) FROM posts WHERE title = ?", "Hello").Scan(&count); err != nil {
		t.Fatalf("count posts: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 post titled Hello, got %d", count)
	}
}

func TestPostRepository_GetByID(t *testing.T) {
	db := newTestDB(t)
	author := createTestUser(t, db, "author@example.com")
	post := createTestPost(t, db, author.ID, "Readable")

	found, err := sqlite.NewPostRepository(db).GetByID(context.Background(), post.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}

	if found.Title != post.Title || found.Subtitle != post.Subtitle ||
		found.Body != post.Body || found.ImageURL != post.ImageURL ||
		found.Date != post.Date || found.AuthorID != post.AuthorID {
		t.Fatalf("round-trip mismatch: got %+v, want %+v", found, post)
	}
}

func TestPostRepository_GetByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := sqlite.NewPostRepository(db).GetByID(context.Background(), 99999)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostRepository_List_InsertionOrder(t *testing.T) {
	db := newTestDB(t)
	author := createTestUser(t, db, "author@example.com")

	titles := []string{"First", "Second", "Third"}
	for _, title := range titles {
		createTestPost(t, db, author.ID, title)
	}

	posts, err := sqlite.NewPostRepository(db).List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	if len(posts) != len(titles) {
		t.Fatalf("expected %d posts, got %d", len(titles), len(posts))
	}
	for i, title := range titles {
		if posts[i].Title != title {
			t.Fatalf("position %d: expected %q, got %q", i, title, posts[i].Title)
		}
	}
}

func TestPostRepository_ListByAuthor(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")

	createTestPost(t, db, alice.ID, "Alice One")
	createTestPost(t, db, bob.ID, "Bob One")
	createTestPost(t, db, alice.ID, "Alice Two")

	posts, err := sqlite.NewPostRepository(db).ListByAuthor(context.Background(), alice.ID)
	if err != nil {
		t.Fatalf("ListByAuthor: %v", err)
	}

	if len(posts) != 2 {
		t.Fatalf("expected 2 posts by alice, got %d", len(posts))
	}
	for _, p := range posts {
		if p.AuthorID != alice.ID {
			t.Fatalf("expected author %d, got %d", alice.ID, p.AuthorID)
		}
	}
}

func TestPostRepository_Update_OverwritesFields(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewPostRepository(db)
	ctx := context.Background()
	author := createTestUser(t, db, "author@example.com")
	post := createTestPost(t, db, author.ID, "Before")

	updated := &domain.Post{
		ID:       post.ID,
		AuthorID: author.ID,
		Title:    "After",
		Subtitle: "New subtitle",
		Body:     "new body",
		ImageURL: "https://example.com/new.jpg",
	}
	if err := repo.Update(ctx, updated); err != nil {
		t.Fatalf("Update: %v", err)
	}

	found, err := repo.GetByID(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if found.Title != "After" || found.Subtitle != "New subtitle" ||
		found.Body != "new body" || found.ImageURL != "https://example.com/new.jpg" {
		t.Fatalf("fields not overwritten: %+v", found)
	}
	// The publication date is not a mutable field.
	if found.Date != post.Date {
		t.Fatalf("expected date %q preserved, got %q", post.Date, found.Date)
	}
}

func TestPostRepository_Update_NotFound(t *testing.T) {
	db := newTestDB(t)
	author := createTestUser(t, db, "author@example.com")

	err := sqlite.NewPostRepository(db).Update(context.Background(), &domain.Post{
		ID:       99999,
		AuthorID: author.ID,
		Title:    "Ghost",
		Subtitle: "s",
		Body:     "b",
		ImageURL: "u",
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostRepository_Update_DuplicateTitle(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewPostRepository(db)
	author := createTestUser(t, db, "author@example.com")
	createTestPost(t, db, author.ID, "Taken")
	post := createTestPost(t, db, author.ID, "Original")

	post.Title = "Taken"
	err := repo.Update(context.Background(), post)
	if !errors.Is(err, domain.ErrDuplicateTitle) {
		t.Fatalf("expected ErrDuplicateTitle, got %v", err)
	}
}

func TestPostRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewPostRepository(db)
	ctx := context.Background()
	author := createTestUser(t, db, "author@example.com")
	post := createTestPost(t, db, author.ID, "Doomed")

	if err := repo.Delete(ctx, post.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	_, err := repo.GetByID(ctx, post.ID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestPostRepository_Delete_NotFound(t *testing.T) {
	db := newTestDB(t)

	err := sqlite.NewPostRepository(db).Delete(context.Background(), 99999)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostRepository_Delete_CascadesComments(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	author := createTestUser(t, db, "author@example.com")
	post := createTestPost(t, db, author.ID, "Commented")

	comments := sqlite.NewCommentRepository(db)
	if err := comments.Create(ctx, &domain.Comment{PostID: post.ID, AuthorID: author.ID, Text: "nice"}); err != nil {
		t.Fatalf("create comment: %v", err)
	}

	if err := sqlite.NewPostRepository(db).Delete(ctx, post.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	count, err := comments.CountByPost(ctx, post.ID)
	if err != nil {
		t.Fatalf("CountByPost: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected comments to cascade, %d left", count)
	}
}
