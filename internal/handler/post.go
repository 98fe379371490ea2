package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/msomdec/inkwell/internal/domain"
	"github.com/msomdec/inkwell/internal/service"
)

// PostHandler handles post-related HTTP requests.
type PostHandler struct {
	posts    *service.PostService
	comments *service.CommentService
	auth     *service.AuthService
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(posts *service.PostService, comments *service.CommentService, auth *service.AuthService) *PostHandler {
	return &PostHandler{posts: posts, comments: comments, auth: auth}
}

// postRequest is the field bundle for creating or editing a post.
type postRequest struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Body     string `json:"body"`
	ImageURL string `json:"imageUrl"`
}

// HandleList returns all posts in insertion order, each with its
// comment count.
// GET /api/posts
// Response: {"posts": [...]}
func (h *PostHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.List(r.Context())
	if err != nil {
		slog.Error("list posts", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	items := make([]PostListItemDTO, len(posts))
	for i := range posts {
		count, err := h.comments.CountByPost(r.Context(), posts[i].ID)
		if err != nil {
			slog.Error("count comments", "error", err, "post_id", posts[i].ID)
			writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
			return
		}
		items[i] = PostListItemDTO{PostDTO: toPostDTO(&posts[i]), CommentCount: count}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"posts": items,
	})
}

// HandleGet returns a single post with its comments.
// GET /api/posts/{id}
// Response: {"post": {...}, "comments": [...]}
func (h *PostHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Post not found.")
		return
	}

	post, err := h.posts.GetByID(r.Context(), id)
	if err != nil {
		h.writePostError(w, "get post", err)
		return
	}

	comments, err := h.comments.ListByPost(r.Context(), id)
	if err != nil {
		h.writePostError(w, "list comments", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"post":     toPostDTO(post),
		"comments": h.toCommentDTOs(r, comments),
	})
}

// HandleCreate creates a new post. The service enforces the admin gate.
// POST /api/posts
// Response: {"post": {...}}
func (h *PostHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	post := &domain.Post{
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Body:     req.Body,
		ImageURL: req.ImageURL,
	}
	if err := h.posts.Create(r.Context(), UserFromContext(r.Context()), post); err != nil {
		h.writePostError(w, "create post", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"post": toPostDTO(post),
	})
}

// HandleUpdate overwrites an existing post's mutable fields.
// PUT /api/posts/{id}
// Response: {"post": {...}}
func (h *PostHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Post not found.")
		return
	}

	var req postRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	post := &domain.Post{
		ID:       id,
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Body:     req.Body,
		ImageURL: req.ImageURL,
	}
	if err := h.posts.Update(r.Context(), UserFromContext(r.Context()), post); err != nil {
		h.writePostError(w, "update post", err)
		return
	}

	updated, err := h.posts.GetByID(r.Context(), id)
	if err != nil {
		h.writePostError(w, "get post after update", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"post": toPostDTO(updated),
	})
}

// HandleDelete deletes a post and its comments.
// DELETE /api/posts/{id}
// Response: 204 No Content
func (h *PostHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Post not found.")
		return
	}

	if err := h.posts.Delete(r.Context(), UserFromContext(r.Context()), id); err != nil {
		h.writePostError(w, "delete post", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleListComments returns a post's comments.
// GET /api/posts/{id}/comments
// Response: {"comments": [...]}
func (h *PostHandler) HandleListComments(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Post not found.")
		return
	}

	comments, err := h.comments.ListByPost(r.Context(), id)
	if err != nil {
		h.writePostError(w, "list comments", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"comments": h.toCommentDTOs(r, comments),
	})
}

// HandleAddComment attaches a comment by the authenticated user to a post.
// POST /api/posts/{id}/comments
// Request:  {"text":"..."}
// Response: {"comment": {...}}
func (h *PostHandler) HandleAddComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Post not found.")
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	principal := UserFromContext(r.Context())
	comment, err := h.comments.Add(r.Context(), principal, id, req.Text)
	if err != nil {
		h.writePostError(w, "add comment", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"comment": toCommentDTO(*comment, principal.Email),
	})
}

// toCommentDTOs resolves each comment's author so the DTO can carry the
// commenter's gravatar. Missing authors fall back to an empty email.
func (h *PostHandler) toCommentDTOs(r *http.Request, comments []domain.Comment) []CommentDTO {
	dtos := make([]CommentDTO, len(comments))
	for i, c := range comments {
		email := ""
		if author, err := h.auth.GetUserByID(r.Context(), c.AuthorID); err == nil {
			email = author.Email
		}
		dtos[i] = toCommentDTO(c, email)
	}
	return dtos
}

func (h *PostHandler) writePostError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Post not found.")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "Only the blog author can do that.")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "Authentication required.")
	case errors.Is(err, domain.ErrDuplicateTitle):
		writeError(w, http.StatusConflict, "A post with that title already exists.")
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		slog.Error(op, "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
	}
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}
