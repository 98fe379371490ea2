package handler

import (
	"net/http"

	"github.com/msomdec/inkwell/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(
	mux *http.ServeMux,
	auth *service.AuthService,
	posts *service.PostService,
	comments *service.CommentService,
	throttle *service.LoginThrottle,
	cookieSecure bool,
) {
	authHandler := NewAuthHandler(auth, throttle, cookieSecure)
	postHandler := NewPostHandler(posts, comments, auth)

	mux.HandleFunc("GET /healthz", HandleHealthz)

	mux.HandleFunc("POST /api/auth/register", authHandler.HandleRegister)
	mux.HandleFunc("POST /api/auth/login", authHandler.HandleLogin)
	mux.HandleFunc("POST /api/auth/logout", authHandler.HandleLogout)
	mux.Handle("GET /api/auth/me", RequireAuth(auth, http.HandlerFunc(authHandler.HandleMe)))

	// Reading is public. Post mutation routes only resolve the principal;
	// the admin gate in the service denies everyone else, anonymous
	// included, with a 403.
	mux.HandleFunc("GET /api/posts", postHandler.HandleList)
	mux.HandleFunc("GET /api/posts/{id}", postHandler.HandleGet)
	mux.Handle("POST /api/posts", OptionalAuth(auth, http.HandlerFunc(postHandler.HandleCreate)))
	mux.Handle("PUT /api/posts/{id}", OptionalAuth(auth, http.HandlerFunc(postHandler.HandleUpdate)))
	mux.Handle("DELETE /api/posts/{id}", OptionalAuth(auth, http.HandlerFunc(postHandler.HandleDelete)))

	mux.HandleFunc("GET /api/posts/{id}/comments", postHandler.HandleListComments)
	mux.Handle("POST /api/posts/{id}/comments", RequireAuth(auth, http.HandlerFunc(postHandler.HandleAddComment)))
}
