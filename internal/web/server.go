// Package web serves the board over HTTP: the three page routes (sign-in,
// sign-up, and the session-gated board) plus the JSON todo API.
package web

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/pdrmenezes/basic-todo/internal/auth"
	"github.com/pdrmenezes/basic-todo/internal/store"
)

const sessionCookie = "basic_todo_session"

// Server wires the store and session issuer into the HTTP surface.
type Server struct {
	store  store.Store
	issuer *auth.TokenIssuer
	tmpl   *template.Template
}

// NewServer creates the web surface over the given store.
func NewServer(s store.Store, issuer *auth.TokenIssuer) (*Server, error) {
	tmpl, err := template.New("pages").Parse(pagesHTML)
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Server{store: s, issuer: issuer, tmpl: tmpl}, nil
}

// Handler returns the full route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleBoard)
	mux.HandleFunc("GET /sign-in", s.handleSignInPage)
	mux.HandleFunc("POST /sign-in", s.handleSignIn)
	mux.HandleFunc("GET /sign-up", s.handleSignUpPage)
	mux.HandleFunc("POST /sign-up", s.handleSignUp)
	mux.HandleFunc("POST /sign-out", s.handleSignOut)

	mux.HandleFunc("GET /api/todos", s.handleListTodos)
	mux.HandleFunc("POST /api/todos", s.handleCreateTodo)
	mux.HandleFunc("PATCH /api/todos/{id}", s.handleUpdateTodo)
	mux.HandleFunc("DELETE /api/todos/{id}", s.handleDeleteTodo)
	mux.HandleFunc("POST /api/todos/{id}/move", s.handleMoveTodo)

	return withSecurityHeaders(mux)
}

// session resolves the visitor's session from the cookie. An absent or
// invalid cookie is an anonymous visitor, never an error.
func (s *Server) session(r *http.Request) auth.Session {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		return auth.Anonymous
	}
	session, err := s.issuer.Verify(cookie.Value)
	if err != nil {
		return auth.Anonymous
	}
	return session
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

func withSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}
