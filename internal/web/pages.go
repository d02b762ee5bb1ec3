package web

import (
	"log"
	"net/http"
	"strings"

	"github.com/pdrmenezes/basic-todo/internal/auth"
	"github.com/pdrmenezes/basic-todo/internal/model"
	"github.com/pdrmenezes/basic-todo/internal/store"
)

type dayColumn struct {
	Day   model.Day
	Label string
	Todos []model.Todo
}

type boardModel struct {
	Email   string
	Columns []dayColumn
}

type authPageModel struct {
	Title  string
	Action string
	Error  string
}

// handleBoard renders the weekly board. Visitors without a session are
// redirected to sign-in.
func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	session := s.session(r)
	if !session.IsSignedIn {
		http.Redirect(w, r, "/sign-in", http.StatusSeeOther)
		return
	}

	user, err := auth.SyncUser(r.Context(), s.store, session)
	if err != nil {
		log.Printf("syncing user: %v", err)
		s.renderError(w, "Failed to sync user data")
		return
	}

	todos, err := s.store.ListTodosByUser(r.Context(), user.ID, store.TodoFilter{})
	if err != nil {
		log.Printf("loading todos: %v", err)
		s.renderError(w, "Failed to load todos")
		return
	}

	page := boardModel{Email: user.Email}
	for _, d := range model.Days {
		col := dayColumn{Day: d, Label: d.String()}
		for _, t := range todos {
			if t.Day == d {
				col.Todos = append(col.Todos, t)
			}
		}
		page.Columns = append(page.Columns, col)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "board", page); err != nil {
		log.Printf("rendering board: %v", err)
	}
}

func (s *Server) handleSignInPage(w http.ResponseWriter, r *http.Request) {
	s.renderAuthPage(w, authPageModel{Title: "Sign in", Action: "/sign-in"})
}

func (s *Server) handleSignUpPage(w http.ResponseWriter, r *http.Request) {
	s.renderAuthPage(w, authPageModel{Title: "Sign up", Action: "/sign-up"})
}

// handleSignIn accepts the identity asserted by the provider's redirect and
// starts a local session. The provider's own protocol is outside this
// surface; its payload arrives as form fields.
func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	s.startSession(w, r, "Sign in")
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	s.startSession(w, r, "Sign up")
}

func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w)
	http.Redirect(w, r, "/sign-in", http.StatusSeeOther)
}

func (s *Server) startSession(w http.ResponseWriter, r *http.Request, title string) {
	action := "/sign-in"
	if title == "Sign up" {
		action = "/sign-up"
	}

	session := auth.Session{
		IsSignedIn: true,
		IsLoaded:   true,
		ExternalID: strings.TrimSpace(r.FormValue("external_id")),
		Email:      strings.TrimSpace(r.FormValue("email")),
		FirstName:  strings.TrimSpace(r.FormValue("first_name")),
		LastName:   strings.TrimSpace(r.FormValue("last_name")),
		ImageURL:   strings.TrimSpace(r.FormValue("image_url")),
	}
	if session.ExternalID == "" || session.Email == "" {
		s.renderAuthPage(w, authPageModel{
			Title: title, Action: action, Error: "Identity and email are required",
		})
		return
	}

	if _, err := auth.SyncUser(r.Context(), s.store, session); err != nil {
		log.Printf("syncing user: %v", err)
		s.renderAuthPage(w, authPageModel{
			Title: title, Action: action, Error: "Failed to sync user data",
		})
		return
	}

	token, err := s.issuer.Issue(session)
	if err != nil {
		log.Printf("issuing session token: %v", err)
		s.renderAuthPage(w, authPageModel{
			Title: title, Action: action, Error: "Failed to start session",
		})
		return
	}

	s.setSessionCookie(w, token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) renderAuthPage(w http.ResponseWriter, page authPageModel) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "auth", page); err != nil {
		log.Printf("rendering %s page: %v", page.Title, err)
	}
}

// renderError shows the static error panel with a manual reload action.
func (s *Server) renderError(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	if err := s.tmpl.ExecuteTemplate(w, "error", msg); err != nil {
		log.Printf("rendering error page: %v", err)
	}
}
