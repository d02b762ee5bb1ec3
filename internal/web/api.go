package web

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/pdrmenezes/basic-todo/internal/auth"
	"github.com/pdrmenezes/basic-todo/internal/board"
	"github.com/pdrmenezes/basic-todo/internal/model"
	"github.com/pdrmenezes/basic-todo/internal/store"
)

// envelope is the uniform result shape of every API response.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

func writeOK(w http.ResponseWriter, data any, message string) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data, Message: message})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Success: false, Error: msg})
}

// apiUser gates an API request on a signed-in session and resolves the
// internal user. A nil return means the response has been written.
func (s *Server) apiUser(w http.ResponseWriter, r *http.Request) *model.User {
	session := s.session(r)
	if !session.IsSignedIn {
		writeError(w, http.StatusUnauthorized, "Please sign in")
		return nil
	}

	user, err := auth.SyncUser(r.Context(), s.store, session)
	if err != nil {
		log.Printf("syncing user: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to sync user data")
		return nil
	}
	return user
}

func (s *Server) handleListTodos(w http.ResponseWriter, r *http.Request) {
	user := s.apiUser(w, r)
	if user == nil {
		return
	}

	filter := store.TodoFilter{}
	if raw := r.URL.Query().Get("day"); raw != "" {
		day, err := model.ParseDay(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid day value")
			return
		}
		filter.Day = &day
	}

	todos, err := s.store.ListTodosByUser(r.Context(), user.ID, filter)
	if err != nil {
		log.Printf("listing todos: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to load todos")
		return
	}
	if todos == nil {
		todos = []model.Todo{}
	}
	writeOK(w, todos, "")
}

type createTodoRequest struct {
	Text string `json:"text"`
	Day  string `json:"day"`
}

// handleCreateTodo accepts both JSON bodies and the board page's add form.
// Form submissions land back on the board; an empty or invalid form entry is
// a silent no-op, like an empty add on the board itself.
func (s *Server) handleCreateTodo(w http.ResponseWriter, r *http.Request) {
	user := s.apiUser(w, r)
	if user == nil {
		return
	}

	var req createTodoRequest
	fromForm := strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded")
	if fromForm {
		req.Text = r.FormValue("text")
		req.Day = r.FormValue("day")
	} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		if fromForm {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		writeError(w, http.StatusBadRequest, "Missing required fields: text and day are required")
		return
	}
	day, err := model.ParseDay(req.Day)
	if err != nil {
		if fromForm {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid day value")
		return
	}

	todo, err := s.store.CreateTodo(r.Context(), model.Todo{
		UserID: user.ID,
		Text:   req.Text,
		Day:    day,
	})
	if err != nil {
		log.Printf("creating todo: %v", err)
		if fromForm {
			s.renderError(w, "Failed to create todo")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create todo")
		return
	}

	if fromForm {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	writeOK(w, todo, "Todo created successfully")
}

type updateTodoRequest struct {
	Text      *string `json:"text,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
	Day       *string `json:"day,omitempty"`
}

func (s *Server) handleUpdateTodo(w http.ResponseWriter, r *http.Request) {
	user := s.apiUser(w, r)
	if user == nil {
		return
	}

	var req updateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	todo, err := s.store.GetTodoByID(r.Context(), r.PathValue("id"))
	if err != nil || todo.UserID != user.ID {
		writeError(w, http.StatusNotFound, "Todo not found")
		return
	}
	oldDay := todo.Day

	if req.Text != nil && strings.TrimSpace(*req.Text) != "" {
		todo.Text = *req.Text
	}
	if req.Completed != nil {
		todo.Completed = *req.Completed
	}
	if req.Day != nil {
		day, err := model.ParseDay(*req.Day)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid day value")
			return
		}
		todo.Day = day
	}

	updated, err := s.store.UpdateTodo(r.Context(), *todo)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Todo not found")
			return
		}
		log.Printf("updating todo: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to update todo")
		return
	}

	// A day change leaves the moved todo's old rank behind; rewrite both
	// affected columns to dense 1..n ranks.
	if updated.Day != oldDay {
		s.renumberColumn(r.Context(), user.ID, oldDay)
		s.renumberColumn(r.Context(), user.ID, updated.Day)
	}

	writeOK(w, updated, "Todo updated successfully")
}

// renumberColumn rewrites the column's sort_order to 1..n in display order.
func (s *Server) renumberColumn(ctx context.Context, userID string, day model.Day) {
	todos, err := s.store.ListTodosByUser(ctx, userID, store.TodoFilter{Day: &day})
	if err != nil {
		log.Printf("listing %s for renumbering: %v", day, err)
		return
	}
	ids := make([]string, len(todos))
	for i, t := range todos {
		ids[i] = t.ID
	}
	if err := s.store.ReorderTodos(ctx, userID, day, ids); err != nil {
		log.Printf("renumbering %s: %v", day, err)
	}
}

func (s *Server) handleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	user := s.apiUser(w, r)
	if user == nil {
		return
	}

	todo, err := s.store.GetTodoByID(r.Context(), r.PathValue("id"))
	if err != nil || todo.UserID != user.ID {
		writeError(w, http.StatusNotFound, "Todo not found")
		return
	}

	if err := s.store.DeleteTodo(r.Context(), todo.ID, user.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Todo not found")
			return
		}
		log.Printf("deleting todo: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete todo")
		return
	}

	// Keep the column's ranks dense after the removal.
	s.renumberColumn(r.Context(), user.ID, todo.Day)

	writeOK(w, true, "Todo deleted successfully")
}

type moveTodoRequest struct {
	// Over is the drop target: another todo's id, a day column name, or
	// empty for a cancelled gesture.
	Over string `json:"over"`
}

// handleMoveTodo resolves one completed drag gesture against the user's
// board and persists the outcome.
func (s *Server) handleMoveTodo(w http.ResponseWriter, r *http.Request) {
	user := s.apiUser(w, r)
	if user == nil {
		return
	}

	var req moveTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	b := board.New(store.NewUserPersister(s.store, user.ID))
	if msg := b.Err(); msg != "" {
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	b.ResolveDrop(board.DragEvent{ActiveID: r.PathValue("id"), OverID: req.Over})
	if msg := b.Err(); msg != "" {
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeOK(w, b.Todos(), "Todo moved successfully")
}
