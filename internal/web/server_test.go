package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrmenezes/basic-todo/internal/auth"
	"github.com/pdrmenezes/basic-todo/internal/model"
	"github.com/pdrmenezes/basic-todo/tests/testutil"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	s, err := NewServer(testutil.NewTestStore(t), auth.NewTokenIssuer([]byte("test-key"), time.Hour))
	require.NoError(t, err)
	return s.Handler()
}

// signUp registers a fresh identity and returns its session cookie.
func signUp(t *testing.T, h http.Handler) *http.Cookie {
	t.Helper()
	form := url.Values{
		"external_id": {"ext-123"},
		"email":       {"ada@example.com"},
		"first_name":  {"Ada"},
	}
	req := httptest.NewRequest(http.MethodPost, "/sign-up", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookie {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func apiRequest(t *testing.T, h http.Handler, cookie *http.Cookie, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return rec, env
}

func createTodo(t *testing.T, h http.Handler, cookie *http.Cookie, text string, day model.Day) model.Todo {
	t.Helper()
	rec, env := apiRequest(t, h, cookie, http.MethodPost, "/api/todos",
		createTodoRequest{Text: text, Day: string(day)})
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, env.Success)

	raw, err := json.Marshal(env.Data)
	require.NoError(t, err)
	var todo model.Todo
	require.NoError(t, json.Unmarshal(raw, &todo))
	return todo
}

func listDay(t *testing.T, h http.Handler, cookie *http.Cookie, day model.Day) []model.Todo {
	t.Helper()
	rec, env := apiRequest(t, h, cookie, http.MethodGet, "/api/todos?day="+string(day), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	raw, err := json.Marshal(env.Data)
	require.NoError(t, err)
	var todos []model.Todo
	require.NoError(t, json.Unmarshal(raw, &todos))
	return todos
}

func TestBoardRedirectsAnonymousToSignIn(t *testing.T) {
	h := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/sign-in", rec.Header().Get("Location"))
}

func TestSignInAndSignUpPages(t *testing.T) {
	h := newTestServer(t)

	for _, path := range []string{"/sign-in", "/sign-up"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Contains(t, rec.Body.String(), "<form")
	}
}

func TestSignUpStartsSessionAndShowsBoard(t *testing.T) {
	h := newTestServer(t)
	cookie := signUp(t, h)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "ada@example.com")
	for _, d := range model.Days {
		assert.Contains(t, body, string(d))
	}
}

func TestSignInRejectsMissingIdentity(t *testing.T) {
	h := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/sign-in",
		strings.NewReader("email=no-id@example.com"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Identity and email are required")
}

func TestAPIRequiresSession(t *testing.T) {
	h := newTestServer(t)

	rec, env := apiRequest(t, h, nil, http.MethodGet, "/api/todos", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Please sign in", env.Error)

	rec, env = apiRequest(t, h, nil, http.MethodPost, "/api/todos",
		createTodoRequest{Text: "x", Day: "monday"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Please sign in", env.Error)
}

func TestCreateAndListTodos(t *testing.T) {
	h := newTestServer(t)
	cookie := signUp(t, h)

	createTodo(t, h, cookie, "buy milk", model.Monday)

	todos := listDay(t, h, cookie, model.Monday)
	require.Len(t, todos, 1)
	assert.Equal(t, "buy milk", todos[0].Text)
	assert.False(t, todos[0].Completed)
}

func TestBoardFormAddsTodo(t *testing.T) {
	h := newTestServer(t)
	cookie := signUp(t, h)

	form := url.Values{"text": {"buy milk"}, "day": {"monday"}}
	req := httptest.NewRequest(http.MethodPost, "/api/todos", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	monday := listDay(t, h, cookie, model.Monday)
	require.Len(t, monday, 1)
	assert.Equal(t, "buy milk", monday[0].Text)
}

func TestBoardFormEmptyTextIsNoop(t *testing.T) {
	h := newTestServer(t)
	cookie := signUp(t, h)

	form := url.Values{"text": {"   "}, "day": {"monday"}}
	req := httptest.NewRequest(http.MethodPost, "/api/todos", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Empty(t, listDay(t, h, cookie, model.Monday))
}

func TestCreateTodoRejectsInvalidDay(t *testing.T) {
	h := newTestServer(t)
	cookie := signUp(t, h)

	rec, env := apiRequest(t, h, cookie, http.MethodPost, "/api/todos",
		createTodoRequest{Text: "x", Day: "saturday"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid day value", env.Error)
}

func TestUpdateTodoToggleAndDayChange(t *testing.T) {
	h := newTestServer(t)
	cookie := signUp(t, h)
	todo := createTodo(t, h, cookie, "x", model.Monday)

	done := true
	friday := "friday"
	rec, env := apiRequest(t, h, cookie, http.MethodPatch, "/api/todos/"+todo.ID,
		updateTodoRequest{Completed: &done, Day: &friday})
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, env.Success)

	assert.Empty(t, listDay(t, h, cookie, model.Monday))
	moved := listDay(t, h, cookie, model.Friday)
	require.Len(t, moved, 1)
	assert.True(t, moved[0].Completed)
}

func TestUpdateTodoDayChangeRenumbersColumns(t *testing.T) {
	h := newTestServer(t)
	cookie := signUp(t, h)
	createTodo(t, h, cookie, "A", model.Monday)
	b := createTodo(t, h, cookie, "B", model.Monday)
	createTodo(t, h, cookie, "C", model.Monday)
	createTodo(t, h, cookie, "X", model.Friday)
	createTodo(t, h, cookie, "Y", model.Friday)

	friday := "friday"
	rec, env := apiRequest(t, h, cookie, http.MethodPatch, "/api/todos/"+b.ID,
		updateTodoRequest{Day: &friday})
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, env.Success)

	monday := listDay(t, h, cookie, model.Monday)
	require.Len(t, monday, 2)
	assert.Equal(t, []int{1, 2}, []int{monday[0].SortOrder, monday[1].SortOrder})

	moved := listDay(t, h, cookie, model.Friday)
	require.Len(t, moved, 3)
	ranks := []int{moved[0].SortOrder, moved[1].SortOrder, moved[2].SortOrder}
	assert.Equal(t, []int{1, 2, 3}, ranks)
}

func TestUpdateUnknownTodo(t *testing.T) {
	h := newTestServer(t)
	cookie := signUp(t, h)

	text := "x"
	rec, env := apiRequest(t, h, cookie, http.MethodPatch, "/api/todos/ghost",
		updateTodoRequest{Text: &text})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Todo not found", env.Error)
}

func TestDeleteTodo(t *testing.T) {
	h := newTestServer(t)
	cookie := signUp(t, h)
	todo := createTodo(t, h, cookie, "x", model.Monday)

	rec, env := apiRequest(t, h, cookie, http.MethodDelete, "/api/todos/"+todo.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)

	assert.Empty(t, listDay(t, h, cookie, model.Monday))

	rec, env = apiRequest(t, h, cookie, http.MethodDelete, "/api/todos/"+todo.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Todo not found", env.Error)
}

func TestDeleteTodoRenumbersColumn(t *testing.T) {
	h := newTestServer(t)
	cookie := signUp(t, h)
	a := createTodo(t, h, cookie, "A", model.Monday)
	createTodo(t, h, cookie, "B", model.Monday)
	createTodo(t, h, cookie, "C", model.Monday)

	rec, env := apiRequest(t, h, cookie, http.MethodDelete, "/api/todos/"+a.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, env.Success)

	monday := listDay(t, h, cookie, model.Monday)
	require.Len(t, monday, 2)
	assert.Equal(t, []int{1, 2}, []int{monday[0].SortOrder, monday[1].SortOrder})
	assert.Equal(t, "B", monday[0].Text)
}

func TestMoveTodoToOtherDay(t *testing.T) {
	h := newTestServer(t)
	cookie := signUp(t, h)
	todo := createTodo(t, h, cookie, "x", model.Monday)

	rec, env := apiRequest(t, h, cookie, http.MethodPost, "/api/todos/"+todo.ID+"/move",
		moveTodoRequest{Over: "friday"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, env.Success)

	assert.Empty(t, listDay(t, h, cookie, model.Monday))
	assert.Len(t, listDay(t, h, cookie, model.Friday), 1)
}

func TestMoveTodoReordersWithinDay(t *testing.T) {
	h := newTestServer(t)
	cookie := signUp(t, h)
	a := createTodo(t, h, cookie, "A", model.Friday)
	b := createTodo(t, h, cookie, "B", model.Friday)

	rec, env := apiRequest(t, h, cookie, http.MethodPost, "/api/todos/"+a.ID+"/move",
		moveTodoRequest{Over: b.ID})
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, env.Success)

	friday := listDay(t, h, cookie, model.Friday)
	require.Len(t, friday, 2)
	assert.Equal(t, "B", friday[0].Text)
	assert.Equal(t, "A", friday[1].Text)
}

func TestMoveTodoCancelledGestureIsNoop(t *testing.T) {
	h := newTestServer(t)
	cookie := signUp(t, h)
	todo := createTodo(t, h, cookie, "x", model.Monday)

	rec, env := apiRequest(t, h, cookie, http.MethodPost, "/api/todos/"+todo.ID+"/move",
		moveTodoRequest{Over: ""})
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, env.Success)

	assert.Len(t, listDay(t, h, cookie, model.Monday), 1)
}

func TestSignOutClearsSession(t *testing.T) {
	h := newTestServer(t)
	cookie := signUp(t, h)

	req := httptest.NewRequest(http.MethodPost, "/sign-out", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/sign-in", rec.Header().Get("Location"))
}
