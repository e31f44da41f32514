package todo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faheem2407/go-todo-app/internal/auth"
)

type memSessionStore struct {
	sessions map[string]int64
}

func (s *memSessionStore) Save(ctx context.Context, jti string, userID int64, ttl time.Duration) error {
	s.sessions[jti] = userID
	return nil
}

func (s *memSessionStore) Exists(ctx context.Context, jti string) (bool, error) {
	_, ok := s.sessions[jti]
	return ok, nil
}

func (s *memSessionStore) Delete(ctx context.Context, jti string) error {
	delete(s.sessions, jti)
	return nil
}

type todoServer struct {
	srv      *httptest.Server
	tokenSvc auth.TokenService
}

func newTodoServer(t *testing.T) *todoServer {
	t.Helper()

	svc := NewService(newFakeTodoRepo())
	tokenSvc := auth.NewTokenService("test-secret", time.Hour, &memSessionStore{sessions: map[string]int64{}})
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware(tokenSvc))
		r.Route("/api/todos", func(r chi.Router) {
			r.Get("/", h.ListTodos)
			r.Post("/", h.CreateTodo)
			r.Get("/{id}", h.GetTodoByID)
			r.Put("/{id}", h.UpdateTodo)
			r.Delete("/{id}", h.DeleteTodo)
		})
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return &todoServer{srv: srv, tokenSvc: tokenSvc}
}

func (ts *todoServer) tokenFor(t *testing.T, userID int64) string {
	t.Helper()
	token, _, err := ts.tokenSvc.Generate(context.Background(), userID)
	require.NoError(t, err)
	return token
}

func (ts *todoServer) request(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var buf []byte
	if body != nil {
		var err error
		buf, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req, err := http.NewRequest(method, ts.srv.URL+path, bytes.NewReader(buf))
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeTodo(t *testing.T, resp *http.Response) Todo {
	t.Helper()
	var out Todo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestTodosRequireAuth(t *testing.T) {
	ts := newTodoServer(t)

	resp := ts.request(t, http.MethodGet, "/api/todos", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestTodoLifecycleOverHTTP(t *testing.T) {
	ts := newTodoServer(t)
	token := ts.tokenFor(t, 1)

	resp := ts.request(t, http.MethodPost, "/api/todos", token, map[string]string{"title": "Buy milk"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeTodo(t, resp)
	assert.Equal(t, "Buy milk", created.Title)
	assert.False(t, created.Completed)

	resp = ts.request(t, http.MethodPut, fmt.Sprintf("/api/todos/%d", created.ID), token, map[string]bool{"completed": true})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeTodo(t, resp)
	assert.True(t, updated.Completed)
	assert.Equal(t, "Buy milk", updated.Title)

	resp = ts.request(t, http.MethodDelete, fmt.Sprintf("/api/todos/%d", created.ID), token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = ts.request(t, http.MethodGet, fmt.Sprintf("/api/todos/%d", created.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCrossOwnerAccessIsForbidden(t *testing.T) {
	ts := newTodoServer(t)
	tokenA := ts.tokenFor(t, 1)
	tokenB := ts.tokenFor(t, 2)

	resp := ts.request(t, http.MethodPost, "/api/todos", tokenA, map[string]string{"title": "private"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeTodo(t, resp)

	path := fmt.Sprintf("/api/todos/%d", created.ID)

	resp = ts.request(t, http.MethodGet, path, tokenB, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = ts.request(t, http.MethodPut, path, tokenB, map[string]string{"title": "stolen"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = ts.request(t, http.MethodDelete, path, tokenB, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// B never sees A's todo in a list either.
	resp = ts.request(t, http.MethodGet, "/api/todos", tokenB, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listB []Todo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listB))
	assert.Empty(t, listB)

	resp = ts.request(t, http.MethodGet, path, tokenA, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decodeTodo(t, resp)
	assert.Equal(t, "private", got.Title)
}

func TestCreateTodoValidationResponse(t *testing.T) {
	ts := newTodoServer(t)
	token := ts.tokenFor(t, 1)

	resp := ts.request(t, http.MethodPost, "/api/todos", token, map[string]string{"title": strings.Repeat("a", 256)})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var body struct {
		Errors map[string][]string `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body.Errors, "title")
}

func TestInvalidTodoID(t *testing.T) {
	ts := newTodoServer(t)
	token := ts.tokenFor(t, 1)

	resp := ts.request(t, http.MethodGet, "/api/todos/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
