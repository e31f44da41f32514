package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Faheem2407/go-todo-app/internal/todo"
	"github.com/Faheem2407/go-todo-app/internal/user"
)

// APIError mirrors the server's error payloads: a message plus, for
// validation failures, a field-keyed error map.
type APIError struct {
	Status  int                 `json:"-"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

func (e *APIError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
	}
	var parts []string
	for _, msgs := range e.Errors {
		parts = append(parts, msgs...)
	}
	return strings.Join(parts, "; ")
}

// Client talks to the API. A zero token means anonymous; Authed derives
// a client that sends the bearer token on every request, so all
// API-calling code receives its authentication explicitly instead of
// reading ambient state.
type Client struct {
	base  string
	http  *http.Client
	token string
}

func New(cfg *Config) *Client {
	return &Client{
		base: strings.TrimRight(cfg.ServerURL, "/"),
		http: &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
	}
}

// Authed returns a copy of c that authenticates as the session holding
// token.
func (c *Client) Authed(token string) *Client {
	authed := *c
	authed.token = token
	return &authed
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

type loginResponse struct {
	Token     string        `json:"token"`
	ExpiresAt int64         `json:"expires_at"`
	User      *user.UserDTO `json:"user"`
}

func (c *Client) Register(ctx context.Context, name, email, password, passwordConfirmation string) (*user.UserDTO, error) {
	body := map[string]string{
		"name":                  name,
		"email":                 email,
		"password":              password,
		"password_confirmation": passwordConfirmation,
	}
	var u user.UserDTO
	if err := c.do(ctx, http.MethodPost, "/api/register", body, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (string, *user.UserDTO, error) {
	body := map[string]string{"email": email, "password": password}
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/api/login", body, &resp); err != nil {
		return "", nil, err
	}
	return resp.Token, resp.User, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/logout", nil, nil)
}

func (c *Client) ListTodos(ctx context.Context) ([]todo.Todo, error) {
	var todos []todo.Todo
	if err := c.do(ctx, http.MethodGet, "/api/todos", nil, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

func (c *Client) CreateTodo(ctx context.Context, in todo.CreateTodoInput) (*todo.Todo, error) {
	var t todo.Todo
	if err := c.do(ctx, http.MethodPost, "/api/todos", in, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) GetTodo(ctx context.Context, id int64) (*todo.Todo, error) {
	var t todo.Todo
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/todos/%d", id), nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) UpdateTodo(ctx context.Context, id int64, in todo.UpdateTodoInput) (*todo.Todo, error) {
	var t todo.Todo
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/todos/%d", id), in, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) DeleteTodo(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/todos/%d", id), nil, nil)
}
