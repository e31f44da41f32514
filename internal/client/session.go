package client

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
)

// State is where the session controller is in its lifecycle.
type State int

const (
	// StateUnknown means the persisted session file has not been read yet.
	StateUnknown State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

type sessionFile struct {
	Token       string `json:"token"`
	DisplayName string `json:"display_name"`
}

// SessionController owns the persisted session: the bearer token and
// the display name of whoever logged in. Views ask it for state; they
// never touch the file themselves.
type SessionController struct {
	path  string
	state State
	token string
	name  string
}

func NewSessionController(path string) *SessionController {
	return &SessionController{path: path, state: StateUnknown}
}

// Load reads the persisted session and resolves Unknown into either
// Anonymous or Authenticated. A missing or unreadable file means
// Anonymous.
func (c *SessionController) Load() {
	data, err := os.ReadFile(c.path)
	if err != nil {
		c.state = StateAnonymous
		return
	}

	var sf sessionFile
	if err := json.Unmarshal(data, &sf); err != nil || sf.Token == "" {
		c.state = StateAnonymous
		return
	}

	c.token = sf.Token
	c.name = sf.DisplayName
	c.state = StateAuthenticated
}

func (c *SessionController) State() State        { return c.state }
func (c *SessionController) Token() string       { return c.token }
func (c *SessionController) DisplayName() string { return c.name }

// SignIn records a freshly issued token and persists it.
func (c *SessionController) SignIn(token, displayName string) error {
	c.token = token
	c.name = displayName
	c.state = StateAuthenticated

	if err := os.MkdirAll(filepath.Dir(c.path), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(sessionFile{Token: token, DisplayName: displayName})
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, data, 0o600)
}

// SignOut revokes the session server-side, then clears local state
// regardless of whether the API call succeeded.
func (c *SessionController) SignOut(ctx context.Context, api *Client) error {
	var apiErr error
	if c.token != "" {
		apiErr = api.Authed(c.token).Logout(ctx)
	}

	c.token = ""
	c.name = ""
	c.state = StateAnonymous
	_ = os.Remove(c.path)

	return apiErr
}
