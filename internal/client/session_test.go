package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "session.json")
}

func TestLoadNoFileIsAnonymous(t *testing.T) {
	c := NewSessionController(sessionPath(t))
	assert.Equal(t, StateUnknown, c.State())

	c.Load()
	assert.Equal(t, StateAnonymous, c.State())
	assert.Empty(t, c.Token())
}

func TestSignInPersistsAcrossLoads(t *testing.T) {
	path := sessionPath(t)

	c := NewSessionController(path)
	c.Load()
	require.NoError(t, c.SignIn("tok-123", "Ann"))
	assert.Equal(t, StateAuthenticated, c.State())

	reloaded := NewSessionController(path)
	reloaded.Load()
	assert.Equal(t, StateAuthenticated, reloaded.State())
	assert.Equal(t, "tok-123", reloaded.Token())
	assert.Equal(t, "Ann", reloaded.DisplayName())
}

func TestLoadCorruptFileIsAnonymous(t *testing.T) {
	path := sessionPath(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	c := NewSessionController(path)
	c.Load()
	assert.Equal(t, StateAnonymous, c.State())
}

func TestSignOutClearsStateEvenWhenAPIFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	path := sessionPath(t)
	c := NewSessionController(path)
	c.Load()
	require.NoError(t, c.SignIn("tok-123", "Ann"))

	api := New(&Config{ServerURL: srv.URL, TimeoutSeconds: 2})
	err := c.SignOut(context.Background(), api)
	assert.Error(t, err, "the API failure is reported")

	// Local state is gone regardless.
	assert.Equal(t, StateAnonymous, c.State())
	assert.Empty(t, c.Token())
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSignOutCallsLogout(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewSessionController(sessionPath(t))
	c.Load()
	require.NoError(t, c.SignIn("tok-123", "Ann"))

	api := New(&Config{ServerURL: srv.URL, TimeoutSeconds: 2})
	require.NoError(t, c.SignOut(context.Background(), api))
	assert.Equal(t, "Bearer tok-123", gotAuth)
}
