package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faheem2407/go-todo-app/internal/client"
	"github.com/Faheem2407/go-todo-app/internal/todo"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func newTestDashboard() *dashboardModel {
	api := client.New(&client.Config{ServerURL: "http://localhost:1", TimeoutSeconds: 1})
	m := newDashboardModel(api.Authed("tok"), "Ann")
	m.loading = false
	return m
}

func TestToggleIsOptimisticAndGuarded(t *testing.T) {
	m := newTestDashboard()
	m.todos = []todo.Todo{{ID: 1, Title: "Buy milk", Completed: false}}

	cmd := m.Update(key("space"))
	require.NotNil(t, cmd, "toggle issues a request")
	assert.True(t, m.todos[0].Completed, "local state flips before the server answers")
	assert.True(t, m.submitting)

	// A second press while the first request is pending does nothing.
	cmd = m.Update(key("space"))
	assert.Nil(t, cmd)
	assert.True(t, m.todos[0].Completed)
}

func TestDeleteConfirmationFlow(t *testing.T) {
	m := newTestDashboard()
	m.todos = []todo.Todo{
		{ID: 1, Title: "keep"},
		{ID: 2, Title: "drop"},
	}
	m.cursor = 1

	m.Update(key("d"))
	assert.Equal(t, modeConfirmDelete, m.mode)
	assert.Equal(t, int64(2), m.deletingID)

	// Declining returns to the list untouched.
	m.Update(key("n"))
	assert.Equal(t, modeList, m.mode)
	assert.Len(t, m.todos, 2)

	m.Update(key("d"))
	cmd := m.Update(key("y"))
	require.NotNil(t, cmd)
	require.Len(t, m.todos, 1, "deleted row disappears locally right away")
	assert.Equal(t, "keep", m.todos[0].Title)
}

func TestEditModalPrefillsForm(t *testing.T) {
	desc := "2 liters"
	m := newTestDashboard()
	m.todos = []todo.Todo{{ID: 5, Title: "Buy milk", Description: &desc}}

	m.Update(key("e"))
	assert.Equal(t, modeEdit, m.mode)
	assert.Equal(t, int64(5), m.editingID)
	assert.Equal(t, "Buy milk", m.form.fields[0].value)
	assert.Equal(t, "2 liters", m.form.fields[1].value)

	m.Update(key("esc"))
	assert.Equal(t, modeList, m.mode)
}

func TestCreateFormTypingAndGuard(t *testing.T) {
	m := newTestDashboard()

	m.Update(key("n"))
	assert.Equal(t, modeCreate, m.mode)

	for _, r := range "Walk dog" {
		m.Update(key(string(r)))
	}
	assert.Equal(t, "Walk dog", m.form.fields[0].value)

	m.Update(key("tab"))
	for _, r := range "around" {
		m.Update(key(string(r)))
	}
	assert.Equal(t, "around", m.form.fields[1].value)

	cmd := m.Update(key("enter"))
	require.NotNil(t, cmd)
	assert.True(t, m.submitting)

	cmd = m.Update(key("enter"))
	assert.Nil(t, cmd, "resubmit while pending is ignored")
}

func TestMutatedTriggersRefetch(t *testing.T) {
	m := newTestDashboard()
	m.mode = modeCreate
	m.submitting = true

	cmd := m.Update(mutatedMsg{})
	require.NotNil(t, cmd, "a finished mutation re-fetches the list")
	assert.Equal(t, modeList, m.mode)
	assert.False(t, m.submitting)
}

func TestErrMsgSurfacesStatus(t *testing.T) {
	m := newTestDashboard()
	m.submitting = true

	m.Update(errMsg{err: &client.APIError{Status: 403, Message: "forbidden"}})
	assert.False(t, m.submitting)
	assert.Contains(t, m.status, "forbidden")
}

func TestTodosMsgClampsCursor(t *testing.T) {
	m := newTestDashboard()
	m.todos = []todo.Todo{{ID: 1}, {ID: 2}, {ID: 3}}
	m.cursor = 2

	m.Update(todosMsg{todos: []todo.Todo{{ID: 1}}})
	assert.Equal(t, 0, m.cursor)
}
