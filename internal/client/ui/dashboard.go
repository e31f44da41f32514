package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Faheem2407/go-todo-app/internal/client"
	"github.com/Faheem2407/go-todo-app/internal/todo"
)

type dashMode int

const (
	modeList dashMode = iota
	modeCreate
	modeEdit
	modeConfirmDelete
)

type todosMsg struct {
	todos []todo.Todo
}

// mutatedMsg means a create/update/delete finished; the list is
// re-fetched to pick up server truth.
type mutatedMsg struct{}

type dashboardModel struct {
	api  *client.Client
	name string

	todos  []todo.Todo
	cursor int

	mode       dashMode
	form       form
	editingID  int64
	deletingID int64

	loading    bool
	submitting bool
	status     string
}

func newDashboardModel(api *client.Client, displayName string) *dashboardModel {
	return &dashboardModel{
		api:     api,
		name:    displayName,
		loading: true,
		form: form{fields: []*field{
			{label: "Title"},
			{label: "Description"},
		}},
	}
}

func (m *dashboardModel) Init() tea.Cmd {
	return fetchTodosCmd(m.api)
}

func fetchTodosCmd(api *client.Client) tea.Cmd {
	return func() tea.Msg {
		todos, err := api.ListTodos(context.Background())
		if err != nil {
			return errMsg{err: err}
		}
		return todosMsg{todos: todos}
	}
}

func createTodoCmd(api *client.Client, title, description string) tea.Cmd {
	return func() tea.Msg {
		in := todo.CreateTodoInput{Title: title}
		if description != "" {
			in.Description = &description
		}
		if _, err := api.CreateTodo(context.Background(), in); err != nil {
			return errMsg{err: err}
		}
		return mutatedMsg{}
	}
}

func updateTodoCmd(api *client.Client, id int64, in todo.UpdateTodoInput) tea.Cmd {
	return func() tea.Msg {
		if _, err := api.UpdateTodo(context.Background(), id, in); err != nil {
			return errMsg{err: err}
		}
		return mutatedMsg{}
	}
}

func deleteTodoCmd(api *client.Client, id int64) tea.Cmd {
	return func() tea.Msg {
		if err := api.DeleteTodo(context.Background(), id); err != nil {
			return errMsg{err: err}
		}
		return mutatedMsg{}
	}
}

func (m *dashboardModel) selected() *todo.Todo {
	if m.cursor < 0 || m.cursor >= len(m.todos) {
		return nil
	}
	return &m.todos[m.cursor]
}

func (m *dashboardModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case modeList:
			return m.updateList(msg)
		case modeCreate, modeEdit:
			return m.updateForm(msg)
		case modeConfirmDelete:
			return m.updateConfirm(msg)
		}

	case todosMsg:
		m.loading = false
		m.submitting = false
		m.todos = msg.todos
		if m.cursor >= len(m.todos) {
			m.cursor = len(m.todos) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return nil

	case mutatedMsg:
		m.submitting = false
		m.mode = modeList
		return fetchTodosCmd(m.api)

	case errMsg:
		m.loading = false
		m.submitting = false
		m.status = apiMessage(msg.err, "request failed")
		return nil
	}

	return nil
}

func (m *dashboardModel) updateList(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.todos)-1 {
			m.cursor++
		}
	case "r", "f5":
		m.loading = true
		m.status = ""
		return fetchTodosCmd(m.api)
	case "n":
		m.mode = modeCreate
		m.form.reset()
		m.status = ""
	case "e":
		t := m.selected()
		if t == nil {
			return nil
		}
		m.mode = modeEdit
		m.editingID = t.ID
		m.form.reset()
		m.form.fields[0].value = t.Title
		if t.Description != nil {
			m.form.fields[1].value = *t.Description
		}
		m.status = ""
	case "d":
		t := m.selected()
		if t == nil {
			return nil
		}
		m.mode = modeConfirmDelete
		m.deletingID = t.ID
		m.status = ""
	case " ", "enter":
		t := m.selected()
		if t == nil || m.submitting {
			return nil
		}
		m.submitting = true
		completed := !t.Completed
		// Flip locally right away; the refetch confirms.
		t.Completed = completed
		return updateTodoCmd(m.api, t.ID, todo.UpdateTodoInput{Completed: &completed})
	case "ctrl+l":
		return func() tea.Msg { return signedOutMsg{} }
	}
	return nil
}

func (m *dashboardModel) updateForm(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		return nil
	case "tab", "down":
		m.form.next()
		return nil
	case "shift+tab", "up":
		m.form.prev()
		return nil
	case "enter":
		if m.submitting {
			return nil
		}
		m.submitting = true
		title := m.form.fields[0].value
		description := m.form.fields[1].value
		if m.mode == modeCreate {
			return createTodoCmd(m.api, title, description)
		}
		in := todo.UpdateTodoInput{Title: &title}
		in.Description = &description
		return updateTodoCmd(m.api, m.editingID, in)
	}
	if !m.submitting {
		m.form.handleKey(msg)
	}
	return nil
}

func (m *dashboardModel) updateConfirm(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "enter":
		if m.submitting {
			return nil
		}
		m.submitting = true
		id := m.deletingID
		// Drop it locally right away; the refetch confirms.
		for i := range m.todos {
			if m.todos[i].ID == id {
				m.todos = append(m.todos[:i], m.todos[i+1:]...)
				break
			}
		}
		return deleteTodoCmd(m.api, id)
	case "n", "esc":
		m.mode = modeList
	}
	return nil
}

func (m *dashboardModel) View() string {
	var b strings.Builder
	title := fmt.Sprintf("Todos - %s", m.name)
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len([]rune(title))) + "\n\n")

	if m.status != "" {
		b.WriteString("! " + m.status + "\n\n")
	}

	switch m.mode {
	case modeCreate:
		b.WriteString("New Todo\n\n")
		m.form.render(&b)
		b.WriteString("\nenter to save | esc to cancel\n")
		return b.String()
	case modeEdit:
		b.WriteString(fmt.Sprintf("Edit Todo #%d\n\n", m.editingID))
		m.form.render(&b)
		b.WriteString("\nenter to save | esc to cancel\n")
		return b.String()
	case modeConfirmDelete:
		b.WriteString(fmt.Sprintf("Delete todo #%d? (y/n)\n", m.deletingID))
		return b.String()
	}

	if m.loading {
		b.WriteString("Loading...\n")
		return b.String()
	}

	if len(m.todos) == 0 {
		b.WriteString("No todos yet. Press n to create one.\n")
	}

	for i, t := range m.todos {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		check := "[ ]"
		if t.Completed {
			check = "[x]"
		}
		b.WriteString(fmt.Sprintf("%s%s %s", cursor, check, t.Title))
		if t.Description != nil && *t.Description != "" {
			desc := *t.Description
			if len(desc) > 40 {
				desc = desc[:37] + "..."
			}
			b.WriteString("  - " + desc)
		}
		b.WriteString("\n")
	}

	b.WriteString("\nspace toggle | n new | e edit | d delete | r refresh | ctrl+l logout | q quit\n")
	return b.String()
}
