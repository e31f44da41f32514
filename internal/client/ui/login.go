package ui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Faheem2407/go-todo-app/internal/client"
)

type loginModel struct {
	api        *client.Client
	form       form
	submitting bool
	errText    string
}

func newLoginModel(api *client.Client) *loginModel {
	return &loginModel{
		api: api,
		form: form{fields: []*field{
			{label: "Email"},
			{label: "Password", masked: true},
		}},
	}
}

func loginCmd(api *client.Client, email, password string) tea.Cmd {
	return func() tea.Msg {
		token, u, err := api.Login(context.Background(), email, password)
		if err != nil {
			return errMsg{err: err}
		}
		return signedInMsg{token: token, user: u}
	}
}

func (m *loginModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			m.form.next()
			return nil
		case "shift+tab", "up":
			m.form.prev()
			return nil
		case "ctrl+r":
			return func() tea.Msg { return switchToRegisterMsg{} }
		case "enter":
			if m.submitting {
				return nil
			}
			m.submitting = true
			m.errText = ""
			return loginCmd(m.api, m.form.fields[0].value, m.form.fields[1].value)
		}
		if !m.submitting {
			m.form.handleKey(msg)
		}
		return nil

	case errMsg:
		m.submitting = false
		m.errText = apiMessage(msg.err, "login failed")
		return nil
	}

	return nil
}

func (m *loginModel) View() string {
	var b strings.Builder
	b.WriteString("Log In\n")
	b.WriteString("======\n\n")

	if m.errText != "" {
		b.WriteString("! " + m.errText + "\n\n")
	}

	m.form.render(&b)

	b.WriteString("\n")
	if m.submitting {
		b.WriteString("Logging in...\n")
	} else {
		b.WriteString("enter to log in | ctrl+r to register | ctrl+c to quit\n")
	}
	return b.String()
}
