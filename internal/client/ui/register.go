package ui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Faheem2407/go-todo-app/internal/client"
)

type registerModel struct {
	api        *client.Client
	form       form
	submitting bool
	errText    string
}

func newRegisterModel(api *client.Client) *registerModel {
	return &registerModel{
		api: api,
		form: form{fields: []*field{
			{label: "Name"},
			{label: "Email"},
			{label: "Password", masked: true},
			{label: "Confirm password", masked: true},
		}},
	}
}

// registerCmd creates the account then immediately logs in with the
// same credentials, so a successful registration lands on the
// dashboard.
func registerCmd(api *client.Client, name, email, password, confirmation string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if _, err := api.Register(ctx, name, email, password, confirmation); err != nil {
			return errMsg{err: err}
		}
		token, u, err := api.Login(ctx, email, password)
		if err != nil {
			return errMsg{err: err}
		}
		return signedInMsg{token: token, user: u}
	}
}

func (m *registerModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			m.form.next()
			return nil
		case "shift+tab", "up":
			m.form.prev()
			return nil
		case "esc":
			return func() tea.Msg { return switchToLoginMsg{} }
		case "enter":
			if m.submitting {
				return nil
			}
			m.submitting = true
			m.errText = ""
			f := m.form.fields
			return registerCmd(m.api, f[0].value, f[1].value, f[2].value, f[3].value)
		}
		if !m.submitting {
			m.form.handleKey(msg)
		}
		return nil

	case errMsg:
		m.submitting = false
		m.errText = apiMessage(msg.err, "registration failed")
		return nil
	}

	return nil
}

func (m *registerModel) View() string {
	var b strings.Builder
	b.WriteString("Create Account\n")
	b.WriteString("==============\n\n")

	if m.errText != "" {
		b.WriteString("! " + m.errText + "\n\n")
	}

	m.form.render(&b)

	b.WriteString("\n")
	if m.submitting {
		b.WriteString("Creating account...\n")
	} else {
		b.WriteString("enter to register | esc back to login | ctrl+c to quit\n")
	}
	return b.String()
}
