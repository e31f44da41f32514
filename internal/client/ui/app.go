package ui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Faheem2407/go-todo-app/internal/client"
	"github.com/Faheem2407/go-todo-app/internal/user"
)

type screen int

const (
	screenLogin screen = iota
	screenRegister
	screenDashboard
)

// Messages shared across screens.

type errMsg struct {
	err error
}

type signedInMsg struct {
	token string
	user  *user.UserDTO
}

type signedOutMsg struct{}

// apiMessage extracts a short human message from an API failure.
func apiMessage(err error, fallback string) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	if err != nil {
		return fallback + ": " + err.Error()
	}
	return fallback
}

// App routes between the login, register and dashboard screens based on
// the session controller's state.
type App struct {
	api     *client.Client
	session *client.SessionController

	screen   screen
	login    *loginModel
	register *registerModel
	dash     *dashboardModel
}

func NewApp(api *client.Client, session *client.SessionController) *App {
	app := &App{
		api:      api,
		session:  session,
		login:    newLoginModel(api),
		register: newRegisterModel(api),
	}

	if session.State() == client.StateUnknown {
		session.Load()
	}

	if session.State() == client.StateAuthenticated {
		app.screen = screenDashboard
		app.dash = newDashboardModel(api.Authed(session.Token()), session.DisplayName())
	} else {
		app.screen = screenLogin
	}

	return app
}

func (a *App) Init() tea.Cmd {
	if a.screen == screenDashboard {
		return a.dash.Init()
	}
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

	case signedInMsg:
		// Persistence failure only costs the next launch; this session
		// proceeds in memory.
		_ = a.session.SignIn(msg.token, msg.user.Name)
		a.screen = screenDashboard
		a.dash = newDashboardModel(a.api.Authed(msg.token), msg.user.Name)
		return a, a.dash.Init()

	case signedOutMsg:
		_ = a.session.SignOut(context.Background(), a.api)
		a.screen = screenLogin
		a.login = newLoginModel(a.api)
		return a, nil

	case switchToRegisterMsg:
		a.screen = screenRegister
		a.register = newRegisterModel(a.api)
		return a, nil

	case switchToLoginMsg:
		a.screen = screenLogin
		a.login = newLoginModel(a.api)
		return a, nil
	}

	switch a.screen {
	case screenLogin:
		return a, a.login.Update(msg)
	case screenRegister:
		return a, a.register.Update(msg)
	default:
		return a, a.dash.Update(msg)
	}
}

func (a *App) View() string {
	switch a.screen {
	case screenLogin:
		return a.login.View()
	case screenRegister:
		return a.register.View()
	default:
		return a.dash.View()
	}
}

type switchToRegisterMsg struct{}

type switchToLoginMsg struct{}

// Run starts the terminal client.
func Run(ctx context.Context, api *client.Client, session *client.SessionController) error {
	program := tea.NewProgram(NewApp(api, session), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}
