package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/vtx/internal/views"
)

const (
	loginUsername = iota
	loginPassword
)

func newLoginInputs() []textinput.Model {
	username := textinput.New()
	username.Placeholder = "username"
	username.Prompt = "Username: "
	username.CharLimit = 64

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = "Password: "
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return []textinput.Model{username, password}
}

func (m *Model) resetLogin() tea.Cmd {
	for i := range m.loginInputs {
		m.loginInputs[i].Reset()
	}
	m.loginErr = nil
	m.loggingIn = false
	m.loginFocus = loginUsername
	return focusInput(m.loginInputs, m.loginFocus)
}

func (m *Model) handleLoginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyUp, msg.Type == tea.KeyShiftTab:
		m.loginFocus = cycle(m.loginFocus, len(m.loginInputs), false)
		return m, focusInput(m.loginInputs, m.loginFocus)
	case msg.Type == tea.KeyDown:
		m.loginFocus = cycle(m.loginFocus, len(m.loginInputs), true)
		return m, focusInput(m.loginInputs, m.loginFocus)
	case key.Matches(msg, m.keys.enter):
		if m.loginFocus == loginUsername {
			m.loginFocus = loginPassword
			return m, focusInput(m.loginInputs, m.loginFocus)
		}
		return m, m.submitLogin()
	case key.Matches(msg, m.keys.back):
		if m.nav.Back() {
			return m, m.syncLocation()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.loginInputs[m.loginFocus], cmd = m.loginInputs[m.loginFocus].Update(msg)
	return m, cmd
}

// submitLogin sends the form. Validation and backend failures come back as [MsgLoginDone].
func (m *Model) submitLogin() tea.Cmd {
	if m.loggingIn {
		return nil
	}
	m.loggingIn = true
	m.loginErr = nil

	form := views.LoginForm{
		Username: m.loginInputs[loginUsername].Value(),
		Password: m.loginInputs[loginPassword].Value(),
	}
	login := m.login
	return func() tea.Msg {
		return loginDoneMsg(login.Submit(m.ctx, form))
	}
}

func (m *Model) renderLogin() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("Login"))
	b.WriteString("\n")

	fields := []string{"username", "password"}
	for i, input := range m.loginInputs {
		b.WriteString(input.View())
		b.WriteString("\n")
		if m.loginErr != nil {
			if msg := m.loginErr.For(fields[i]); msg != "" {
				b.WriteString(styles.err.Render(msg))
				b.WriteString("\n")
			}
		}
	}

	if m.loggingIn {
		b.WriteString(styles.help.Render("Signing in..."))
		b.WriteString("\n")
	}

	submit := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit"))
	switchField := key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "switch field"))
	helpKeys := []key.Binding{submit, switchField, m.keys.back, m.keys.menu, m.keys.forceQuit}
	return fmt.Sprintf("%s\n%s", b.String(), m.help.ShortHelpView(helpKeys))
}
