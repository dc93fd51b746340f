// Package views provides TUI view components for the Handl application.
package views

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/handl-dev/handl/internal/api"
	"github.com/handl-dev/handl/internal/session"
	"github.com/handl-dev/handl/internal/tui"
	"github.com/handl-dev/handl/internal/tui/commands"
	"github.com/handl-dev/handl/internal/validate"
)

// Login form field indices.
const (
	loginFieldEmail = iota
	loginFieldPassword
)

// LoginModel is the view model for the sign-in page.
type LoginModel struct {
	deps *tui.Deps

	fields     []textinput.Model
	focus      int
	fieldErrs  validate.Errors
	serverErr  string
	notice     string
	submitting bool
	spinner    spinner.Model

	width  int
	height int
}

// NewLoginModel creates the sign-in form.
func NewLoginModel(deps *tui.Deps, width, height int) LoginModel {
	fields := []textinput.Model{
		newInput("you@example.com", 40),
		newPasswordInput("password", 40),
	}
	focusField(fields, loginFieldEmail)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return LoginModel{
		deps:      deps,
		fields:    fields,
		fieldErrs: validate.Errors{},
		spinner:   sp,
		width:     width,
		height:    height,
	}
}

// SetNotice displays a one-line banner above the form, used for
// "session expired" after a global 401.
func (m *LoginModel) SetNotice(notice string) {
	m.notice = notice
}

// Update handles messages for the sign-in page.
func (m LoginModel) Update(msg tea.Msg) (LoginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.submitting {
			// Ignore input while the sign-in call is in flight.
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			m.focus = cycleFocus(m.fields, m.focus, 1)
			return m, nil
		case "shift+tab", "up":
			m.focus = cycleFocus(m.fields, m.focus, -1)
			return m, nil
		case "enter":
			if m.focus < loginFieldPassword {
				m.focus = cycleFocus(m.fields, m.focus, 1)
				return m, nil
			}
			return m.submit()
		case "ctrl+n":
			return m, func() tea.Msg { return tui.NavigateMsg{State: tui.StateRegister} }
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if m.submitting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tui.LoginResultMsg:
		m.submitting = false
		if msg.Err != nil {
			if errors.Is(msg.Err, session.ErrOperationInFlight) {
				return m, nil
			}
			m.serverErr = api.UserMessage(msg.Err, "Login failed")
			return m, nil
		}
		// Success is routed by the app; clear the form for next time.
		m.fields[loginFieldPassword].SetValue("")
		m.serverErr = ""
		m.notice = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.fields[m.focus], cmd = m.fields[m.focus].Update(msg)
	return m, cmd
}

// submit validates locally, then issues the login command.
func (m LoginModel) submit() (LoginModel, tea.Cmd) {
	email := strings.TrimSpace(m.fields[loginFieldEmail].Value())
	password := m.fields[loginFieldPassword].Value()

	m.fieldErrs = validate.Login(email, password)
	if !m.fieldErrs.OK() {
		return m, nil
	}

	m.submitting = true
	m.serverErr = ""
	return m, tea.Batch(
		m.spinner.Tick,
		commands.LoginCmd(m.deps.Session, m.deps.Log, api.LoginRequest{
			Email:    email,
			Password: password,
		}),
	)
}

// View renders the sign-in page.
func (m LoginModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("Welcome back"))
	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render("Track your high and low of the day"))
	b.WriteString("\n\n")

	if m.notice != "" {
		b.WriteString(tui.WarningStyle.Render(m.notice))
		b.WriteString("\n\n")
	}
	if m.serverErr != "" {
		b.WriteString(tui.ErrorStyle.Render(m.serverErr))
		b.WriteString("\n\n")
	}

	renderField(&b, "Email", m.fields[loginFieldEmail], m.fieldErrs["email"])
	renderField(&b, "Password", m.fields[loginFieldPassword], m.fieldErrs["password"])

	if m.submitting {
		b.WriteString(m.spinner.View())
		b.WriteString(" Signing in...")
	} else {
		b.WriteString(tui.DimStyle.Render("enter: sign in · ctrl+n: create account · ctrl+c: exit"))
	}

	return tui.BoxStyle.Render(b.String())
}
