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

// Register form field indices.
const (
	regFieldName = iota
	regFieldUsername
	regFieldEmail
	regFieldPhone
	regFieldPassword
	regFieldConfirm
)

// RegisterModel is the view model for the account-creation page.
type RegisterModel struct {
	deps *tui.Deps

	fields     []textinput.Model
	focus      int
	fieldErrs  validate.Errors
	serverErr  string
	submitting bool
	spinner    spinner.Model

	width  int
	height int
}

// NewRegisterModel creates the account-creation form.
func NewRegisterModel(deps *tui.Deps, width, height int) RegisterModel {
	fields := []textinput.Model{
		newInput("Jane Doe", 40),
		newInput("jane_doe", 40),
		newInput("you@example.com", 40),
		newInput("+1234567890", 40),
		newPasswordInput("password", 40),
		newPasswordInput("confirm password", 40),
	}
	focusField(fields, regFieldName)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return RegisterModel{
		deps:      deps,
		fields:    fields,
		fieldErrs: validate.Errors{},
		spinner:   sp,
		width:     width,
		height:    height,
	}
}

// Update handles messages for the account-creation page.
func (m RegisterModel) Update(msg tea.Msg) (RegisterModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.submitting {
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
			if m.focus < regFieldConfirm {
				m.focus = cycleFocus(m.fields, m.focus, 1)
				return m, nil
			}
			return m.submit()
		case "esc":
			return m, func() tea.Msg { return tui.NavigateMsg{State: tui.StateLogin} }
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

	case tui.RegisterResultMsg:
		m.submitting = false
		if msg.Err != nil {
			if errors.Is(msg.Err, session.ErrOperationInFlight) {
				return m, nil
			}
			m.serverErr = api.UserMessage(msg.Err, "Registration failed")
			return m, nil
		}
		m.serverErr = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.fields[m.focus], cmd = m.fields[m.focus].Update(msg)
	return m, cmd
}

// submit validates all fields locally, then issues the register command.
func (m RegisterModel) submit() (RegisterModel, tea.Cmd) {
	name := strings.TrimSpace(m.fields[regFieldName].Value())
	username := strings.TrimSpace(m.fields[regFieldUsername].Value())
	email := strings.TrimSpace(m.fields[regFieldEmail].Value())
	phone := strings.TrimSpace(m.fields[regFieldPhone].Value())
	password := m.fields[regFieldPassword].Value()
	confirm := m.fields[regFieldConfirm].Value()

	m.fieldErrs = validate.Register(name, username, email, phone, password, confirm)
	if !m.fieldErrs.OK() {
		return m, nil
	}

	m.submitting = true
	m.serverErr = ""
	return m, tea.Batch(
		m.spinner.Tick,
		commands.RegisterCmd(m.deps.Session, m.deps.Log, api.RegisterRequest{
			Name:        name,
			Username:    username,
			Email:       email,
			PhoneNumber: phone,
			Password:    password,
		}),
	)
}

// View renders the account-creation page.
func (m RegisterModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("Create your account"))
	b.WriteString("\n\n")

	if m.serverErr != "" {
		b.WriteString(tui.ErrorStyle.Render(m.serverErr))
		b.WriteString("\n\n")
	}

	renderField(&b, "Name", m.fields[regFieldName], m.fieldErrs["name"])
	renderField(&b, "Username", m.fields[regFieldUsername], m.fieldErrs["username"])
	renderField(&b, "Email", m.fields[regFieldEmail], m.fieldErrs["email"])
	renderField(&b, "Phone number", m.fields[regFieldPhone], m.fieldErrs["phoneNumber"])
	renderField(&b, "Password", m.fields[regFieldPassword], m.fieldErrs["password"])
	renderField(&b, "Confirm password", m.fields[regFieldConfirm], m.fieldErrs["confirmPassword"])

	if m.submitting {
		b.WriteString(m.spinner.View())
		b.WriteString(" Creating account...")
	} else {
		b.WriteString(tui.DimStyle.Render("enter: create account · esc: back to sign in"))
	}

	return tui.BoxStyle.Render(b.String())
}
