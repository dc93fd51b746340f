// Package views provides TUI view components for the Handl application.
// This file implements the profile page for the signed-in account and
// for other users, including the tri-state friend relation.
package views

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/handl-dev/handl/internal/api"
	"github.com/handl-dev/handl/internal/session"
	"github.com/handl-dev/handl/internal/tui"
	"github.com/handl-dev/handl/internal/tui/commands"
	"github.com/handl-dev/handl/internal/validate"
)

// Profile edit field indices.
const (
	editFieldName = iota
	editFieldEmail
	editFieldPhone
	editFieldPicture
)

// ProfileModel is the view model for a profile page. Username selects
// whose profile; the signed-in account's own page adds profile editing.
type ProfileModel struct {
	deps *tui.Deps

	username string
	seq      int
	profile  *api.Profile
	friends  []api.User
	requests []api.FriendRequest
	loading  bool
	loadErr  string
	notice   string

	editing    bool
	fields     []textinput.Model
	focus      int
	fieldErrs  validate.Errors
	serverErr  string
	submitting bool

	width  int
	height int
}

// NewProfileModel creates a profile page.
func NewProfileModel(deps *tui.Deps, width, height int) ProfileModel {
	return ProfileModel{deps: deps, width: width, height: height}
}

// Enter targets the page at username (empty means the signed-in user)
// and starts the loads. Profile, friends, and requests are fetched
// concurrently and may land in any order.
func (m ProfileModel) Enter(username string) (ProfileModel, tea.Cmd) {
	if username == "" {
		if u := m.deps.Session.User(); u != nil {
			username = u.Username
		}
	}
	m.username = username
	m.seq++
	m.profile = nil
	m.loading = true
	m.loadErr = ""
	m.notice = ""
	m.editing = false
	return m, tea.Batch(
		commands.LoadProfileCmd(m.deps.API, m.seq, username),
		commands.LoadFriendsCmd(m.deps.API, m.seq),
		commands.LoadRequestsCmd(m.deps.API, m.seq),
	)
}

// Typing reports whether the edit overlay is capturing keystrokes.
func (m ProfileModel) Typing() bool {
	return m.editing
}

// isSelf reports whether the page shows the signed-in account.
func (m ProfileModel) isSelf() bool {
	u := m.deps.Session.User()
	return u != nil && u.Username == m.username
}

// relation derives the viewer's friend relation to the shown user from
// the loaded friends and requests lists.
func (m ProfileModel) relation() api.FriendStatus {
	for _, f := range m.friends {
		if f.Username == m.username {
			return api.FriendAccepted
		}
	}
	for _, r := range m.requests {
		if r.From.Username == m.username {
			return api.FriendPendingIncoming
		}
	}
	return api.FriendNone
}

// Update handles messages for the profile page.
func (m ProfileModel) Update(msg tea.Msg) (ProfileModel, tea.Cmd) {
	if m.editing {
		return m.updateEdit(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			return m.Enter(m.username)
		case "e":
			if m.isSelf() {
				m.startEdit()
			}
			return m, nil
		case "f":
			if !m.isSelf() && m.relation() == api.FriendNone {
				m.notice = "Friend request sent"
				return m, commands.SendFriendRequestCmd(m.deps.API, m.username)
			}
		case "a":
			if !m.isSelf() && m.relation() == api.FriendPendingIncoming && m.profile != nil {
				return m, commands.RespondToRequestCmd(m.deps.API, m.profile.User.ID, api.FriendAccept)
			}
		case "d":
			if !m.isSelf() && m.relation() == api.FriendAccepted && m.profile != nil {
				return m, commands.RemoveFriendCmd(m.deps.API, m.profile.User.ID)
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tui.ProfileLoadedMsg:
		if msg.Seq != m.seq {
			return m, nil
		}
		m.loading = false
		if msg.Err != nil {
			m.loadErr = "Failed to load profile. Press r to retry."
			return m, nil
		}
		m.profile = msg.Profile

	case tui.FriendsMsg:
		if msg.Seq != m.seq || msg.Err != nil {
			return m, nil
		}
		m.friends = msg.Friends

	case tui.FriendRequestsMsg:
		if msg.Seq != m.seq || msg.Err != nil {
			return m, nil
		}
		m.requests = msg.Requests

	case tui.FriendActionMsg:
		if msg.Err != nil {
			m.notice = ""
			m.loadErr = "That didn't work. Press r to refresh."
			return m, nil
		}
		return m.Enter(m.username)
	}

	return m, nil
}

// startEdit opens the edit overlay prefilled from the session user.
func (m *ProfileModel) startEdit() {
	u := m.deps.Session.User()
	if u == nil {
		return
	}
	m.fields = []textinput.Model{
		newInput("Name", 40),
		newInput("Email", 40),
		newInput("Phone number", 40),
		newInput("Path to an image file (optional)", 40),
	}
	m.fields[editFieldName].SetValue(u.Name)
	m.fields[editFieldEmail].SetValue(u.Email)
	m.fields[editFieldPhone].SetValue(u.PhoneNumber)
	m.focus = editFieldName
	focusField(m.fields, m.focus)
	m.fieldErrs = validate.Errors{}
	m.serverErr = ""
	m.editing = true
}

// updateEdit handles the edit overlay.
func (m ProfileModel) updateEdit(msg tea.Msg) (ProfileModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch msg.String() {
		case "esc":
			m.editing = false
			return m, nil
		case "tab", "down":
			m.focus = cycleFocus(m.fields, m.focus, 1)
			return m, nil
		case "shift+tab", "up":
			m.focus = cycleFocus(m.fields, m.focus, -1)
			return m, nil
		case "enter":
			if m.focus < editFieldPicture {
				m.focus = cycleFocus(m.fields, m.focus, 1)
				return m, nil
			}
			return m.submitEdit()
		}

	case tui.ProfileSavedMsg:
		m.submitting = false
		if msg.Err != nil {
			if errors.Is(msg.Err, session.ErrOperationInFlight) {
				return m, nil
			}
			m.serverErr = api.UserMessage(msg.Err, "Failed to update profile")
			return m, nil
		}
		m.editing = false
		return m.Enter(m.deps.Session.User().Username)
	}

	var cmd tea.Cmd
	m.fields[m.focus], cmd = m.fields[m.focus].Update(msg)
	return m, cmd
}

// submitEdit validates and issues the profile update.
func (m ProfileModel) submitEdit() (ProfileModel, tea.Cmd) {
	name := strings.TrimSpace(m.fields[editFieldName].Value())
	email := strings.TrimSpace(m.fields[editFieldEmail].Value())
	phone := strings.TrimSpace(m.fields[editFieldPhone].Value())
	picture := strings.TrimSpace(m.fields[editFieldPicture].Value())

	m.fieldErrs = validate.Errors{}
	validate.Name(m.fieldErrs, name)
	validate.Email(m.fieldErrs, email)
	validate.Phone(m.fieldErrs, phone)
	if !m.fieldErrs.OK() {
		return m, nil
	}

	m.submitting = true
	m.serverErr = ""
	return m, commands.UpdateProfileCmd(m.deps.Session, m.deps.Log, m.deps.API, api.ProfileUpdate{
		Name:        name,
		Email:       email,
		PhoneNumber: phone,
	}, picture)
}

// View renders the profile page.
func (m ProfileModel) View() string {
	if m.editing {
		return m.renderEdit()
	}

	var b strings.Builder

	if m.loading {
		b.WriteString(tui.DimStyle.Render("Loading profile..."))
		return b.String()
	}
	if m.loadErr != "" {
		b.WriteString(tui.ErrorStyle.Render(m.loadErr))
		return b.String()
	}
	if m.profile == nil {
		b.WriteString(tui.DimStyle.Render("No profile loaded."))
		return b.String()
	}

	u := m.profile.User
	b.WriteString(tui.TitleStyle.Render(u.Name))
	b.WriteString(tui.DimStyle.Render("  @" + u.Username))
	b.WriteString("\n\n")

	if m.notice != "" {
		b.WriteString(tui.SuccessStyle.Render(m.notice))
		b.WriteString("\n\n")
	}

	stats := m.profile.Stats
	cards := []string{
		statCard("Streak", fmt.Sprintf("%d", stats.Streak)),
		statCard("Weekly avg", fmt.Sprintf("%.1f", stats.WeeklyAverage)),
		statCard("Entries", fmt.Sprintf("%d", stats.TotalEntries)),
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	b.WriteString("\n\n")

	b.WriteString(tui.LabelStyle.Render("Recent days"))
	b.WriteString("\n")
	if len(m.profile.RecentDays) == 0 {
		b.WriteString(tui.DimStyle.Render("No shared entries.") + "\n")
	}
	for _, entry := range m.profile.RecentDays {
		b.WriteString(renderEntry(entry))
	}
	b.WriteString("\n")

	b.WriteString(m.renderFooter())
	return b.String()
}

// renderFooter shows the actions available for this profile.
func (m ProfileModel) renderFooter() string {
	if m.isSelf() {
		return tui.DimStyle.Render("e: edit profile · r: refresh · tab: next page")
	}
	switch m.relation() {
	case api.FriendAccepted:
		return tui.DimStyle.Render("d: remove friend · r: refresh")
	case api.FriendPendingIncoming:
		return tui.DimStyle.Render("a: accept request · r: refresh")
	default:
		return tui.DimStyle.Render("f: send friend request · r: refresh")
	}
}

// renderEdit renders the edit overlay.
func (m ProfileModel) renderEdit() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("Edit Profile"))
	b.WriteString("\n\n")

	if m.serverErr != "" {
		b.WriteString(tui.ErrorStyle.Render(m.serverErr))
		b.WriteString("\n\n")
	}

	renderField(&b, "Name", m.fields[editFieldName], m.fieldErrs["name"])
	renderField(&b, "Email", m.fields[editFieldEmail], m.fieldErrs["email"])
	renderField(&b, "Phone number", m.fields[editFieldPhone], m.fieldErrs["phoneNumber"])
	renderField(&b, "Profile picture", m.fields[editFieldPicture], "")

	if m.submitting {
		b.WriteString(tui.DimStyle.Render("Saving..."))
	} else {
		b.WriteString(tui.DimStyle.Render("enter: save · esc: cancel"))
	}

	return tui.BoxStyle.Render(b.String())
}
