// Package views provides TUI view components for the Handl application.
// This file implements the friends page: list, requests, and search.
package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/handl-dev/handl/internal/api"
	"github.com/handl-dev/handl/internal/tui"
	"github.com/handl-dev/handl/internal/tui/commands"
)

// Friends page tabs.
const (
	friendsTabList = iota
	friendsTabRequests
	friendsTabSearch
)

// FriendsModel is the view model for the friends page.
type FriendsModel struct {
	deps *tui.Deps

	activeTab int
	seq       int
	loadErr   string

	friends  []api.User
	requests []api.FriendRequest
	cursor   int

	searchInput   textinput.Model
	searchFocused bool
	results       []api.User
	resultCursor  int
	searching     bool
	// sentTo marks usernames a request was sent to this visit, so the
	// row flips to "pending" without a refetch.
	sentTo map[string]bool

	width  int
	height int
}

// NewFriendsModel creates the friends page.
func NewFriendsModel(deps *tui.Deps, width, height int) FriendsModel {
	input := newInput("Search by name or username", 40)
	return FriendsModel{
		deps:        deps,
		searchInput: input,
		sentTo:      map[string]bool{},
		width:       width,
		height:      height,
	}
}

// Enter starts loading friends and pending requests concurrently.
func (m FriendsModel) Enter() (FriendsModel, tea.Cmd) {
	m.seq++
	m.loadErr = ""
	return m, tea.Batch(
		commands.LoadFriendsCmd(m.deps.API, m.seq),
		commands.LoadRequestsCmd(m.deps.API, m.seq),
	)
}

// Typing reports whether the search input is capturing keystrokes.
func (m FriendsModel) Typing() bool {
	return m.activeTab == friendsTabSearch && m.searchFocused
}

// Update handles messages for the friends page.
func (m FriendsModel) Update(msg tea.Msg) (FriendsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tui.FriendsMsg:
		if msg.Seq != m.seq {
			return m, nil
		}
		if msg.Err != nil {
			m.loadErr = "Failed to load friends. Press r to retry."
			return m, nil
		}
		m.friends = msg.Friends
		m.clampCursor()

	case tui.FriendRequestsMsg:
		if msg.Seq != m.seq {
			return m, nil
		}
		if msg.Err != nil {
			m.loadErr = "Failed to load requests. Press r to retry."
			return m, nil
		}
		m.requests = msg.Requests
		m.clampCursor()

	case tui.SearchResultsMsg:
		if msg.Seq != m.seq {
			return m, nil
		}
		m.searching = false
		if msg.Err != nil {
			m.loadErr = "Search failed. Try again."
			return m, nil
		}
		m.results = msg.Users
		m.resultCursor = 0

	case tui.FriendActionMsg:
		if msg.Err != nil {
			m.loadErr = "That didn't work. Press r to refresh."
			return m, nil
		}
		// Relation changed server-side; reload both lists.
		return m.Enter()
	}

	return m, nil
}

// handleKey routes keys by active tab.
func (m FriendsModel) handleKey(msg tea.KeyMsg) (FriendsModel, tea.Cmd) {
	if m.Typing() {
		switch msg.String() {
		case "enter":
			query := strings.TrimSpace(m.searchInput.Value())
			if query == "" {
				return m, nil
			}
			m.searching = true
			m.searchFocused = false
			m.searchInput.Blur()
			return m, commands.SearchUsersCmd(m.deps.API, m.seq, query)
		case "esc":
			m.searchFocused = false
			m.searchInput.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "left":
		m.activeTab = (m.activeTab + 2) % 3
		m.cursor = 0
		return m, nil
	case "right":
		m.activeTab = (m.activeTab + 1) % 3
		m.cursor = 0
		return m, nil
	case "r":
		return m.Enter()
	case "up", "k":
		m.moveCursor(-1)
		return m, nil
	case "down", "j":
		m.moveCursor(1)
		return m, nil
	}

	switch m.activeTab {
	case friendsTabList:
		switch msg.String() {
		case "d":
			if m.cursor < len(m.friends) {
				return m, commands.RemoveFriendCmd(m.deps.API, m.friends[m.cursor].ID)
			}
		case "enter":
			if m.cursor < len(m.friends) {
				username := m.friends[m.cursor].Username
				return m, func() tea.Msg {
					return tui.NavigateMsg{State: tui.StateProfile, Username: username}
				}
			}
		}

	case friendsTabRequests:
		switch msg.String() {
		case "a":
			if m.cursor < len(m.requests) {
				return m, commands.RespondToRequestCmd(m.deps.API, m.requests[m.cursor].From.ID, api.FriendAccept)
			}
		case "x":
			if m.cursor < len(m.requests) {
				return m, commands.RespondToRequestCmd(m.deps.API, m.requests[m.cursor].From.ID, api.FriendReject)
			}
		}

	case friendsTabSearch:
		switch msg.String() {
		case "/":
			m.searchFocused = true
			m.searchInput.Focus()
			return m, nil
		case "enter":
			if m.resultCursor < len(m.results) {
				user := m.results[m.resultCursor]
				if !m.sentTo[user.Username] {
					m.sentTo[user.Username] = true
					return m, commands.SendFriendRequestCmd(m.deps.API, user.Username)
				}
			}
		}
	}

	return m, nil
}

// moveCursor shifts the active tab's selection.
func (m *FriendsModel) moveCursor(delta int) {
	if m.activeTab == friendsTabSearch {
		m.resultCursor += delta
		if m.resultCursor < 0 {
			m.resultCursor = 0
		}
		if n := len(m.results); n > 0 && m.resultCursor >= n {
			m.resultCursor = n - 1
		}
		return
	}
	m.cursor += delta
	m.clampCursor()
}

func (m *FriendsModel) clampCursor() {
	n := len(m.friends)
	if m.activeTab == friendsTabRequests {
		n = len(m.requests)
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if n > 0 && m.cursor >= n {
		m.cursor = n - 1
	}
}

// View renders the friends page.
func (m FriendsModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("Friends"))
	b.WriteString("\n\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	if m.loadErr != "" {
		b.WriteString(tui.ErrorStyle.Render(m.loadErr))
		b.WriteString("\n\n")
	}

	switch m.activeTab {
	case friendsTabList:
		b.WriteString(m.renderFriends())
		b.WriteString("\n")
		b.WriteString(tui.DimStyle.Render("enter: profile · d: remove · ← →: tabs"))
	case friendsTabRequests:
		b.WriteString(m.renderRequests())
		b.WriteString("\n")
		b.WriteString(tui.DimStyle.Render("a: accept · x: reject · ← →: tabs"))
	case friendsTabSearch:
		b.WriteString(m.searchInput.View())
		b.WriteString("\n\n")
		b.WriteString(m.renderResults())
		b.WriteString("\n")
		b.WriteString(tui.DimStyle.Render("/: type query · enter: search / send request · ← →: tabs"))
	}

	return b.String()
}

func (m FriendsModel) renderTabs() string {
	labels := []string{
		fmt.Sprintf("Friends (%d)", len(m.friends)),
		fmt.Sprintf("Requests (%d)", len(m.requests)),
		"Search",
	}
	var rendered []string
	for i, label := range labels {
		if i == m.activeTab {
			rendered = append(rendered, tui.ActiveTabStyle.Render(label))
		} else {
			rendered = append(rendered, tui.InactiveTabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m FriendsModel) renderFriends() string {
	if len(m.friends) == 0 {
		return tui.DimStyle.Render("No friends yet. Try the Search tab.") + "\n"
	}
	var b strings.Builder
	for i, friend := range m.friends {
		line := fmt.Sprintf("%s @%s", friend.Name, friend.Username)
		if i == m.cursor {
			line = tui.SelectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m FriendsModel) renderRequests() string {
	if len(m.requests) == 0 {
		return tui.DimStyle.Render("No pending requests.") + "\n"
	}
	var b strings.Builder
	for i, req := range m.requests {
		line := fmt.Sprintf("%s @%s wants to be friends", req.From.Name, req.From.Username)
		if i == m.cursor {
			line = tui.SelectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m FriendsModel) renderResults() string {
	if m.searching {
		return tui.DimStyle.Render("Searching...") + "\n"
	}
	if len(m.results) == 0 {
		return tui.DimStyle.Render("No results.") + "\n"
	}
	var b strings.Builder
	for i, user := range m.results {
		line := fmt.Sprintf("%s @%s", user.Name, user.Username)
		if m.sentTo[user.Username] {
			line += tui.DimStyle.Render("  (request sent)")
		}
		if i == m.resultCursor {
			line = tui.SelectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
