// Package views provides TUI view components for the Handl application.
package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/handl-dev/handl/internal/api"
	"github.com/handl-dev/handl/internal/calendar"
	"github.com/handl-dev/handl/internal/tui"
	"github.com/handl-dev/handl/internal/tui/commands"
)

// recentLimit is how many entries the dashboard shows.
const recentLimit = 5

// DashboardModel is the view model for the signed-in landing page:
// today's entry, streak and average stats, recent entries, and the
// pending friend-request count.
type DashboardModel struct {
	deps *tui.Deps

	// seq invalidates responses from a previous visit to the page so a
	// stale fetch cannot overwrite fresher state.
	seq int

	recent       []api.DayEntry
	todayEntry   *api.DayEntry
	streak       int
	average      float64
	totalEntries int
	pendingReqs  int
	loading      int // outstanding fetches
	loadErr      string

	width  int
	height int
}

// NewDashboardModel creates an empty dashboard.
func NewDashboardModel(deps *tui.Deps, width, height int) DashboardModel {
	return DashboardModel{deps: deps, width: width, height: height}
}

// Enter starts the page's data loads. The four fetches run
// concurrently and may resolve in any order.
func (m DashboardModel) Enter() (DashboardModel, tea.Cmd) {
	m.seq++
	m.loading = 4
	m.loadErr = ""
	return m, tea.Batch(
		commands.LoadRecentCmd(m.deps.API, m.seq, recentLimit),
		commands.LoadStreakCmd(m.deps.API, m.seq),
		commands.LoadAverageCmd(m.deps.API, m.seq),
		commands.LoadRequestsCmd(m.deps.API, m.seq),
	)
}

// Update handles messages for the dashboard.
func (m DashboardModel) Update(msg tea.Msg) (DashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "n":
			return m, func() tea.Msg { return tui.NavigateMsg{State: tui.StateCalendar} }
		case "r":
			return m.Enter()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tui.RecentDaysMsg:
		if msg.Seq != m.seq {
			return m, nil
		}
		m.loading--
		if msg.Err != nil {
			m.loadErr = "Some data failed to load. Press r to retry."
			return m, nil
		}
		m.recent = msg.Entries
		m.totalEntries = msg.Total
		m.todayEntry = nil
		today := m.deps.Today()
		for i := range m.recent {
			if calendar.SameDay(m.recent[i].Date, today) {
				m.todayEntry = &m.recent[i]
				break
			}
		}

	case tui.StreakMsg:
		if msg.Seq != m.seq {
			return m, nil
		}
		m.loading--
		if msg.Err != nil {
			m.loadErr = "Some data failed to load. Press r to retry."
			return m, nil
		}
		m.streak = msg.Streak

	case tui.WeeklyAverageMsg:
		if msg.Seq != m.seq {
			return m, nil
		}
		m.loading--
		if msg.Err != nil {
			m.loadErr = "Some data failed to load. Press r to retry."
			return m, nil
		}
		m.average = msg.Average

	case tui.FriendRequestsMsg:
		if msg.Seq != m.seq {
			return m, nil
		}
		m.loading--
		if msg.Err != nil {
			m.loadErr = "Some data failed to load. Press r to retry."
			return m, nil
		}
		m.pendingReqs = len(msg.Requests)
	}

	return m, nil
}

// View renders the dashboard.
func (m DashboardModel) View() string {
	var b strings.Builder

	user := m.deps.Session.User()
	if user != nil {
		b.WriteString(tui.TitleStyle.Render("Hi, " + user.Name))
		b.WriteString("\n\n")
	}

	if m.loadErr != "" {
		b.WriteString(tui.ErrorStyle.Render(m.loadErr))
		b.WriteString("\n\n")
	}
	if m.loading > 0 {
		b.WriteString(tui.DimStyle.Render("Loading..."))
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderStats())
	b.WriteString("\n\n")

	if m.todayEntry != nil {
		b.WriteString(tui.LabelStyle.Render("Today"))
		b.WriteString("\n")
		b.WriteString(renderEntry(*m.todayEntry))
	} else {
		b.WriteString(tui.DimStyle.Render("No entry for today yet. Press n to log your day."))
	}
	b.WriteString("\n\n")

	b.WriteString(tui.LabelStyle.Render("Recent entries"))
	b.WriteString("\n")
	if len(m.recent) == 0 {
		b.WriteString(tui.DimStyle.Render("Nothing logged yet."))
		b.WriteString("\n")
	}
	for _, entry := range m.recent {
		b.WriteString(renderEntry(entry))
	}

	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render("n: new entry · r: refresh · tab: next page"))

	return b.String()
}

// renderStats renders the streak / average / total / requests cards.
func (m DashboardModel) renderStats() string {
	cards := []string{
		statCard("Streak", fmt.Sprintf("%d", m.streak)),
		statCard("Weekly avg", fmt.Sprintf("%.1f", m.average)),
		statCard("Entries", fmt.Sprintf("%d", m.totalEntries)),
		statCard("Requests", fmt.Sprintf("%d", m.pendingReqs)),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

// statCard renders one boxed stat.
func statCard(label, value string) string {
	content := tui.TitleStyle.Render(value) + "\n" + tui.DimStyle.Render(label)
	return tui.CellStyle.Padding(0, 2).Render(content)
}

// renderEntry renders one entry as a two-line summary.
func renderEntry(entry api.DayEntry) string {
	score := tui.ScoreStyle(entry.Score).Render(fmt.Sprintf("%2d", entry.Score))
	date := entry.Date.Format("Mon Jan 2")
	line := fmt.Sprintf("%s  %s  ↑ %s  ↓ %s\n",
		score, tui.DimStyle.Render(date), truncate(entry.High, 32), truncate(entry.Low, 32))
	return line
}

// truncate shortens s to max runes with an ellipsis.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
