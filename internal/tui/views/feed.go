// Package views provides TUI view components for the Handl application.
package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/handl-dev/handl/internal/tui"
	"github.com/handl-dev/handl/internal/tui/commands"
)

// FeedModel is the view model for the friends feed: every friend's
// recent shared entries, newest first.
type FeedModel struct {
	deps *tui.Deps

	seq      int
	items    []tui.FeedItem
	loading  bool
	loadErr  string
	viewport viewport.Model

	width  int
	height int
}

// NewFeedModel creates an empty feed.
func NewFeedModel(deps *tui.Deps, width, height int) FeedModel {
	vp := viewport.New(width-8, height-10)
	return FeedModel{deps: deps, viewport: vp, width: width, height: height}
}

// Enter starts loading the feed.
func (m FeedModel) Enter() (FeedModel, tea.Cmd) {
	m.seq++
	m.loading = true
	m.loadErr = ""
	return m, commands.LoadFeedCmd(m.deps.API, m.seq)
}

// Update handles messages for the feed page.
func (m FeedModel) Update(msg tea.Msg) (FeedModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "r" {
			return m.Enter()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width - 8
		m.viewport.Height = msg.Height - 10
		return m, nil

	case tui.FeedLoadedMsg:
		if msg.Seq != m.seq {
			return m, nil
		}
		m.loading = false
		if msg.Err != nil {
			m.loadErr = "Failed to load the feed. Press r to retry."
			return m, nil
		}
		m.items = msg.Items
		m.viewport.SetContent(m.renderItems())
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the feed page.
func (m FeedModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("Friends Feed"))
	if m.loading {
		b.WriteString(tui.DimStyle.Render("  loading..."))
	}
	b.WriteString("\n\n")

	switch {
	case m.loadErr != "":
		b.WriteString(tui.ErrorStyle.Render(m.loadErr))
	case !m.loading && len(m.items) == 0:
		b.WriteString(tui.DimStyle.Render("Nothing here yet. Add some friends to see their days."))
	default:
		b.WriteString(m.viewport.View())
	}

	b.WriteString("\n\n")
	b.WriteString(tui.DimStyle.Render("j/k: scroll · r: refresh · tab: next page"))
	return b.String()
}

// renderItems renders the feed entries for the viewport.
func (m FeedModel) renderItems() string {
	var b strings.Builder
	for _, item := range m.items {
		score := tui.ScoreStyle(item.Entry.Score).Render(fmt.Sprintf("%d/10", item.Entry.Score))
		b.WriteString(tui.LabelStyle.Render(item.Author.Name))
		b.WriteString(tui.DimStyle.Render(" @" + item.Author.Username))
		b.WriteString("  " + tui.DimStyle.Render(item.Entry.Date.Format("Mon Jan 2")))
		b.WriteString("  " + score + "\n")
		b.WriteString("  ↑ " + item.Entry.High + "\n")
		b.WriteString("  ↓ " + item.Entry.Low + "\n\n")
	}
	return b.String()
}
