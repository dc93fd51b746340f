// Package views provides TUI view components for the Handl application.
// This file implements the month-grid page.
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

// Calendar overlay states.
const (
	overlayNone = iota
	overlayView
	overlayForm
)

// CalendarModel is the view model for the calendar page: the month
// grid plus the entry view/edit overlays.
type CalendarModel struct {
	deps *tui.Deps

	month   calendar.Month
	entries []api.DayEntry
	grid    []calendar.Cell
	cursor  int // index into grid; always a real day cell
	seq     int
	loading bool
	loadErr string

	overlay  int
	form     DayFormModel
	selected *api.DayEntry

	width  int
	height int
}

// NewCalendarModel creates the calendar page at the current month.
func NewCalendarModel(deps *tui.Deps, width, height int) CalendarModel {
	m := CalendarModel{
		deps:   deps,
		month:  calendar.MonthOf(deps.Today()),
		width:  width,
		height: height,
	}
	m.rebuildGrid()
	return m
}

// Enter starts loading the displayed month's entries.
func (m CalendarModel) Enter() (CalendarModel, tea.Cmd) {
	m.seq++
	m.loading = true
	m.loadErr = ""
	return m, commands.LoadMonthCmd(m.deps.API, m.seq, m.month)
}

// Typing reports whether an overlay is capturing text input, so the
// app leaves tab and shortcut keys alone.
func (m CalendarModel) Typing() bool {
	return m.overlay == overlayForm
}

// Update handles messages for the calendar page.
func (m CalendarModel) Update(msg tea.Msg) (CalendarModel, tea.Cmd) {
	// Grid data lands regardless of any open overlay.
	if em, isEntries := msg.(tui.MonthEntriesMsg); isEntries {
		if em.Seq != m.seq || em.Month != m.month {
			// A newer navigation superseded this response.
			return m, nil
		}
		m.loading = false
		if em.Err != nil {
			m.loadErr = "Failed to load entries. Press r to retry."
			return m, nil
		}
		m.entries = em.Entries
		m.rebuildGrid()
		return m, nil
	}

	// Overlays consume everything else first.
	switch m.overlay {
	case overlayForm:
		return m.updateForm(msg)
	case overlayView:
		return m.updateViewOverlay(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "[":
			m.month = m.month.Prev()
			m.entries = nil
			m.rebuildGrid()
			return m.Enter()
		case "]":
			next := m.month.Next(m.deps.Today())
			if next == m.month {
				return m, nil
			}
			m.month = next
			m.entries = nil
			m.rebuildGrid()
			return m.Enter()
		case "left", "h":
			m.moveCursor(-1)
		case "right", "l":
			m.moveCursor(1)
		case "up", "k":
			m.moveCursor(-7)
		case "down", "j":
			m.moveCursor(7)
		case "r":
			return m.Enter()
		case "t":
			m.month = calendar.MonthOf(m.deps.Today())
			m.rebuildGrid()
			return m.Enter()
		case "enter":
			return m.openDay()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tui.DayDeletedMsg:
		if msg.Err != nil {
			m.loadErr = "Failed to delete entry. Press r to retry."
			return m, nil
		}
		return m.Enter()
	}

	return m, nil
}

// updateForm routes messages to the form overlay.
func (m CalendarModel) updateForm(msg tea.Msg) (CalendarModel, tea.Cmd) {
	var cmd tea.Cmd
	var done bool
	dsm, isSave := msg.(tui.DaySavedMsg)
	saved := isSave && dsm.Err == nil
	m.form, cmd, done = m.form.Update(msg)
	if done {
		m.overlay = overlayNone
		m.selected = nil
		if saved {
			var enterCmd tea.Cmd
			m, enterCmd = m.Enter()
			return m, tea.Batch(cmd, enterCmd)
		}
	}
	return m, cmd
}

// updateViewOverlay handles keys on the read-only entry overlay.
func (m CalendarModel) updateViewOverlay(msg tea.Msg) (CalendarModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "enter":
			m.overlay = overlayNone
			m.selected = nil
		case "e":
			if m.selected != nil {
				m.form = NewDayFormModel(m.deps, m.selected.Date, m.selected)
				m.overlay = overlayForm
			}
		case "d":
			if m.selected != nil {
				id := m.selected.ID
				m.overlay = overlayNone
				m.selected = nil
				return m, commands.DeleteDayCmd(m.deps.API, id)
			}
		}
	}
	return m, nil
}

// openDay opens the overlay for the cursor's day: the entry view when
// one exists, the creation form otherwise. Future days are inert.
func (m CalendarModel) openDay() (CalendarModel, tea.Cmd) {
	if m.cursor < 0 || m.cursor >= len(m.grid) {
		return m, nil
	}
	cell := m.grid[m.cursor]
	if cell.Blank || !cell.IsSelectable {
		return m, nil
	}
	if cell.Entry != nil {
		m.selected = cell.Entry
		m.overlay = overlayView
		return m, nil
	}
	m.form = NewDayFormModel(m.deps, cell.Date, nil)
	m.overlay = overlayForm
	return m, nil
}

// rebuildGrid recomputes the cell layout and clamps the cursor onto a
// real day, defaulting to today when visible.
func (m *CalendarModel) rebuildGrid() {
	today := m.deps.Today()
	m.grid = calendar.BuildGrid(m.month, today, m.entries)

	first, last := realDayRange(m.grid)
	if first < 0 {
		m.cursor = 0
		return
	}
	for i := first; i <= last; i++ {
		if m.grid[i].IsToday {
			m.cursor = i
			return
		}
	}
	if m.cursor < first || m.cursor > last {
		m.cursor = first
	}
}

// moveCursor shifts the cursor by delta grid positions, clamped to the
// month's real day cells.
func (m *CalendarModel) moveCursor(delta int) {
	first, last := realDayRange(m.grid)
	if first < 0 {
		return
	}
	next := m.cursor + delta
	if next < first {
		next = first
	}
	if next > last {
		next = last
	}
	m.cursor = next
}

// realDayRange returns the grid index range [first, last] of non-blank
// cells, or (-1, -1) for an empty grid.
func realDayRange(grid []calendar.Cell) (int, int) {
	first, last := -1, -1
	for i, cell := range grid {
		if !cell.Blank {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	return first, last
}

// View renders the calendar page.
func (m CalendarModel) View() string {
	switch m.overlay {
	case overlayForm:
		return m.form.View()
	case overlayView:
		return m.renderEntryOverlay()
	}

	var b strings.Builder

	// Month header with navigation hints.
	b.WriteString(tui.TitleStyle.Render(m.month.Label()))
	if m.loading {
		b.WriteString(tui.DimStyle.Render("  loading..."))
	}
	b.WriteString("\n\n")

	if m.loadErr != "" {
		b.WriteString(tui.ErrorStyle.Render(m.loadErr))
		b.WriteString("\n\n")
	}

	// Weekday header row.
	var headers []string
	for _, wd := range calendar.Weekdays {
		headers = append(headers, lipgloss.NewStyle().Width(6).Align(lipgloss.Center).Render(tui.DimStyle.Render(wd)))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, headers...))
	b.WriteString("\n")

	// Week rows.
	for row := 0; row*7 < len(m.grid); row++ {
		var cells []string
		for col := 0; col < 7; col++ {
			idx := row*7 + col
			cells = append(cells, m.renderCell(idx))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render("[ ]: change month · t: today · arrows: move · enter: open day · r: refresh"))
	return b.String()
}

// renderCell renders one grid position as a small fixed-width box.
// With display.compact_calendar set, cells shrink to a single row and
// the entry score colors the day number instead of a second line.
func (m CalendarModel) renderCell(idx int) string {
	if idx >= len(m.grid) {
		return strings.Repeat(" ", 6)
	}
	cell := m.grid[idx]
	compact := m.deps.Cfg != nil && m.deps.Cfg.Display.CompactCalendar
	if cell.Blank {
		height := 2
		if compact {
			height = 1
		}
		return lipgloss.NewStyle().Width(6).Height(height).Render("")
	}

	day := fmt.Sprintf("%2d", cell.Date.Day())
	var content string
	switch {
	case compact && cell.IsFuture:
		content = tui.DimStyle.Render(day)
	case compact && cell.Entry != nil:
		content = tui.ScoreStyle(cell.Entry.Score).Render(day)
	case compact:
		content = day
	case cell.IsFuture:
		content = tui.DimStyle.Render(day) + "\n  "
	default:
		score := "  "
		if cell.Entry != nil {
			score = tui.ScoreStyle(cell.Entry.Score).Render(fmt.Sprintf("%2d", cell.Entry.Score))
		}
		content = day + "\n" + score
	}

	style := tui.CellStyle
	switch {
	case idx == m.cursor:
		style = tui.CursorCellStyle
	case cell.IsToday:
		style = tui.TodayCellStyle
	}
	return style.Width(4).Render(content)
}

// renderEntryOverlay renders the read-only entry detail.
func (m CalendarModel) renderEntryOverlay() string {
	if m.selected == nil {
		return ""
	}
	var b strings.Builder
	e := m.selected

	b.WriteString(tui.TitleStyle.Render(e.Date.Format("January 2, 2006")))
	b.WriteString("\n\n")
	b.WriteString("Score: ")
	b.WriteString(tui.ScoreStyle(e.Score).Render(fmt.Sprintf("%d/10", e.Score)))
	b.WriteString("\n\n")
	b.WriteString(tui.LabelStyle.Render("High"))
	b.WriteString("\n" + e.High + "\n\n")
	b.WriteString(tui.LabelStyle.Render("Low"))
	b.WriteString("\n" + e.Low + "\n\n")
	b.WriteString(tui.DimStyle.Render("e: edit · d: delete · esc: close"))

	return tui.BoxStyle.Render(b.String())
}
