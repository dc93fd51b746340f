// Package views provides TUI view components for the Handl application.
// This file implements the entry form overlay used by the calendar.
package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/handl-dev/handl/internal/api"
	"github.com/handl-dev/handl/internal/tui"
	"github.com/handl-dev/handl/internal/tui/commands"
	"github.com/handl-dev/handl/internal/validate"
)

// Day form field indices: the score selector, then the two texts.
const (
	dayFieldScore = iota
	dayFieldHigh
	dayFieldLow
)

// defaultScore matches the web form's preselected value.
const defaultScore = 7

// DayFormModel edits one day entry. An empty entryID means create.
type DayFormModel struct {
	deps *tui.Deps

	entryID string
	date    time.Time
	score   int
	high    textinput.Model
	low     textinput.Model

	focus      int
	fieldErrs  validate.Errors
	serverErr  string
	submitting bool
}

// NewDayFormModel creates the form for date. existing, when non-nil,
// prefills the form and switches it to update mode.
func NewDayFormModel(deps *tui.Deps, date time.Time, existing *api.DayEntry) DayFormModel {
	high := newInput("What was your high point?", 48)
	low := newInput("What was your low point?", 48)
	high.CharLimit = 500
	low.CharLimit = 500

	m := DayFormModel{
		deps:      deps,
		date:      date,
		score:     defaultScore,
		high:      high,
		low:       low,
		fieldErrs: validate.Errors{},
	}
	if existing != nil {
		m.entryID = existing.ID
		m.score = existing.Score
		m.high.SetValue(existing.High)
		m.low.SetValue(existing.Low)
	}
	return m
}

// Update handles messages for the form. The second return value is
// true once the form wants to close (saved or cancelled); the owner
// reloads its data when an entry was saved.
func (m DayFormModel) Update(msg tea.Msg) (DayFormModel, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.submitting {
			return m, nil, false
		}
		switch msg.String() {
		case "esc":
			return m, nil, true
		case "tab", "down":
			m.setFocus(m.focus + 1)
			return m, nil, false
		case "shift+tab", "up":
			m.setFocus(m.focus - 1)
			return m, nil, false
		case "enter":
			if m.focus < dayFieldLow {
				m.setFocus(m.focus + 1)
				return m, nil, false
			}
			return m.submit()
		}
		if m.focus == dayFieldScore {
			switch msg.String() {
			case "left":
				if m.score > 1 {
					m.score--
				}
				return m, nil, false
			case "right":
				if m.score < 10 {
					m.score++
				}
				return m, nil, false
			}
			return m, nil, false
		}

	case tui.DaySavedMsg:
		m.submitting = false
		if msg.Err != nil {
			m.serverErr = api.UserMessage(msg.Err, "Failed to save entry")
			return m, nil, false
		}
		return m, nil, true
	}

	var cmd tea.Cmd
	switch m.focus {
	case dayFieldHigh:
		m.high, cmd = m.high.Update(msg)
	case dayFieldLow:
		m.low, cmd = m.low.Update(msg)
	}
	return m, cmd, false
}

func (m *DayFormModel) setFocus(focus int) {
	if focus < dayFieldScore {
		focus = dayFieldLow
	}
	if focus > dayFieldLow {
		focus = dayFieldScore
	}
	m.focus = focus
	m.high.Blur()
	m.low.Blur()
	switch focus {
	case dayFieldHigh:
		m.high.Focus()
	case dayFieldLow:
		m.low.Focus()
	}
}

// submit validates and issues the save command.
func (m DayFormModel) submit() (DayFormModel, tea.Cmd, bool) {
	high := strings.TrimSpace(m.high.Value())
	low := strings.TrimSpace(m.low.Value())

	m.fieldErrs = validate.Errors{}
	validate.DayEntry(m.fieldErrs, m.score, high, low)
	if !m.fieldErrs.OK() {
		return m, nil, false
	}

	m.submitting = true
	m.serverErr = ""
	input := api.DayInput{Score: m.score, High: high, Low: low}
	if m.entryID == "" {
		date := m.date
		input.Date = &date
	}
	return m, commands.SaveDayCmd(m.deps.API, m.entryID, input), false
}

// View renders the form overlay.
func (m DayFormModel) View() string {
	var b strings.Builder

	title := "New Entry"
	if m.entryID != "" {
		title = "Edit Entry"
	}
	b.WriteString(tui.TitleStyle.Render(title + " · " + m.date.Format("January 2, 2006")))
	b.WriteString("\n\n")

	if m.serverErr != "" {
		b.WriteString(tui.ErrorStyle.Render(m.serverErr))
		b.WriteString("\n\n")
	}

	b.WriteString(tui.LabelStyle.Render("How was your day? (1-10)"))
	b.WriteString("\n")
	b.WriteString(m.renderScoreRow())
	b.WriteString("\n")
	if e := m.fieldErrs["score"]; e != "" {
		b.WriteString(tui.ErrorStyle.Render(e))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	renderField(&b, "High point", m.high, m.fieldErrs["high"])
	renderField(&b, "Low point", m.low, m.fieldErrs["low"])

	if m.submitting {
		b.WriteString(tui.DimStyle.Render("Saving..."))
	} else {
		b.WriteString(tui.DimStyle.Render("←/→: score · tab: next field · enter: save · esc: cancel"))
	}

	return tui.BoxStyle.Render(b.String())
}

// renderScoreRow renders the 1-10 selector with the current pick
// highlighted, mirroring the web form's score buttons.
func (m DayFormModel) renderScoreRow() string {
	var parts []string
	for i := 1; i <= 10; i++ {
		label := fmt.Sprintf(" %d ", i)
		if i == m.score {
			if m.focus == dayFieldScore {
				parts = append(parts, tui.SelectedStyle.Render("["+label+"]"))
			} else {
				parts = append(parts, tui.ScoreStyle(i).Render("["+label+"]"))
			}
		} else {
			parts = append(parts, tui.DimStyle.Render(label))
		}
	}
	return strings.Join(parts, "")
}
