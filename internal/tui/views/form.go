// Package views provides TUI view components for the Handl application.
// This file holds helpers shared by the textinput-based forms.
package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/handl-dev/handl/internal/tui"
)

// focusField focuses input idx in fields and blurs the rest.
func focusField(fields []textinput.Model, idx int) {
	for i := range fields {
		if i == idx {
			fields[i].Focus()
		} else {
			fields[i].Blur()
		}
	}
}

// cycleFocus advances the focused field by delta, wrapping.
func cycleFocus(fields []textinput.Model, current, delta int) int {
	n := len(fields)
	next := ((current+delta)%n + n) % n
	focusField(fields, next)
	return next
}

// renderField renders a labelled input with its inline validation
// message, matching the web client's per-field error placement.
func renderField(b *strings.Builder, label string, input textinput.Model, fieldErr string) {
	b.WriteString(tui.LabelStyle.Render(label))
	b.WriteString("\n")
	b.WriteString(input.View())
	b.WriteString("\n")
	if fieldErr != "" {
		b.WriteString(tui.ErrorStyle.Render(fieldErr))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

// newInput creates a textinput with the given placeholder and width.
func newInput(placeholder string, width int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 100
	ti.Width = width
	return ti
}

// newPasswordInput creates a masked textinput.
func newPasswordInput(placeholder string, width int) textinput.Model {
	ti := newInput(placeholder, width)
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '*'
	return ti
}
