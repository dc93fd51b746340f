package tui

import "github.com/charmbracelet/lipgloss"

// Color constants matching the Handl web palette.
const (
	primaryColor = "#2E75CC" // Blue
	successColor = "#37A169" // Green
	warningColor = "#F7B955" // Amber
	errorColor   = "#E16259" // Red
	dimColor     = "#6B7280" // Gray
)

// Style variables for consistent TUI rendering.
var (
	// BoxStyle provides a rounded border box with primary color.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(primaryColor)).
			Padding(1, 2)

	// TitleStyle renders titles in primary color with bold.
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(primaryColor)).
			Bold(true)

	// LabelStyle renders form labels.
	LabelStyle = lipgloss.NewStyle().
			Bold(true)

	// SelectedStyle highlights selected items in primary color.
	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(primaryColor)).
			Bold(true)

	// DimStyle renders dim/muted text.
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(dimColor))

	// SuccessStyle renders success messages and high scores.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(successColor))

	// ErrorStyle renders error messages and low scores.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(errorColor))

	// WarningStyle renders warnings and middling scores.
	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(warningColor))

	// ActiveTabStyle renders the active nav page.
	ActiveTabStyle = lipgloss.NewStyle().
			Background(lipgloss.Color(primaryColor)).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 2)

	// InactiveTabStyle renders inactive nav pages.
	InactiveTabStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#374151")).
				Foreground(lipgloss.Color("#9CA3AF")).
				Padding(0, 2)

	// TodayCellStyle outlines the current day in the calendar grid.
	TodayCellStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(primaryColor))

	// CursorCellStyle outlines the selected day in the calendar grid.
	CursorCellStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color(primaryColor))

	// CellStyle outlines an ordinary day cell.
	CellStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#374151"))
)

// ScoreStyle picks the style for a mood score: green for 8+, amber for
// 5-7, red below, matching the web client's thresholds.
func ScoreStyle(score int) lipgloss.Style {
	switch {
	case score >= 8:
		return SuccessStyle
	case score >= 5:
		return WarningStyle
	default:
		return ErrorStyle
	}
}
