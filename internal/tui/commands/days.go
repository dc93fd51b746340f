// Package commands provides Bubble Tea commands for TUI operations.
// This file covers the days operation group.
package commands

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/handl-dev/handl/internal/api"
	"github.com/handl-dev/handl/internal/calendar"
	"github.com/handl-dev/handl/internal/tui"
)

// LoadMonthCmd fetches the entries of a displayed month. seq lets the
// calendar view discard responses that arrive after another navigation.
func LoadMonthCmd(client *api.Client, seq int, month calendar.Month) tea.Cmd {
	return func() tea.Msg {
		list, err := client.ListDays(context.Background(), api.ListDaysParams{
			Start: month.First(time.Local),
			End:   month.Last(time.Local),
			Limit: 31,
		})
		if err != nil {
			return tui.MonthEntriesMsg{Seq: seq, Month: month, Err: err}
		}
		return tui.MonthEntriesMsg{Seq: seq, Month: month, Entries: list.Entries}
	}
}

// LoadRecentCmd fetches the newest entries plus the total entry count.
func LoadRecentCmd(client *api.Client, seq, limit int) tea.Cmd {
	return func() tea.Msg {
		list, err := client.ListDays(context.Background(), api.ListDaysParams{Limit: limit})
		if err != nil {
			return tui.RecentDaysMsg{Seq: seq, Err: err}
		}
		total := list.Count
		if list.Pagination != nil {
			total = list.Pagination.Total
		}
		return tui.RecentDaysMsg{Seq: seq, Entries: list.Entries, Total: total}
	}
}

// LoadStreakCmd fetches the consecutive-day streak.
func LoadStreakCmd(client *api.Client, seq int) tea.Cmd {
	return func() tea.Msg {
		streak, err := client.GetStreak(context.Background())
		return tui.StreakMsg{Seq: seq, Streak: streak, Err: err}
	}
}

// LoadAverageCmd fetches the trailing-week mean score.
func LoadAverageCmd(client *api.Client, seq int) tea.Cmd {
	return func() tea.Msg {
		avg, err := client.GetWeeklyAverage(context.Background())
		return tui.WeeklyAverageMsg{Seq: seq, Average: avg, Err: err}
	}
}

// SaveDayCmd creates or updates an entry. An empty id creates.
func SaveDayCmd(client *api.Client, id string, input api.DayInput) tea.Cmd {
	return func() tea.Msg {
		var entry *api.DayEntry
		var err error
		if id == "" {
			entry, err = client.CreateDay(context.Background(), input)
		} else {
			entry, err = client.UpdateDay(context.Background(), id, input)
		}
		return tui.DaySavedMsg{Entry: entry, Err: err}
	}
}

// DeleteDayCmd removes an entry.
func DeleteDayCmd(client *api.Client, id string) tea.Cmd {
	return func() tea.Msg {
		return tui.DayDeletedMsg{Err: client.DeleteDay(context.Background(), id)}
	}
}
