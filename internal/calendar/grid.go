// Package calendar computes the month-grid layout for the calendar view.
// Pure date math: no I/O, no state, identical inputs yield identical grids.
package calendar

import (
	"time"

	"github.com/handl-dev/handl/internal/api"
)

// Month identifies a calendar month.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the Month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// First returns midnight on the first day of the month in loc.
func (m Month) First(loc *time.Location) time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, loc)
}

// Last returns midnight on the last day of the month in loc.
func (m Month) Last(loc *time.Location) time.Time {
	// Day 0 of the next month normalizes to the last day of this one.
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, loc)
}

// Prev returns the preceding month. Backward navigation is unbounded.
func (m Month) Prev() Month {
	t := time.Date(m.Year, m.Month-1, 1, 0, 0, 0, 0, time.UTC)
	return Month{Year: t.Year(), Month: t.Month()}
}

// Next returns the following month, clamped so the result never passes
// the month containing today. Returns m unchanged when already there.
func (m Month) Next(today time.Time) Month {
	if !m.Before(MonthOf(today)) {
		return m
	}
	t := time.Date(m.Year, m.Month+1, 1, 0, 0, 0, 0, time.UTC)
	return Month{Year: t.Year(), Month: t.Month()}
}

// Before reports whether m precedes other.
func (m Month) Before(other Month) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}
	return m.Month < other.Month
}

// Label formats the month as "January 2006".
func (m Month) Label() string {
	return m.First(time.UTC).Format("January 2006")
}

// Cell is one rendered grid position. A blank cell (Blank true) pads the
// first and last week rows so real days align under their weekday column.
type Cell struct {
	Blank        bool
	Date         time.Time
	IsToday      bool
	IsFuture     bool
	IsSelectable bool
	Entry        *api.DayEntry
}

// SameDay reports whether a and b fall on the same calendar day,
// ignoring time of day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// BuildGrid lays out the month as an ordered cell sequence: leading
// blanks up to the first day's weekday column (Sunday first), one cell
// per calendar day, then trailing blanks completing the final week row.
// The total cell count is always a multiple of 7.
//
// For each day, Entry is the first element of entries falling on that
// date; duplicates are unexpected but the first match wins.
func BuildGrid(m Month, today time.Time, entries []api.DayEntry) []Cell {
	loc := today.Location()
	first := m.First(loc)
	last := m.Last(loc)

	cells := make([]Cell, 0, 42)
	for i := 0; i < int(first.Weekday()); i++ {
		cells = append(cells, Cell{Blank: true})
	}

	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		isToday := SameDay(day, today)
		isFuture := day.After(today) && !isToday
		cells = append(cells, Cell{
			Date:         day,
			IsToday:      isToday,
			IsFuture:     isFuture,
			IsSelectable: !isFuture,
			Entry:        entryOn(entries, day),
		})
	}

	for i := 0; i < 6-int(last.Weekday()); i++ {
		cells = append(cells, Cell{Blank: true})
	}
	return cells
}

// entryOn returns the first entry dated on day, or nil.
func entryOn(entries []api.DayEntry, day time.Time) *api.DayEntry {
	for i := range entries {
		if SameDay(entries[i].Date, day) {
			return &entries[i]
		}
	}
	return nil
}

// Weekdays are the column headers for the grid, Sunday first.
var Weekdays = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
