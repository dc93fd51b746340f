// Package tui implements the terminal user interface using Bubble Tea.
package tui

import (
	"github.com/handl-dev/handl/internal/api"
	"github.com/handl-dev/handl/internal/calendar"
	"github.com/handl-dev/handl/internal/session"
)

// ============================================================================
// Session Messages
// ============================================================================

// BootstrapDoneMsg signals that the startup credential check finished.
// Routing is decided from the store's resulting state.
type BootstrapDoneMsg struct{}

// LoginResultMsg carries the outcome of a login attempt.
type LoginResultMsg struct {
	Err error
}

// RegisterResultMsg carries the outcome of an account creation attempt.
type RegisterResultMsg struct {
	Err error
}

// ProfileSavedMsg carries the outcome of a profile update.
type ProfileSavedMsg struct {
	Err error
}

// AuthExpiredMsg signals that some API call was rejected with 401.
// The session store has already been cleared; the app re-routes to the
// login page.
type AuthExpiredMsg struct{}

// SessionChangedMsg mirrors a session store notification into the
// Bubble Tea message loop.
type SessionChangedMsg struct {
	Snap session.Snapshot
}

// ============================================================================
// Days Messages
// ============================================================================

// MonthEntriesMsg delivers the entries for a displayed month.
type MonthEntriesMsg struct {
	Seq     int
	Month   calendar.Month
	Entries []api.DayEntry
	Err     error
}

// RecentDaysMsg delivers the most recent entries plus the total count.
type RecentDaysMsg struct {
	Seq     int
	Entries []api.DayEntry
	Total   int
	Err     error
}

// StreakMsg delivers the consecutive-day streak.
type StreakMsg struct {
	Seq    int
	Streak int
	Err    error
}

// WeeklyAverageMsg delivers the trailing-week mean score.
type WeeklyAverageMsg struct {
	Seq     int
	Average float64
	Err     error
}

// DaySavedMsg carries the outcome of an entry create or update.
type DaySavedMsg struct {
	Entry *api.DayEntry
	Err   error
}

// DayDeletedMsg carries the outcome of an entry deletion.
type DayDeletedMsg struct {
	Err error
}

// ============================================================================
// Users Messages
// ============================================================================

// FriendsMsg delivers the accepted-friends list.
type FriendsMsg struct {
	Seq     int
	Friends []api.User
	Err     error
}

// FriendRequestsMsg delivers pending incoming requests.
type FriendRequestsMsg struct {
	Seq      int
	Requests []api.FriendRequest
	Err      error
}

// SearchResultsMsg delivers user-search matches.
type SearchResultsMsg struct {
	Seq   int
	Users []api.User
	Err   error
}

// FriendActionMsg carries the outcome of a relation transition
// (send request, accept, reject, unfriend).
type FriendActionMsg struct {
	Err error
}

// ProfileLoadedMsg delivers a public profile.
type ProfileLoadedMsg struct {
	Seq     int
	Profile *api.Profile
	Err     error
}

// FeedItem is one friend's entry shown in the feed.
type FeedItem struct {
	Author api.User
	Entry  api.DayEntry
}

// FeedLoadedMsg delivers the assembled friends feed.
type FeedLoadedMsg struct {
	Seq   int
	Items []FeedItem
	Err   error
}

// ============================================================================
// Utility Messages
// ============================================================================

// NavigateMsg asks the app to switch to a page.
type NavigateMsg struct {
	State ViewState
	// Username targets the profile page at a specific user; empty means
	// the signed-in account.
	Username string
}

// CtrlCResetMsg clears the quit confirmation after its timeout.
type CtrlCResetMsg struct{}
