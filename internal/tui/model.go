// Package tui implements the terminal user interface using Bubble Tea.
package tui

import (
	"time"

	"github.com/handl-dev/handl/internal/api"
	"github.com/handl-dev/handl/internal/config"
	applog "github.com/handl-dev/handl/internal/log"
	"github.com/handl-dev/handl/internal/session"
)

// ViewState represents the page currently on screen.
type ViewState int

const (
	StateLogin ViewState = iota
	StateRegister
	StateDashboard
	StateCalendar
	StateFeed
	StateFriends
	StateProfile
)

// Pages lists the authenticated pages in tab-cycling order.
var Pages = []ViewState{StateDashboard, StateCalendar, StateFeed, StateFriends, StateProfile}

// PageTitle returns the nav-bar label for a page.
func PageTitle(s ViewState) string {
	switch s {
	case StateLogin:
		return "Sign In"
	case StateRegister:
		return "Create Account"
	case StateDashboard:
		return "Dashboard"
	case StateCalendar:
		return "Calendar"
	case StateFeed:
		return "Feed"
	case StateFriends:
		return "Friends"
	case StateProfile:
		return "Profile"
	}
	return ""
}

// Deps bundles the shared collaborators every view needs.
type Deps struct {
	Cfg     *config.Config
	API     *api.Client
	Session *session.Store
	Log     *applog.Logger

	// Now returns the current time; injected so grid computations are
	// testable against a fixed "today".
	Now func() time.Time
}

// Today returns the current day per the injected clock.
func (d *Deps) Today() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// Model is the top-level TUI state shared across views.
type Model struct {
	State ViewState
	Deps  *Deps
	Err   error

	// Terminal dimensions
	Width  int
	Height int

	// Ctrl+C confirmation state
	CtrlCPending bool
}

// NewModel creates a new Model with the given dependencies.
func NewModel(deps *Deps) *Model {
	return &Model{
		State:  StateLogin,
		Deps:   deps,
		Width:  80,
		Height: 24,
	}
}
