// Package app provides the main TUI application that wires all views together.
package app

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	applog "github.com/handl-dev/handl/internal/log"
	"github.com/handl-dev/handl/internal/tui"
	"github.com/handl-dev/handl/internal/tui/commands"
	"github.com/handl-dev/handl/internal/tui/views"
)

// App is the main TUI application that wires all views together.
type App struct {
	model *tui.Model

	// View models
	loginView     views.LoginModel
	registerView  views.RegisterModel
	dashboardView views.DashboardModel
	calendarView  views.CalendarModel
	feedView      views.FeedModel
	friendsView   views.FriendsModel
	profileView   views.ProfileModel
}

// New creates a new App with the given dependencies.
func New(deps *tui.Deps) *App {
	model := tui.NewModel(deps)

	return &App{
		model:         model,
		loginView:     views.NewLoginModel(deps, model.Width, model.Height),
		registerView:  views.NewRegisterModel(deps, model.Width, model.Height),
		dashboardView: views.NewDashboardModel(deps, model.Width, model.Height),
		calendarView:  views.NewCalendarModel(deps, model.Width, model.Height),
		feedView:      views.NewFeedModel(deps, model.Width, model.Height),
		friendsView:   views.NewFriendsModel(deps, model.Width, model.Height),
		profileView:   views.NewProfileModel(deps, model.Width, model.Height),
	}
}

// Init restores the session from the persisted credential before any
// page renders.
func (a *App) Init() tea.Cmd {
	return commands.BootstrapCmd(a.model.Deps.Session, a.model.Deps.Log)
}

// Update handles messages and updates the application state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.model.Width = msg.Width
		a.model.Height = msg.Height
		// Propagate to every view; they are all long-lived.
		var cmds []tea.Cmd
		var cmd tea.Cmd
		a.loginView, cmd = a.loginView.Update(msg)
		cmds = append(cmds, cmd)
		a.registerView, cmd = a.registerView.Update(msg)
		cmds = append(cmds, cmd)
		a.dashboardView, cmd = a.dashboardView.Update(msg)
		cmds = append(cmds, cmd)
		a.calendarView, cmd = a.calendarView.Update(msg)
		cmds = append(cmds, cmd)
		a.feedView, cmd = a.feedView.Update(msg)
		cmds = append(cmds, cmd)
		a.friendsView, cmd = a.friendsView.Update(msg)
		cmds = append(cmds, cmd)
		a.profileView, cmd = a.profileView.Update(msg)
		cmds = append(cmds, cmd)
		return a, tea.Batch(cmds...)

	case tea.KeyMsg:
		switch msg.String() {
		case tui.KeyCtrlC:
			if a.model.CtrlCPending {
				return a, tea.Quit
			}
			a.model.CtrlCPending = true
			return a, tea.Tick(time.Second, func(time.Time) tea.Msg {
				return tui.CtrlCResetMsg{}
			})
		case tui.KeyTab:
			if a.authenticatedPage() && !a.activeTyping() {
				return a.cyclePage()
			}
		case "ctrl+l":
			if a.authenticatedPage() && !a.activeTyping() {
				a.model.Deps.Session.Logout()
				if a.model.Deps.Log != nil {
					_ = a.model.Deps.Log.Append(applog.LogEvent{Event: applog.EventLogout})
				}
				return a.navigate(tui.NavigateMsg{State: tui.StateLogin})
			}
		}

	case tui.CtrlCResetMsg:
		a.model.CtrlCPending = false
		return a, nil

	case tui.BootstrapDoneMsg:
		if a.model.Deps.Session.IsAuthenticated() {
			return a.navigate(tui.NavigateMsg{State: tui.StateDashboard})
		}
		a.model.State = tui.StateLogin
		return a, nil

	case tui.LoginResultMsg:
		if msg.Err == nil {
			// Let the form reset itself, then route in.
			var cmd tea.Cmd
			a.loginView, cmd = a.loginView.Update(msg)
			_, navCmd := a.navigate(tui.NavigateMsg{State: tui.StateDashboard})
			return a, tea.Batch(cmd, navCmd)
		}

	case tui.RegisterResultMsg:
		if msg.Err == nil {
			var cmd tea.Cmd
			a.registerView, cmd = a.registerView.Update(msg)
			_, navCmd := a.navigate(tui.NavigateMsg{State: tui.StateDashboard})
			return a, tea.Batch(cmd, navCmd)
		}

	case tui.SessionChangedMsg:
		// Covers logouts initiated outside the key handler. On expiry
		// the AuthExpiredMsg that follows adds the notice.
		if !msg.Snap.Authenticated && a.authenticatedPage() {
			a.model.State = tui.StateLogin
		}
		return a, nil

	case tui.AuthExpiredMsg:
		// The session store was already cleared by the 401 handler.
		a.loginView.SetNotice("Your session expired. Please sign in again.")
		a.model.State = tui.StateLogin
		return a, nil

	case tui.NavigateMsg:
		return a.navigate(msg)
	}

	return a.routeToActive(msg)
}

// routeToActive forwards msg to the view for the current state.
func (a *App) routeToActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.model.State {
	case tui.StateLogin:
		a.loginView, cmd = a.loginView.Update(msg)
	case tui.StateRegister:
		a.registerView, cmd = a.registerView.Update(msg)
	case tui.StateDashboard:
		a.dashboardView, cmd = a.dashboardView.Update(msg)
	case tui.StateCalendar:
		a.calendarView, cmd = a.calendarView.Update(msg)
	case tui.StateFeed:
		a.feedView, cmd = a.feedView.Update(msg)
	case tui.StateFriends:
		a.friendsView, cmd = a.friendsView.Update(msg)
	case tui.StateProfile:
		a.profileView, cmd = a.profileView.Update(msg)
	}
	return a, cmd
}

// navigate switches pages, triggering the target page's data loads.
func (a *App) navigate(msg tui.NavigateMsg) (tea.Model, tea.Cmd) {
	// Authenticated pages require a session; fall back to login.
	if msg.State != tui.StateLogin && msg.State != tui.StateRegister &&
		!a.model.Deps.Session.IsAuthenticated() {
		a.model.State = tui.StateLogin
		return a, nil
	}

	a.model.State = msg.State
	var cmd tea.Cmd
	switch msg.State {
	case tui.StateDashboard:
		a.dashboardView, cmd = a.dashboardView.Enter()
	case tui.StateCalendar:
		a.calendarView, cmd = a.calendarView.Enter()
	case tui.StateFeed:
		a.feedView, cmd = a.feedView.Enter()
	case tui.StateFriends:
		a.friendsView, cmd = a.friendsView.Enter()
	case tui.StateProfile:
		a.profileView, cmd = a.profileView.Enter(msg.Username)
	}
	return a, cmd
}

// cyclePage advances to the next authenticated page.
func (a *App) cyclePage() (tea.Model, tea.Cmd) {
	for i, page := range tui.Pages {
		if page == a.model.State {
			next := tui.Pages[(i+1)%len(tui.Pages)]
			return a.navigate(tui.NavigateMsg{State: next})
		}
	}
	return a.navigate(tui.NavigateMsg{State: tui.StateDashboard})
}

// authenticatedPage reports whether the current state is behind auth.
func (a *App) authenticatedPage() bool {
	return a.model.State != tui.StateLogin && a.model.State != tui.StateRegister
}

// activeTyping reports whether the current view is capturing free-form
// text, in which case global shortcuts stay out of the way.
func (a *App) activeTyping() bool {
	switch a.model.State {
	case tui.StateCalendar:
		return a.calendarView.Typing()
	case tui.StateFriends:
		return a.friendsView.Typing()
	case tui.StateProfile:
		return a.profileView.Typing()
	}
	return false
}

// View renders the active page with the nav bar on authenticated pages.
func (a *App) View() string {
	var body string
	switch a.model.State {
	case tui.StateLogin:
		body = a.loginView.View()
	case tui.StateRegister:
		body = a.registerView.View()
	case tui.StateDashboard:
		body = a.dashboardView.View()
	case tui.StateCalendar:
		body = a.calendarView.View()
	case tui.StateFeed:
		body = a.feedView.View()
	case tui.StateFriends:
		body = a.friendsView.View()
	case tui.StateProfile:
		body = a.profileView.View()
	}

	var b strings.Builder
	if a.authenticatedPage() {
		b.WriteString(a.renderNav())
		b.WriteString("\n\n")
	}
	b.WriteString(body)
	if a.model.CtrlCPending {
		b.WriteString("\n")
		b.WriteString(tui.WarningStyle.Render("Press Ctrl+C again to exit"))
	}
	return b.String()
}

// renderNav renders the page tabs.
func (a *App) renderNav() string {
	var rendered []string
	for _, page := range tui.Pages {
		label := tui.PageTitle(page)
		if page == a.model.State {
			rendered = append(rendered, tui.ActiveTabStyle.Render(label))
		} else {
			rendered = append(rendered, tui.InactiveTabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
