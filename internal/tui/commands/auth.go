// Package commands provides Bubble Tea commands for TUI operations.
package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/handl-dev/handl/internal/api"
	applog "github.com/handl-dev/handl/internal/log"
	"github.com/handl-dev/handl/internal/session"
	"github.com/handl-dev/handl/internal/tui"
)

// BootstrapCmd restores the session from the persisted credential.
// Always resolves to BootstrapDoneMsg; the store swallows failures.
func BootstrapCmd(store *session.Store, logger *applog.Logger) tea.Cmd {
	return func() tea.Msg {
		store.Bootstrap(context.Background())
		if logger != nil && store.IsAuthenticated() {
			_ = logger.Append(applog.LogEvent{
				Event:    applog.EventBootstrap,
				Username: store.User().Username,
			})
		}
		return tui.BootstrapDoneMsg{}
	}
}

// LoginCmd authenticates through the session store.
func LoginCmd(store *session.Store, logger *applog.Logger, creds api.LoginRequest) tea.Cmd {
	return func() tea.Msg {
		err := store.Login(context.Background(), creds)
		logAuth(logger, applog.EventLogin, store, err)
		return tui.LoginResultMsg{Err: err}
	}
}

// RegisterCmd creates an account through the session store.
func RegisterCmd(store *session.Store, logger *applog.Logger, payload api.RegisterRequest) tea.Cmd {
	return func() tea.Msg {
		err := store.Register(context.Background(), payload)
		logAuth(logger, applog.EventRegister, store, err)
		return tui.RegisterResultMsg{Err: err}
	}
}

// UpdateProfileCmd sends replacement profile fields through the store.
// picturePath, when non-empty, names a local image file uploaded first;
// the hosted URL goes into the profile update.
func UpdateProfileCmd(store *session.Store, logger *applog.Logger, client *api.Client, fields api.ProfileUpdate, picturePath string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if picturePath != "" {
			data, err := os.ReadFile(picturePath)
			if err != nil {
				return tui.ProfileSavedMsg{Err: fmt.Errorf("reading picture: %w", err)}
			}
			url, err := client.UploadImage(ctx, filepath.Base(picturePath), data, "profile")
			if err != nil {
				return tui.ProfileSavedMsg{Err: err}
			}
			fields.ProfilePictureURL = url
		}
		err := store.UpdateProfile(ctx, fields)
		logAuth(logger, applog.EventProfileUpdate, store, err)
		return tui.ProfileSavedMsg{Err: err}
	}
}

func logAuth(logger *applog.Logger, event string, store *session.Store, err error) {
	if logger == nil {
		return
	}
	e := applog.LogEvent{Event: event}
	if u := store.User(); u != nil {
		e.Username = u.Username
	}
	if err != nil {
		e.Error = err.Error()
	}
	_ = logger.Append(e)
}
