// Package cli defines Cobra command definitions for the handl CLI.
// This file contains the root command, which launches the TUI, and the
// shared wiring of config, credential store, session, and API client.
package cli

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/handl-dev/handl/internal/api"
	"github.com/handl-dev/handl/internal/config"
	applog "github.com/handl-dev/handl/internal/log"
	"github.com/handl-dev/handl/internal/session"
	"github.com/handl-dev/handl/internal/tui"
	"github.com/handl-dev/handl/internal/tui/app"
)

var (
	serverURL string
	version   = "dev" // set via ldflags at build time
)

var rootCmd = &cobra.Command{
	Use:   "handl",
	Short: "Daily mood journal in your terminal",
	Long: `Handl is a terminal client for the Handl mood journal.
Record how each day went, browse your history on a calendar, and keep
up with what your friends have been sharing.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !tui.IsTTY() {
			return cmd.Help()
		}

		env, err := buildEnv()
		if err != nil {
			return err
		}

		tuiApp := app.New(&tui.Deps{
			Cfg:     env.cfg,
			API:     env.client,
			Session: env.store,
			Log:     env.logger,
		})
		return tui.Run(tuiApp, env.dispatcher.Attach)
	},
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// env holds the wired collaborators shared by the TUI and the
// credential subcommands.
type env struct {
	cfg        *config.Config
	client     *api.Client
	store      *session.Store
	logger     *applog.Logger
	dispatcher *tui.Dispatcher
}

// buildEnv loads config and constructs the client/session pair. The
// client reads the credential from the store on every request and the
// store drives the client, so the store is late-bound through closures.
func buildEnv() (*env, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}
	cfg, err := config.ReadConfig(dir)
	if err != nil {
		return nil, err
	}
	if serverURL != "" {
		cfg.Server.BaseURL = serverURL
	}

	logger, err := applog.NewLogger(dir)
	if err != nil {
		return nil, err
	}

	credFile := session.NewCredentialFile(filepath.Join(dir, "credentials"))
	dispatcher := &tui.Dispatcher{}

	var store *session.Store
	client := api.NewClient(cfg.Server.BaseURL,
		api.CredentialFunc(func() string { return store.Credential() }),
		api.WithHTTPClient(&http.Client{
			Timeout: time.Duration(cfg.Server.RequestTimeout) * time.Second,
		}),
		api.WithAuthExpiredHandler(func() {
			store.HandleAuthExpired()
			_ = logger.Append(applog.LogEvent{Event: applog.EventAuthExpired})
			dispatcher.Send(tui.AuthExpiredMsg{})
		}),
		api.WithErrorHandler(func(op string, status int, requestID string, err error) {
			_ = logger.Append(applog.LogEvent{
				Event:     applog.EventAPIError,
				Operation: op,
				Status:    status,
				RequestID: requestID,
				Error:     err.Error(),
			})
		}),
	)
	store = session.NewStore(client, credFile)
	store.Subscribe(func(snap session.Snapshot) {
		dispatcher.Send(tui.SessionChangedMsg{Snap: snap})
	})

	return &env{
		cfg:        cfg,
		client:     client,
		store:      store,
		logger:     logger,
		dispatcher: dispatcher,
	}, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Override the API base URL")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}
