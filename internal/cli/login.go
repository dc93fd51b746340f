package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/handl-dev/handl/internal/api"
	applog "github.com/handl-dev/handl/internal/log"
	"github.com/handl-dev/handl/internal/validate"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session credential",
	Long: `Prompts for email and password, authenticates against the server,
and stores the issued credential under ~/.handl for later runs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := buildEnv()
		if err != nil {
			return err
		}

		email, err := promptLine("Email: ")
		if err != nil {
			return err
		}
		password, err := promptPassword("Password: ")
		if err != nil {
			return err
		}

		if errs := validate.Login(email, password); !errs.OK() {
			for _, msg := range errs {
				fmt.Fprintln(os.Stderr, msg)
			}
			return fmt.Errorf("invalid credentials input")
		}

		ctx, cancel := requestContext(env)
		defer cancel()

		creds := api.LoginRequest{Email: email, Password: password}
		if err := env.store.Login(ctx, creds); err != nil {
			_ = env.logger.Append(applog.LogEvent{
				Event: applog.EventLogin,
				Error: err.Error(),
			})
			return fmt.Errorf("login failed: %s", api.UserMessage(err, "server rejected the request"))
		}

		user := env.store.User()
		_ = env.logger.Append(applog.LogEvent{
			Event:    applog.EventLogin,
			Username: user.Username,
		})
		fmt.Printf("Signed in as %s (@%s)\n", user.Name, user.Username)
		return nil
	},
}

// promptLine reads a single trimmed line from stdin.
func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password without echoing it. Falls back to a
// plain line read when stdin is not a terminal (piped input).
func promptPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return promptLine(prompt)
	}
	fmt.Print(prompt)
	raw, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(raw), nil
}

// requestContext returns a context bounded by the configured request
// timeout.
func requestContext(e *env) (context.Context, context.CancelFunc) {
	timeout := time.Duration(e.cfg.Server.RequestTimeout) * time.Second
	return context.WithTimeout(context.Background(), timeout)
}
