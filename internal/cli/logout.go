package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	applog "github.com/handl-dev/handl/internal/log"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored session credential",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := buildEnv()
		if err != nil {
			return err
		}

		env.store.Logout()
		_ = env.logger.Append(applog.LogEvent{Event: applog.EventLogout})
		fmt.Println("Signed out.")
		return nil
	},
}
