package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/handl-dev/handl/internal/api"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the account behind the stored credential",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := buildEnv()
		if err != nil {
			return err
		}

		ctx, cancel := requestContext(env)
		defer cancel()

		env.store.Bootstrap(ctx)
		user := env.store.User()
		if user == nil {
			fmt.Println("Not signed in. Run 'handl login' first.")
			return nil
		}

		printAccount(cmd.OutOrStdout(), user)
		return nil
	},
}

// printAccount writes the account summary, skipping contact fields the
// profile never filled in.
func printAccount(w io.Writer, user *api.User) {
	fmt.Fprintf(w, "%s (@%s)\n", user.Name, user.Username)
	if user.Email != "" {
		fmt.Fprintf(w, "Email: %s\n", user.Email)
	}
	if user.PhoneNumber != "" {
		fmt.Fprintf(w, "Phone: %s\n", user.PhoneNumber)
	}
}
