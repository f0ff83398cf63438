package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rvasek/mailbrief/internal/auth"
)

func newAuthCmd() *cobra.Command {
	var forgetFlag bool

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authenticate with Google",
		Long:  "Run the OAuth flow and cache the token in the OS keyring. Use --forget to drop the cached token.",
		RunE: func(cmd *cobra.Command, args []string) error {
			provider := auth.NewProvider(auth.NewKeyringTokenStore())

			if forgetFlag {
				if err := provider.Forget(); err != nil {
					return err
				}
				if jsonFlag {
					return printJSON(jsonAction{OK: true, Action: "forget"})
				}
				fmt.Println("Cached token removed.")
				return nil
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := resolveCredentials(cfg); err != nil {
				return err
			}

			if _, err := provider.AcquireToken(cmd.Context()); err != nil {
				return err
			}

			if jsonFlag {
				return printJSON(jsonAction{OK: true, Action: "auth"})
			}
			fmt.Println("Authentication successful; token cached.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&forgetFlag, "forget", false, "drop the cached token instead of authenticating")
	return cmd
}
