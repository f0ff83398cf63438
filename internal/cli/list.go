package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rvasek/mailbrief/internal/auth"
	"github.com/rvasek/mailbrief/internal/domain"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List unread emails",
		Long:  "Fetch and display the prioritized unread digest without opening the TUI.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := resolveCredentials(cfg); err != nil {
				return err
			}

			provider := auth.NewProvider(auth.NewKeyringTokenStore())
			token, err := provider.AcquireToken(cmd.Context())
			if err != nil {
				return err
			}

			emails, err := newBackend(cfg).FetchUnread(cmd.Context(), token)
			if err != nil {
				return fmt.Errorf("failed to fetch unread emails: %w", err)
			}

			if jsonFlag {
				return printJSON(toJSONEmails(emails))
			}

			if len(emails) == 0 {
				fmt.Println("All caught up! No unread emails.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PRI\tTIER\tFROM\tSUBJECT\tID")
			for _, e := range emails {
				tier := domain.TierFor(e.Priority)
				from := e.Sender
				if len(from) > 30 {
					from = from[:27] + "..."
				}
				subject := e.Subject
				if len(subject) > 50 {
					subject = subject[:47] + "..."
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
					e.Priority, tier.Label(), from, subject, e.ID,
				)
			}
			return w.Flush()
		},
	}
	return cmd
}
