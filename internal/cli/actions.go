package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rvasek/mailbrief/internal/auth"
)

func newMarkReadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mark-read <email-id>",
		Short: "Mark an email as read",
		Long:  "Ask the backend to mark one email as read by its ID.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			emailID := args[0]

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

			if err := newBackend(cfg).MarkRead(cmd.Context(), token, emailID); err != nil {
				return fmt.Errorf("failed to mark as read: %w", err)
			}

			if jsonFlag {
				return printJSON(jsonAction{OK: true, Action: "mark_read", EmailID: emailID})
			}
			fmt.Printf("Marked %s as read.\n", emailID)
			return nil
		},
	}
	return cmd
}

func newAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a question about your unread emails",
		Long:  "Fetch the unread digest and ask the backend's AI a free-form question about it.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.Join(args, " ")

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

			client := newBackend(cfg)
			emails, err := client.FetchUnread(cmd.Context(), token)
			if err != nil {
				return fmt.Errorf("failed to fetch unread emails: %w", err)
			}

			answer, err := client.Ask(cmd.Context(), question, emails)
			if err != nil {
				return fmt.Errorf("failed to ask: %w", err)
			}

			if jsonFlag {
				return printJSON(jsonAnswer{Question: question, Answer: answer})
			}
			fmt.Println(answer)
			return nil
		},
	}
	return cmd
}

func newHealthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check backend health",
		Long:  "Probe the backend's health endpoint and report its status.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			info, err := newBackend(cfg).Health(cmd.Context())
			if err != nil {
				return fmt.Errorf("backend is unhealthy: %w", err)
			}

			if jsonFlag {
				return printJSON(toJSONHealth(info))
			}
			fmt.Printf("Status: %s\n", info.Status)
			fmt.Printf("AI provider: %s\n", info.AIProvider)
			fmt.Printf("API key configured: %t\n", info.APIKeyConfigured)
			return nil
		},
	}
	return cmd
}
