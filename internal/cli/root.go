package cli

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rvasek/mailbrief/internal/auth"
	"github.com/rvasek/mailbrief/internal/backend"
	"github.com/rvasek/mailbrief/internal/config"
	"github.com/rvasek/mailbrief/internal/tui"
)

var (
	// version is set via ldflags at build time.
	version = "dev"
	cfgFile string

	// jsonFlag enables JSON output for all commands.
	jsonFlag bool

	// baseURLFlag overrides the configured backend base URL.
	baseURLFlag string
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "mailbrief",
		Short:   "Prioritized unread-email digest",
		Long:    "A terminal popup that shows your unread email, AI-prioritized, with a question panel.",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			if shell, _ := cmd.Flags().GetString("generate-completion"); shell != "" {
				switch shell {
				case "bash":
					return cmd.Root().GenBashCompletion(os.Stdout)
				case "zsh":
					return cmd.Root().GenZshCompletion(os.Stdout)
				case "fish":
					return cmd.Root().GenFishCompletion(os.Stdout, true)
				default:
					return fmt.Errorf("unsupported shell: %s (use bash, zsh, or fish)", shell)
				}
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if err := resolveCredentials(cfg); err != nil {
				return err
			}

			// The TUI owns the terminal; the standard logger goes to a
			// file so diagnostics survive without corrupting the screen.
			closeLog, err := redirectLog()
			if err != nil {
				return err
			}
			defer closeLog()

			provider := auth.NewProvider(auth.NewKeyringTokenStore())
			client := newBackend(cfg)

			return tui.Run(provider, client, cfg.Chat.Suggested, cfg.FadeDelay())
		},
	}
	root.SetVersionTemplate(fmt.Sprintf("mailbrief %s\n", version))
	root.CompletionOptions.DisableDefaultCmd = true
	root.Flags().String("generate-completion", "", "Generate shell completion (bash, zsh, fish)")
	root.Flags().MarkHidden("generate-completion")
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	root.PersistentFlags().BoolVar(&jsonFlag, "json", false, "output in JSON format")
	root.PersistentFlags().StringVar(&baseURLFlag, "base-url", "", "backend base URL (overrides config)")
	root.AddCommand(newListCmd())
	root.AddCommand(newMarkReadCmd())
	root.AddCommand(newAskCmd())
	root.AddCommand(newAuthCmd())
	root.AddCommand(newHealthCmd())
	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig loads the application configuration from the config file.
func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		path = filepath.Join(config.ConfigDir(), "config.toml")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// resolveCredentials sets Google OAuth credentials using the first
// available source: config file, then environment variables.
func resolveCredentials(cfg *config.Config) error {
	// 1. Config file
	if cfg.Auth.ClientID != "" && cfg.Auth.ClientSecret != "" {
		auth.SetCredentials(cfg.Auth.ClientID, cfg.Auth.ClientSecret)
		return nil
	}

	// 2. Environment variables
	clientID := os.Getenv("MAILBRIEF_CLIENT_ID")
	clientSecret := os.Getenv("MAILBRIEF_CLIENT_SECRET")
	if clientID != "" && clientSecret != "" {
		auth.SetCredentials(clientID, clientSecret)
		return nil
	}

	return auth.EnsureCredentials()
}

// newBackend builds the backend client from config plus flag overrides.
func newBackend(cfg *config.Config) *backend.Client {
	baseURL := cfg.Backend.BaseURL
	if baseURLFlag != "" {
		baseURL = baseURLFlag
	}
	return backend.New(baseURL, cfg.RequestTimeout())
}

// redirectLog sends the standard logger to a file under the data dir.
func redirectLog() (func(), error) {
	dataDir := config.DataDir()
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	logPath := filepath.Join(dataDir, "mailbrief.log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(f)
	return func() { f.Close() }, nil
}
