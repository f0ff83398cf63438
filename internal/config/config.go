package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all mailbrief configuration.
type Config struct {
	Backend BackendConfig `toml:"backend"`
	Auth    AuthConfig    `toml:"auth"`
	UI      UIConfig      `toml:"ui"`
	Chat    ChatConfig    `toml:"chat"`
}

// BackendConfig points at the digest backend service.
type BackendConfig struct {
	BaseURL string `toml:"base_url"`
	Timeout string `toml:"timeout"`
}

// AuthConfig holds Google OAuth credentials.
// Users can override via config file or env vars.
type AuthConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
}

// UIConfig holds TUI display settings.
type UIConfig struct {
	FadeDelay string `toml:"fade_delay"`
}

// ChatConfig holds the chat panel settings.
type ChatConfig struct {
	Suggested []string `toml:"suggested"`
}

func defaults() Config {
	return Config{
		Backend: BackendConfig{
			BaseURL: "http://localhost:5000",
			Timeout: "30s",
		},
		UI: UIConfig{
			FadeDelay: "300ms",
		},
		Chat: ChatConfig{
			Suggested: []string{
				"Which emails need a reply today?",
				"Summarize my urgent emails",
				"Is there anything about payments or deadlines?",
			},
		},
	}
}

// Load reads config from path. If path is empty, returns defaults.
func Load(path string) (*Config, error) {
	cfg := defaults()
	if path == "" {
		return &cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// RequestTimeout parses the backend timeout, falling back to 30s on a
// missing or malformed value.
func (c *Config) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.Backend.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// FadeDelay parses the mark-read fade delay, falling back to 300ms.
// The delay is a visual transition, not a correctness mechanism.
func (c *Config) FadeDelay() time.Duration {
	d, err := time.ParseDuration(c.UI.FadeDelay)
	if err != nil || d <= 0 {
		return 300 * time.Millisecond
	}
	return d
}

// ConfigDir returns the mailbrief config directory path.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "mailbrief")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "mailbrief")
}

// DataDir returns the mailbrief data directory path.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "mailbrief")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "mailbrief")
}
