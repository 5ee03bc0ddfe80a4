package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const appName = "termlanes"

// Credential backends.
const (
	BackendKeyring  = "keyring"
	BackendDatabase = "database"
)

// Config holds all termlanes configuration.
type Config struct {
	UI          UIConfig          `toml:"ui"`
	Accounts    AccountsConfig    `toml:"accounts"`
	Twitter     TwitterConfig     `toml:"twitter"`
	Appdotnet   AppdotnetConfig   `toml:"appdotnet"`
	Credentials CredentialsConfig `toml:"credentials"`
	Log         LogConfig         `toml:"log"`
}

// UIConfig holds display settings.
type UIConfig struct {
	Language      string `toml:"language"`
	Theme         string `toml:"theme"`
	ProfileImages bool   `toml:"profile_images"`
}

// AccountsConfig holds account selection settings.
type AccountsConfig struct {
	Default string `toml:"default"`
}

// TwitterConfig holds the Twitter OAuth1 consumer credentials.
// Users can override them via config file or env vars.
type TwitterConfig struct {
	ConsumerKey    string `toml:"consumer_key"`
	ConsumerSecret string `toml:"consumer_secret"`
}

// AppdotnetConfig holds the App.net OAuth2 client credentials.
type AppdotnetConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	APIBase      string `toml:"api_base"`
}

// CredentialsConfig selects where OAuth tokens are kept.
type CredentialsConfig struct {
	Backend string `toml:"backend"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
}

func defaults() Config {
	return Config{
		UI: UIConfig{
			Language:      "en",
			Theme:         "default",
			ProfileImages: true,
		},
		Appdotnet: AppdotnetConfig{
			APIBase: "https://alpha-api.app.net/stream/0",
		},
		Credentials: CredentialsConfig{
			Backend: BackendKeyring,
		},
		Log: LogConfig{
			Level: "warn",
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
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Credentials.Backend {
	case BackendKeyring, BackendDatabase:
	default:
		return fmt.Errorf("unknown credentials backend %q (use %q or %q)",
			c.Credentials.Backend, BackendKeyring, BackendDatabase)
	}
	return nil
}

// ConfigDir returns the termlanes config directory path.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName)
}

// DataDir returns the termlanes data directory path.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", appName)
}
