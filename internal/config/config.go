package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all application configuration
type Config struct {
	Version int           `toml:"version"`
	Search  SearchConfig  `toml:"search"`
	Browser BrowserConfig `toml:"browser"`
	Mail    MailConfig    `toml:"mail"`
}

type SearchConfig struct {
	Query               string `toml:"query"`
	URL                 string `toml:"url"`
	InputSelector       string `toml:"input_selector"`
	MaxResults          int    `toml:"max_results"`
	NewsThreshold       int    `toml:"news_threshold"`
	MaxRetries          int    `toml:"max_retries"`
	SelectorWaitSeconds int    `toml:"selector_wait_seconds"`
	SettleSeconds       int    `toml:"settle_seconds"`
}

// SelectorWait returns the per-selector presence wait as a duration.
func (s SearchConfig) SelectorWait() time.Duration {
	return time.Duration(s.SelectorWaitSeconds) * time.Second
}

// SettleWait returns the post-navigation settle delay as a duration.
func (s SearchConfig) SettleWait() time.Duration {
	return time.Duration(s.SettleSeconds) * time.Second
}

type BrowserConfig struct {
	Headless bool `toml:"headless"`
	// ProfileDir is the Chrome user data directory reused across runs to
	// reduce repeat challenges. Empty means the default location under
	// the config directory.
	ProfileDir string `toml:"profile_dir"`
}

type MailConfig struct {
	Provider   string `toml:"provider"` // "webmail" or "smtp"
	WebmailURL string `toml:"webmail_url"`
	To         string `toml:"to_address"`
	Subject    string `toml:"subject"`
	Body       string `toml:"body"`
	SMTPHost   string `toml:"smtp_host"`
	SMTPPort   int    `toml:"smtp_port"`
	SMTPUser   string `toml:"smtp_user"`
	SMTPPass   string `toml:"smtp_pass"`
	FromAddr   string `toml:"from_address"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		Version: 1,
		Search: SearchConfig{
			Query:         "SA vs Aus update",
			URL:           "https://www.google.com",
			InputSelector: "#APjFqb",
			MaxResults:    12,
			NewsThreshold: 6,
			MaxRetries:    2,
			// Generous because result markup renders late on slow
			// connections.
			SelectorWaitSeconds: 7,
			SettleSeconds:       1,
		},
		Browser: BrowserConfig{
			// Headful so a challenge page can be solved by hand.
			Headless: false,
		},
		Mail: MailConfig{
			Provider:   "webmail",
			WebmailURL: "https://mail.google.com/",
			To:         "recipient@example.com",
			Subject:    "Automated test mail",
			Body:       "Hello,\n\nThis is a test email sent by an automated script.\n\nRegards,\nserpmate",
			SMTPPort:   587,
		},
	}
}

// ConfigDir returns the platform-appropriate config directory
func ConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "serpmate"), nil
}

// ConfigPath returns the full path to the config file
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads config from disk
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads config from the given path
func LoadFrom(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes config to the given path
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(c)
}
