// Package config loads and persists orburn configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all orburn configuration. It is loaded once at startup and
// passed by value; nothing mutates it after that.
type Config struct {
	API        APIConfig        `toml:"api"`
	Retry      RetryConfig      `toml:"retry"`
	Throttle   ThrottleConfig   `toml:"throttle"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// APIConfig holds OpenRouter API settings.
type APIConfig struct {
	// APIKey is the inference key used for generation lookups and the
	// key-balance endpoint.
	APIKey string `toml:"api_key,omitempty"`
	// ProvisioningKey unlocks the account-credits endpoint. Optional;
	// leaving it empty disables the credits figure.
	ProvisioningKey string `toml:"provisioning_key,omitempty"`
	BaseURL         string `toml:"base_url,omitempty"`
}

// RetryConfig controls per-generation lookup retries.
type RetryConfig struct {
	Enabled     bool `toml:"enabled"`
	MaxAttempts int  `toml:"max_attempts"`
	BaseDelayMs int  `toml:"base_delay_ms"`
}

// BaseDelay returns the configured base delay as a duration.
func (r RetryConfig) BaseDelay() time.Duration {
	return time.Duration(r.BaseDelayMs) * time.Millisecond
}

// ThrottleConfig controls the courtesy delay between lookups for distinct
// generations within one run. It affects latency only, never totals.
type ThrottleConfig struct {
	Enabled bool `toml:"enabled"`
	DelayMs int  `toml:"delay_ms"`
}

// Delay returns the configured throttle delay as a duration.
func (t ThrottleConfig) Delay() time.Duration {
	return time.Duration(t.DelayMs) * time.Millisecond
}

// AppearanceConfig holds rendering preferences.
type AppearanceConfig struct {
	// Icons toggles glyphs in the statusline output.
	Icons bool `toml:"icons"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Retry: RetryConfig{
			Enabled:     true,
			MaxAttempts: 3,
			BaseDelayMs: 200,
		},
		Throttle: ThrottleConfig{
			Enabled: false,
			DelayMs: 150,
		},
		Appearance: AppearanceConfig{
			Icons: true,
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "orburn")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "orburn")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads a config file from an explicit path.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// GetAPIKey returns the inference key from env var or config, in that order.
func GetAPIKey(cfg Config) string {
	if key := os.Getenv("OPENROUTER_API_KEY"); key != "" {
		return key
	}
	return cfg.API.APIKey
}

// GetProvisioningKey returns the provisioning key from env var or config,
// in that order. Empty means the credits feature is disabled.
func GetProvisioningKey(cfg Config) string {
	if key := os.Getenv("OPENROUTER_PROVISIONING_KEY"); key != "" {
		return key
	}
	return cfg.API.ProvisioningKey
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
