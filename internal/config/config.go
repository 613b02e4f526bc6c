package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/mikeintech/budgetterrr/internal/goal"
)

// Config holds all budgetterrr configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Remote     RemoteConfig     `toml:"remote"`
	Alerts     AlertsConfig     `toml:"alerts"`
	Daemon     DaemonConfig     `toml:"daemon"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DataDir        string `toml:"data_dir,omitempty"`
	CurrencySymbol string `toml:"currency_symbol"`
}

// RemoteConfig holds hosted sync settings. Sync stays disabled while
// BaseURL is empty.
type RemoteConfig struct {
	BaseURL      string `toml:"base_url,omitempty"`
	AnonKey      string `toml:"anon_key,omitempty"`
	AccessToken  string `toml:"access_token,omitempty"`
	RefreshToken string `toml:"refresh_token,omitempty"`
}

// AlertsConfig tunes goal alert thresholds.
type AlertsConfig struct {
	Milestones             []float64 `toml:"milestones,omitempty"`
	BehindMargin           *float64  `toml:"behind_margin,omitempty"`
	DeadlineMonths         *int      `toml:"deadline_months,omitempty"`
	DeadlineProgressCutoff *float64  `toml:"deadline_progress_cutoff,omitempty"`
}

// DaemonConfig holds background daemon settings.
type DaemonConfig struct {
	IntervalSec int    `toml:"interval_sec"`
	Addr        string `toml:"addr,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			CurrencySymbol: "$",
		},
		Daemon: DaemonConfig{
			IntervalSec: 60,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// AlertThresholds merges the config section over the stock thresholds.
// Unset fields keep their defaults.
func AlertThresholds(cfg Config) goal.AlertThresholds {
	th := goal.DefaultThresholds()
	if len(cfg.Alerts.Milestones) > 0 {
		th.Milestones = cfg.Alerts.Milestones
	}
	if cfg.Alerts.BehindMargin != nil {
		th.BehindMargin = *cfg.Alerts.BehindMargin
	}
	if cfg.Alerts.DeadlineMonths != nil {
		th.DeadlineMonths = *cfg.Alerts.DeadlineMonths
	}
	if cfg.Alerts.DeadlineProgressCutoff != nil {
		th.DeadlineProgressCutoff = *cfg.Alerts.DeadlineProgressCutoff
	}
	return th
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "budgetterrr")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "budgetterrr")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the snapshot storage directory: the configured
// override when set, otherwise the XDG data home.
func DataDir(cfg Config) string {
	if cfg.General.DataDir != "" {
		return cfg.General.DataDir
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "budgetterrr")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "budgetterrr")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
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

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
