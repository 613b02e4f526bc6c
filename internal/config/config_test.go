package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.General.CurrencySymbol != "$" {
		t.Errorf("CurrencySymbol = %q, want $", cfg.General.CurrencySymbol)
	}
	if cfg.Daemon.IntervalSec != 60 {
		t.Errorf("IntervalSec = %d, want 60", cfg.Daemon.IntervalSec)
	}
	if cfg.Appearance.Theme != "flexoki-dark" {
		t.Errorf("Theme = %q", cfg.Appearance.Theme)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.General.CurrencySymbol = "€"
	cfg.Remote.BaseURL = "https://example.supabase.co"
	cfg.Remote.AnonKey = "anon"
	margin := 5.0
	cfg.Alerts.BehindMargin = &margin

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.General.CurrencySymbol != "€" {
		t.Errorf("CurrencySymbol = %q", got.General.CurrencySymbol)
	}
	if got.Remote.BaseURL != "https://example.supabase.co" {
		t.Errorf("BaseURL = %q", got.Remote.BaseURL)
	}
	if got.Alerts.BehindMargin == nil || *got.Alerts.BehindMargin != 5 {
		t.Errorf("BehindMargin = %v", got.Alerts.BehindMargin)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	path := filepath.Join(dir, "budgetterrr")
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(path, "config.toml"), []byte("not [valid"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestAlertThresholdsMergesOverDefaults(t *testing.T) {
	cfg := DefaultConfig()
	th := AlertThresholds(cfg)
	if len(th.Milestones) != 3 || th.Milestones[0] != 25 {
		t.Errorf("default milestones = %v", th.Milestones)
	}
	if th.BehindMargin != 10 || th.DeadlineMonths != 3 || th.DeadlineProgressCutoff != 90 {
		t.Errorf("default thresholds = %+v", th)
	}

	months := 6
	cutoff := 80.0
	cfg.Alerts.Milestones = []float64{50}
	cfg.Alerts.DeadlineMonths = &months
	cfg.Alerts.DeadlineProgressCutoff = &cutoff

	th = AlertThresholds(cfg)
	if len(th.Milestones) != 1 || th.Milestones[0] != 50 {
		t.Errorf("milestones = %v, want [50]", th.Milestones)
	}
	if th.DeadlineMonths != 6 || th.DeadlineProgressCutoff != 80 {
		t.Errorf("thresholds = %+v", th)
	}
	if th.BehindMargin != 10 {
		t.Errorf("BehindMargin = %v, want default 10", th.BehindMargin)
	}
}

func TestDataDirPrecedence(t *testing.T) {
	cfg := DefaultConfig()
	cfg.General.DataDir = "/tmp/custom"
	if got := DataDir(cfg); got != "/tmp/custom" {
		t.Errorf("DataDir = %q", got)
	}

	cfg.General.DataDir = ""
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg")
	if got := DataDir(cfg); got != filepath.Join("/tmp/xdg", "budgetterrr") {
		t.Errorf("DataDir = %q", got)
	}
}
