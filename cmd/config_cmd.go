// Package cmd implements the budgetterrr CLI commands.
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mikeintech/budgetterrr/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Data directory:  %s\n", config.DataDir(cfg))
	fmt.Printf("    Currency symbol: %s\n", cfg.General.CurrencySymbol)
	fmt.Println()

	fmt.Println("  [Remote]")
	if cfg.Remote.BaseURL != "" {
		fmt.Printf("    Base URL:     %s\n", cfg.Remote.BaseURL)
		if cfg.Remote.AccessToken != "" {
			fmt.Printf("    Access token: %s\n", maskToken(cfg.Remote.AccessToken))
		} else {
			fmt.Println("    Access token: not configured")
		}
	} else {
		fmt.Println("    Sync: not configured")
	}
	fmt.Println()

	fmt.Println("  [Alerts]")
	th := config.AlertThresholds(cfg)
	milestones := make([]string, len(th.Milestones))
	for i, m := range th.Milestones {
		milestones[i] = fmt.Sprintf("%.0f%%", m)
	}
	fmt.Printf("    Milestones:      %s\n", strings.Join(milestones, ", "))
	fmt.Printf("    Behind margin:   %.0f points\n", th.BehindMargin)
	fmt.Printf("    Deadline window: %d months (under %.0f%% progress)\n", th.DeadlineMonths, th.DeadlineProgressCutoff)
	fmt.Println()

	fmt.Println("  [Daemon]")
	fmt.Printf("    Interval: %ds\n", cfg.Daemon.IntervalSec)
	if cfg.Daemon.Addr != "" {
		fmt.Printf("    Address:  %s\n", cfg.Daemon.Addr)
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  Run `budgetterrr setup` to reconfigure.")
	return nil
}

func maskToken(token string) string {
	if len(token) > 16 {
		return token[:8] + "..." + token[len(token)-4:]
	}
	if len(token) > 4 {
		return token[:4] + "..."
	}
	return "****"
}
