package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/mikeintech/budgetterrr/internal/config"
	"github.com/mikeintech/budgetterrr/internal/engine"
	"github.com/mikeintech/budgetterrr/internal/model"
	"github.com/mikeintech/budgetterrr/internal/store"
)

var (
	flagDataDir string
	flagQuiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "budgetterrr",
	Short: "Personal budget and savings tracker",
	Long:  "Track your budget, savings goals, and debts from the terminal.",
	RunE:  runStatus,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Override snapshot data directory")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// dbPath resolves the snapshot database location from flag and config.
func dbPath(cfg config.Config) string {
	if flagDataDir != "" {
		return filepath.Join(flagDataDir, "budgetterrr.db")
	}
	return filepath.Join(config.DataDir(cfg), "budgetterrr.db")
}

// openStore opens the snapshot store at the configured location.
func openStore(cfg config.Config) (*store.Store, error) {
	return store.Open(dbPath(cfg))
}

// loadSnapshot is the shared data loading path used by all commands:
// load the snapshot, apply any pay periods that elapsed while the app
// was closed, and persist the advanced state before handing it out.
func loadSnapshot(st *store.Store) (model.UserData, error) {
	data, err := st.Load()
	if err != nil {
		return model.UserData{}, fmt.Errorf("loading snapshot: %w", err)
	}

	now := time.Now()
	periods := engine.PeriodsElapsed(data, now)
	if periods > 0 {
		data = engine.CatchUp(data, now)
		if err := st.Save(data); err != nil {
			return model.UserData{}, fmt.Errorf("saving advanced snapshot: %w", err)
		}
		if !flagQuiet {
			plural := "s"
			if periods == 1 {
				plural = ""
			}
			fmt.Fprintf(os.Stderr, "  Applied %d elapsed pay period%s\n", periods, plural)
		}
	}

	return data, nil
}

// saveSnapshot persists the snapshot after a mutating command.
func saveSnapshot(st *store.Store, data model.UserData) error {
	if err := st.Save(data); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	return nil
}
