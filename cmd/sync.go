package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mikeintech/budgetterrr/internal/cli"
	"github.com/mikeintech/budgetterrr/internal/config"
	"github.com/mikeintech/budgetterrr/internal/remote"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync your snapshot with the hosted backend",
	RunE:  runSyncStatus,
}

var syncPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upload the local snapshot",
	RunE:  runSyncPush,
}

var syncPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Replace the local snapshot with the remote one",
	RunE:  runSyncPull,
}

func init() {
	syncCmd.AddCommand(syncPushCmd)
	syncCmd.AddCommand(syncPullCmd)
	rootCmd.AddCommand(syncCmd)
}

// syncClient builds an authenticated client, refreshing the access
// token (and persisting the new one) when it has expired.
func syncClient(cfg *config.Config) (*remote.Client, error) {
	client := remote.NewClient(cfg.Remote.BaseURL, cfg.Remote.AnonKey,
		cfg.Remote.AccessToken, cfg.Remote.RefreshToken)
	if client == nil {
		return nil, errors.New("sync is not configured: set base_url and anon_key in the [remote] config section")
	}

	if client.TokenExpired(time.Now()) {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		sess, err := client.Refresh(ctx)
		if err != nil {
			if errors.Is(err, remote.ErrUnauthorized) {
				return nil, errors.New("session expired: sign in again and update the [remote] tokens")
			}
			return nil, fmt.Errorf("refreshing session: %w", err)
		}

		cfg.Remote.AccessToken = sess.AccessToken
		cfg.Remote.RefreshToken = sess.RefreshToken
		if err := config.Save(*cfg); err != nil {
			return nil, fmt.Errorf("saving refreshed tokens: %w", err)
		}
	}

	return client, nil
}

func runSyncStatus(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()
	if cfg.Remote.BaseURL == "" {
		fmt.Println()
		fmt.Println("  Sync is not configured.")
		fmt.Println()
		fmt.Println("  Add to " + config.ConfigPath() + ":")
		fmt.Println("    [remote]")
		fmt.Println("    base_url = \"https://<project>.supabase.co\"")
		fmt.Println("    anon_key = \"...\"")
		fmt.Println("    access_token = \"...\"")
		fmt.Println("    refresh_token = \"...\"")
		fmt.Println()
		return nil
	}

	client, err := syncClient(&cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	_, updatedAt, err := client.Fetch(ctx)
	switch {
	case errors.Is(err, remote.ErrNotFound):
		fmt.Println("  Remote: no snapshot uploaded yet. Run `budgetterrr sync push`.")
		return nil
	case err != nil:
		return err
	}

	fmt.Printf("  Remote: last updated %s\n", cli.FormatDate(updatedAt))
	return nil
}

func runSyncPush(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()
	client, err := syncClient(&cfg)
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	data, err := loadSnapshot(st)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := client.Push(ctx, data, time.Now()); err != nil {
		return fmt.Errorf("pushing snapshot: %w", err)
	}

	fmt.Println("  Pushed local snapshot.")
	return nil
}

func runSyncPull(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()
	client, err := syncClient(&cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	data, updatedAt, err := client.Fetch(ctx)
	if err != nil {
		if errors.Is(err, remote.ErrNotFound) {
			return errors.New("nothing to pull: no remote snapshot exists")
		}
		return fmt.Errorf("fetching snapshot: %w", err)
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if err := saveSnapshot(st, data); err != nil {
		return err
	}

	fmt.Printf("  Pulled remote snapshot (updated %s).\n", cli.FormatDate(updatedAt))
	return nil
}
