package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/langstats/internal/config"
	"github.com/matzehuels/langstats/pkg/snapshot"
)

// cacheCommand creates the snapshot cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the stored language snapshot",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cacheInfoCommand())

	return cmd
}

// withStore loads configuration and runs fn against the configured store.
func (c *CLI) withStore(ctx context.Context, fn func(*config.Config, snapshot.Store) error) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	store, err := c.openStore(ctx, cfg, false)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(cfg, store)
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the stored snapshot so the next request refreshes it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(cfg *config.Config, store snapshot.Store) error {
				if err := store.Delete(cmd.Context()); err != nil {
					return fmt.Errorf("delete snapshot: %w", err)
				}
				printSuccess("Cleared snapshot")
				printDetail("Store: %s", storeLocation(cfg))
				return nil
			})
		},
	}
}

// cacheInfoCommand creates the "cache info" subcommand.
func (c *CLI) cacheInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the stored snapshot and its freshness",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(cfg *config.Config, store snapshot.Store) error {
				snap, err := store.Get(cmd.Context())
				if errors.Is(err, snapshot.ErrCorrupt) {
					printKeyValue("Store", storeLocation(cfg))
					printWarning("Stored snapshot is unreadable; the next request replaces it")
					return nil
				}
				if err != nil {
					return fmt.Errorf("read snapshot: %w", err)
				}
				printKeyValue("Store", storeLocation(cfg))
				if snap == nil {
					printInfo("No snapshot stored")
					return nil
				}

				now := time.Now()
				age := snap.Age(now)
				printKeyValue("Updated", snap.Time().Format(time.RFC3339))
				printKeyValue("Age", age.Round(time.Second).String())
				printKeyValue("Languages", fmt.Sprintf("%d", len(snap.Languages)))
				if age > cfg.MaxAge {
					printWarning("Snapshot is stale; the next request refreshes it")
				} else {
					printKeyValue("Fresh for", (cfg.MaxAge - age).Round(time.Second).String())
				}
				fmt.Println()
				printLanguages(cmd.OutOrStdout(), snap.Languages)
				return nil
			})
		},
	}
}

// storeLocation describes where the configured backend keeps the snapshot.
func storeLocation(cfg *config.Config) string {
	switch cfg.Store {
	case config.StoreMongo:
		return fmt.Sprintf("mongo %s/%s.%s", cfg.MongoDatabase, cfg.Collection, cfg.Document)
	case config.StoreRedis:
		return fmt.Sprintf("redis %s db %d", cfg.RedisAddr, cfg.RedisDB)
	case config.StoreSQLite:
		return "sqlite " + cfg.SQLitePath
	case config.StoreFile:
		return "file " + cfg.FileDir
	default:
		return cfg.Store
	}
}
