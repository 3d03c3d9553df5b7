package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/langstats/internal/config"
	"github.com/matzehuels/langstats/pkg/buildinfo"
	"github.com/matzehuels/langstats/pkg/integrations/colors"
	"github.com/matzehuels/langstats/pkg/integrations/github"
	"github.com/matzehuels/langstats/pkg/snapshot"
	"github.com/matzehuels/langstats/pkg/stats"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "langstats"

	// defaultBadgeFile is where render writes when no output is given.
	defaultBadgeFile = "github-languages-stats.svg"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	flags  rootFlags
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level. Debug also reports the calling line.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	c.Logger.SetReportCaller(level <= log.DebugLevel)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "langstats renders a GitHub account's top languages as an SVG badge",
		Long:          `langstats aggregates language byte counts across a GitHub account's repositories, caches the ranking as a snapshot, and serves it as a compact SVG badge.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if c.flags.verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	c.flags.register(root)

	root.AddCommand(c.serveCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.statsCommand())
	root.AddCommand(c.topCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Wiring
// =============================================================================

// loadConfig loads the layered configuration and applies command-line overrides.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cfg.FileDir == config.New().FileDir {
		if dir, err := cacheDir(); err == nil {
			cfg.FileDir = dir
		}
	}
	c.flags.apply(cfg)
	return cfg, nil
}

// newService builds the refresh pipeline for cfg.
func (c *CLI) newService(cfg *config.Config) *stats.Service {
	gh := github.NewClient(cfg.GitHubToken,
		github.WithBaseURL(cfg.GitHubAPIURL),
		github.WithTimeout(cfg.HTTPTimeout),
	)
	reg := colors.NewClient(nil, cfg.HTTPTimeout, colors.WithURL(cfg.ColorsURL))
	return stats.NewService(gh, reg, cfg.GitHubUser, stats.Options{Logger: c.Logger})
}

// openStore opens the configured snapshot store, or a memory store when
// caching is disabled.
func (c *CLI) openStore(ctx context.Context, cfg *config.Config, noCache bool) (snapshot.Store, error) {
	if noCache {
		return snapshot.NewMemoryStore(), nil
	}
	store, err := config.OpenStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Store, err)
	}
	return store, nil
}

// newGate wires config, store, and service into a cache gate and returns
// it with the validated config. The caller must close the returned store.
func (c *CLI) newGate(ctx context.Context, noCache bool) (*snapshot.Gate, snapshot.Store, *config.Config, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, err
	}
	store, err := c.openStore(ctx, cfg, noCache)
	if err != nil {
		return nil, nil, nil, err
	}
	gate := snapshot.NewGate(store, c.newService(cfg),
		snapshot.WithMaxAge(cfg.MaxAge),
		snapshot.WithLogger(c.Logger),
	)
	return gate, store, cfg, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/langstats/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
