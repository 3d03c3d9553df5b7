package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/langstats/internal/server"
	"github.com/matzehuels/langstats/pkg/badge"
	"github.com/matzehuels/langstats/pkg/metrics"
	"github.com/matzehuels/langstats/pkg/snapshot"
)

type serveOpts struct {
	addr       string
	noMetrics  bool
	textLabels bool
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the language badge over HTTP",
		Long: `Serve the language badge at /github-languages-stats.

The snapshot is refreshed from GitHub when it is older than max_age and read
from the configured store otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (overrides LANGSTATS_ADDR and PORT)")
	cmd.Flags().BoolVar(&opts.noMetrics, "no-metrics", false, "disable the /metrics endpoint")
	cmd.Flags().BoolVar(&opts.textLabels, "text-labels", false, "emit labels as <text> instead of glyph outlines")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, opts serveOpts) error {
	ctx := cmd.Context()

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if opts.addr != "" {
		cfg.Addr = opts.addr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.SetLogLevel(c.flags.level(cfg))
	logger := loggerFromContext(ctx)
	logger.Debug("configuration", "config", cfg.String())

	store, err := c.openStore(ctx, cfg, false)
	if err != nil {
		return err
	}
	defer store.Close()

	serverOpts := []server.Option{server.WithLogger(c.Logger)}
	if !opts.noMetrics {
		m := metrics.NewManager()
		m.Register()
		serverOpts = append(serverOpts, server.WithMetrics(m))
	}
	if opts.textLabels {
		serverOpts = append(serverOpts, server.WithBadgeOptions(badge.WithTextLabels()))
	}

	gate := snapshot.NewGate(store, c.newService(cfg),
		snapshot.WithMaxAge(cfg.MaxAge),
		snapshot.WithLogger(c.Logger),
	)
	srv := server.New(gate, serverOpts...)

	logger.Info("serving badge", "user", cfg.GitHubUser, "store", cfg.Store, "max_age", cfg.MaxAge)
	if err := srv.ListenAndServe(ctx, cfg.Addr); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
