package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/langstats/pkg/badge"
	"github.com/matzehuels/langstats/pkg/fonts"
	"github.com/matzehuels/langstats/pkg/snapshot"
)

// renderOpts holds options for the render command.
type renderOpts struct {
	output      string
	strokeWidth float64
	font        string
	textLabels  bool
	refresh     bool
	noCache     bool
}

// renderCommand creates the render command for writing the badge to disk.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{
		output:      defaultBadgeFile,
		strokeWidth: badge.DefaultStrokeWidth,
		font:        string(fonts.Regular),
	}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the language badge to an SVG file",
		Long: `Render the language badge to an SVG file.

The stored snapshot is reused while it is fresh. Use --refresh to recompute
it from GitHub, or --no-cache to skip the store entirely.`,
		Example: `  langstats render
  langstats render -o badge.svg --font bold
  langstats render -o - --no-cache > badge.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "output file (- for stdout)")
	cmd.Flags().Float64Var(&opts.strokeWidth, "stroke-width", opts.strokeWidth, "bar stroke width")
	cmd.Flags().StringVar(&opts.font, "font", opts.font, "label font face: regular, bold")
	cmd.Flags().BoolVar(&opts.textLabels, "text-labels", false, "emit labels as <text> instead of glyph outlines")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute the snapshot even if it is fresh")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "do not read or write the snapshot store")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, opts renderOpts) error {
	badgeOpts, err := opts.badgeOptions()
	if err != nil {
		return err
	}

	res, err := c.fetchSnapshot(ctx, opts.refresh, opts.noCache)
	if err != nil {
		return err
	}

	svg := badge.Render(res.snap, badgeOpts...)
	if opts.output == "-" {
		_, err := os.Stdout.Write(svg)
		return err
	}

	if dir := filepath.Dir(opts.output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(opts.output, svg, 0o644); err != nil {
		return fmt.Errorf("write badge: %w", err)
	}

	printSuccess("Rendered %d languages", len(res.snap.Languages))
	printFile(opts.output)
	printSnapshotStatus(res.snap, res.refreshed, res.remaining)
	return nil
}

func (o renderOpts) badgeOptions() ([]badge.Option, error) {
	opts := []badge.Option{badge.WithStrokeWidth(o.strokeWidth)}
	if o.textLabels {
		return append(opts, badge.WithTextLabels()), nil
	}
	face, err := fonts.ParseFace(o.font)
	if err != nil {
		return nil, err
	}
	f, err := fonts.Load(face)
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	outliner, err := badge.NewOutliner(f)
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	return append(opts, badge.WithOutliner(outliner)), nil
}

// fetched is a snapshot read through the cache gate.
type fetched struct {
	user      string // configured GitHub account
	snap      *snapshot.Snapshot
	refreshed bool
	remaining time.Duration
}

// fetchSnapshot returns the current snapshot through the cache gate,
// showing a spinner while a refresh may be running.
func (c *CLI) fetchSnapshot(ctx context.Context, force, noCache bool) (*fetched, error) {
	gate, store, cfg, err := c.newGate(ctx, noCache)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	prog := newProgress(loggerFromContext(ctx))
	spinner := newSpinner(ctx, "Fetching language statistics...")
	spinner.Start()

	res := &fetched{user: cfg.GitHubUser, refreshed: true}
	if force {
		res.snap, err = gate.Refresh(ctx)
	} else {
		res.snap, res.refreshed, err = gate.Snapshot(ctx)
	}
	spinner.Stop()
	if err != nil {
		return nil, err
	}
	res.remaining = gate.Remaining(res.snap)

	msg := "Served cached snapshot"
	if res.refreshed {
		msg = "Refreshed snapshot"
	}
	prog.done(fetchLevel(res), msg, snapshotFields(res)...)
	return res, nil
}
