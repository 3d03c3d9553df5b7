package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"
)

type statsOpts struct {
	json    bool
	refresh bool
	noCache bool
}

// statsCommand creates the stats command that prints the current ranking.
func (c *CLI) statsCommand() *cobra.Command {
	var opts statsOpts

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print the ranked language shares",
		Example: `  langstats stats
  langstats stats --user octocat --no-cache
  langstats stats --json | jq '.languages[0]'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runStats(cmd.Context(), os.Stdout, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.json, "json", false, "print the snapshot document as JSON")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute the snapshot even if it is fresh")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "do not read or write the snapshot store")

	return cmd
}

func (c *CLI) runStats(ctx context.Context, w io.Writer, opts statsOpts) error {
	res, err := c.fetchSnapshot(ctx, opts.refresh, opts.noCache)
	if err != nil {
		return err
	}

	if opts.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res.snap)
	}

	io.WriteString(w, StyleTitle.Render("Top languages · "+res.user)+"\n\n")
	printLanguages(w, res.snap.Languages)
	io.WriteString(w, "\n")
	printSnapshotStatus(res.snap, res.refreshed, res.remaining)
	return nil
}
