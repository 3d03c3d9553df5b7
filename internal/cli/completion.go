package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/langstats/internal/config"
)

// shell describes one completion target.
type shell struct {
	name    string
	install string // how to load the script in every session
	gen     func(root *cobra.Command, w io.Writer) error
}

var shells = []shell{
	{"bash", "langstats completion bash > /etc/bash_completion.d/langstats",
		func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) }},
	{"zsh", `langstats completion zsh > "${fpath[1]}/_langstats"`,
		func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) }},
	{"fish", "langstats completion fish > ~/.config/fish/completions/langstats.fish",
		func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) }},
	{"powershell", "langstats completion powershell >> $PROFILE",
		func(root *cobra.Command, w io.Writer) error { return root.GenPowerShellCompletionWithDesc(w) }},
}

func shellNames() []string {
	names := make([]string, len(shells))
	for i, s := range shells {
		names[i] = s.name
	}
	return names
}

// completionCommand prints a completion script for the named shell.
func (c *CLI) completionCommand() *cobra.Command {
	var long strings.Builder
	long.WriteString("Print a shell completion script for langstats.\n\nTo enable completions in every session:\n")
	for _, s := range shells {
		fmt.Fprintf(&long, "\n  %-10s %s", s.name, s.install)
	}

	return &cobra.Command{
		Use:                   "completion [" + strings.Join(shellNames(), "|") + "]",
		Short:                 "Generate shell completion scripts",
		Long:                  long.String(),
		DisableFlagsInUseLine: true,
		ValidArgs:             shellNames(),
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, s := range shells {
				if s.name == args[0] {
					return s.gen(cmd.Root(), cmd.OutOrStdout())
				}
			}
			return fmt.Errorf("unsupported shell %q", args[0])
		},
	}
}

// completeStores offers the snapshot backends for --store.
func completeStores(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return config.Stores, cobra.ShellCompDirectiveNoFileComp
}
