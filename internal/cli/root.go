package cli

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/langstats/internal/config"
)

// rootFlags are persistent flags that override the loaded configuration.
// Empty values leave the configuration untouched.
type rootFlags struct {
	verbose bool
	user    string
	store   string
	token   string
}

func (f *rootFlags) register(root *cobra.Command) {
	pf := root.PersistentFlags()
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "enable verbose logging")
	pf.StringVarP(&f.user, "user", "u", "", "GitHub account to rank (overrides LANGSTATS_GITHUB_USER)")
	pf.StringVar(&f.store, "store", "", "snapshot store: mongo, redis, sqlite, file, memory")
	pf.StringVar(&f.token, "token", "", "GitHub API token (overrides LANGSTATS_GITHUB_TOKEN)")
	_ = root.RegisterFlagCompletionFunc("store", completeStores)
}

// apply copies non-empty flag values onto cfg.
func (f *rootFlags) apply(cfg *config.Config) {
	if f.user != "" {
		cfg.GitHubUser = f.user
	}
	if f.store != "" {
		cfg.Store = f.store
	}
	if f.token != "" {
		cfg.GitHubToken = f.token
	}
	if f.verbose {
		cfg.LogLevel = "debug"
	}
}

// level returns the log level selected by --verbose and cfg.
func (f *rootFlags) level(cfg *config.Config) log.Level {
	if f.verbose {
		return log.DebugLevel
	}
	if cfg != nil {
		if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
			return lvl
		}
	}
	return log.InfoLevel
}
