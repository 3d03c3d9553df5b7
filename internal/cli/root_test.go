package cli

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/langstats/internal/config"
)

func TestRootCommandSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	want := []string{"serve", "render", "stats", "top", "cache", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}

	for _, name := range []string{"clear", "info"} {
		cmd, _, err := root.Find([]string{"cache", name})
		if err != nil || cmd.Name() != name {
			t.Errorf("cache subcommand %q not registered", name)
		}
	}
}

func TestRootCommandVersion(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--version"})

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !strings.Contains(out.String(), "langstats") {
		t.Errorf("version output %q should name the binary", out.String())
	}
}

func TestRootFlagsApply(t *testing.T) {
	cfg := config.New()
	cfg.GitHubUser = "from-config"

	f := rootFlags{user: "octocat", store: config.StoreFile, token: "tok", verbose: true}
	f.apply(cfg)

	if cfg.GitHubUser != "octocat" {
		t.Errorf("GitHubUser = %q, want octocat", cfg.GitHubUser)
	}
	if cfg.Store != config.StoreFile {
		t.Errorf("Store = %q, want file", cfg.Store)
	}
	if cfg.GitHubToken != "tok" {
		t.Errorf("GitHubToken = %q, want tok", cfg.GitHubToken)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestRootFlagsApplyEmptyKeepsConfig(t *testing.T) {
	cfg := config.New()
	cfg.GitHubUser = "from-config"

	var f rootFlags
	f.apply(cfg)

	if cfg.GitHubUser != "from-config" {
		t.Errorf("GitHubUser = %q, empty flag should not override", cfg.GitHubUser)
	}
	if cfg.Store != config.StoreMongo {
		t.Errorf("Store = %q, empty flag should not override", cfg.Store)
	}
}

func TestRootFlagsLevel(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		level   string
		want    log.Level
	}{
		{"verbose wins", true, "error", log.DebugLevel},
		{"config level", false, "warn", log.WarnLevel},
		{"invalid level", false, "loud", log.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.LogLevel = tt.level
			f := rootFlags{verbose: tt.verbose}
			if got := f.level(cfg); got != tt.want {
				t.Errorf("level() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCompletionCommand(t *testing.T) {
	tests := []struct {
		args    []string
		want    string
		wantErr bool
	}{
		{args: []string{"completion", "bash"}, want: "langstats"},
		{args: []string{"completion", "zsh"}, want: "#compdef langstats"},
		{args: []string{"completion", "fish"}, want: "langstats"},
		{args: []string{"completion", "powershell"}, want: "langstats"},
		{args: []string{"completion", "tcsh"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			root := New(io.Discard, LogInfo).RootCommand()
			var out bytes.Buffer
			root.SetOut(&out)
			root.SetErr(io.Discard)
			root.SetArgs(tt.args)

			err := root.Execute()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Execute() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("completion output should contain %q", tt.want)
			}
		})
	}
}

func TestCompleteStoreFlag(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{cobra.ShellCompNoDescRequestCmd, "stats", "--store", ""})

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	for _, want := range config.Stores {
		if !strings.Contains(out.String(), want+"\n") {
			t.Errorf("store completions missing %q:\n%s", want, out.String())
		}
	}
}
