package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	apperrors "github.com/matzehuels/langstats/pkg/errors"
	"github.com/matzehuels/langstats/pkg/snapshot"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("LANGSTATS_CONFIG", "")
	t.Setenv("PORT", "")
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Addr)
	}
	if cfg.MaxAge != time.Hour {
		t.Errorf("MaxAge = %v, want 1h", cfg.MaxAge)
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Errorf("HTTPTimeout = %v, want 10s", cfg.HTTPTimeout)
	}
	if cfg.Collection != snapshot.DefaultCollection || cfg.Document != snapshot.DefaultDocument {
		t.Errorf("document identity = %s/%s", cfg.Collection, cfg.Document)
	}
}

func TestLoad_Env(t *testing.T) {
	isolate(t)
	t.Setenv("LANGSTATS_GITHUB_USER", "octocat")
	t.Setenv("LANGSTATS_MAX_AGE", "30m")
	t.Setenv("LANGSTATS_REDIS_DB", "3")
	t.Setenv("LANGSTATS_STORE", "redis")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.GitHubUser != "octocat" {
		t.Errorf("GitHubUser = %q", cfg.GitHubUser)
	}
	if cfg.MaxAge != 30*time.Minute {
		t.Errorf("MaxAge = %v, want 30m", cfg.MaxAge)
	}
	if cfg.RedisDB != 3 || cfg.Store != StoreRedis {
		t.Errorf("redis settings = db %d store %s", cfg.RedisDB, cfg.Store)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "langstats.yaml")
	yaml := `
addr: ":9090"
github_user: from-file
http_timeout: 5s
store: sqlite
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LANGSTATS_CONFIG", path)
	t.Setenv("LANGSTATS_GITHUB_USER", "from-env")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Addr != ":9090" || cfg.HTTPTimeout != 5*time.Second || cfg.Store != StoreSQLite {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.GitHubUser != "from-env" {
		t.Errorf("env should override file, GitHubUser = %q", cfg.GitHubUser)
	}
}

func TestLoad_Port(t *testing.T) {
	isolate(t)
	t.Setenv("PORT", "3000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Addr != ":3000" {
		t.Errorf("Addr = %q, want :3000", cfg.Addr)
	}

	t.Setenv("LANGSTATS_ADDR", "127.0.0.1:4000")
	cfg, _ = Load()
	if cfg.Addr != "127.0.0.1:4000" {
		t.Errorf("LANGSTATS_ADDR should win over PORT, got %q", cfg.Addr)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	isolate(t)
	t.Setenv("LANGSTATS_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	if _, err := Load(); !errors.Is(err, ErrLoadConfig) {
		t.Errorf("Load() error = %v, want ErrLoadConfig", err)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		c := New()
		c.GitHubUser = "octocat"
		return c
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"missing user", func(c *Config) { c.GitHubUser = "" }, true},
		{"bad user", func(c *Config) { c.GitHubUser = "no spaces" }, true},
		{"empty addr", func(c *Config) { c.Addr = "" }, true},
		{"zero timeout", func(c *Config) { c.HTTPTimeout = 0 }, true},
		{"negative max age", func(c *Config) { c.MaxAge = -time.Second }, true},
		{"unknown store", func(c *Config) { c.Store = "firestore" }, true},
		{"empty document", func(c *Config) { c.Document = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !apperrors.Is(err, apperrors.ErrCodeInvalidConfig) {
				t.Errorf("error code = %s, want INVALID_CONFIG", apperrors.GetCode(err))
			}
		})
	}
}

func TestString_HidesToken(t *testing.T) {
	c := New()
	c.GitHubToken = "ghp_secret"
	if s := c.String(); s == "" || strings.Contains(s, "ghp_secret") {
		t.Errorf("String() leaks token: %s", s)
	}
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	for _, kind := range []string{StoreMemory, StoreFile, StoreSQLite} {
		t.Run(kind, func(t *testing.T) {
			c := New()
			c.Store = kind
			c.FileDir = dir
			c.SQLitePath = filepath.Join(dir, "langstats.db")

			s, err := OpenStore(ctx, c)
			if err != nil {
				t.Fatalf("OpenStore(%s) error: %v", kind, err)
			}
			defer s.Close()

			if err := s.Set(ctx, snapshot.New(time.Now(), nil)); err != nil {
				t.Errorf("Set error: %v", err)
			}
		})
	}

	c := New()
	c.Store = "firestore"
	if _, err := OpenStore(ctx, c); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("unknown store error = %v", err)
	}
}
