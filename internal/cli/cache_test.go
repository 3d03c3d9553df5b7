package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/langstats/pkg/snapshot"
)

func TestCacheDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", "")
	t.Setenv("HOME", home)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	expected := filepath.Join(home, ".cache", "langstats")
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(xdg, "langstats"); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

// setFileStoreEnv points the configuration at a file store in a temp dir
// and returns the store the CLI will open.
func setFileStoreEnv(t *testing.T) *snapshot.FileStore {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("LANGSTATS_CONFIG", "")
	t.Setenv("LANGSTATS_GITHUB_USER", "octocat")
	t.Setenv("LANGSTATS_STORE", "file")
	t.Setenv("LANGSTATS_FILE_DIR", dir)

	store, err := snapshot.NewFileStore(filepath.Join(dir, snapshot.DefaultCollection), snapshot.DefaultDocument)
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}
	return store
}

func TestCacheClear(t *testing.T) {
	store := setFileStoreEnv(t)
	ctx := context.Background()
	snap := snapshot.New(time.Now(), []snapshot.Language{{Name: "Go", Value: 100, Color: "#00ADD8"}})
	if err := store.Set(ctx, snap); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs([]string{"cache", "clear"})
	if err := root.Execute(); err != nil {
		t.Fatalf("cache clear error: %v", err)
	}

	if _, err := os.Stat(store.Path()); !os.IsNotExist(err) {
		t.Errorf("snapshot file should be removed, stat err = %v", err)
	}
}

func TestCacheClearEmpty(t *testing.T) {
	setFileStoreEnv(t)

	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs([]string{"cache", "clear"})
	if err := root.Execute(); err != nil {
		t.Fatalf("clearing a missing snapshot should succeed, got %v", err)
	}
}

func TestCacheInfo(t *testing.T) {
	store := setFileStoreEnv(t)
	ctx := context.Background()
	snap := snapshot.New(time.Now().Add(-2*time.Hour), []snapshot.Language{
		{Name: "Go", Value: 75, Color: "#00ADD8"},
		{Name: "Others", Value: 25, Color: snapshot.OthersColor},
	})
	if err := store.Set(ctx, snap); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	root := New(io.Discard, LogInfo).RootCommand()
	root.SetOut(io.Discard)
	root.SetArgs([]string{"cache", "info"})
	if err := root.Execute(); err != nil {
		t.Fatalf("cache info error: %v", err)
	}

	// info must not modify the stored snapshot
	got, err := store.Get(ctx)
	if err != nil || got == nil {
		t.Fatalf("Get() = %v, %v", got, err)
	}
	if got.Timestamp != snap.Timestamp {
		t.Errorf("Timestamp changed: %d -> %d", snap.Timestamp, got.Timestamp)
	}
}

func TestCacheInfoInvalidConfig(t *testing.T) {
	setFileStoreEnv(t)
	t.Setenv("LANGSTATS_GITHUB_USER", "")

	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs([]string{"cache", "info"})
	if err := root.Execute(); err == nil {
		t.Error("expected validation error without a GitHub user")
	}
}

func TestCacheInfoCorruptSnapshot(t *testing.T) {
	store := setFileStoreEnv(t)
	if err := os.WriteFile(store.Path(), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	root := New(io.Discard, LogInfo).RootCommand()
	root.SetOut(io.Discard)
	root.SetArgs([]string{"cache", "info"})
	if err := root.Execute(); err != nil {
		t.Errorf("cache info should report an unreadable snapshot, got %v", err)
	}
}
