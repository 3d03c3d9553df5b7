package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/langstats/pkg/snapshot"
)

func TestRenderLanguages(t *testing.T) {
	langs := []snapshot.Language{
		{Name: "Go", Value: 62.5, Color: "#00ADD8"},
		{Name: "TypeScript", Value: 30, Color: "#3178c6"},
		{Name: "Others", Value: 7.5, Color: snapshot.OthersColor},
	}

	out := renderLanguages(langs)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != len(langs) {
		t.Fatalf("got %d lines, want %d", len(lines), len(langs))
	}
	for i, want := range []string{"62.50%", "30.00%", "7.50%"} {
		if !strings.Contains(lines[i], langs[i].Name) || !strings.Contains(lines[i], want) {
			t.Errorf("line %d = %q, want name %q and %q", i, lines[i], langs[i].Name, want)
		}
	}
}

func TestRenderLanguagesEmpty(t *testing.T) {
	if out := renderLanguages(nil); out != "" {
		t.Errorf("renderLanguages(nil) = %q, want empty", out)
	}
}

func TestLanguageBar(t *testing.T) {
	tests := []struct {
		value float64
		cells int
	}{
		{0, 0},
		{50, 15},
		{100, 30},
		{3.4, 1},
		{120, 30},
	}

	for _, tt := range tests {
		bar := languageBar(snapshot.Language{Name: "Go", Value: tt.value, Color: "#00ADD8"}, barWidth)
		if got := strings.Count(bar, iconBar); got != tt.cells {
			t.Errorf("value %v: %d filled cells, want %d", tt.value, got, tt.cells)
		}
		if w := lipgloss.Width(bar); w != barWidth {
			t.Errorf("value %v: bar width %d, want %d", tt.value, w, barWidth)
		}
	}
}

func TestFormatRelativeTime(t *testing.T) {
	now := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{10 * time.Second, "just now"},
		{5 * time.Minute, "5m ago"},
		{3 * time.Hour, "3h ago"},
		{49 * time.Hour, "2d ago"},
		{30 * 24 * time.Hour, "Apr 20, 2024"},
	}

	for _, tt := range tests {
		if got := formatRelativeTime(now.Add(-tt.ago), now); got != tt.want {
			t.Errorf("formatRelativeTime(-%v) = %q, want %q", tt.ago, got, tt.want)
		}
	}
}

func TestSnapshotStatus(t *testing.T) {
	now := time.Now()
	snap := snapshot.New(now.Add(-10*time.Minute), []snapshot.Language{{Name: "Go", Value: 100}})

	fresh := snapshotStatus(snap, false, 50*time.Minute, now)
	for _, want := range []string{iconCached, "1 languages", "10m ago", "fresh for 50m0s"} {
		if !strings.Contains(fresh, want) {
			t.Errorf("status %q missing %q", fresh, want)
		}
	}

	stale := snapshotStatus(snap, true, 0, now)
	if !strings.Contains(stale, iconFresh) || !strings.Contains(stale, "stale") {
		t.Errorf("status %q should report refreshed and stale", stale)
	}
}
