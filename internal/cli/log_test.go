package cli

import (
	"bytes"
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/langstats/pkg/snapshot"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name       string
		level      log.Level
		logFunc    func(*log.Logger)
		wantLog    bool
		wantCaller bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("serving") }, true, false},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("snapshot stale") }, false, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("snapshot stale") }, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))

			if got := buf.Len() > 0; got != tt.wantLog {
				t.Fatalf("got log output = %v, want %v", got, tt.wantLog)
			}
			if got := strings.Contains(buf.String(), "log_test.go"); got != tt.wantCaller {
				t.Errorf("caller reported = %v, want %v: %q", got, tt.wantCaller, buf.String())
			}
		})
	}
}

func TestProgressDone(t *testing.T) {
	snap := snapshot.New(time.Now(), []snapshot.Language{
		{Name: "Go", Value: 80, Color: "#00ADD8"},
		{Name: "Rust", Value: 20, Color: "#dea584"},
	})

	tests := []struct {
		name   string
		level  log.Level
		fetch  *fetched
		want   []string
		silent bool
	}{
		{
			name:  "refresh logs at info",
			level: log.InfoLevel,
			fetch: &fetched{user: "octocat", snap: snap, refreshed: true, remaining: time.Hour},
			want:  []string{"INFO", "user=octocat", "languages=2", "top=Go", "fresh_for=1h0m0s", "duration="},
		},
		{
			name:   "cache hit hidden at info",
			level:  log.InfoLevel,
			fetch:  &fetched{snap: snap, remaining: 30 * time.Minute},
			silent: true,
		},
		{
			name:  "cache hit shown with verbose",
			level: log.DebugLevel,
			fetch: &fetched{snap: snap, remaining: 30 * time.Minute},
			want:  []string{"DEBU", "languages=2", "top=Go", "fresh_for=30m0s"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			prog := newProgress(newLogger(&buf, tt.level))
			prog.done(fetchLevel(tt.fetch), "Fetched snapshot", snapshotFields(tt.fetch)...)

			out := buf.String()
			if tt.silent {
				if out != "" {
					t.Errorf("expected no output, got %q", out)
				}
				return
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output %q missing %q", out, w)
				}
			}
		})
	}
}

func TestSnapshotFields(t *testing.T) {
	tests := []struct {
		name  string
		fetch *fetched
		want  []any
	}{
		{
			name:  "ranked and fresh",
			fetch: &fetched{user: "octocat", snap: snapshot.New(time.Now(), []snapshot.Language{{Name: "Go", Value: 100}}), remaining: 90 * time.Second},
			want:  []any{"user", "octocat", "languages", 1, "top", "Go", "fresh_for", 90 * time.Second},
		},
		{
			name:  "empty and stale",
			fetch: &fetched{snap: snapshot.New(time.Now(), nil)},
			want:  []any{"languages", 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := snapshotFields(tt.fetch); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("snapshotFields() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoggerFromContext(t *testing.T) {
	custom := newLogger(&bytes.Buffer{}, log.InfoLevel)

	tests := []struct {
		name string
		ctx  context.Context
		want *log.Logger
	}{
		{"attached", withLogger(context.Background(), custom), custom},
		{"missing", context.Background(), log.Default()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := loggerFromContext(tt.ctx); got != tt.want {
				t.Errorf("loggerFromContext() = %p, want %p", got, tt.want)
			}
		})
	}
}
