// Package cli implements the langstats command-line interface.
//
// The CLI serves the language badge over HTTP, renders it to a file, prints
// the current ranking, and manages the cached snapshot. It is built using
// cobra and logs through charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - serve: Run the badge HTTP server
//   - render: Write the badge SVG to a file
//   - stats: Print the language ranking
//   - top: Interactive ranking view with manual refresh
//   - cache: Inspect or clear the stored snapshot
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// reports the calling source line. The logger travels in the command context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates the command logger. Timestamps look like "14:32:01.45".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		ReportCaller:    level <= log.DebugLevel,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one snapshot fetch.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg at level with keyvals followed by the elapsed duration,
// e.g. "Refreshed snapshot languages=6 top=Go duration=1.234s".
func (p *progress) done(level log.Level, msg string, keyvals ...any) {
	keyvals = append(keyvals, "duration", time.Since(p.start).Round(time.Millisecond))
	p.logger.Log(level, msg, keyvals...)
}

// snapshotFields describes a fetched snapshot as log key/value pairs.
func snapshotFields(f *fetched) []any {
	var fields []any
	if f.user != "" {
		fields = append(fields, "user", f.user)
	}
	fields = append(fields, "languages", len(f.snap.Languages))
	if len(f.snap.Languages) > 0 {
		fields = append(fields, "top", f.snap.Languages[0].Name)
	}
	if f.remaining > 0 {
		fields = append(fields, "fresh_for", f.remaining.Round(time.Second))
	}
	return fields
}

// fetchLevel picks how loudly a fetch is reported: recomputations are
// news, cache hits only show up with --verbose.
func fetchLevel(f *fetched) log.Level {
	if f.refreshed {
		return log.InfoLevel
	}
	return log.DebugLevel
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the command logger, or log.Default() outside a command.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
