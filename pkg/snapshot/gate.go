package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	apperrors "github.com/matzehuels/langstats/pkg/errors"
	"github.com/matzehuels/langstats/pkg/observability"
)

// DefaultMaxAge is how long a stored snapshot is served before it is recomputed.
const DefaultMaxAge = time.Hour

const refreshKey = "refresh"

// Refresher computes a fresh language ranking.
type Refresher interface {
	Compute(ctx context.Context) ([]Language, error)
}

// RefresherFunc adapts a function to the Refresher interface.
type RefresherFunc func(ctx context.Context) ([]Language, error)

// Compute calls f.
func (f RefresherFunc) Compute(ctx context.Context) ([]Language, error) { return f(ctx) }

// Gate serves the stored snapshot while it is fresh and recomputes it once stale.
// It is safe for concurrent use.
type Gate struct {
	store     Store
	refresher Refresher
	maxAge    time.Duration
	now       func() time.Time
	logger    *log.Logger
	group     singleflight.Group
}

// GateOption configures a Gate.
type GateOption func(*Gate)

// WithMaxAge sets the freshness window. Non-positive values are ignored.
func WithMaxAge(d time.Duration) GateOption {
	return func(g *Gate) {
		if d > 0 {
			g.maxAge = d
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) GateOption { return func(g *Gate) { g.now = now } }

// WithLogger sets the gate logger.
func WithLogger(l *log.Logger) GateOption { return func(g *Gate) { g.logger = l } }

// NewGate creates a gate over store that recomputes stale snapshots with r.
func NewGate(store Store, r Refresher, opts ...GateOption) *Gate {
	g := &Gate{
		store:     store,
		refresher: r,
		maxAge:    DefaultMaxAge,
		now:       time.Now,
		logger:    log.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// MaxAge returns the freshness window.
func (g *Gate) MaxAge() time.Duration { return g.maxAge }

// IsStale reports whether s must be recomputed: it is missing, empty, or
// strictly older than the freshness window.
func (g *Gate) IsStale(s *Snapshot) bool {
	if s.IsEmpty() {
		return true
	}
	return g.now().UnixMilli()-s.Timestamp > g.maxAge.Milliseconds()
}

// Remaining returns how long s stays fresh, or zero if it is already stale.
func (g *Gate) Remaining(s *Snapshot) time.Duration {
	if g.IsStale(s) {
		return 0
	}
	return g.maxAge - s.Age(g.now())
}

// Snapshot returns the stored snapshot if it is fresh. Otherwise it
// recomputes, persists, and returns a new one; refreshed reports which
// path was taken.
func (g *Gate) Snapshot(ctx context.Context) (snap *Snapshot, refreshed bool, err error) {
	stored, err := g.store.Get(ctx)
	switch {
	case errors.Is(err, ErrCorrupt):
		// Recomputing overwrites the bad document.
		g.logger.Warn("discarding unreadable snapshot", "err", err)
		stored = nil
	case err != nil:
		return nil, false, apperrors.Wrap(apperrors.ErrCodeStorage, err, "read snapshot")
	}
	if !g.IsStale(stored) {
		observability.Cache().OnCacheHit(ctx, "snapshot")
		return stored, false, nil
	}
	observability.Cache().OnCacheMiss(ctx, "snapshot")
	if stored != nil {
		g.logger.Debug("snapshot stale", "age", stored.Age(g.now()).Round(time.Second))
	}

	snap, err = g.Refresh(ctx)
	if err != nil {
		return nil, false, err
	}
	return snap, true, nil
}

// Refresh recomputes and persists the snapshot regardless of its age.
// Concurrent callers share one computation.
func (g *Gate) Refresh(ctx context.Context) (*Snapshot, error) {
	// The shared computation must outlive any single caller.
	shared := context.WithoutCancel(ctx)
	ch := g.group.DoChan(refreshKey, func() (any, error) {
		return g.compute(shared)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Snapshot).Clone(), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (g *Gate) compute(ctx context.Context) (*Snapshot, error) {
	start := time.Now()
	observability.Refresh().OnRefreshStart(ctx)

	langs, err := g.refresher.Compute(ctx)
	if err != nil {
		observability.Refresh().OnRefreshComplete(ctx, 0, time.Since(start), err)
		return nil, fmt.Errorf("compute snapshot: %w", err)
	}

	snap := New(g.now(), langs)
	if err := g.store.Set(ctx, snap); err != nil {
		// The new ranking is still served; the next request retries the write.
		g.logger.Error("persist snapshot", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "snapshot", len(langs))
	}

	elapsed := time.Since(start)
	observability.Refresh().OnRefreshComplete(ctx, len(langs), elapsed, nil)
	g.logger.Info("refreshed snapshot", "languages", len(langs), "duration", elapsed.Round(time.Millisecond))
	return snap, nil
}
