// Package observability provides hooks for metrics and tracing.
//
// Libraries emit events through package-level hook registries; the binary
// decides which backend receives them. Without registration every hook is a
// no-op, so packages such as snapshot and integrations stay free of any
// metrics dependency.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    metrics.NewManager().Register()
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Refresh().OnRefreshStart(ctx)
//	// ... aggregate and rank ...
//	observability.Refresh().OnRefreshComplete(ctx, len(langs), duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Refresh Hooks
// =============================================================================

// RefreshHooks receives events from the snapshot refresh pipeline.
type RefreshHooks interface {
	// Refresh events
	OnRefreshStart(ctx context.Context)
	OnRefreshComplete(ctx context.Context, languages int, duration time.Duration, err error)

	// Aggregation events
	OnAggregate(ctx context.Context, repos, languages int, totalBytes int64)

	// Render events
	OnRender(ctx context.Context, languages, size int, duration time.Duration)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from snapshot cache operations.
type CacheHooks interface {
	// OnCacheHit records a fresh snapshot being served.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a missing or stale snapshot.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a snapshot write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from upstream HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopRefreshHooks is a no-op implementation of RefreshHooks.
type NoopRefreshHooks struct{}

func (NoopRefreshHooks) OnRefreshStart(context.Context)                                {}
func (NoopRefreshHooks) OnRefreshComplete(context.Context, int, time.Duration, error) {}
func (NoopRefreshHooks) OnAggregate(context.Context, int, int, int64)                 {}
func (NoopRefreshHooks) OnRender(context.Context, int, int, time.Duration)            {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	refreshHooks RefreshHooks = NoopRefreshHooks{}
	cacheHooks   CacheHooks   = NoopCacheHooks{}
	httpHooks    HTTPHooks    = NoopHTTPHooks{}
	hooksMu      sync.RWMutex
)

// SetRefreshHooks registers custom refresh hooks.
// This should be called once at application startup.
func SetRefreshHooks(h RefreshHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		refreshHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Refresh returns the registered refresh hooks.
func Refresh() RefreshHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return refreshHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	refreshHooks = NoopRefreshHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
