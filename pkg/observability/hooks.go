// Package observability provides hooks for metrics and logging.
//
// The package uses a simple hooks pattern: hook interfaces for the
// event categories, no-op defaults, and a registry populated by main at
// startup. Libraries emit events without depending on any particular
// observability backend, and import cycles stay impossible because
// registration happens at the edge.
//
// Usage:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnPositionStart(ctx, postCount, characterCount)
//	// ... place posts ...
//	observability.Pipeline().OnPositionComplete(ctx, postCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the spatialization pipeline.
type PipelineHooks interface {
	// Prepare events
	OnPrepareStart(ctx context.Context, nodeCount int)
	OnPrepareComplete(ctx context.Context, nodeCount int, duration time.Duration, err error)

	// Position events
	OnPositionStart(ctx context.Context, postCount, characterCount int)
	OnPositionComplete(ctx context.Context, postCount int, duration time.Duration, err error)

	// Field events
	OnFieldStart(ctx context.Context, resolution int)
	OnFieldComplete(ctx context.Context, resolution int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnPrepareStart(context.Context, int)                           {}
func (NoopPipelineHooks) OnPrepareComplete(context.Context, int, time.Duration, error)  {}
func (NoopPipelineHooks) OnPositionStart(context.Context, int, int)                     {}
func (NoopPipelineHooks) OnPositionComplete(context.Context, int, time.Duration, error) {}
func (NoopPipelineHooks) OnFieldStart(context.Context, int)                             {}
func (NoopPipelineHooks) OnFieldComplete(context.Context, int, time.Duration, error)    {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
}
