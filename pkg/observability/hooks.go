// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about tree construction, partitioner calls, and tree
// storage.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetBuildHooks(&myBuildHooks{})
//	    observability.SetStoreHooks(&myStoreHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Build().OnPartitionStart(ctx, vertices, parts)
//	// ... call the partitioner ...
//	observability.Build().OnPartitionComplete(ctx, vertices, parts, edgeCut, duration)
//
// Build hooks are called from the builder's worker goroutines; implementations
// must be safe for concurrent use.
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Build Hooks
// =============================================================================

// BuildHooks receives events from D&C tree construction.
type BuildHooks interface {
	// Whole-mesh events
	OnBuildStart(ctx context.Context, nbElem, nbNodes int)
	OnBuildComplete(ctx context.Context, nbElem, nbNodes, leaves int, duration time.Duration, err error)

	// Partitioner events, one pair per call (top level, separators, refinements)
	OnPartitionStart(ctx context.Context, vertices, parts int)
	OnPartitionComplete(ctx context.Context, vertices, parts, edgeCut int, duration time.Duration)
}

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from tree storage operations.
type StoreHooks interface {
	// OnStoreHit records a successful tree load.
	OnStoreHit(ctx context.Context, backend string)

	// OnStoreMiss records a lookup for a key that is not stored.
	OnStoreMiss(ctx context.Context, backend string)

	// OnStoreSet records a tree write.
	OnStoreSet(ctx context.Context, backend string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopBuildHooks is a no-op implementation of BuildHooks.
type NoopBuildHooks struct{}

func (NoopBuildHooks) OnBuildStart(context.Context, int, int) {}
func (NoopBuildHooks) OnBuildComplete(context.Context, int, int, int, time.Duration, error) {
}
func (NoopBuildHooks) OnPartitionStart(context.Context, int, int)                          {}
func (NoopBuildHooks) OnPartitionComplete(context.Context, int, int, int, time.Duration) {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnStoreHit(context.Context, string)      {}
func (NoopStoreHooks) OnStoreMiss(context.Context, string)     {}
func (NoopStoreHooks) OnStoreSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	buildHooks BuildHooks = NoopBuildHooks{}
	storeHooks StoreHooks = NoopStoreHooks{}
	hooksMu    sync.RWMutex
)

// SetBuildHooks registers custom build hooks.
// This should be called once at application startup before any tree is built.
func SetBuildHooks(h BuildHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		buildHooks = h
	}
}

// SetStoreHooks registers custom store hooks.
// This should be called once at application startup before any store operations.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// Build returns the registered build hooks.
func Build() BuildHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return buildHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	buildHooks = NoopBuildHooks{}
	storeHooks = NoopStoreHooks{}
}
