// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers can register
// hooks at startup to receive events about graph builds and watch-loop
// activity.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetBuildHooks(&myBuildHooks{})
//	    observability.SetWatchHooks(&myWatchHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Build().OnBuildStart(root, revision)
//	// ... build the graph ...
//	observability.Build().OnBuildComplete(root, revision, nodes, edges, duration, err)
package observability

import (
	"sync"
	"time"
)

// =============================================================================
// Build Hooks
// =============================================================================

// BuildHooks receives events from graph construction.
type BuildHooks interface {
	// OnBuildStart records the start of a graph build.
	OnBuildStart(root string, revision uint64)

	// OnBuildComplete records the outcome of a graph build. On failure err is
	// non-nil and the node/edge counts are zero.
	OnBuildComplete(root string, revision uint64, nodes, edges int, duration time.Duration, err error)
}

// =============================================================================
// Watch Hooks
// =============================================================================

// WatchHooks receives events from watch schedulers. The watcherID is the
// unique identifier assigned to the scheduler instance at spawn time.
type WatchHooks interface {
	// OnTrigger records a trigger being merged into the pending state.
	OnTrigger(watcherID, trigger string)

	// OnRefresh records a refresh attempt after the debounce deadline passed.
	OnRefresh(watcherID, trigger string, revision uint64, duration time.Duration, err error)

	// OnShutdown records scheduler termination.
	OnShutdown(watcherID string)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopBuildHooks is a no-op implementation of BuildHooks.
type NoopBuildHooks struct{}

func (NoopBuildHooks) OnBuildStart(string, uint64)                                    {}
func (NoopBuildHooks) OnBuildComplete(string, uint64, int, int, time.Duration, error) {}

// NoopWatchHooks is a no-op implementation of WatchHooks.
type NoopWatchHooks struct{}

func (NoopWatchHooks) OnTrigger(string, string)                               {}
func (NoopWatchHooks) OnRefresh(string, string, uint64, time.Duration, error) {}
func (NoopWatchHooks) OnShutdown(string)                                      {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	buildHooks BuildHooks = NoopBuildHooks{}
	watchHooks WatchHooks = NoopWatchHooks{}
	hooksMu    sync.RWMutex
)

// SetBuildHooks registers custom build hooks.
// This should be called once at application startup before any builds.
func SetBuildHooks(h BuildHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		buildHooks = h
	}
}

// SetWatchHooks registers custom watch hooks.
// This should be called once at application startup before spawning watchers.
func SetWatchHooks(h WatchHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		watchHooks = h
	}
}

// Build returns the registered build hooks.
func Build() BuildHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return buildHooks
}

// Watch returns the registered watch hooks.
func Watch() WatchHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return watchHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	buildHooks = NoopBuildHooks{}
	watchHooks = NoopWatchHooks{}
}
