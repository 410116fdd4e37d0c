package ports

import (
	"time"

	"shoebox.dev/cli/internal/core/domain/plugin"
)

// Hook names a lifecycle extension point
type Hook string

const (
	HookBefore Hook = "before"
	HookAfter  Hook = "after"
	HookBatch  Hook = "batch"
)

// StoreOpener returns the persistent store for a plugin namespace. Opening
// the same namespace twice must yield a store backed by the same file.
type StoreOpener interface {
	Open(namespace string) (plugin.Store, error)
}

// HookObserver receives one observation per hook invocation
type HookObserver interface {
	ObserveHook(pluginName string, hook Hook, outcome plugin.Outcome, elapsed time.Duration)
}

// PluginCatalog resolves configured plugin names to constructors. An unknown
// name yields false rather than an error.
type PluginCatalog interface {
	Lookup(name string) (plugin.Factory, bool)
}
