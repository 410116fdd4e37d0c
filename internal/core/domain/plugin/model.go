package plugin

import (
	"context"

	"go.uber.org/zap"
)

// Store is the persistent key-value storage handed to every plugin. Each
// plugin receives a store scoped to its own name.
type Store interface {
	// Get returns the stored value and true, or false when the key is unset
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
	// GetAll returns a snapshot of every stored pair
	GetAll() (map[string]string, error)
}

// Plugin is implemented by every catalog entry. Lifecycle hooks are optional
// and discovered through the BeforeHook, AfterHook and BatchHook interfaces.
type Plugin interface {
	Name() string
	Store() Store
}

// BeforeEvent describes a media file about to be processed
type BeforeEvent struct {
	SourcePath     string
	DestinationDir string
}

// AfterEvent describes a media file once processing has finished
type AfterEvent struct {
	SourcePath     string
	DestinationDir string
	FinalPath      string
	Metadata       map[string]any
}

// BeforeHook is implemented by plugins that run prior to per-file processing
type BeforeHook interface {
	Before(ctx context.Context, event BeforeEvent) error
}

// AfterHook is implemented by plugins that run after per-file processing
type AfterHook interface {
	After(ctx context.Context, event AfterEvent) error
}

// BatchHook is implemented by plugins that run once per overall batch
type BatchHook interface {
	Batch(ctx context.Context) error
}

// Env carries what the registry provides to a plugin at instantiation
type Env struct {
	Name   string
	Store  Store
	Logger *zap.Logger
}

// Base provides the common plumbing for plugins (identity, store, logger).
// Implementations embed it and override only the hooks they need.
type Base struct {
	name   string
	store  Store
	logger *zap.Logger
}

// NewBase seeds the helper from the registry-provided environment
func NewBase(env Env) Base {
	logger := env.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return Base{
		name:   env.Name,
		store:  env.Store,
		logger: logger.With(zap.String("plugin", env.Name)),
	}
}

// Name implements Plugin.Name.
func (b *Base) Name() string {
	return b.name
}

// Store implements Plugin.Store.
func (b *Base) Store() Store {
	return b.store
}

// Logger returns a logger already tagged with the plugin name
func (b *Base) Logger() *zap.Logger {
	if b.logger == nil {
		return zap.NewNop()
	}
	return b.logger
}

// Factory constructs a plugin from the registry-provided environment
type Factory func(env Env) (Plugin, error)
