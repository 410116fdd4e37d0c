package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"shoebox.dev/cli/internal/core/domain/plugin"
	"shoebox.dev/cli/internal/core/ports"
)

// LoadedPlugin pairs a configured name with its live instance
type LoadedPlugin struct {
	Name     string
	Instance plugin.Plugin
}

// SkippedPlugin records a configured name that did not make it into the
// loaded set, and why.
type SkippedPlugin struct {
	Name   string
	Reason error
}

// PluginRegistry turns configured plugin names into live instances, keeping
// configuration order.
type PluginRegistry struct {
	catalog ports.PluginCatalog
	stores  ports.StoreOpener
	logger  *zap.Logger

	loaded    []LoadedPlugin
	instances map[string]plugin.Plugin
	skipped   []SkippedPlugin
}

// NewPluginRegistry creates an empty registry backed by catalog. stores may
// be nil, in which case plugins are built without a store.
func NewPluginRegistry(catalog ports.PluginCatalog, stores ports.StoreOpener, logger *zap.Logger) *PluginRegistry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PluginRegistry{
		catalog:   catalog,
		stores:    stores,
		logger:    logger,
		instances: make(map[string]plugin.Plugin),
	}
}

// Load instantiates every resolvable name in order, replacing any previous
// state. Unknown names are dropped without error, and a plugin that fails to
// construct is dropped without affecting the names around it.
func (r *PluginRegistry) Load(ctx context.Context, names []string) {
	r.loaded = nil
	r.instances = make(map[string]plugin.Plugin, len(names))
	r.skipped = nil

	for _, name := range names {
		if _, exists := r.instances[name]; exists {
			r.logger.Debug("ignoring duplicate plugin entry", zap.String("plugin", name))
			continue
		}

		factory, ok := r.catalog.Lookup(name)
		if !ok {
			r.logger.Debug("ignoring unknown plugin", zap.String("plugin", name))
			r.skipped = append(r.skipped, SkippedPlugin{Name: name, Reason: fmt.Errorf("plugin '%s' not found", name)})
			continue
		}

		instance, err := r.instantiate(name, factory)
		if err != nil {
			r.logger.Warn("failed to load plugin", zap.String("plugin", name), zap.Error(err))
			r.skipped = append(r.skipped, SkippedPlugin{Name: name, Reason: err})
			continue
		}

		r.loaded = append(r.loaded, LoadedPlugin{Name: name, Instance: instance})
		r.instances[name] = instance
	}

	r.logger.Debug("plugins loaded",
		zap.Strings("configured", names),
		zap.Strings("loaded", r.Names()))
}

func (r *PluginRegistry) instantiate(name string, factory plugin.Factory) (instance plugin.Plugin, err error) {
	env := plugin.Env{Name: name, Logger: r.logger}
	if r.stores != nil {
		s, err := r.stores.Open(name)
		if err != nil {
			return nil, fmt.Errorf("failed to open store for plugin '%s': %w", name, err)
		}
		env.Store = s
	}

	defer func() {
		if v := recover(); v != nil {
			instance = nil
			err = fmt.Errorf("failed to construct plugin '%s': %w", name, &plugin.PanicError{Value: v})
		}
	}()

	instance, err = factory(env)
	if err != nil {
		return nil, fmt.Errorf("failed to construct plugin '%s': %w", name, err)
	}
	if instance == nil {
		return nil, fmt.Errorf("failed to construct plugin '%s': factory returned nil", name)
	}
	return instance, nil
}

// Names returns the successfully loaded names in configuration order
func (r *PluginRegistry) Names() []string {
	names := make([]string, 0, len(r.loaded))
	for _, lp := range r.loaded {
		names = append(names, lp.Name)
	}
	return names
}

// Instances returns the loaded plugins keyed by name
func (r *PluginRegistry) Instances() map[string]plugin.Plugin {
	out := make(map[string]plugin.Plugin, len(r.instances))
	for name, p := range r.instances {
		out[name] = p
	}
	return out
}

// Loaded returns the loaded plugins in configuration order
func (r *PluginRegistry) Loaded() []LoadedPlugin {
	return append([]LoadedPlugin{}, r.loaded...)
}

// Get returns the loaded instance for name
func (r *PluginRegistry) Get(name string) (plugin.Plugin, bool) {
	p, ok := r.instances[name]
	return p, ok
}

// Skipped returns configured names that were dropped, in configuration order
func (r *PluginRegistry) Skipped() []SkippedPlugin {
	return append([]SkippedPlugin{}, r.skipped...)
}

// Len returns the number of loaded plugins
func (r *PluginRegistry) Len() int {
	return len(r.loaded)
}
