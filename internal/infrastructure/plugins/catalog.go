package plugins

import (
	"sort"

	"shoebox.dev/cli/internal/core/domain/plugin"
)

// builtins is the closed set of plugins compiled into the binary. Adding a
// plugin means adding an entry here and rebuilding.
var builtins = map[string]plugin.Factory{
	DummyName:        NewDummyPlugin,
	ThrowErrorName:   NewThrowErrorPlugin,
	RuntimeErrorName: NewRuntimeErrorPlugin,
	HistoryName:      NewHistoryPlugin,
}

// Catalog maps plugin names to their constructors
type Catalog struct {
	factories map[string]plugin.Factory
}

// NewCatalog creates a catalog from the given entries. Nil factories are ignored.
func NewCatalog(entries map[string]plugin.Factory) *Catalog {
	factories := make(map[string]plugin.Factory, len(entries))
	for name, factory := range entries {
		if name == "" || factory == nil {
			continue
		}
		factories[name] = factory
	}
	return &Catalog{factories: factories}
}

// Builtin returns the catalog of plugins shipped with the binary
func Builtin() *Catalog {
	return NewCatalog(builtins)
}

// Lookup implements ports.PluginCatalog.
func (c *Catalog) Lookup(name string) (plugin.Factory, bool) {
	factory, ok := c.factories[name]
	return factory, ok
}

// Names returns the sorted list of catalog entries
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.factories))
	for name := range c.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
