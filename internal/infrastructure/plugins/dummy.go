package plugins

import (
	"context"

	"shoebox.dev/cli/internal/core/domain/plugin"
)

const DummyName = "Dummy"

// DummyPlugin implements every hook without side effects apart from
// remembering that Before ran.
type DummyPlugin struct {
	plugin.Base
	BeforeRan bool
}

// NewDummyPlugin creates a new dummy plugin
func NewDummyPlugin(env plugin.Env) (plugin.Plugin, error) {
	return &DummyPlugin{Base: plugin.NewBase(env)}, nil
}

func (p *DummyPlugin) Before(ctx context.Context, event plugin.BeforeEvent) error {
	p.BeforeRan = true
	return nil
}

func (p *DummyPlugin) After(ctx context.Context, event plugin.AfterEvent) error {
	return nil
}

func (p *DummyPlugin) Batch(ctx context.Context) error {
	return nil
}
