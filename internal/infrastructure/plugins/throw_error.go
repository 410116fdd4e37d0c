package plugins

import (
	"context"
	"errors"

	"shoebox.dev/cli/internal/core/domain/plugin"
)

const (
	ThrowErrorName   = "ThrowError"
	RuntimeErrorName = "RuntimeError"
)

// ErrThrowError is returned by every ThrowError hook
var ErrThrowError = errors.New("throw error plugin: sample recoverable failure")

// ThrowErrorPlugin fails every hook with a recoverable error
type ThrowErrorPlugin struct {
	plugin.Base
}

// NewThrowErrorPlugin creates a plugin whose hooks always fail
func NewThrowErrorPlugin(env plugin.Env) (plugin.Plugin, error) {
	return &ThrowErrorPlugin{Base: plugin.NewBase(env)}, nil
}

func (p *ThrowErrorPlugin) Before(ctx context.Context, event plugin.BeforeEvent) error {
	return ErrThrowError
}

func (p *ThrowErrorPlugin) After(ctx context.Context, event plugin.AfterEvent) error {
	return ErrThrowError
}

func (p *ThrowErrorPlugin) Batch(ctx context.Context) error {
	return ErrThrowError
}

// RuntimeErrorPlugin fails every hook with a fatal error
type RuntimeErrorPlugin struct {
	plugin.Base
}

// NewRuntimeErrorPlugin creates a plugin whose hooks always fail fatally
func NewRuntimeErrorPlugin(env plugin.Env) (plugin.Plugin, error) {
	return &RuntimeErrorPlugin{Base: plugin.NewBase(env)}, nil
}

func (p *RuntimeErrorPlugin) Before(ctx context.Context, event plugin.BeforeEvent) error {
	return plugin.Fatalf("runtime error plugin: before %s", event.SourcePath)
}

func (p *RuntimeErrorPlugin) After(ctx context.Context, event plugin.AfterEvent) error {
	return plugin.Fatalf("runtime error plugin: after %s", event.SourcePath)
}

func (p *RuntimeErrorPlugin) Batch(ctx context.Context) error {
	return plugin.Fatalf("runtime error plugin: batch")
}
