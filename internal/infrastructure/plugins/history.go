package plugins

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"shoebox.dev/cli/internal/core/domain/plugin"
)

const HistoryName = "History"

// HistoryPlugin records where every processed file ended up. Keys are the
// final paths and values the original source paths, so the store doubles as
// an undo log.
type HistoryPlugin struct {
	plugin.Base
}

// NewHistoryPlugin creates a new history plugin
func NewHistoryPlugin(env plugin.Env) (plugin.Plugin, error) {
	if env.Store == nil {
		return nil, fmt.Errorf("history plugin: store is required")
	}
	return &HistoryPlugin{Base: plugin.NewBase(env)}, nil
}

func (p *HistoryPlugin) After(ctx context.Context, event plugin.AfterEvent) error {
	if event.FinalPath == "" {
		return fmt.Errorf("history plugin: no final path for %s", event.SourcePath)
	}
	if event.FinalPath == event.SourcePath {
		return nil
	}
	if err := p.Store().Set(event.FinalPath, event.SourcePath); err != nil {
		// store failures are fatal: nothing later in the run can be recorded
		return plugin.Fatal(err)
	}
	return nil
}

func (p *HistoryPlugin) Batch(ctx context.Context) error {
	moves, err := p.Store().GetAll()
	if err != nil {
		return plugin.Fatal(err)
	}
	p.Logger().Info("recorded file moves", zap.Int("count", len(moves)))
	return nil
}

// Origin returns the source path a final path was moved from
func (p *HistoryPlugin) Origin(finalPath string) (string, bool, error) {
	return p.Store().Get(finalPath)
}
