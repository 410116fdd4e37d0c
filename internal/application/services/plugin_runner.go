package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"shoebox.dev/cli/internal/core/domain/plugin"
	"shoebox.dev/cli/internal/core/ports"
)

// HookResult is the outcome of invoking one hook on one plugin
type HookResult struct {
	Plugin   string
	Outcome  plugin.Outcome
	Err      error
	Skipped  bool
	Duration time.Duration
}

// Report aggregates a hook run across every loaded plugin
type Report struct {
	Hook    ports.Hook
	Outcome plugin.Outcome
	Results []HookResult
}

// Failures returns the results that did not succeed
func (r Report) Failures() []HookResult {
	var failures []HookResult
	for _, res := range r.Results {
		if res.Outcome.Failed() {
			failures = append(failures, res)
		}
	}
	return failures
}

// PluginRunner invokes lifecycle hooks on the registry's plugins, one at a
// time in registration order. Hook failures never propagate; they are folded
// into the returned Report.
type PluginRunner struct {
	registry *PluginRegistry
	observer ports.HookObserver
	logger   *zap.Logger
}

// NewPluginRunner creates a runner over registry. observer may be nil.
func NewPluginRunner(registry *PluginRegistry, observer ports.HookObserver, logger *zap.Logger) *PluginRunner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PluginRunner{
		registry: registry,
		observer: observer,
		logger:   logger,
	}
}

// RunAllBefore invokes Before on every plugin that implements it
func (r *PluginRunner) RunAllBefore(ctx context.Context, event plugin.BeforeEvent) Report {
	return r.run(ctx, ports.HookBefore, func(p plugin.Plugin) (bool, error) {
		h, ok := p.(plugin.BeforeHook)
		if !ok {
			return false, nil
		}
		return true, h.Before(ctx, event)
	})
}

// RunAllAfter invokes After on every plugin that implements it
func (r *PluginRunner) RunAllAfter(ctx context.Context, event plugin.AfterEvent) Report {
	return r.run(ctx, ports.HookAfter, func(p plugin.Plugin) (bool, error) {
		h, ok := p.(plugin.AfterHook)
		if !ok {
			return false, nil
		}
		return true, h.After(ctx, event)
	})
}

// RunBatch invokes Batch on every plugin that implements it
func (r *PluginRunner) RunBatch(ctx context.Context) Report {
	return r.run(ctx, ports.HookBatch, func(p plugin.Plugin) (bool, error) {
		h, ok := p.(plugin.BatchHook)
		if !ok {
			return false, nil
		}
		return true, h.Batch(ctx)
	})
}

func (r *PluginRunner) run(ctx context.Context, hook ports.Hook, invoke func(plugin.Plugin) (bool, error)) Report {
	report := Report{Hook: hook, Outcome: plugin.OutcomeOK}

	for _, lp := range r.registry.Loaded() {
		start := time.Now()
		implemented, err := safeInvoke(lp.Instance, invoke)
		result := HookResult{
			Plugin:   lp.Name,
			Outcome:  plugin.Classify(err),
			Err:      err,
			Skipped:  !implemented && err == nil,
			Duration: time.Since(start),
		}
		report.Results = append(report.Results, result)
		report.Outcome = report.Outcome.Merge(result.Outcome)

		fields := []zap.Field{
			zap.String("plugin", lp.Name),
			zap.String("hook", string(hook)),
			zap.Duration("elapsed", result.Duration),
		}
		switch result.Outcome {
		case plugin.OutcomeFatal:
			r.logger.Error("plugin hook failed fatally", append(fields, zap.Error(err))...)
		case plugin.OutcomeRecoverable:
			r.logger.Warn("plugin hook failed", append(fields, zap.Error(err))...)
		default:
			if !result.Skipped {
				r.logger.Debug("plugin hook completed", fields...)
			}
		}

		if r.observer != nil && !result.Skipped {
			r.observer.ObserveHook(lp.Name, hook, result.Outcome, result.Duration)
		}
	}

	return report
}

// safeInvoke converts a panicking hook into a fatal error
func safeInvoke(p plugin.Plugin, invoke func(plugin.Plugin) (bool, error)) (implemented bool, err error) {
	defer func() {
		if v := recover(); v != nil {
			implemented = true
			err = &plugin.PanicError{Value: v}
		}
	}()
	return invoke(p)
}
