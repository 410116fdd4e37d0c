// Package metrics exposes plugin hook activity as Prometheus metrics. The CLI
// is short-lived, so metrics are exported by writing a node-exporter textfile
// at the end of a run rather than by serving an endpoint.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"shoebox.dev/cli/internal/core/domain/plugin"
	"shoebox.dev/cli/internal/core/ports"
)

const namespace = "shoebox"

// HookMetrics implements ports.HookObserver
type HookMetrics struct {
	invocations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	registry    *prometheus.Registry
}

// NewHookMetrics creates the collectors and registers them on a dedicated registry
func NewHookMetrics() (*HookMetrics, error) {
	m := &HookMetrics{
		invocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "plugin",
			Name:      "hook_invocations_total",
			Help:      "Plugin hook invocations by plugin, hook and outcome.",
		}, []string{"plugin", "hook", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "plugin",
			Name:      "hook_duration_seconds",
			Help:      "Time spent inside plugin hooks.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"plugin", "hook"}),
		registry: prometheus.NewRegistry(),
	}

	for _, c := range []prometheus.Collector{m.invocations, m.duration} {
		if err := m.registry.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register hook metrics: %w", err)
		}
	}
	return m, nil
}

// ObserveHook implements ports.HookObserver.
func (m *HookMetrics) ObserveHook(pluginName string, hook ports.Hook, outcome plugin.Outcome, elapsed time.Duration) {
	m.invocations.WithLabelValues(pluginName, string(hook), outcome.String()).Inc()
	m.duration.WithLabelValues(pluginName, string(hook)).Observe(elapsed.Seconds())
}

// Gatherer returns the registry holding the hook collectors
func (m *HookMetrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes the current metrics in the text exposition format
func (m *HookMetrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
