package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoebox.dev/cli/internal/core/domain/plugin"
	"shoebox.dev/cli/internal/core/ports"
)

func TestHookMetrics_CountsByOutcome(t *testing.T) {
	m, err := NewHookMetrics()
	require.NoError(t, err)

	m.ObserveHook("Dummy", ports.HookBefore, plugin.OutcomeOK, time.Millisecond)
	m.ObserveHook("Dummy", ports.HookBefore, plugin.OutcomeOK, time.Millisecond)
	m.ObserveHook("ThrowError", ports.HookBatch, plugin.OutcomeRecoverable, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.invocations.WithLabelValues("Dummy", "before", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.invocations.WithLabelValues("ThrowError", "batch", "recoverable")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.duration))
}

func TestHookMetrics_WriteTextfile(t *testing.T) {
	m, err := NewHookMetrics()
	require.NoError(t, err)
	m.ObserveHook("RuntimeError", ports.HookAfter, plugin.OutcomeFatal, 2*time.Millisecond)

	path := filepath.Join(t.TempDir(), "shoebox.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data),
		`shoebox_plugin_hook_invocations_total{hook="after",outcome="fatal",plugin="RuntimeError"} 1`))
}
