package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoebox.dev/cli/internal/core/domain/plugin"
)

type testEnv struct {
	configPath string
	appDir     string
}

func newTestEnv(t *testing.T, config string) testEnv {
	t.Helper()
	t.Setenv("SHOEBOX_PLUGINS", "")
	os.Unsetenv("SHOEBOX_PLUGINS")
	t.Setenv("SHOEBOX_DRY_RUN", "")
	t.Setenv("SHOEBOX_LOG_LEVEL", "error")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(config), 0644))
	return testEnv{configPath: path, appDir: filepath.Join(dir, "app")}
}

func (e testEnv) execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--config", e.configPath, "--app-dir", e.appDir}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestPluginsList(t *testing.T) {
	env := newTestEnv(t, "plugins: ThrowError,Dummy,DNE\n")

	out, err := env.execute(t, "plugins", "list")
	require.NoError(t, err)

	assert.Contains(t, out, "Available plugins")
	assert.Contains(t, out, "1. ThrowError")
	assert.Contains(t, out, "2. Dummy")
	assert.Contains(t, out, "DNE")
	assert.Contains(t, out, "not found")
}

func TestBatch_Outcomes(t *testing.T) {
	tests := []struct {
		name     string
		plugins  string
		expected plugin.Outcome
	}{
		{name: "Dummy_Succeeds", plugins: "Dummy", expected: plugin.OutcomeOK},
		{name: "ThrowError_Recoverable", plugins: "Dummy,ThrowError", expected: plugin.OutcomeRecoverable},
		{name: "RuntimeError_Fatal", plugins: "ThrowError,RuntimeError", expected: plugin.OutcomeFatal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, "plugins: "+tt.plugins+"\n")

			out, err := env.execute(t, "batch")
			assert.Contains(t, out, "result: "+tt.expected.String())

			if tt.expected == plugin.OutcomeOK {
				require.NoError(t, err)
				return
			}
			var outcomeErr *OutcomeError
			require.ErrorAs(t, err, &outcomeErr)
			assert.Equal(t, tt.expected, outcomeErr.Outcome)
		})
	}
}

func TestOutcomeError_ExitCode(t *testing.T) {
	assert.Equal(t, 1, (&OutcomeError{Outcome: plugin.OutcomeRecoverable}).ExitCode())
	assert.Equal(t, 2, (&OutcomeError{Outcome: plugin.OutcomeFatal}).ExitCode())
}

func TestPluginsRunAfter_RecordsHistory(t *testing.T) {
	env := newTestEnv(t, "plugins: [History]\n")

	out, err := env.execute(t, "plugins", "run", "after", "/inbox/a.jpg", "/photos", "/photos/2024/a.jpg", "--meta", "camera=x100")
	require.NoError(t, err)
	assert.Contains(t, out, "after hooks")

	out, err = env.execute(t, "plugins", "db", "get", "History", "/photos/2024/a.jpg")
	require.NoError(t, err)
	assert.Equal(t, "/inbox/a.jpg\n", out)
}

func TestPluginsRunBefore_NoPlugins(t *testing.T) {
	env := newTestEnv(t, "")

	out, err := env.execute(t, "plugins", "run", "before", "a.jpg", "/out")
	require.NoError(t, err)
	assert.Contains(t, out, "no plugins loaded")
	assert.Contains(t, out, "result: ok")
}

func TestPluginsDB_RoundTrip(t *testing.T) {
	env := newTestEnv(t, "")

	_, err := env.execute(t, "plugins", "db", "set", "Dummy", "a", "1")
	require.NoError(t, err)
	_, err = env.execute(t, "plugins", "db", "set", "Dummy", "b", "2")
	require.NoError(t, err)

	out, err := env.execute(t, "plugins", "db", "dump", "Dummy")
	require.NoError(t, err)
	assert.Equal(t, "a\t1\nb\t2\n", out)

	_, err = env.execute(t, "plugins", "db", "delete", "Dummy", "a")
	require.NoError(t, err)
	_, err = env.execute(t, "plugins", "db", "get", "Dummy", "a")
	assert.Error(t, err)

	_, err = env.execute(t, "plugins", "db", "dump", "DNE")
	assert.Error(t, err)
}

func TestPluginsDB_DryRunNotices(t *testing.T) {
	env := newTestEnv(t, "")

	_, err := env.execute(t, "plugins", "db", "set", "Dummy", "test_key", "test_value")
	require.NoError(t, err)

	out, err := env.execute(t, "--dry-run", "plugins", "db", "delete", "Dummy", "test_key")
	require.NoError(t, err)
	assert.Equal(t, "[DRY-RUN][Dummy] Would delete from plugin database: test_key\n", out)

	out, err = env.execute(t, "--dry-run", "plugins", "db", "set", "Dummy", "other", "value")
	require.NoError(t, err)
	assert.Equal(t, "[DRY-RUN][Dummy] Would save to database 'other': value\n", out)

	out, err = env.execute(t, "plugins", "db", "dump", "Dummy")
	require.NoError(t, err)
	assert.Equal(t, "test_key\ttest_value\n", out)
}

func TestParseMetadata(t *testing.T) {
	meta, err := parseMetadata([]string{"camera=x100", "note=a=b"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"camera": "x100", "note": "a=b"}, meta)

	_, err = parseMetadata([]string{"broken"})
	assert.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "key=value"))
}
