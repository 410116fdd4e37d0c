package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Plugins(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected []string
	}{
		{name: "EmptyFile_NoPlugins", content: "\n", expected: []string{}},
		{name: "KeyWithoutValue_NoPlugins", content: "plugins:\n", expected: []string{}},
		{name: "EmptyString_NoPlugins", content: "plugins: \"\"\n", expected: []string{}},
		{name: "Single", content: "plugins: Dummy\n", expected: []string{"Dummy"}},
		{name: "CommaSeparated", content: "plugins: ThrowError,Dummy,DNE\n", expected: []string{"ThrowError", "Dummy", "DNE"}},
		{name: "CommaSeparatedWithBlanks", content: "plugins: \" ThrowError , ,Dummy \"\n", expected: []string{"ThrowError", "Dummy"}},
		{name: "Sequence", content: "plugins:\n  - ThrowError\n  - Dummy\n", expected: []string{"ThrowError", "Dummy"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvPrefix+"PLUGINS", "")
			os.Unsetenv(EnvPrefix + "PLUGINS")

			cfg, err := Load(writeConfig(t, tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, []string(cfg.Plugins))
		})
	}
}

func TestLoad_InvalidPluginsSetting(t *testing.T) {
	_, err := Load(writeConfig(t, "plugins:\n  a: b\n"))
	assert.Error(t, err)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv(EnvPrefix+"APP_DIR", "")
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Empty(t, cfg.Plugins)
	assert.NotNil(t, cfg.Plugins)
	assert.False(t, cfg.DryRun)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NotEmpty(t, cfg.ApplicationDir)
}

func TestLoad_FileValues(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(writeConfig(t, `
plugins: Dummy
dry_run: true
application_dir: `+dir+`
log_level: debug
log_format: json
metrics_textfile: /tmp/shoebox.prom
`))
	require.NoError(t, err)

	assert.True(t, cfg.DryRun)
	assert.Equal(t, dir, cfg.ApplicationDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "/tmp/shoebox.prom", cfg.MetricsTextfile)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvPrefix+"PLUGINS", "History, Dummy")
	t.Setenv(EnvPrefix+"DRY_RUN", "true")
	t.Setenv(EnvPrefix+"APP_DIR", dir)
	t.Setenv(EnvPrefix+"LOG_LEVEL", "warn")

	cfg, err := Load(writeConfig(t, "plugins: ThrowError\ndry_run: false\nlog_level: debug\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"History", "Dummy"}, []string(cfg.Plugins))
	assert.True(t, cfg.DryRun)
	assert.Equal(t, dir, cfg.ApplicationDir)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_InvalidDryRunEnv(t *testing.T) {
	t.Setenv(EnvPrefix+"DRY_RUN", "sometimes")
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestPath_Precedence(t *testing.T) {
	t.Setenv(EnvPrefix+"CONFIG_PATH", "/from/env.yaml")
	assert.Equal(t, "/explicit.yaml", Path("/explicit.yaml"))
	assert.Equal(t, "/from/env.yaml", Path(""))
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "media"), expandHome("~/media"))
	assert.Equal(t, "/abs", expandHome("/abs"))
}
