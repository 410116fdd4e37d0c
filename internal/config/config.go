package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// EnvPrefix prefixes every environment override
	EnvPrefix = "SHOEBOX_"

	defaultDirName  = ".shoebox"
	defaultFileName = "config.yaml"
)

// Config is the parsed application configuration
type Config struct {
	// Plugins is the ordered list of plugin names to load
	Plugins PluginList `yaml:"plugins"`
	DryRun  bool       `yaml:"dry_run"`
	// ApplicationDir holds per-plugin stores and other state
	ApplicationDir  string `yaml:"application_dir"`
	LogLevel        string `yaml:"log_level"`
	LogFormat       string `yaml:"log_format"`
	MetricsTextfile string `yaml:"metrics_textfile"`
}

// PluginList accepts either a YAML sequence or a comma-separated string
type PluginList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *PluginList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*p = nil
			return nil
		}
		*p = ParsePluginList(node.Value)
		return nil
	case yaml.SequenceNode:
		var names []string
		if err := node.Decode(&names); err != nil {
			return fmt.Errorf("invalid plugins list: %w", err)
		}
		*p = ParsePluginList(strings.Join(names, ","))
		return nil
	default:
		return fmt.Errorf("invalid plugins setting at line %d: expected a list or a comma-separated string", node.Line)
	}
}

// ParsePluginList splits a comma-separated list, trimming blanks and
// dropping empty entries. Order is preserved.
func ParsePluginList(raw string) PluginList {
	names := PluginList{}
	for _, part := range strings.Split(raw, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// DefaultApplicationDir returns $HOME/.shoebox, or .shoebox when no home
// directory is available.
func DefaultApplicationDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultDirName
	}
	return filepath.Join(home, defaultDirName)
}

// DefaultConfig returns the configuration used when no file is present
func DefaultConfig() *Config {
	return &Config{
		Plugins:        PluginList{},
		ApplicationDir: DefaultApplicationDir(),
		LogLevel:       "info",
		LogFormat:      "console",
	}
}

// Path resolves the configuration file location: explicit path, then
// SHOEBOX_CONFIG_PATH, then config.yaml in the application directory.
func Path(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(EnvPrefix + "CONFIG_PATH"); env != "" {
		return env
	}
	return filepath.Join(DefaultApplicationDir(), defaultFileName)
}

// Load reads configuration with precedence defaults → file → environment.
// A missing file is not an error.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()
	path := Path(configPath)

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if cfg.Plugins == nil {
		cfg.Plugins = PluginList{}
	}
	if cfg.ApplicationDir == "" {
		cfg.ApplicationDir = DefaultApplicationDir()
	}
	cfg.ApplicationDir = expandHome(cfg.ApplicationDir)

	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv(EnvPrefix + "PLUGINS"); ok {
		cfg.Plugins = ParsePluginList(v)
	}
	if v, ok := os.LookupEnv(EnvPrefix + "DRY_RUN"); ok && v != "" {
		dryRun, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sDRY_RUN %q: %w", EnvPrefix, v, err)
		}
		cfg.DryRun = dryRun
	}
	if v := os.Getenv(EnvPrefix + "APP_DIR"); v != "" {
		cfg.ApplicationDir = v
	}
	if v := os.Getenv(EnvPrefix + "LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvPrefix + "METRICS_TEXTFILE"); v != "" {
		cfg.MetricsTextfile = v
	}
	return nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
