package di

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shoebox.dev/cli/internal/application/services"
	"shoebox.dev/cli/internal/config"
	"shoebox.dev/cli/internal/core/domain/runmode"
	"shoebox.dev/cli/internal/infrastructure/metrics"
	"shoebox.dev/cli/internal/infrastructure/plugins"
	"shoebox.dev/cli/internal/infrastructure/store"
	"shoebox.dev/cli/internal/logging"
)

// Options carries command-line overrides applied on top of the loaded configuration
type Options struct {
	ConfigPath string
	// DryRun overrides the configured value when non-nil
	DryRun *bool
	AppDir string
	Debug  bool
	// Notices receives dry-run notices; stdout when nil
	Notices io.Writer
	// Logger replaces the configured logger when non-nil
	Logger *zap.Logger
}

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *zap.Logger
	RunID  string

	DryRun  *runmode.DryRun
	Stores  *store.Opener
	Catalog *plugins.Catalog
	Metrics *metrics.HookMetrics

	Registry *services.PluginRegistry
	Runner   *services.PluginRunner
}

// NewContainer loads configuration and wires the plugin runtime. Configured
// plugins are loaded before returning.
func NewContainer(ctx context.Context, opts Options) (*Container, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if opts.DryRun != nil {
		cfg.DryRun = *opts.DryRun
	}
	if opts.AppDir != "" {
		cfg.ApplicationDir = opts.AppDir
	}

	logger := opts.Logger
	if logger == nil {
		logger, err = logging.New(logging.Options{
			Level:  cfg.LogLevel,
			Format: cfg.LogFormat,
			Debug:  opts.Debug,
		})
		if err != nil {
			return nil, err
		}
	}

	c := &Container{
		Config: cfg,
		RunID:  uuid.NewString(),
	}
	c.Logger = logger.With(zap.String("run_id", c.RunID))

	if err := c.initializeComponents(opts); err != nil {
		return nil, fmt.Errorf("failed to initialize components: %w", err)
	}

	c.Registry.Load(ctx, c.Config.Plugins)
	c.Logger.Debug("container initialized",
		zap.Bool("dry_run", c.DryRun.Enabled()),
		zap.String("application_dir", c.Config.ApplicationDir))

	return c, nil
}

func (c *Container) initializeComponents(opts Options) error {
	c.DryRun = runmode.NewDryRun(c.Config.DryRun)

	notices := opts.Notices
	if notices == nil {
		notices = os.Stdout
	}
	c.Stores = store.NewOpener(c.Config.ApplicationDir, c.DryRun, notices, c.Logger)
	c.Catalog = plugins.Builtin()

	hookMetrics, err := metrics.NewHookMetrics()
	if err != nil {
		return err
	}
	c.Metrics = hookMetrics

	c.Registry = services.NewPluginRegistry(c.Catalog, c.Stores, c.Logger)
	c.Runner = services.NewPluginRunner(c.Registry, c.Metrics, c.Logger)
	return nil
}

// Shutdown flushes metrics and logs
func (c *Container) Shutdown() error {
	var errs []error
	if path := c.Config.MetricsTextfile; path != "" {
		if err := c.Metrics.WriteTextfile(path); err != nil {
			errs = append(errs, err)
		}
	}
	// Sync on a terminal stderr returns EINVAL or ENOTTY
	if err := c.Logger.Sync(); err != nil && !errors.Is(err, syscall.EINVAL) && !errors.Is(err, syscall.ENOTTY) {
		errs = append(errs, fmt.Errorf("failed to flush logs: %w", err))
	}
	return errors.Join(errs...)
}
