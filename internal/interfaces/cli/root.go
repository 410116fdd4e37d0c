package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"shoebox.dev/cli/internal/core/domain/plugin"
	"shoebox.dev/cli/internal/interfaces/di"
)

var (
	Version   = "dev"     // Overridden by ldflags
	BuildTime = "unknown" // Overridden by ldflags
)

// app is shared by every subcommand; the container is built in
// PersistentPreRunE once flags are parsed.
type app struct {
	configPath string
	dryRun     bool
	appDir     string
	debug      bool

	container *di.Container
}

// OutcomeError is returned when a hook run did not fully succeed
type OutcomeError struct {
	Outcome plugin.Outcome
}

func (e *OutcomeError) Error() string {
	return fmt.Sprintf("plugin hooks finished with %s failures", e.Outcome)
}

// ExitCode maps the outcome onto the process exit status
func (e *OutcomeError) ExitCode() int {
	if e.Outcome.IsFatal() {
		return 2
	}
	return 1
}

// NewRootCommand represents the base command when called without any subcommands
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "shoebox",
		Short: "Shoebox - organize photos and videos",
		Long: `Shoebox organizes photo and video libraries by date and location.

User-configured plugins hook into every import: they run before and after each
file is processed and once per batch, and each keeps its own persistent store.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initialize(cmd)
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf("{{.Name}} version {{.Version}}\nBuild time: %s\nGo version: %s\nPlatform: %s/%s\n",
		BuildTime, goVersion(), runtime.GOOS, runtime.GOARCH))

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file path (default is $HOME/.shoebox/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&a.dryRun, "dry-run", false, "Report plugin store changes instead of applying them")
	rootCmd.PersistentFlags().StringVar(&a.appDir, "app-dir", "", "Application directory holding plugin stores")
	rootCmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(newPluginsCommand(a))
	rootCmd.AddCommand(newBatchCommand(a))

	return rootCmd
}

func (a *app) initialize(cmd *cobra.Command) error {
	opts := di.Options{
		ConfigPath: a.configPath,
		AppDir:     a.appDir,
		Debug:      a.debug,
		Notices:    cmd.OutOrStdout(),
	}
	if cmd.Flags().Changed("dry-run") {
		opts.DryRun = &a.dryRun
	}

	container, err := di.NewContainer(cmd.Context(), opts)
	if err != nil {
		return err
	}
	a.container = container
	return nil
}

// run executes fn and then shuts the container down, whether or not fn failed
func (a *app) run(fn func() error) error {
	err := fn()
	if a.container == nil {
		return err
	}
	return errors.Join(err, a.container.Shutdown())
}

// Execute runs the root command and exits with a status reflecting the result
func Execute(ctx context.Context) {
	err := NewRootCommand().ExecuteContext(ctx)
	if err == nil {
		return
	}

	var outcomeErr *OutcomeError
	if errors.As(err, &outcomeErr) {
		os.Exit(outcomeErr.ExitCode())
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// goVersion returns the Go version used to build the binary
func goVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.GoVersion
	}
	return "unknown"
}
