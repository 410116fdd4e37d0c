package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"shoebox.dev/cli/internal/core/domain/plugin"
)

func newPluginsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plugins",
		Short: "Inspect and exercise plugins",
		Long: `Inspect the built-in plugin catalog, run lifecycle hooks by hand and
read or edit a plugin's persistent store.

Plugins are enabled through the "plugins" setting of the configuration file,
either as a list or as a comma-separated string.`,
		Example: `  # Show catalog, configured and loaded plugins
  shoebox plugins list

  # Run before hooks as if a file were about to be imported
  shoebox plugins run before ~/inbox/IMG_0001.jpg ~/Pictures

  # Show what History recorded
  shoebox plugins db dump History`,
	}

	cmd.AddCommand(newPluginsListCommand(a))
	cmd.AddCommand(newPluginsRunCommand(a))
	cmd.AddCommand(newPluginsDBCommand(a))

	return cmd
}

func newPluginsListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalog, configured and loaded plugins",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(func() error {
				c := a.container
				w := cmd.OutOrStdout()

				loaded := map[string]bool{}
				for _, name := range c.Registry.Names() {
					loaded[name] = true
				}

				fmt.Fprintln(w, headerStyle.Render("Available plugins"))
				for _, name := range c.Catalog.Names() {
					status := mutedStyle.Render("disabled")
					if loaded[name] {
						status = okStyle.Render("enabled")
					}
					fmt.Fprintf(w, "  %s %s\n", nameStyle.Render(name), status)
				}

				fmt.Fprintln(w, headerStyle.Render("Load order"))
				if c.Registry.Len() == 0 {
					fmt.Fprintln(w, mutedStyle.Render("  no plugins loaded"))
				}
				for i, name := range c.Registry.Names() {
					fmt.Fprintf(w, "  %d. %s\n", i+1, name)
				}

				skipped := c.Registry.Skipped()
				if len(skipped) > 0 {
					fmt.Fprintln(w, headerStyle.Render("Ignored"))
					sort.SliceStable(skipped, func(i, j int) bool { return skipped[i].Name < skipped[j].Name })
					for _, s := range skipped {
						fmt.Fprintf(w, "  %s %s\n", nameStyle.Render(s.Name), recoverableStyle.Render(s.Reason.Error()))
					}
				}
				return nil
			})
		},
	}
}

func newPluginsRunCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a lifecycle hook on every loaded plugin",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "before <source> <destination>",
		Short: "Run before hooks for a file about to be processed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(func() error {
				report := a.container.Runner.RunAllBefore(cmd.Context(), plugin.BeforeEvent{
					SourcePath:     args[0],
					DestinationDir: args[1],
				})
				printReport(cmd.OutOrStdout(), report)
				return reportError(report)
			})
		},
	})

	var metadata []string
	after := &cobra.Command{
		Use:   "after <source> <destination> <final>",
		Short: "Run after hooks for a processed file",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, err := parseMetadata(metadata)
			if err != nil {
				return err
			}
			return a.run(func() error {
				report := a.container.Runner.RunAllAfter(cmd.Context(), plugin.AfterEvent{
					SourcePath:     args[0],
					DestinationDir: args[1],
					FinalPath:      args[2],
					Metadata:       meta,
				})
				printReport(cmd.OutOrStdout(), report)
				return reportError(report)
			})
		},
	}
	after.Flags().StringArrayVar(&metadata, "meta", nil, "Metadata passed to plugins as key=value (repeatable)")
	cmd.AddCommand(after)

	return cmd
}

func parseMetadata(pairs []string) (map[string]any, error) {
	meta := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid metadata %q: expected key=value", pair)
		}
		meta[key] = value
	}
	return meta, nil
}
