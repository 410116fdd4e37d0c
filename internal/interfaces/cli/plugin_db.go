package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"shoebox.dev/cli/internal/core/domain/plugin"
)

func newPluginsDBCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Read or edit a plugin's persistent store",
		Long: `Read or edit a plugin's persistent store.

With --dry-run, set and delete only report what they would change.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get <plugin> <key>",
		Short: "Print a stored value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(args[0], func(s plugin.Store) error {
				value, ok, err := s.Get(args[1])
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("key '%s' not set for plugin '%s'", args[1], args[0])
				}
				fmt.Fprintln(cmd.OutOrStdout(), value)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <plugin> <key> <value>",
		Short: "Store a value",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(args[0], func(s plugin.Store) error {
				return s.Set(args[1], args[2])
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <plugin> <key>",
		Short: "Remove a stored value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(args[0], func(s plugin.Store) error {
				return s.Delete(args[1])
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "dump <plugin>",
		Short: "Print every stored pair",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(args[0], func(s plugin.Store) error {
				all, err := s.GetAll()
				if err != nil {
					return err
				}
				keys := make([]string, 0, len(all))
				for k := range all {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", k, all[k])
				}
				return nil
			})
		},
	})

	return cmd
}

// withStore opens the store of a catalog plugin, whether or not it is enabled
func (a *app) withStore(name string, fn func(plugin.Store) error) error {
	return a.run(func() error {
		if _, ok := a.container.Catalog.Lookup(name); !ok {
			return fmt.Errorf("unknown plugin '%s'", name)
		}
		s, err := a.container.Stores.Open(name)
		if err != nil {
			return err
		}
		return fn(s)
	})
}
