package cli

import (
	"github.com/spf13/cobra"
)

func newBatchCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "batch",
		Short: "Run the batch hook of every configured plugin",
		Long: `Run the batch hook of every configured plugin, in configuration order.

Exits with status 1 when a plugin failed and 2 when a plugin failed fatally.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(func() error {
				report := a.container.Runner.RunBatch(cmd.Context())
				printReport(cmd.OutOrStdout(), report)
				return reportError(report)
			})
		},
	}
}
