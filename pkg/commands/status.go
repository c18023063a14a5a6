package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/streak/pkg/commands/options"
	"tableflip.dev/streak/pkg/runner/status"
)

func addStatus(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	so := &options.StaleOptions{}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current streak.",
		Example: `
streak status
streak status --json
streak status --stale 2d
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			oo.Out = cmd.OutOrStdout()
			stale, err := so.GetStale()
			if err != nil {
				return oo.HandleError(err)
			}
			e, err := openEngine()
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.Close()

			s := status.Status{Engine: e, JSON: oo.JSON, Out: cmd.OutOrStdout(), StaleAfter: stale}
			return oo.HandleError(s.Do(background(cmd)))
		},
	}

	options.AddOutputArg(cmd, oo)
	options.AddStaleArgs(cmd, so)
	topLevel.AddCommand(cmd)
}

func addRefresh(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Re-read the stored state, fill missed days and show the streak.",
		Example: `
streak refresh
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			oo.Out = cmd.OutOrStdout()
			e, err := openEngine()
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.Close()

			s := status.Status{Engine: e, Refresh: true, JSON: oo.JSON, Out: cmd.OutOrStdout()}
			return oo.HandleError(s.Do(background(cmd)))
		},
	}

	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
