package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/streak/pkg/clock"
	"tableflip.dev/streak/pkg/commands/options"
	"tableflip.dev/streak/pkg/runner/relapse"
)

func addRelapse(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	on := &options.OnOptions{}

	cmd := &cobra.Command{
		Use:   "relapse",
		Short: "Record a relapse; the next streak starts the following day.",
		Example: `
streak relapse
streak relapse --on 2024-02-28
streak relapse --on 2/28
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			oo.Out = cmd.OutOrStdout()
			d, err := on.GetOn(clock.Today(clock.System{}))
			if err != nil {
				return oo.HandleError(err)
			}
			e, err := openEngine()
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.Close()

			r := relapse.Relapse{Engine: e, On: d, JSON: oo.JSON, Out: cmd.OutOrStdout()}
			return oo.HandleError(r.Do(background(cmd)))
		},
	}

	options.AddOnArgs(cmd, on)
	_ = cmd.RegisterFlagCompletionFunc("on", func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return completeDays(toComplete)
	})
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
