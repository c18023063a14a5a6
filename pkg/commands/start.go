package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/streak/pkg/clock"
	"tableflip.dev/streak/pkg/commands/options"
	"tableflip.dev/streak/pkg/day"
	"tableflip.dev/streak/pkg/runner/start"
)

func addStart(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	var date day.Day

	cmd := &cobra.Command{
		Use:   "start DATE",
		Short: "Set the day the current streak began.",
		Example: `
streak start 2024-01-01
streak start 1/1
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires a start date")
			}
			var err error
			date, err = options.ParseDay(args[0], clock.Today(clock.System{}))
			return err
		},
		ValidArgsFunction: func(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return completeDays(toComplete)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			oo.Out = cmd.OutOrStdout()
			e, err := openEngine()
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.Close()

			s := start.Start{Engine: e, Date: date, JSON: oo.JSON, Out: cmd.OutOrStdout()}
			return oo.HandleError(s.Do(background(cmd)))
		},
	}

	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
