package commands

import (
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/streak/pkg/commands/options"
	"tableflip.dev/streak/pkg/runner/reset"
	"tableflip.dev/streak/pkg/runner/ui"
)

// stdinInteractive reports whether reset may prompt for confirmation.
var stdinInteractive = func() bool {
	return ui.Interactive(os.Stdin)
}

func addReset(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	yo := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Start over: the streak begins today and the history is cleared.",
		Example: `
streak reset
streak reset --yes
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			oo.Out = cmd.OutOrStdout()
			confirmed, err := yo.Confirm("Clear the history and start over today", !oo.JSON && stdinInteractive())
			if err != nil {
				return oo.HandleError(err)
			}
			e, err := openEngine()
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.Close()

			r := reset.Reset{Engine: e, Confirm: confirmed, JSON: oo.JSON, Out: cmd.OutOrStdout()}
			return oo.HandleError(r.Do(background(cmd)))
		},
	}

	options.AddConfirmArgs(cmd, yo)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
