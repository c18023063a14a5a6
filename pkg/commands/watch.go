package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tableflip.dev/streak/pkg/runner/watch"
)

func addWatch(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep running and print the streak whenever the day or the stored state changes.",
		Example: `
streak watch
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(background(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			e, err := openEngine()
			if err != nil {
				return err
			}
			defer e.Close()
			w := watch.Watch{Engine: e, Out: cmd.OutOrStdout()}
			return w.Do(ctx)
		},
	}

	topLevel.AddCommand(cmd)
}
