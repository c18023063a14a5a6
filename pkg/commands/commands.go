package commands

import (
	"context"
	"log"
	"os"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/streak/pkg/app"
	"tableflip.dev/streak/pkg/clock"
	"tableflip.dev/streak/pkg/store"
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "streak",
		Short: base.Wrap80("Track a recovery streak and its calendar on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addStatus(topLevel)
	addRelapse(topLevel)
	addStart(topLevel)
	addCalendar(topLevel)
	addRefresh(topLevel)
	addReset(topLevel)
	addWatch(topLevel)
	addUI(topLevel)
	addCompletions(topLevel)
	addUpgrade(topLevel)
	addVersion(topLevel)
}

// openEngine builds an engine from the viper configuration. The caller owns
// Close.
var openEngine = func() (*app.Engine, error) {
	settings, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	return app.Open(settings, clock.System{}, log.New(os.Stderr, "", 0))
}

func background(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
