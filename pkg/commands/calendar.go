package commands

import (
	"os"

	"github.com/fatih/color"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"tableflip.dev/streak/pkg/clock"
	"tableflip.dev/streak/pkg/commands/options"
	"tableflip.dev/streak/pkg/runner/calendar"
	"tableflip.dev/streak/pkg/runner/ui"
)

func addCalendar(topLevel *cobra.Command) {
	co := &options.CalendarOptions{}

	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "Show the recovery calendar.",
		Example: `
streak calendar
streak calendar --months 3
streak calendar --month 2024-02
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			first, last, err := co.Range(clock.Today(clock.System{}))
			if err != nil {
				return err
			}
			e, err := openEngine()
			if err != nil {
				return err
			}
			defer e.Close()

			c := calendar.Calendar{
				Engine: e,
				First:  first,
				Last:   last,
				Styled: styled(),
				Out:    cmd.OutOrStdout(),
			}
			return c.Do(background(cmd))
		},
	}

	options.AddCalendarArgs(cmd, co)
	topLevel.AddCommand(cmd)
}

// styled reports whether stdout can show the colored calendar.
func styled() bool {
	return !color.NoColor && ui.Interactive(os.Stdout) && termenv.EnvColorProfile() != termenv.Ascii
}
