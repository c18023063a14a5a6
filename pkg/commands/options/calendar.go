package options

import (
	"fmt"
	"time"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/streak/pkg/day"
)

// CalendarOptions selects the months to render.
type CalendarOptions struct {
	Month  string
	Months int
}

func AddCalendarArgs(cmd *cobra.Command, o *CalendarOptions) {
	cmd.Flags().StringVarP(&o.Month, "month", "m", "",
		base.Wrap80(`Last month to show, example: --month="2024-02". Defaults to the current month.`))
	cmd.Flags().IntVarP(&o.Months, "months", "n", 1,
		"Number of months to show, ending at --month.")
}

// Range returns the first day of the first month and the last day shown.
func (o *CalendarOptions) Range(today day.Day) (day.Day, day.Day, error) {
	if o.Months < 1 {
		return day.Day{}, day.Day{}, fmt.Errorf("--months must be at least 1, got %d", o.Months)
	}
	last := today
	if o.Month != "" {
		t, err := time.ParseInLocation("2006-01", o.Month, time.Local)
		if err != nil {
			return day.Day{}, day.Day{}, fmt.Errorf("--month: %w", err)
		}
		last = day.New(t.Year(), t.Month()+1, 0)
	}
	first := day.New(last.Year(), last.Month()-time.Month(o.Months-1), 1)
	return first, last, nil
}
