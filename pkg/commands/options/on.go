package options

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/streak/pkg/day"
)

const (
	layoutISOLoose = "2006-1-2"
	layoutISOShort = "1/2"
)

// OnOptions
type OnOptions struct {
	OnString string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify a date, example: --on="2024-2-28" or --on="2/28".`)
}

// GetOn returns the zero Day when --on was not given.
func (o *OnOptions) GetOn(today day.Day) (day.Day, error) {
	return ParseDay(o.OnString, today)
}

// ParseDay accepts YYYY-MM-DD, YYYY-M-D or M/D. A M/D that would land after
// today means last year: these dates name something that already happened.
func ParseDay(v string, today day.Day) (day.Day, error) {
	if v == "" {
		return day.Day{}, nil
	}
	if d, err := day.Parse(v); err == nil {
		return d, nil
	}
	if t, err := time.ParseInLocation(layoutISOLoose, v, time.Local); err == nil {
		return day.Of(t), nil
	}
	t, err := time.ParseInLocation(layoutISOShort, v, time.Local)
	if err != nil {
		return day.Day{}, err
	}
	year := today.Year()
	if t.Month() > today.Month() || (t.Month() == today.Month() && t.Day() > today.DayOfMonth()) {
		year--
	}
	d := day.New(year, t.Month(), t.Day())
	if d.Month() != t.Month() || d.DayOfMonth() != t.Day() {
		return day.Day{}, fmt.Errorf("%s is not a day in %d", v, year)
	}
	return d, nil
}
