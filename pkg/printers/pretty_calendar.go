package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/streak/pkg/calendar"
	"tableflip.dev/streak/pkg/day"
	"tableflip.dev/streak/pkg/streak"
)

// Calendar prints every month from the month of first through the month of
// last, styled when opts carries styles.
func (pp *PrettyPrint) Calendar(first, last day.Day, snap streak.Snapshot, opts calendar.Options) {
	for _, m := range calendar.Months(first, last) {
		_, _ = fmt.Fprintln(pp.out(), calendar.Render(m, snap.Marked, opts))
		pp.NewLine()
	}
}

// Legend explains the calendar marks in one line.
func (pp *PrettyPrint) Legend(policy calendar.Policy) {
	parts := []string{
		color.New(color.FgGreen).Sprint("clean"),
		color.New(color.BgBlue).Sprint("start"),
		color.New(color.Underline, color.Bold).Sprint("today"),
	}
	if policy == calendar.ShowRelapse {
		parts = append(parts, color.New(color.FgRed).Sprint("relapse"))
	}
	_, _ = color.New(color.Faint).Fprint(pp.out(), "key: ")
	_, _ = fmt.Fprintln(pp.out(), strings.Join(parts, "  "))
}
