package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/streak/pkg/streak"
	"tableflip.dev/streak/pkg/timeutil"
)

// DefaultStaleAfter is how old a check-in may get before status flags it.
const DefaultStaleAfter = 36 * time.Hour

type PrettyPrint struct {
	// Out defaults to color.Output.
	Out io.Writer
	// Now is used for check-in staleness; defaults to time.Now.
	Now func() time.Time
	// StaleAfter overrides DefaultStaleAfter when positive.
	StaleAfter time.Duration
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) now() time.Time {
	if pp.Now == nil {
		return time.Now()
	}
	return pp.Now()
}

func (pp *PrettyPrint) staleAfter() time.Duration {
	if pp.StaleAfter > 0 {
		return pp.StaleAfter
	}
	return DefaultStaleAfter
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

// Status prints the streak summary as an aligned table.
func (pp *PrettyPrint) Status(snap streak.Snapshot) {
	b := color.New(color.Bold)
	f := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(b.Sprint("Streak"), streakText(snap.Streak))
	tbl.AddRow(b.Sprint("Started"), startText(snap))
	tbl.AddRow(b.Sprint("Today"), snap.Today.String())
	_, next := streak.NextMilestone(snap.Streak)
	tbl.AddRow(b.Sprint("Next"), f.Sprintf("%s, %s to go", days(next), days(next-snap.Streak)))
	if !snap.LastCheckIn.IsZero() {
		seen := snap.LastCheckIn.Local().Format("2006-01-02 15:04")
		if age := pp.now().Sub(snap.LastCheckIn); age > pp.staleAfter() {
			seen += color.New(color.FgYellow).Sprintf(" (%s ago)", timeutil.FormatSpan(age))
		}
		tbl.AddRow(b.Sprint("Checked in"), f.Sprint(seen))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

func streakText(n int) string {
	c := color.New(color.FgGreen, color.Bold)
	if n == 0 {
		c = color.New(color.FgRed, color.Bold)
	}
	return c.Sprint(days(n))
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

func startText(snap streak.Snapshot) string {
	if snap.StartDate.After(snap.Today) {
		return snap.StartDate.String() + color.New(color.Faint, color.Italic).Sprint(" (begins tomorrow)")
	}
	return snap.StartDate.String()
}

type statusJSON struct {
	Streak      int    `json:"streak"`
	StartDate   string `json:"streakStartDate"`
	Today       string `json:"today"`
	LastCheckIn int64  `json:"lastCheckIn,omitempty"`
}

// StatusJSON prints the summary as one JSON object.
func (pp *PrettyPrint) StatusJSON(snap streak.Snapshot) error {
	out := statusJSON{
		Streak:    snap.Streak,
		StartDate: snap.StartDate.String(),
		Today:     snap.Today.String(),
	}
	if !snap.LastCheckIn.IsZero() {
		out.LastCheckIn = snap.LastCheckIn.UnixMilli()
	}
	b, err := json.Marshal(out)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(pp.out(), string(b))
	return err
}
