package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/streak/pkg/day"
)

// Options controls calendar styling.
type Options struct {
	TitleStyle   lipgloss.Style
	HeaderStyle  lipgloss.Style
	EmptyStyle   lipgloss.Style
	CleanStyle   lipgloss.Style
	RelapseStyle lipgloss.Style
	TodayStyle   lipgloss.Style
	StartStyle   lipgloss.Style
	ShowTitle    bool
	ShowHeader   bool
}

// DefaultOptions returns the styling used by the CLI and the terminal UI.
func DefaultOptions() Options {
	return Options{
		TitleStyle:   lipgloss.NewStyle().Italic(true),
		HeaderStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true),
		EmptyStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		CleanStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		RelapseStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		TodayStyle:   lipgloss.NewStyle().Underline(true).Bold(true),
		StartStyle:   lipgloss.NewStyle().Background(lipgloss.Color("63")).Foreground(lipgloss.Color("0")),
		ShowTitle:    true,
		ShowHeader:   true,
	}
}

// PlainOptions renders without any styling; used for non-terminal output
// and tests.
func PlainOptions() Options {
	plain := lipgloss.NewStyle()
	return Options{
		TitleStyle:   plain,
		HeaderStyle:  plain,
		EmptyStyle:   plain,
		CleanStyle:   plain,
		RelapseStyle: plain,
		TodayStyle:   plain,
		StartStyle:   plain,
		ShowTitle:    true,
		ShowHeader:   true,
	}
}

const width = len("Su Mo Tu We Th Fr Sa")

// Render produces a multi-line month grid for the month containing anchor.
func Render(anchor day.Day, marks MarkedDayMap, opts Options) string {
	if anchor.IsZero() {
		return ""
	}
	first := day.New(anchor.Year(), anchor.Month(), 1)
	daysInMonth := DaysIn(anchor.Year(), anchor.Month())

	var lines []string
	if opts.ShowTitle {
		title := fmt.Sprintf("%s %d", anchor.Month(), anchor.Year())
		pad := (width - len(title)) / 2
		if pad < 0 {
			pad = 0
		}
		lines = append(lines, strings.Repeat(" ", pad)+opts.TitleStyle.Render(title))
	}
	if opts.ShowHeader {
		lines = append(lines, opts.HeaderStyle.Render("Su Mo Tu We Th Fr Sa"))
	}

	startOffset := int(first.Weekday())
	rows := (startOffset + daysInMonth + 6) / 7

	for row := 0; row < rows; row++ {
		var cells []string
		for col := 0; col < 7; col++ {
			n := row*7 + col - startOffset + 1
			if n < 1 || n > daysInMonth {
				cells = append(cells, opts.EmptyStyle.Render("  "))
				continue
			}
			d := day.New(anchor.Year(), anchor.Month(), n)
			cells = append(cells, renderDay(d, marks, opts))
		}
		lines = append(lines, strings.Join(cells, " "))
	}

	return strings.Join(lines, "\n")
}

func renderDay(d day.Day, marks MarkedDayMap, opts Options) string {
	text := fmt.Sprintf("%2d", d.DayOfMonth())
	m, ok := marks[d]
	if !ok {
		return opts.EmptyStyle.Render(text)
	}
	style := opts.CleanStyle
	if m.Tag == day.Relapse {
		style = opts.RelapseStyle
	}
	switch m.Kind() {
	case KindStart:
		style = style.Inherit(opts.StartStyle)
		if m.IsToday {
			style = style.Inherit(opts.TodayStyle)
		}
	case KindToday:
		style = style.Inherit(opts.TodayStyle)
	}
	return style.Render(text)
}

// DaysIn returns the number of days in a month.
func DaysIn(year int, month time.Month) int {
	return day.New(year, month+1, 0).DayOfMonth()
}

// Months lists the first day of each month from the month of first through
// the month of last.
func Months(first, last day.Day) []day.Day {
	if last.Before(first) {
		return nil
	}
	var out []day.Day
	cur := day.New(first.Year(), first.Month(), 1)
	for !cur.After(last) {
		out = append(out, cur)
		cur = day.New(cur.Year(), cur.Month()+1, 1)
	}
	return out
}
