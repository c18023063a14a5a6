// Package calendar prints the recovery calendar.
package calendar

import (
	"context"
	"errors"
	"io"

	cal "tableflip.dev/streak/pkg/calendar"
	"tableflip.dev/streak/pkg/day"
	"tableflip.dev/streak/pkg/printers"
	"tableflip.dev/streak/pkg/streak"
)

type Engine interface {
	Load(ctx context.Context) error
	Snapshot() streak.Snapshot
	Policy() cal.Policy
}

type Calendar struct {
	Engine Engine
	// First and Last bound the months shown; zero values mean this month.
	First day.Day
	Last  day.Day
	// Styled renders with colors; otherwise plain text.
	Styled bool
	Out    io.Writer
}

func (c *Calendar) Do(ctx context.Context) error {
	if c.Engine == nil {
		return errors.New("can not show calendar, no engine")
	}
	if err := c.Engine.Load(ctx); err != nil {
		return err
	}
	snap := c.Engine.Snapshot()

	first, last := c.First, c.Last
	if last.IsZero() {
		last = snap.Today
	}
	if first.IsZero() {
		first = day.New(last.Year(), last.Month(), 1)
	}

	opts := cal.PlainOptions()
	if c.Styled {
		opts = cal.DefaultOptions()
	}
	pp := printers.PrettyPrint{Out: c.Out}
	pp.NewLine()
	pp.Calendar(first, last, snap, opts)
	pp.Legend(c.Engine.Policy())
	return nil
}
