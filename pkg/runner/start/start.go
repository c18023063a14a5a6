// Package start edits the streak start date.
package start

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/streak/pkg/day"
	"tableflip.dev/streak/pkg/runner/status"
	"tableflip.dev/streak/pkg/streak"
)

type Engine interface {
	Load(ctx context.Context) error
	SetStreakStartDate(ctx context.Context, d day.Day) error
	Snapshot() streak.Snapshot
}

type Start struct {
	Engine Engine
	Date   day.Day
	JSON   bool
	Out    io.Writer
}

func (s *Start) Do(ctx context.Context) error {
	if s.Engine == nil {
		return errors.New("can not set start date, no engine")
	}
	if err := s.Engine.Load(ctx); err != nil {
		return err
	}
	if err := s.Engine.SetStreakStartDate(ctx, s.Date); err != nil {
		return err
	}
	return status.Print(s.Out, s.JSON, s.Engine.Snapshot())
}
