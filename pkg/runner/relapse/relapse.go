// Package relapse records a relapse and restarts the streak.
package relapse

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
	RecordRelapse(ctx context.Context, on ...day.Day) error
	Snapshot() streak.Snapshot
}

type Relapse struct {
	Engine Engine
	// On is the relapse day; zero means today.
	On   day.Day
	JSON bool
	Out  io.Writer
}

func (r *Relapse) Do(ctx context.Context) error {
	if r.Engine == nil {
		return errors.New("can not record relapse, no engine")
	}
	if err := r.Engine.Load(ctx); err != nil {
		return err
	}
	var on []day.Day
	if !r.On.IsZero() {
		on = append(on, r.On)
	}
	if err := r.Engine.RecordRelapse(ctx, on...); err != nil {
		return err
	}
	return status.Print(r.Out, r.JSON, r.Engine.Snapshot())
}
