// Package reset reinstates the first-run state.
package reset

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/streak/pkg/runner/status"
	"tableflip.dev/streak/pkg/streak"
)

// ErrNotConfirmed is returned when Reset runs without confirmation.
var ErrNotConfirmed = errors.New("reset discards the streak and its history; pass --yes to confirm")

type Engine interface {
	Reset(ctx context.Context) error
	Snapshot() streak.Snapshot
}

type Reset struct {
	Engine  Engine
	Confirm bool
	JSON    bool
	Out     io.Writer
}

func (r *Reset) Do(ctx context.Context) error {
	if r.Engine == nil {
		return errors.New("can not reset, no engine")
	}
	if !r.Confirm {
		return ErrNotConfirmed
	}
	if err := r.Engine.Reset(ctx); err != nil {
		return err
	}
	return status.Print(r.Out, r.JSON, r.Engine.Snapshot())
}
