// Package status prints the current streak.
package status

import (
	"context"
	"errors"
	"io"
	"time"

	"tableflip.dev/streak/pkg/printers"
	"tableflip.dev/streak/pkg/streak"
)

// Engine is the part of the streak engine Status reads.
type Engine interface {
	Load(ctx context.Context) error
	ForceRefresh(ctx context.Context) error
	Snapshot() streak.Snapshot
}

type Status struct {
	Engine Engine
	// Refresh re-reads storage instead of a plain load.
	Refresh bool
	JSON    bool
	Out     io.Writer
	// StaleAfter flags an old check-in; zero uses the printer default.
	StaleAfter time.Duration
}

func (s *Status) Do(ctx context.Context) error {
	if s.Engine == nil {
		return errors.New("can not get status, no engine")
	}
	load := s.Engine.Load
	if s.Refresh {
		load = s.Engine.ForceRefresh
	}
	if err := load(ctx); err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: s.Out, StaleAfter: s.StaleAfter}
	return render(pp, s.JSON, s.Engine.Snapshot())
}

// Print writes snap as a table, or as JSON.
func Print(out io.Writer, asJSON bool, snap streak.Snapshot) error {
	return render(printers.PrettyPrint{Out: out}, asJSON, snap)
}

func render(pp printers.PrettyPrint, asJSON bool, snap streak.Snapshot) error {
	if asJSON {
		return pp.StatusJSON(snap)
	}
	pp.NewLine()
	pp.Status(snap)
	return nil
}
