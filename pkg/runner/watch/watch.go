// Package watch runs the engine in the foreground and prints every change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/streak/pkg/streak"
)

type Engine interface {
	Start(ctx context.Context) error
	Close() error
	Updates() <-chan streak.Snapshot
}

type Watch struct {
	Engine Engine
	Out    io.Writer
}

// Do blocks until ctx is done or the engine stops publishing. The engine is
// closed on return, also when it failed to start.
func (w *Watch) Do(ctx context.Context) error {
	if w.Engine == nil {
		return errors.New("can not watch, no engine")
	}
	out := w.Out
	if out == nil {
		out = color.Output
	}
	defer w.Engine.Close()
	if err := w.Engine.Start(ctx); err != nil {
		return err
	}

	var last streak.Snapshot
	for {
		select {
		case <-ctx.Done():
			return nil
		case snap, ok := <-w.Engine.Updates():
			if !ok {
				return nil
			}
			if snap.Today == last.Today && snap.StartDate == last.StartDate && snap.Streak == last.Streak {
				continue
			}
			last = snap
			printLine(out, snap)
		}
	}
}

func printLine(out io.Writer, snap streak.Snapshot) {
	d := color.New(color.Faint)
	n := color.New(color.FgGreen, color.Bold)
	if snap.Streak == 0 {
		n = color.New(color.FgRed, color.Bold)
	}
	_, _ = d.Fprintf(out, "%s ", snap.Today)
	_, _ = n.Fprintf(out, "%d", snap.Streak)
	_, _ = fmt.Fprintf(out, " day streak since %s\n", snap.StartDate)
}
