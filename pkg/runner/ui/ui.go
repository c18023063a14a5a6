// Package ui runs the live terminal UI.
package ui

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"tableflip.dev/streak/pkg/app"
	"tableflip.dev/streak/pkg/runner/calendar"
	"tableflip.dev/streak/pkg/runner/status"
	"tableflip.dev/streak/pkg/tui"
)

type UI struct {
	Engine *app.Engine
	// Out is where the one-shot fallback prints when Out is not a terminal.
	Out *os.File
}

func (u *UI) Do(ctx context.Context) error {
	if u.Engine == nil {
		return errors.New("can not open ui, no engine")
	}
	out := u.Out
	if out == nil {
		out = os.Stdout
	}
	if !Interactive(out) {
		return u.once(ctx, out)
	}

	if err := u.Engine.Start(ctx); err != nil {
		return err
	}
	defer u.Engine.Close()
	return tui.Run(ctx, u.Engine)
}

// Interactive reports whether f is a terminal.
func Interactive(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (u *UI) once(ctx context.Context, out io.Writer) error {
	s := &status.Status{Engine: u.Engine, Out: out}
	if err := s.Do(ctx); err != nil {
		return err
	}
	c := &calendar.Calendar{Engine: u.Engine, Out: out}
	return c.Do(ctx)
}
