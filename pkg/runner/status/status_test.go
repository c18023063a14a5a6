package status

import (
	"bytes"
	"context"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/streak/pkg/app"
	"tableflip.dev/streak/pkg/clock"
	"tableflip.dev/streak/pkg/day"
	"tableflip.dev/streak/pkg/store"
)

func TestStatus(t *testing.T) {
	color.NoColor = true
	kv := store.NewMemory()
	src := clock.At(day.MustParse("2024-01-08"), 10)
	ss := store.NewStreakStore(kv, "", log.New(io.Discard, "", 0))
	if err := ss.Save(store.State{StartDate: day.MustParse("2024-01-01"), History: day.History{}}); err != nil {
		t.Fatal(err)
	}
	e := app.New(app.Deps{KV: kv, Clock: src, Logger: log.New(io.Discard, "", 0)})
	defer e.Close()

	buf := &bytes.Buffer{}
	s := &Status{Engine: e, Out: buf}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(buf.String(), "8 days") {
		t.Fatalf("expected 8 days, got:\n%s", buf.String())
	}

	buf.Reset()
	s = &Status{Engine: e, Out: buf, Refresh: true, JSON: true}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if !strings.Contains(buf.String(), `"streak":8`) {
		t.Fatalf("expected json streak, got %s", buf.String())
	}
}

func TestStatusNoEngine(t *testing.T) {
	if err := (&Status{}).Do(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}
