package watch

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/streak/pkg/app"
	"tableflip.dev/streak/pkg/clock"
	"tableflip.dev/streak/pkg/day"
	"tableflip.dev/streak/pkg/store"
	"tableflip.dev/streak/pkg/streak"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatchPrintsRollover(t *testing.T) {
	color.NoColor = true
	src := clock.At(day.MustParse("2024-01-08"), 10)
	e := app.New(app.Deps{
		KV:     store.NewMemory(),
		Clock:  src,
		Logger: log.New(io.Discard, "", 0),
		Poll:   time.Hour,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	out := &syncBuffer{}
	done := make(chan error, 1)
	go func() { done <- (&Watch{Engine: e, Out: out}).Do(ctx) }()

	waitFor(t, out, "2024-01-08 1 day streak since 2024-01-08")

	src.AdvanceDays(1)
	e.CheckRollover()
	waitFor(t, out, "2024-01-09 2 day streak since 2024-01-08")

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("watch: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("watch did not stop")
	}
}

type failingEngine struct {
	closed int
}

func (f *failingEngine) Start(context.Context) error { return errors.New("store: open: locked") }
func (f *failingEngine) Updates() <-chan streak.Snapshot { return nil }

func (f *failingEngine) Close() error {
	f.closed++
	return nil
}

func TestWatchClosesWhenStartFails(t *testing.T) {
	e := &failingEngine{}
	if err := (&Watch{Engine: e, Out: io.Discard}).Do(context.Background()); err == nil {
		t.Fatalf("expected the start error")
	}
	if e.closed != 1 {
		t.Fatalf("expected the engine closed once, got %d", e.closed)
	}
}

func waitFor(t *testing.T, out *syncBuffer, want string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(out.String(), want) {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("missing %q in:\n%s", want, out.String())
}
