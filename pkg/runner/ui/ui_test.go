package ui

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/streak/pkg/app"
	"tableflip.dev/streak/pkg/clock"
	"tableflip.dev/streak/pkg/day"
	"tableflip.dev/streak/pkg/store"
)

func TestNonTerminalPrintsOnce(t *testing.T) {
	color.NoColor = true
	e := app.New(app.Deps{
		KV:     store.NewMemory(),
		Clock:  clock.At(day.MustParse("2024-01-08"), 10),
		Logger: log.New(io.Discard, "", 0),
	})
	defer e.Close()

	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if Interactive(f) {
		t.Fatalf("a regular file is not a terminal")
	}

	if err := (&UI{Engine: e, Out: f}).Do(context.Background()); err != nil {
		t.Fatalf("ui: %v", err)
	}
	b, err := os.ReadFile(f.Name())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "1 day") || !strings.Contains(string(b), "January 2024") {
		t.Fatalf("unexpected output:\n%s", b)
	}
}
