package commands

import (
	"bytes"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/streak/pkg/app"
	"tableflip.dev/streak/pkg/clock"
	"tableflip.dev/streak/pkg/day"
	"tableflip.dev/streak/pkg/store"
)

// withEngine points every command at an in-memory engine for the test.
func withEngine(t *testing.T) *store.Memory {
	t.Helper()
	color.NoColor = true
	kv := store.NewMemory()
	prevInteractive := stdinInteractive
	stdinInteractive = func() bool { return false }
	prev := openEngine
	openEngine = func() (*app.Engine, error) {
		return app.New(app.Deps{
			KV:     kv,
			Clock:  clock.System{},
			Logger: log.New(io.Discard, "", 0),
		}), nil
	}
	t.Cleanup(func() {
		openEngine = prev
		stdinInteractive = prevInteractive
	})
	return kv
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := New()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestStatusCommand(t *testing.T) {
	withEngine(t)
	out, err := run(t, "status", "--json")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, `"streak":1`) {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestStartThenRelapse(t *testing.T) {
	kv := withEngine(t)
	today := clock.Today(clock.System{})
	start := today.AddDays(-9)

	if _, err := run(t, "start", start.String(), "--json"); err != nil {
		t.Fatalf("start: %v", err)
	}
	ss := store.NewStreakStore(kv, "", log.New(io.Discard, "", 0))
	st, _ := ss.Load(today.Time())
	if st.StartDate != start {
		t.Fatalf("expected stored start %s, got %s", start, st.StartDate)
	}

	out, err := run(t, "relapse", "--json")
	if err != nil {
		t.Fatalf("relapse: %v", err)
	}
	if !strings.Contains(out, `"streak":0`) {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestStartRejectsFuture(t *testing.T) {
	withEngine(t)
	tomorrow := clock.Today(clock.System{}).AddDays(1)
	out, err := run(t, "start", tomorrow.String(), "--json")
	if err != nil {
		t.Fatalf("json errors are printed, not returned: %v", err)
	}
	if !strings.Contains(out, `"error"`) {
		t.Fatalf("expected json error, got %q", out)
	}
}

func TestResetNeedsYes(t *testing.T) {
	withEngine(t)
	if _, err := run(t, "reset"); err == nil {
		t.Fatalf("expected reset without --yes to fail")
	}
	if _, err := run(t, "reset", "--yes"); err != nil {
		t.Fatalf("reset: %v", err)
	}
}

func TestCalendarCommand(t *testing.T) {
	withEngine(t)
	out, err := run(t, "calendar", "--months", "2")
	if err != nil {
		t.Fatalf("calendar: %v", err)
	}
	today := clock.Today(clock.System{})
	prev := day.New(today.Year(), today.Month()-1, 1)
	if !strings.Contains(out, today.Month().String()) || !strings.Contains(out, prev.Month().String()) {
		t.Fatalf("expected two months, got:\n%s", out)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version", "--short")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "dev") {
		t.Fatalf("unexpected version output %q", out)
	}
}

func TestStatusBadStale(t *testing.T) {
	withEngine(t)
	if _, err := run(t, "status", "--stale", "soon"); err == nil {
		t.Fatalf("expected bad --stale to fail")
	}
}

func TestCompletionShells(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		out, err := run(t, "completion", shell)
		if err != nil {
			t.Fatalf("%s: %v", shell, err)
		}
		if !strings.Contains(out, "streak") {
			t.Fatalf("%s: expected a script for streak, got %q", shell, out)
		}
	}
	if _, err := run(t, "completion", "tcsh"); err == nil {
		t.Fatalf("expected unsupported shell to fail")
	}
}

func TestCompleteDays(t *testing.T) {
	today := clock.Today(clock.System{})
	got, directive := completeDays("")
	if len(got) != recentDays {
		t.Fatalf("expected %d days, got %d", recentDays, len(got))
	}
	if directive != cobra.ShellCompDirectiveNoFileComp {
		t.Fatalf("day completion must not offer files")
	}
	if want := today.String() + "\ttoday"; got[0] != want {
		t.Fatalf("expected %q first, got %q", want, got[0])
	}

	prefix := today.String()[:7]
	got, _ = completeDays(prefix)
	for _, c := range got {
		if !strings.HasPrefix(c, prefix) {
			t.Fatalf("%q does not match %q", c, prefix)
		}
	}
}

func TestStartCompletesDays(t *testing.T) {
	out, err := run(t, "__complete", "start", "")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if !strings.Contains(out, clock.Today(clock.System{}).String()) {
		t.Fatalf("expected today offered, got %q", out)
	}
}

func TestVersionRejectsUnknownOutput(t *testing.T) {
	if _, err := run(t, "version", "-o", "toml"); err == nil {
		t.Fatalf("expected unknown output format to fail")
	}
}
