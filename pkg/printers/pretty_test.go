package printers

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/streak/pkg/calendar"
	"tableflip.dev/streak/pkg/day"
	"tableflip.dev/streak/pkg/streak"
)

func init() {
	color.NoColor = true
}

func snapshot() streak.Snapshot {
	today := day.MustParse("2024-01-08")
	start := day.MustParse("2024-01-01")
	return streak.Snapshot{
		Today:       today,
		StartDate:   start,
		Streak:      streak.Derive(start, today),
		History:     day.History{},
		Marked:      calendar.Reconcile(start, day.History{}, today, calendar.ShowRelapse),
		LastCheckIn: today.Time().Add(9 * time.Hour),
	}
}

func TestStatus(t *testing.T) {
	buf := &bytes.Buffer{}
	snap := snapshot()
	pp := &PrettyPrint{Out: buf, Now: func() time.Time { return snap.LastCheckIn.Add(time.Hour) }}
	pp.Status(snap)

	out := buf.String()
	for _, want := range []string{"Streak", "8 days", "2024-01-01", "2024-01-08", "14 days, 6 days to go"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "ago") {
		t.Fatalf("fresh check-in flagged stale:\n%s", out)
	}
}

func TestStatusStaleCheckIn(t *testing.T) {
	buf := &bytes.Buffer{}
	snap := snapshot()
	pp := &PrettyPrint{Out: buf, Now: func() time.Time { return snap.LastCheckIn.Add(72 * time.Hour) }}
	pp.Status(snap)
	if !strings.Contains(buf.String(), "3d ago") {
		t.Fatalf("expected staleness, got:\n%s", buf.String())
	}

	buf.Reset()
	pp.StaleAfter = 100 * time.Hour
	pp.Status(snap)
	if strings.Contains(buf.String(), "ago") {
		t.Fatalf("custom threshold ignored:\n%s", buf.String())
	}
}

func TestStatusJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	pp := &PrettyPrint{Out: buf}
	if err := pp.StatusJSON(snapshot()); err != nil {
		t.Fatal(err)
	}
	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if got["streak"].(float64) != 8 || got["streakStartDate"] != "2024-01-01" {
		t.Fatalf("unexpected json %v", got)
	}
}

func TestCalendar(t *testing.T) {
	buf := &bytes.Buffer{}
	pp := &PrettyPrint{Out: buf}
	snap := snapshot()
	pp.Calendar(day.MustParse("2023-12-01"), snap.Today, snap, calendar.PlainOptions())
	out := buf.String()
	if !strings.Contains(out, "December 2023") || !strings.Contains(out, "January 2024") {
		t.Fatalf("expected two months, got:\n%s", out)
	}
}
