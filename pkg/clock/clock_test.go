package clock

import (
	"testing"
	"time"

	"tableflip.dev/streak/pkg/day"
)

func TestUntilNextMidnight(t *testing.T) {
	f := NewFake(time.Date(2024, 1, 1, 23, 59, 0, 0, time.Local))
	if got := UntilNextMidnight(f); got != time.Minute {
		t.Fatalf("expected 1m, got %v", got)
	}

	f.Set(time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local))
	if got := UntilNextMidnight(f); got != 24*time.Hour {
		t.Fatalf("expected 24h at midnight, got %v", got)
	}
}

func TestFakeAdvanceDaysChangesToday(t *testing.T) {
	f := At(day.MustParse("2024-02-28"), 9)
	f.AdvanceDays(2)
	if got := Today(f).String(); got != "2024-03-01" {
		t.Fatalf("expected 2024-03-01, got %s", got)
	}
	f.Advance(-25 * time.Hour)
	if got := Today(f).String(); got != "2024-02-29" {
		t.Fatalf("expected 2024-02-29, got %s", got)
	}
}
