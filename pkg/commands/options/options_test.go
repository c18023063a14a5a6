package options

import (
	"testing"

	"tableflip.dev/streak/pkg/day"
)

func TestParseDay(t *testing.T) {
	today := day.MustParse("2024-03-10")
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"2024-03-01", "2024-03-01"},
		{"2024-3-1", "2024-03-01"},
		{"3/1", "2024-03-01"},
		{"3/10", "2024-03-10"},
		{"12/24", "2023-12-24"},
		{"2/29", "2024-02-29"},
	}
	for _, tc := range cases {
		got, err := ParseDay(tc.in, today)
		if err != nil {
			t.Fatalf("%q: %v", tc.in, err)
		}
		if tc.in == "" {
			if !got.IsZero() {
				t.Fatalf("empty input should give the zero day, got %s", got)
			}
			continue
		}
		if got.String() != tc.want {
			t.Fatalf("%q: want %s, got %s", tc.in, tc.want, got)
		}
	}
	if _, err := ParseDay("yesterday", today); err == nil {
		t.Fatalf("expected error")
	}
}

func TestParseDayLeapDay(t *testing.T) {
	if _, err := ParseDay("2/29", day.MustParse("2025-03-10")); err == nil {
		t.Fatalf("2/29 must not roll over to March 1 in 2025")
	}
	got, err := ParseDay("2/29", day.MustParse("2025-01-10"))
	if err != nil {
		t.Fatalf("2/29 before March names 2024: %v", err)
	}
	if got.String() != "2024-02-29" {
		t.Fatalf("want 2024-02-29, got %s", got)
	}
}

func TestCalendarRange(t *testing.T) {
	today := day.MustParse("2024-03-10")

	o := &CalendarOptions{Months: 1}
	first, last, err := o.Range(today)
	if err != nil {
		t.Fatal(err)
	}
	if first.String() != "2024-03-01" || last != today {
		t.Fatalf("unexpected range %s..%s", first, last)
	}

	o = &CalendarOptions{Month: "2024-02", Months: 3}
	first, last, err = o.Range(today)
	if err != nil {
		t.Fatal(err)
	}
	if first.String() != "2023-12-01" || last.String() != "2024-02-29" {
		t.Fatalf("unexpected range %s..%s", first, last)
	}

	if _, _, err := (&CalendarOptions{Months: 0}).Range(today); err == nil {
		t.Fatalf("expected error for zero months")
	}
	if _, _, err := (&CalendarOptions{Month: "March", Months: 1}).Range(today); err == nil {
		t.Fatalf("expected error for bad month")
	}
}

func TestGetStale(t *testing.T) {
	o := &StaleOptions{}
	if d, err := o.GetStale(); err != nil || d != 0 {
		t.Fatalf("expected zero, got %v %v", d, err)
	}
	o.Stale = "1d12h"
	d, err := o.GetStale()
	if err != nil {
		t.Fatal(err)
	}
	if d.Hours() != 36 {
		t.Fatalf("expected 36h, got %v", d)
	}
}

func TestConfirmWithoutTerminal(t *testing.T) {
	o := &ConfirmOptions{}
	ok, err := o.Confirm("Reset", false)
	if err != nil || ok {
		t.Fatalf("expected no confirmation without --yes, got %v %v", ok, err)
	}
	o.Yes = true
	if ok, err := o.Confirm("Reset", true); err != nil || !ok {
		t.Fatalf("--yes must confirm without asking, got %v %v", ok, err)
	}
}
