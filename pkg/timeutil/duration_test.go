package timeutil

import (
	"testing"
	"time"
)

func TestParseSpan(t *testing.T) {
	cases := map[string]time.Duration{
		"36h":     36 * time.Hour,
		"1d12h":   36 * time.Hour,
		"2 weeks": 14 * Day,
		"90m":     90 * time.Minute,
		"1w2d6h":  (7*24 + 2*24 + 6) * time.Hour,
	}
	for in, want := range cases {
		got, err := ParseSpan(in)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", in, err)
		}
		if got != want {
			t.Fatalf("%q: expected %v, got %v", in, want, got)
		}
	}
}

func TestParseSpanErrors(t *testing.T) {
	for _, in := range []string{"", "abc", "3x", "0d"} {
		if _, err := ParseSpan(in); err == nil {
			t.Fatalf("%q: expected error", in)
		}
	}
}

func TestFormatSpan(t *testing.T) {
	cases := map[time.Duration]string{
		0:                           "0m",
		30 * time.Second:            "0m",
		72 * time.Hour:              "3d",
		76*time.Hour + time.Minute:  "3d4h",
		9*Day + 5*time.Hour:         "1w2d",
		2*time.Hour + 5*time.Minute: "2h5m",
	}
	for in, want := range cases {
		if got := FormatSpan(in); got != want {
			t.Fatalf("%v: expected %s, got %s", in, want, got)
		}
	}
}
