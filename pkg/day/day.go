// Package day provides the calendar-day value type used for streak accounting.
package day

import (
	"fmt"
	"strings"
	"time"
)

const layoutISO = "2006-01-02"

// Day is a local calendar day with the time of day truncated away. The zero
// value means "no day" and is reported by IsZero.
type Day struct {
	y int
	m time.Month
	d int
}

// Of returns the local calendar day containing t.
func Of(t time.Time) Day {
	t = t.Local()
	return Day{y: t.Year(), m: t.Month(), d: t.Day()}
}

// New builds a normalized Day; out-of-range values roll over the way
// time.Date does (January 32 is February 1).
func New(year int, month time.Month, d int) Day {
	t := time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
	return Day{y: t.Year(), m: t.Month(), d: t.Day()}
}

// Parse reads a YYYY-MM-DD string. An RFC3339 instant is also accepted and
// converted to its local calendar day.
func Parse(v string) (Day, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return Day{}, fmt.Errorf("day: empty date")
	}
	if t, err := time.Parse(layoutISO, v); err == nil {
		return Day{y: t.Year(), m: t.Month(), d: t.Day()}, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return Day{}, fmt.Errorf("day: parse %q: want YYYY-MM-DD", v)
	}
	return Of(t), nil
}

// MustParse is Parse for literals in tests and tables.
func MustParse(v string) Day {
	d, err := Parse(v)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Day) Year() int { return d.y }
func (d Day) Month() time.Month { return d.m }
func (d Day) DayOfMonth() int { return d.d }
func (d Day) IsZero() bool { return d == Day{} }
func (d Day) Weekday() time.Weekday { return d.utc().Weekday() }

// Time returns local midnight of d.
func (d Day) Time() time.Time {
	return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.Local)
}

func (d Day) utc() time.Time {
	return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the day n days after d (n may be negative).
func (d Day) AddDays(n int) Day {
	return New(d.y, d.m, d.d+n)
}

// DaysSince returns the whole number of days from other to d. It is computed
// on UTC midnights so daylight-saving shifts never cause an off-by-one.
func (d Day) DaysSince(other Day) int {
	return int(d.utc().Sub(other.utc()).Hours() / 24)
}

func (d Day) Before(other Day) bool { return d.DaysSince(other) < 0 }
func (d Day) After(other Day) bool { return d.DaysSince(other) > 0 }

// String renders YYYY-MM-DD, or "" for the zero day.
func (d Day) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.y, int(d.m), d.d)
}

func (d Day) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Day) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Range returns every day from first through last inclusive. It returns nil
// when last is before first.
func Range(first, last Day) []Day {
	n := last.DaysSince(first)
	if n < 0 {
		return nil
	}
	out := make([]Day, 0, n+1)
	for i := 0; i <= n; i++ {
		out = append(out, first.AddDays(i))
	}
	return out
}
