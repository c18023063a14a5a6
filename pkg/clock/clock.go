// Package clock isolates wall-clock reads so day arithmetic can be tested
// against a controllable time source.
package clock

import (
	"sync"
	"time"

	"tableflip.dev/streak/pkg/day"
)

// Source reports the current instant in the device's local zone.
type Source interface {
	Now() time.Time
}

// System reads the real wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Today returns the local calendar day of src.
func Today(src Source) day.Day {
	return day.Of(src.Now())
}

// UntilNextMidnight returns the wall-clock time left before the next local
// midnight. It is always positive.
func UntilNextMidnight(src Source) time.Duration {
	now := src.Now().Local()
	next := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
	if d := next.Sub(now); d > 0 {
		return d
	}
	return time.Nanosecond
}

// Fake is a settable Source safe for concurrent use.
type Fake struct {
	mu  sync.Mutex
	now time.Time
}

// NewFake returns a Fake frozen at now.
func NewFake(now time.Time) *Fake {
	return &Fake{now: now}
}

// At returns a Fake frozen at the given local day and hour.
func At(d day.Day, hour int) *Fake {
	return NewFake(d.Time().Add(time.Duration(hour) * time.Hour))
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fake) Set(now time.Time) {
	f.mu.Lock()
	f.now = now
	f.mu.Unlock()
}

// Advance moves the clock by d, which may be negative.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

// AdvanceDays moves the clock n calendar days, keeping the time of day.
func (f *Fake) AdvanceDays(n int) {
	f.mu.Lock()
	f.now = f.now.AddDate(0, 0, n)
	f.mu.Unlock()
}
