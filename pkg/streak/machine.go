// Package streak derives the clean-day streak from the persisted start date
// and applies the commands that change it. The streak count is never stored:
// it is recomputed from the start date and the clock on every read.
package streak

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"tableflip.dev/streak/pkg/calendar"
	"tableflip.dev/streak/pkg/clock"
	"tableflip.dev/streak/pkg/day"
	"tableflip.dev/streak/pkg/store"
)

// Store is the persistence the machine reads and writes through.
type Store interface {
	Load(now time.Time) (store.State, store.LoadStatus)
	Save(st store.State) error
}

// Snapshot is a consistent view of the machine at one instant.
type Snapshot struct {
	Today       day.Day
	StartDate   day.Day
	Streak      int
	History     day.History
	Marked      calendar.MarkedDayMap
	LastCheckIn time.Time
}

// Machine serializes every mutation behind one write lock; reads share a
// read lock and always see a fully applied command.
type Machine struct {
	store  Store
	clock  clock.Source
	log    *log.Logger
	policy calendar.Policy

	mu      sync.RWMutex
	state   store.State
	loaded  bool
	unsaved bool
}

// Option configures a Machine.
type Option func(*Machine)

func WithLogger(l *log.Logger) Option {
	return func(m *Machine) {
		if l != nil {
			m.log = l
		}
	}
}

// WithPolicy sets how relapse days appear in MarkedDays.
func WithPolicy(p calendar.Policy) Option {
	return func(m *Machine) { m.policy = p }
}

// New returns a Machine over st. Call Initialize before reading.
func New(st Store, src clock.Source, opts ...Option) *Machine {
	if src == nil {
		src = clock.System{}
	}
	m := &Machine{
		store: st,
		clock: src,
		log:   log.New(os.Stderr, "", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Derive is the streak for a start day seen on today: the inclusive day
// count, or 0 while the start day is still ahead.
func Derive(start, today day.Day) int {
	if start.IsZero() {
		return 0
	}
	n := today.DaysSince(start) + 1
	if n < 0 {
		return 0
	}
	return n
}

// Initialize loads the persisted state, applying first-run defaults when
// nothing is stored, and fills any days missed while the engine was not
// running.
func (m *Machine) Initialize(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reloadLocked(ctx)
}

// ForceRefresh discards memory and re-reads storage, so the view matches the
// persisted truth even if something else wrote to it. It only writes back
// when gap-fill added days.
func (m *Machine) ForceRefresh(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reloadLocked(ctx)
}

// RolloverTick re-derives after a day change and records every day from the
// start through yesterday as clean if it has no entry yet. The start date is
// never changed.
func (m *Machine) RolloverTick(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ensureLoadedLocked(ctx); err != nil {
		return err
	}
	now := m.clock.Now()
	today := day.Of(now)
	m.checkAnomalyLocked(today)
	m.state.LastCheckIn = now
	if !m.gapFillLocked(today) {
		return nil
	}
	return m.persistLocked(ctx)
}

// RecordRelapse tags d as a relapse and starts the next streak the day
// after. A zero d means today. When a later relapse is already recorded, d is
// only tagged, so the later relapse keeps deciding the start.
func (m *Machine) RecordRelapse(ctx context.Context, d day.Day) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ensureLoadedLocked(ctx); err != nil {
		return err
	}
	now := m.clock.Now()
	today := day.Of(now)
	if d.IsZero() {
		d = today
	}
	if d.After(today) {
		return fmt.Errorf("%w: relapse on %s is after today (%s)", ErrInvalidDate, d, today)
	}

	m.state.History[d] = day.Relapse
	if !m.relapseAfterLocked(d) {
		m.state.StartDate = d.AddDays(1)
	}
	m.gapFillLocked(today)
	m.state.LastCheckIn = now
	return m.persistLocked(ctx)
}

// SetStartDate overwrites the start day. Days after today are rejected with
// ErrInvalidDate and leave the state untouched. History is kept.
func (m *Machine) SetStartDate(ctx context.Context, d day.Day) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ensureLoadedLocked(ctx); err != nil {
		return err
	}
	now := m.clock.Now()
	today := day.Of(now)
	if d.IsZero() {
		return fmt.Errorf("%w: start date required", ErrInvalidDate)
	}
	if d.After(today) {
		return fmt.Errorf("%w: start date %s is after today (%s)", ErrInvalidDate, d, today)
	}

	m.state.StartDate = d
	m.gapFillLocked(today)
	m.state.LastCheckIn = now
	return m.persistLocked(ctx)
}

// Reset reinstates the first-run defaults: start today, empty history.
func (m *Machine) Reset(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	m.state = store.Defaults(m.clock.Now())
	m.loaded = true
	return m.persistLocked(ctx)
}

// Streak is the current derived streak.
func (m *Machine) Streak() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.loaded {
		return 0
	}
	return Derive(m.state.StartDate, clock.Today(m.clock))
}

func (m *Machine) StartDate() day.Day {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.StartDate
}

// History returns a copy of the recorded day statuses.
func (m *Machine) History() day.History {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.History.Clone()
}

// MarkedDays reconciles the history for today.
func (m *Machine) MarkedDays() calendar.MarkedDayMap {
	return m.Snapshot().Marked
}

// Snapshot returns every derived value computed against the same instant.
func (m *Machine) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	today := clock.Today(m.clock)
	if !m.loaded {
		return Snapshot{Today: today, History: day.History{}, Marked: calendar.MarkedDayMap{}}
	}
	return Snapshot{
		Today:       today,
		StartDate:   m.state.StartDate,
		Streak:      Derive(m.state.StartDate, today),
		History:     m.state.History.Clone(),
		Marked:      calendar.Reconcile(m.state.StartDate, m.state.History, today, m.policy),
		LastCheckIn: m.state.LastCheckIn,
	}
}

// Policy reports the relapse display policy.
func (m *Machine) Policy() calendar.Policy {
	return m.policy
}

func (m *Machine) ensureLoadedLocked(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.loaded {
		return nil
	}
	return m.reloadLocked(ctx)
}

func (m *Machine) reloadLocked(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	now := m.clock.Now()
	today := day.Of(now)

	// Storage is not trusted while a write is outstanding; flush first and
	// keep serving memory if that still fails.
	if m.unsaved {
		m.checkAnomalyLocked(today)
		m.gapFillLocked(today)
		m.state.LastCheckIn = now
		if err := m.persistLocked(ctx); err != nil {
			return err
		}
	}

	st, status := m.store.Load(now)
	if st.History == nil {
		st.History = day.History{}
	}
	if st.StartDate.IsZero() {
		st.StartDate = today
		status = store.Recovered
	}
	if status == store.Recovered {
		m.log.Printf("streak: %v: continuing from recovered state", ErrPersistenceRead)
	}

	m.state = st
	m.loaded = true
	m.checkAnomalyLocked(today)
	filled := m.gapFillLocked(today)
	m.state.LastCheckIn = now

	if status != store.Loaded || filled {
		return m.persistLocked(ctx)
	}
	return nil
}

func (m *Machine) relapseAfterLocked(d day.Day) bool {
	for other, tag := range m.state.History {
		if tag == day.Relapse && other.After(d) {
			return true
		}
	}
	return false
}

// gapFillLocked tags every untagged day in [start, yesterday] clean and
// reports whether it added any.
func (m *Machine) gapFillLocked(today day.Day) bool {
	changed := false
	for _, d := range day.Range(m.state.StartDate, today.AddDays(-1)) {
		if _, ok := m.state.History[d]; ok {
			continue
		}
		m.state.History[d] = day.Clean
		changed = true
	}
	return changed
}

// checkAnomalyLocked logs a start day more than one day ahead of today, which
// only a clock moved backward can produce. The start is kept as is.
func (m *Machine) checkAnomalyLocked(today day.Day) {
	if ahead := m.state.StartDate.DaysSince(today); ahead > 1 {
		m.log.Printf("streak: %v: start %s is %d days after today %s", ErrClockAnomaly, m.state.StartDate, ahead, today)
	}
}

// persistLocked saves the state, retrying once. On failure memory stays
// authoritative until the next successful write.
func (m *Machine) persistLocked(ctx context.Context) error {
	err := m.store.Save(m.state.Clone())
	if err != nil {
		m.log.Printf("streak: save failed, retrying: %v", err)
		if ctx.Err() == nil {
			err = m.store.Save(m.state.Clone())
		}
	}
	m.unsaved = err != nil
	if err != nil {
		m.log.Printf("streak: save failed: %v", err)
		return fmt.Errorf("%w: %w", ErrPersistenceWrite, err)
	}
	return nil
}
