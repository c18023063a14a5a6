// Package scheduler detects local day rollovers. A one-shot midnight timer is
// backed by a periodic poll and an explicit resume hook, because a suspended
// process never sees its timers fire. All three paths funnel into
// CheckAndEmitRollover, which emits at most once per observed day change.
package scheduler

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"tableflip.dev/streak/pkg/clock"
	"tableflip.dev/streak/pkg/day"
)

// Trigger names the mechanism that noticed a rollover.
type Trigger int

const (
	TriggerTimer Trigger = iota
	TriggerPoll
	TriggerResume
	TriggerManual
)

func (t Trigger) String() string {
	switch t {
	case TriggerTimer:
		return "timer"
	case TriggerPoll:
		return "poll"
	case TriggerResume:
		return "resume"
	case TriggerManual:
		return "manual"
	default:
		return fmt.Sprintf("Trigger(%d)", int(t))
	}
}

// Rollover reports that the local day moved from From to To. Backward is set
// when the clock went back in time.
type Rollover struct {
	From     day.Day
	To       day.Day
	Trigger  Trigger
	Backward bool
}

// Skipped is the number of whole days passed over without a rollover event,
// for example while the process was suspended.
func (r Rollover) Skipped() int {
	if r.Backward {
		return 0
	}
	if n := r.To.DaysSince(r.From) - 1; n > 0 {
		return n
	}
	return 0
}

// Options configures a Scheduler. Zero values take the defaults.
type Options struct {
	// Poll is the fallback check interval.
	Poll time.Duration
	// Slack is added to the midnight timer so it fires after the boundary.
	// A negative value disables it.
	Slack time.Duration
	// OnRollover receives each rollover outside the scheduler lock. It must
	// not call Stop.
	OnRollover func(Rollover)
	Logger     *log.Logger
}

const (
	DefaultPoll  = time.Minute
	DefaultSlack = 2 * time.Second
)

// Scheduler owns the rollover timers. The zero value is not usable; call New.
type Scheduler struct {
	clock      clock.Source
	poll       time.Duration
	slack      time.Duration
	onRollover func(Rollover)
	log        *log.Logger

	mu      sync.Mutex
	lastDay day.Day
	timer   *time.Timer
	gen     int
	stop    chan struct{}
	wg      sync.WaitGroup
	running bool
}

func New(src clock.Source, opts Options) *Scheduler {
	if src == nil {
		src = clock.System{}
	}
	poll := opts.Poll
	if poll <= 0 {
		poll = DefaultPoll
	}
	slack := opts.Slack
	if slack < 0 {
		slack = 0
	} else if slack == 0 {
		slack = DefaultSlack
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}
	return &Scheduler{
		clock:      src,
		poll:       poll,
		slack:      slack,
		onRollover: opts.OnRollover,
		log:        logger,
		lastDay:    clock.Today(src),
	}
}

// Start arms the midnight timer and starts the poll loop. The last observed
// day survives Stop/Start, so a restart after a long pause still reports the
// rollover it missed. Calling Start on a running scheduler restarts it
// without stacking timers.
func (s *Scheduler) Start() {
	s.Stop()

	s.mu.Lock()
	s.stop = make(chan struct{})
	s.running = true
	s.armLocked()
	stop := s.stop
	s.wg.Add(1)
	s.mu.Unlock()

	go s.pollLoop(stop)
}

// Stop tears down the timer and the poll loop and waits for the loop to exit.
// It is safe to call on a stopped scheduler.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	close(s.stop)
	s.mu.Unlock()

	s.wg.Wait()
}

// Running reports whether Start has been called without a matching Stop.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Resume is the foreground hook: the midnight timer is re-armed against the
// current clock and the day is checked immediately rather than waiting for
// the next poll.
func (s *Scheduler) Resume() bool {
	s.mu.Lock()
	if s.running {
		s.armLocked()
	}
	s.mu.Unlock()
	return s.CheckAndEmitRollover(TriggerResume)
}

// LastDay returns the last day the scheduler observed.
func (s *Scheduler) LastDay() day.Day {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastDay
}

// NextFire returns how long the midnight timer should wait from now.
func (s *Scheduler) NextFire() time.Duration {
	return clock.UntilNextMidnight(s.clock) + s.slack
}

// CheckAndEmitRollover compares today with the last observed day. When they
// differ it records today and emits one Rollover; concurrent callers that
// observe the same change see no difference and emit nothing.
func (s *Scheduler) CheckAndEmitRollover(trigger Trigger) bool {
	today := clock.Today(s.clock)

	s.mu.Lock()
	last := s.lastDay
	if today == last {
		s.mu.Unlock()
		return false
	}
	s.lastDay = today
	handler := s.onRollover
	s.mu.Unlock()

	ev := Rollover{From: last, To: today, Trigger: trigger, Backward: today.Before(last)}
	if ev.Backward {
		s.log.Printf("scheduler: clock moved backward from %s to %s (%s)", last, today, trigger)
	}
	if handler != nil {
		handler(ev)
	}
	return true
}

func (s *Scheduler) armLocked() {
	if s.timer != nil {
		s.timer.Stop()
	}
	s.gen++
	gen := s.gen
	s.timer = time.AfterFunc(s.NextFire(), func() { s.onTimer(gen) })
}

func (s *Scheduler) onTimer(gen int) {
	// A timer replaced by armLocked or Stop may still fire; only the current
	// one counts. The WaitGroup lets Stop wait for an in-flight callback.
	s.mu.Lock()
	if !s.running || gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()
	defer s.wg.Done()

	s.CheckAndEmitRollover(TriggerTimer)

	s.mu.Lock()
	if s.running && gen == s.gen {
		s.armLocked()
	}
	s.mu.Unlock()
}

func (s *Scheduler) pollLoop(stop <-chan struct{}) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.poll)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.CheckAndEmitRollover(TriggerPoll)
		}
	}
}
