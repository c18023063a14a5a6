// Package app wires the streak machine, the rollover scheduler and the store
// watch into one engine, so the CLI and the terminal UI share the same logic.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"tableflip.dev/streak/pkg/calendar"
	"tableflip.dev/streak/pkg/clock"
	"tableflip.dev/streak/pkg/day"
	"tableflip.dev/streak/pkg/scheduler"
	"tableflip.dev/streak/pkg/store"
	"tableflip.dev/streak/pkg/streak"
)

// Deps are the collaborators an Engine runs on. Only KV is required.
type Deps struct {
	KV        store.KV
	Namespace string
	Clock     clock.Source
	Logger    *log.Logger
	Policy    calendar.Policy
	Poll      time.Duration
	Slack     time.Duration

	// OwnKV closes KV on Close when it implements store.Closer.
	OwnKV bool
}

// Engine is the facade over the streak state.
type Engine struct {
	kv        store.KV
	namespace string
	ownKV     bool
	log       *log.Logger

	machine *streak.Machine
	sched   *scheduler.Scheduler

	startMu sync.Mutex
	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started bool
	closed  bool
	updates chan streak.Snapshot
}

func New(deps Deps) *Engine {
	logger := deps.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}
	src := deps.Clock
	if src == nil {
		src = clock.System{}
	}
	ss := store.NewStreakStore(deps.KV, deps.Namespace, logger)
	e := &Engine{
		kv:        deps.KV,
		namespace: ss.Namespace(),
		ownKV:     deps.OwnKV,
		log:       logger,
		machine:   streak.New(ss, src, streak.WithLogger(logger), streak.WithPolicy(deps.Policy)),
		ctx:       context.Background(),
		updates:   make(chan streak.Snapshot, 1),
	}
	e.sched = scheduler.New(src, scheduler.Options{
		Poll:       deps.Poll,
		Slack:      deps.Slack,
		Logger:     logger,
		OnRollover: e.onRollover,
	})
	return e
}

// Open builds an Engine from loaded settings, opening the configured backend.
func Open(settings *store.Settings, src clock.Source, logger *log.Logger) (*Engine, error) {
	if settings == nil {
		return nil, errors.New("app: no settings")
	}
	policy, err := calendar.ParsePolicy(settings.RelapseDisplay)
	if err != nil {
		return nil, err
	}
	kv, err := store.Open(settings)
	if err != nil {
		return nil, err
	}
	return New(Deps{
		KV:        kv,
		Namespace: settings.Namespace(),
		Clock:     src,
		Logger:    logger,
		Policy:    policy,
		Poll:      settings.Poll,
		Slack:     settings.Slack,
		OwnKV:     true,
	}), nil
}

// Load initializes the state without starting the scheduler or the store
// watch. One-shot commands use it instead of Start.
func (e *Engine) Load(ctx context.Context) error {
	return e.nonFatal(e.machine.Initialize(ctx))
}

// Start loads the state, arms the rollover scheduler and, when the backend
// supports it, follows writes made by other processes.
func (e *Engine) Start(ctx context.Context) error {
	e.startMu.Lock()
	defer e.startMu.Unlock()

	e.mu.Lock()
	closed, started := e.closed, e.started
	e.mu.Unlock()
	if closed {
		return errors.New("app: engine closed")
	}
	if started {
		return nil
	}

	if err := e.Load(ctx); err != nil {
		return err
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return errors.New("app: engine closed")
	}
	runCtx, cancel := context.WithCancel(ctx)
	e.ctx, e.cancel = runCtx, cancel
	e.started = true
	e.mu.Unlock()

	e.sched.Start()

	if w, ok := e.kv.(store.Watcher); ok {
		events, err := w.Watch(runCtx, e.namespace)
		switch {
		case errors.Is(err, store.ErrWatchUnsupported):
		case err != nil:
			e.log.Printf("app: watch %s: %v", e.namespace, err)
		default:
			e.wg.Add(1)
			go e.follow(runCtx, events)
		}
	}
	e.publish()
	return nil
}

// Close stops the scheduler and the store watch. It is safe to call twice.
func (e *Engine) Close() error {
	e.startMu.Lock()
	defer e.startMu.Unlock()

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	cancel := e.cancel
	e.mu.Unlock()

	e.sched.Stop()
	if cancel != nil {
		cancel()
	}
	e.wg.Wait()

	e.mu.Lock()
	close(e.updates)
	e.mu.Unlock()

	if c, ok := e.kv.(store.Closer); ok && e.ownKV {
		return c.Close()
	}
	return nil
}

// Updates delivers the latest snapshot after every change. Only the newest
// snapshot is kept when the reader falls behind. The channel is closed by
// Close.
func (e *Engine) Updates() <-chan streak.Snapshot {
	return e.updates
}

func (e *Engine) DerivedStreak() int {
	return e.machine.Streak()
}

func (e *Engine) StreakStartDate() day.Day {
	return e.machine.StartDate()
}

func (e *Engine) MarkedDays() calendar.MarkedDayMap {
	return e.machine.MarkedDays()
}

func (e *Engine) Snapshot() streak.Snapshot {
	return e.machine.Snapshot()
}

func (e *Engine) Policy() calendar.Policy {
	return e.machine.Policy()
}

// RecordRelapse records a relapse for today, or for the given day.
func (e *Engine) RecordRelapse(ctx context.Context, on ...day.Day) error {
	var d day.Day
	switch len(on) {
	case 0:
	case 1:
		d = on[0]
	default:
		return fmt.Errorf("%w: one relapse day at a time", streak.ErrInvalidDate)
	}
	err := e.machine.RecordRelapse(ctx, d)
	e.afterCommand(err)
	return err
}

func (e *Engine) SetStreakStartDate(ctx context.Context, d day.Day) error {
	err := e.machine.SetStartDate(ctx, d)
	e.afterCommand(err)
	return err
}

func (e *Engine) ForceRefresh(ctx context.Context) error {
	err := e.machine.ForceRefresh(ctx)
	e.afterCommand(err)
	return err
}

func (e *Engine) Reset(ctx context.Context) error {
	err := e.machine.Reset(ctx)
	e.afterCommand(err)
	return err
}

// Resume is the foreground hook: catch up on any missed day change, then
// re-read storage.
func (e *Engine) Resume(ctx context.Context) error {
	e.sched.Resume()
	return e.ForceRefresh(ctx)
}

// CheckRollover runs the rollover check now and reports whether the day
// changed.
func (e *Engine) CheckRollover() bool {
	return e.sched.CheckAndEmitRollover(scheduler.TriggerManual)
}

func (e *Engine) onRollover(r scheduler.Rollover) {
	if r.Backward {
		e.log.Printf("app: %v: %s -> %s", streak.ErrClockAnomaly, r.From, r.To)
	} else if n := r.Skipped(); n > 0 {
		e.log.Printf("app: rollover %s -> %s (%s) skipped %d day(s)", r.From, r.To, r.Trigger, n)
	}
	if err := e.machine.RolloverTick(e.context()); err != nil {
		e.log.Printf("app: rollover: %v", err)
	}
	e.publish()
}

func (e *Engine) follow(ctx context.Context, events <-chan store.Event) {
	defer e.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-events:
			if !ok {
				return
			}
			if err := e.machine.ForceRefresh(ctx); err != nil && ctx.Err() == nil {
				e.log.Printf("app: refresh after store change: %v", err)
			}
			e.publish()
		}
	}
}

// afterCommand publishes whenever the command changed memory, which includes
// a command whose save failed.
func (e *Engine) afterCommand(err error) {
	if err == nil || errors.Is(err, streak.ErrPersistenceWrite) {
		e.publish()
	}
}

func (e *Engine) publish() {
	snap := e.machine.Snapshot()
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	select {
	case <-e.updates:
	default:
	}
	e.updates <- snap
}

func (e *Engine) context() context.Context {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ctx
}

// nonFatal keeps a failed save from failing startup; the state in memory is
// still correct.
func (e *Engine) nonFatal(err error) error {
	if errors.Is(err, streak.ErrPersistenceWrite) {
		e.log.Printf("app: %v", err)
		return nil
	}
	return err
}
