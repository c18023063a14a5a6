package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch streams change events for namespace until ctx is cancelled. Writes
// made by this process are reported too; callers must treat an event as
// "storage may differ from memory", not as "someone else wrote". The channel
// is closed once ctx is done or the watcher fails.
func (p *DiskvKV) Watch(ctx context.Context, namespace string) (<-chan Event, error) {
	if p.basePath == "" {
		return nil, fmt.Errorf("store: base path unknown")
	}

	dir := p.namespaceDir(namespace)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure namespace dir: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "store: watcher close: %v\n", err)
			}
		})
	}

	if err := watcher.Add(dir); err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: watch %s: %w", dir, err)
	}

	events := make(chan Event, 8)

	go func() {
		defer close(events)
		defer closeWatcher()

		// Never block the watcher goroutine; a later refresh reads the
		// latest state anyway.
		send := func(ev Event) {
			select {
			case events <- ev:
			default:
			}
		}

		throttle := newEventThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				fmt.Fprintf(os.Stderr, "store: watch %s: %v\n", dir, err)
				throttle.Enqueue(Event{Namespace: namespace}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
					continue
				}
				throttle.Enqueue(Event{
					Namespace: namespace,
					Key:       Key(namespace, filepath.Base(evt.Name)),
				}, send)
			}
		}
	}()

	return events, nil
}

func (p *DiskvKV) namespaceDir(namespace string) string {
	pk := keyToPathTransform(Key(namespace, "x"))
	return filepath.Join(append([]string{p.basePath}, pk.Path...)...)
}

// eventThrottle coalesces bursts of filesystem activity (a diskv write is a
// create plus a rename) into one event per key.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[Event]struct{}
	delay   time.Duration
	stopped bool
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[Event]struct{}),
	}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.pending[ev] = struct{}{}
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
}

func (t *eventThrottle) flush(send func(Event)) {
	// send never blocks, so it runs under the lock; Stop then guarantees no
	// send races the channel close.
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	for ev := range t.pending {
		send(ev)
	}
	t.pending = make(map[Event]struct{})
	t.timer = nil
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
