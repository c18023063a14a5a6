package store

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// ErrInjected is returned by Memory writes armed with FailWrites.
var ErrInjected = errors.New("store: injected write failure")

// Memory is an in-process KV used by tests and by hosts that manage
// persistence themselves. It supports Watch and write-failure injection.
type Memory struct {
	mu         sync.Mutex
	data       map[string][]byte
	failWrites int
	writes     int
	watchers   map[chan Event]string
}

func NewMemory() *Memory {
	return &Memory{
		data:     make(map[string][]byte),
		watchers: make(map[chan Event]string),
	}
}

func (m *Memory) Read(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), val...), nil
}

func (m *Memory) Write(key string, val []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites > 0 {
		m.failWrites--
		return ErrInjected
	}
	m.writes++
	m.data[key] = append([]byte(nil), val...)
	m.notifyLocked(key)
	return nil
}

func (m *Memory) Erase(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	m.notifyLocked(key)
	return nil
}

// FailWrites makes the next n writes fail with ErrInjected.
func (m *Memory) FailWrites(n int) {
	m.mu.Lock()
	m.failWrites = n
	m.mu.Unlock()
}

// Writes reports how many writes succeeded.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

func (m *Memory) Watch(ctx context.Context, namespace string) (<-chan Event, error) {
	ch := make(chan Event, 8)
	m.mu.Lock()
	m.watchers[ch] = namespace
	m.mu.Unlock()

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		delete(m.watchers, ch)
		close(ch)
		m.mu.Unlock()
	}()
	return ch, nil
}

func (m *Memory) notifyLocked(key string) {
	for ch, ns := range m.watchers {
		if !strings.HasPrefix(key, ns+"-") {
			continue
		}
		select {
		case ch <- Event{Namespace: ns, Key: key}:
		default:
		}
	}
}
