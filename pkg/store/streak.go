package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	"tableflip.dev/streak/pkg/day"
)

// State is the persisted truth of the streak engine. The streak count is
// deliberately absent: it is always derived from StartDate and the clock.
type State struct {
	StartDate   day.Day
	History     day.History
	LastCheckIn time.Time
}

// Clone returns a State that shares no memory with s.
func (s State) Clone() State {
	s.History = s.History.Clone()
	return s
}

// LoadStatus says how Load produced its State.
type LoadStatus int

const (
	// Loaded means the stored document was read intact.
	Loaded LoadStatus = iota
	// Missing means nothing was stored yet; defaults were returned.
	Missing
	// Recovered means the stored document was partly or wholly unreadable
	// and defaults filled the gaps.
	Recovered
)

func (l LoadStatus) String() string {
	switch l {
	case Loaded:
		return "loaded"
	case Missing:
		return "missing"
	case Recovered:
		return "recovered"
	default:
		return fmt.Sprintf("LoadStatus(%d)", int(l))
	}
}

const stateName = "state"

// document is the wire layout. Fields stay strings so one bad entry does not
// discard the rest.
type document struct {
	StreakStartDate string            `json:"streakStartDate"`
	CalendarHistory map[string]string `json:"calendarHistory"`
	LastCheckIn     int64             `json:"lastCheckIn"`
}

// StreakStore adapts a KV into load/save of the streak State under
// "<namespace>-state".
type StreakStore struct {
	kv        KV
	namespace string
	log       *log.Logger
}

// NewStreakStore wraps kv. A nil logger writes to stderr.
func NewStreakStore(kv KV, namespace string, logger *log.Logger) *StreakStore {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	if logger == nil {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}
	return &StreakStore{kv: kv, namespace: namespace, log: logger}
}

func (s *StreakStore) Namespace() string { return s.namespace }

func (s *StreakStore) KV() KV { return s.kv }

func (s *StreakStore) key() string { return Key(s.namespace, stateName) }

// Defaults is the first-run state for now.
func Defaults(now time.Time) State {
	return State{
		StartDate:   day.Of(now),
		History:     day.History{},
		LastCheckIn: now,
	}
}

// Load never fails: missing or unreadable state degrades to defaults and the
// problem is logged.
func (s *StreakStore) Load(now time.Time) (State, LoadStatus) {
	raw, err := s.kv.Read(s.key())
	if errors.Is(err, ErrNotFound) {
		return Defaults(now), Missing
	}
	if err != nil {
		s.log.Printf("store: load %s: %v", s.key(), err)
		return Defaults(now), Recovered
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		s.log.Printf("store: decode %s: %v", s.key(), err)
		return Defaults(now), Recovered
	}

	status := Loaded
	st := Defaults(now)

	if start, err := day.Parse(doc.StreakStartDate); err != nil {
		s.log.Printf("store: %s: bad streakStartDate: %v", s.key(), err)
		status = Recovered
	} else {
		st.StartDate = start
	}

	for k, v := range doc.CalendarHistory {
		d, err := day.Parse(k)
		if err != nil {
			s.log.Printf("store: %s: drop history key: %v", s.key(), err)
			status = Recovered
			continue
		}
		tag := day.Status(v)
		if !tag.Valid() {
			s.log.Printf("store: %s: drop %s: unknown status %q", s.key(), k, v)
			status = Recovered
			continue
		}
		st.History[d] = tag
	}

	if doc.LastCheckIn > 0 {
		st.LastCheckIn = time.UnixMilli(doc.LastCheckIn)
	}
	return st, status
}

// Save replaces the stored document. The write is a single KV write, so a
// failed save leaves the previous document readable.
func (s *StreakStore) Save(st State) error {
	doc := document{
		StreakStartDate: st.StartDate.String(),
		CalendarHistory: make(map[string]string, len(st.History)),
		LastCheckIn:     st.LastCheckIn.UnixMilli(),
	}
	for d, tag := range st.History {
		doc.CalendarHistory[d.String()] = string(tag)
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("store: encode state: %w", err)
	}
	return s.kv.Write(s.key(), data)
}

// Days lists the history days in ascending order.
func (st State) Days() []day.Day {
	out := make([]day.Day, 0, len(st.History))
	for d := range st.History {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
