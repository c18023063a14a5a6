// Package calendar projects the streak history into render-ready day marks.
package calendar

import (
	"fmt"
	"sort"
	"strings"

	"tableflip.dev/streak/pkg/day"
)

// Policy decides how relapse days are shown.
type Policy int

const (
	// ShowRelapse renders relapse days as relapses.
	ShowRelapse Policy = iota
	// FoldRelapse renders every history entry as clean, so past relapses
	// blend into the streak display.
	FoldRelapse
)

func (p Policy) String() string {
	switch p {
	case ShowRelapse:
		return "show"
	case FoldRelapse:
		return "fold"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy accepts "show" or "fold"; empty means show.
func ParsePolicy(v string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "show":
		return ShowRelapse, nil
	case "fold":
		return FoldRelapse, nil
	default:
		return ShowRelapse, fmt.Errorf("calendar: unknown relapse display %q (want show or fold)", v)
	}
}

// Kind is the single visual category a mark resolves to.
type Kind int

const (
	KindClean Kind = iota
	KindRelapse
	KindToday
	KindStart
)

func (k Kind) String() string {
	switch k {
	case KindClean:
		return "clean"
	case KindRelapse:
		return "relapse"
	case KindToday:
		return "today"
	case KindStart:
		return "start"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Mark is what the calendar shows for one day.
type Mark struct {
	IsStart bool
	IsToday bool
	Tag     day.Status
}

// Kind applies the precedence start > today > tag.
func (m Mark) Kind() Kind {
	switch {
	case m.IsStart:
		return KindStart
	case m.IsToday:
		return KindToday
	case m.Tag == day.Relapse:
		return KindRelapse
	default:
		return KindClean
	}
}

// MarkedDayMap is the reconciled calendar keyed by day.
type MarkedDayMap map[day.Day]Mark

// Days returns the marked days in ascending order.
func (m MarkedDayMap) Days() []day.Day {
	out := make([]day.Day, 0, len(m))
	for d := range m {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// Equal reports whether both maps hold the same marks.
func (m MarkedDayMap) Equal(other MarkedDayMap) bool {
	if len(m) != len(other) {
		return false
	}
	for k, v := range m {
		if ov, ok := other[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// Reconcile builds the marks for history as seen on today:
//   - every day in [start, today] is present, clean unless tagged otherwise;
//   - entries after today are dropped;
//   - the start day and today are always flagged, today even when it has no
//     history yet.
//
// A start after today (the day after a relapse recorded today) is in the
// future and therefore not marked.
func Reconcile(start day.Day, history day.History, today day.Day, policy Policy) MarkedDayMap {
	out := make(MarkedDayMap, len(history)+1)

	for d, tag := range history {
		if d.After(today) {
			continue
		}
		if policy == FoldRelapse {
			tag = day.Clean
		}
		out[d] = Mark{Tag: tag}
	}

	if !start.IsZero() {
		for _, d := range day.Range(start, today) {
			if _, ok := out[d]; !ok {
				out[d] = Mark{Tag: day.Clean}
			}
		}
		if !start.After(today) {
			m := out[start]
			m.IsStart = true
			out[start] = m
		}
	}

	m, ok := out[today]
	if !ok {
		m.Tag = day.Clean
	}
	m.IsToday = true
	out[today] = m

	return out
}
