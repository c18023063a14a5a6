// Package timeutil parses and prints the compact spans used by CLI flags and
// status output, for example "1d12h".
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const Day = 24 * time.Hour

var (
	spanPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)

	// units is ordered largest first for formatting.
	units = []struct {
		label   string
		value   time.Duration
		aliases []string
	}{
		{"w", 7 * Day, []string{"wk", "wks", "week", "weeks"}},
		{"d", Day, []string{"day", "days"}},
		{"h", time.Hour, []string{"hr", "hrs", "hour", "hours"}},
		{"m", time.Minute, []string{"min", "mins", "minute", "minutes"}},
	}
)

func unitFor(name string) (time.Duration, bool) {
	for _, u := range units {
		if name == u.label {
			return u.value, true
		}
		for _, a := range u.aliases {
			if name == a {
				return u.value, true
			}
		}
	}
	return 0, false
}

// ParseSpan reads a span such as "36h", "1d12h" or "2 weeks". Plain Go
// durations ("90m") are accepted too.
func ParseSpan(input string) (time.Duration, error) {
	remaining := strings.ToLower(strings.TrimSpace(input))
	if remaining == "" {
		return 0, fmt.Errorf("timeutil: empty span")
	}
	if d, err := time.ParseDuration(remaining); err == nil {
		return d, nil
	}

	total := time.Duration(0)
	for len(remaining) > 0 {
		m := spanPattern.FindStringSubmatch(remaining)
		if len(m) != 3 {
			return 0, fmt.Errorf("timeutil: invalid span segment %q", strings.TrimSpace(remaining))
		}
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("timeutil: invalid span value %q: %w", m[1], err)
		}
		unit, ok := unitFor(m[2])
		if !ok {
			return 0, fmt.Errorf("timeutil: unsupported unit %q", m[2])
		}
		total += time.Duration(n) * unit
		remaining = remaining[len(m[0]):]
	}
	if total <= 0 {
		return 0, fmt.Errorf("timeutil: span must be greater than zero")
	}
	return total, nil
}

// FormatSpan prints d with at most the two largest units, e.g. "3d4h".
// Anything under a minute prints as "0m".
func FormatSpan(d time.Duration) string {
	var parts []string
	for _, u := range units {
		if len(parts) == 2 {
			break
		}
		if d < u.value {
			if len(parts) > 0 {
				break
			}
			continue
		}
		n := d / u.value
		d -= n * u.value
		parts = append(parts, fmt.Sprintf("%d%s", n, u.label))
	}
	if len(parts) == 0 {
		return "0m"
	}
	return strings.Join(parts, "")
}
