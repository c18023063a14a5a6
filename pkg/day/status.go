package day

import "fmt"

// Status tags a day in the recovery history.
type Status string

const (
	Clean   Status = "clean"
	Relapse Status = "relapse"
)

func (s Status) Valid() bool {
	return s == Clean || s == Relapse
}

func (s Status) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("day: unknown status %q", string(s))
	}
	return []byte(s), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	v := Status(b)
	if !v.Valid() {
		return fmt.Errorf("day: unknown status %q", string(b))
	}
	*s = v
	return nil
}

// History maps a calendar day to its recorded status.
type History map[Day]Status

// Clone returns an independent copy; a nil History clones to an empty one.
func (h History) Clone() History {
	out := make(History, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}

// Equal reports whether both histories hold the same entries.
func (h History) Equal(other History) bool {
	if len(h) != len(other) {
		return false
	}
	for k, v := range h {
		if ov, ok := other[k]; !ok || ov != v {
			return false
		}
	}
	return true
}
