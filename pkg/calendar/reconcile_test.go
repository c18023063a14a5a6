package calendar

import (
	"strings"
	"testing"

	"tableflip.dev/streak/pkg/day"
)

var today = day.MustParse("2024-03-10")

func TestReconcileGapFill(t *testing.T) {
	start := today.AddDays(-5)
	marks := Reconcile(start, day.History{}, today, ShowRelapse)

	if len(marks) != 6 {
		t.Fatalf("expected 6 entries, got %d: %v", len(marks), marks.Days())
	}
	for i, d := range marks.Days() {
		want := KindClean
		switch i {
		case 0:
			want = KindStart
		case 5:
			want = KindToday
		}
		if got := marks[d].Kind(); got != want {
			t.Fatalf("%s: expected %s, got %s", d, want, got)
		}
	}
	if marks.Days()[0] != start {
		t.Fatalf("expected first day %s, got %s", start, marks.Days()[0])
	}
}

func TestReconcileDropsFutureEntries(t *testing.T) {
	h := day.History{
		today.AddDays(1): day.Clean,
		today.AddDays(9): day.Relapse,
	}
	marks := Reconcile(today, h, today, ShowRelapse)
	if len(marks) != 1 {
		t.Fatalf("expected only today, got %v", marks.Days())
	}
	if k := marks[today].Kind(); k != KindStart {
		t.Fatalf("start marker must win over today, got %s", k)
	}
	if !marks[today].IsToday {
		t.Fatalf("today flag must still be set")
	}
}

func TestReconcileStartBeatsTag(t *testing.T) {
	start := today.AddDays(-3)
	h := day.History{start: day.Relapse}
	marks := Reconcile(start, h, today, ShowRelapse)
	if k := marks[start].Kind(); k != KindStart {
		t.Fatalf("expected start, got %s", k)
	}
	if marks[start].Tag != day.Relapse {
		t.Fatalf("tag should be preserved under the start marker")
	}
}

func TestReconcileTodayForcedAfterRelapseToday(t *testing.T) {
	// Relapse recorded today: the next streak starts tomorrow.
	h := day.History{today: day.Relapse, today.AddDays(-1): day.Clean}
	marks := Reconcile(today.AddDays(1), h, today, ShowRelapse)

	if _, ok := marks[today.AddDays(1)]; ok {
		t.Fatalf("future start day must not be marked")
	}
	m := marks[today]
	if !m.IsToday || m.Tag != day.Relapse {
		t.Fatalf("expected today tagged relapse, got %+v", m)
	}
	if m.Kind() != KindToday {
		t.Fatalf("today marker outranks relapse tag, got %s", m.Kind())
	}
}

func TestReconcileRelapsePolicy(t *testing.T) {
	relapse := today.AddDays(-10)
	h := day.History{relapse: day.Relapse}
	start := relapse.AddDays(1)

	shown := Reconcile(start, h, today, ShowRelapse)
	if k := shown[relapse].Kind(); k != KindRelapse {
		t.Fatalf("show policy: expected relapse, got %s", k)
	}

	folded := Reconcile(start, h, today, FoldRelapse)
	if k := folded[relapse].Kind(); k != KindClean {
		t.Fatalf("fold policy: expected clean, got %s", k)
	}
	if len(shown) != len(folded) {
		t.Fatalf("policy must not change which days are present")
	}
}

func TestReconcileKeepsEntriesBeforeStart(t *testing.T) {
	old := today.AddDays(-40)
	h := day.History{old: day.Clean}
	marks := Reconcile(today.AddDays(-2), h, today, ShowRelapse)
	if _, ok := marks[old]; !ok {
		t.Fatalf("history before the start day must still render")
	}
	if len(marks) != 4 {
		t.Fatalf("expected 4 marks, got %d", len(marks))
	}
}

func TestReconcileIsPure(t *testing.T) {
	h := day.History{today.AddDays(-1): day.Relapse}
	a := Reconcile(today.AddDays(-4), h, today, ShowRelapse)
	b := Reconcile(today.AddDays(-4), h, today, ShowRelapse)
	if !a.Equal(b) {
		t.Fatalf("expected identical maps")
	}
	if len(h) != 1 {
		t.Fatalf("reconcile must not mutate history, got %v", h)
	}
}

func TestParsePolicy(t *testing.T) {
	cases := map[string]Policy{"": ShowRelapse, "show": ShowRelapse, "FOLD": FoldRelapse}
	for in, want := range cases {
		got, err := ParsePolicy(in)
		if err != nil || got != want {
			t.Fatalf("%q: expected %s, got %s (%v)", in, want, got, err)
		}
	}
	if _, err := ParsePolicy("hide"); err == nil {
		t.Fatalf("expected error for unknown policy")
	}
}

func TestRenderMonth(t *testing.T) {
	marks := Reconcile(today.AddDays(-2), day.History{}, today, ShowRelapse)
	out := Render(today, marks, PlainOptions())
	if !strings.Contains(out, "March 2024") {
		t.Fatalf("expected title, got:\n%s", out)
	}
	if !strings.Contains(out, "Su Mo Tu We Th Fr Sa") {
		t.Fatalf("expected weekday header, got:\n%s", out)
	}
	if !strings.Contains(out, "31") {
		t.Fatalf("expected last day of March, got:\n%s", out)
	}
}

func TestDaysInAndMonths(t *testing.T) {
	if DaysIn(2024, 2) != 29 {
		t.Fatalf("expected leap February")
	}
	ms := Months(day.MustParse("2023-11-20"), day.MustParse("2024-02-02"))
	if len(ms) != 4 || ms[3].String() != "2024-02-01" {
		t.Fatalf("unexpected months %v", ms)
	}
}
