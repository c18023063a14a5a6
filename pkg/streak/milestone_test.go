package streak

import "testing"

func TestNextMilestone(t *testing.T) {
	cases := []struct{ n, prev, next int }{
		{0, 0, 1},
		{1, 1, 7},
		{6, 1, 7},
		{7, 7, 14},
		{100, 90, 180},
		{365, 365, 730},
		{800, 730, 1095},
	}
	for _, tc := range cases {
		prev, next := NextMilestone(tc.n)
		if prev != tc.prev || next != tc.next {
			t.Fatalf("%d: expected (%d, %d), got (%d, %d)", tc.n, tc.prev, tc.next, prev, next)
		}
	}
}

func TestProgress(t *testing.T) {
	if got := Progress(0); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
	if got := Progress(22); got != 0.5 {
		t.Fatalf("expected halfway from 14 to 30, got %v", got)
	}
	for n := 1; n < 1000; n++ {
		if p := Progress(n); p < 0 || p >= 1 {
			t.Fatalf("%d: progress %v out of range", n, p)
		}
	}
}
