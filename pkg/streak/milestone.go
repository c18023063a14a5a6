package streak

// Milestones are the streak lengths worth celebrating. Past the last one a
// milestone falls on every further full year.
var Milestones = []int{1, 7, 14, 30, 60, 90, 180, 365}

const year = 365

// NextMilestone returns the first milestone strictly greater than n and the
// one at or below n (0 when none).
func NextMilestone(n int) (prev, next int) {
	for _, m := range Milestones {
		if m > n {
			return prev, m
		}
		prev = m
	}
	next = (n/year + 1) * year
	return next - year, next
}

// Progress is how far n is between the surrounding milestones, in [0, 1).
func Progress(n int) float64 {
	if n <= 0 {
		return 0
	}
	prev, next := NextMilestone(n)
	return float64(n-prev) / float64(next-prev)
}
