package scheduling

import (
	"iter"
	"time"
)

// Candidate is one generated slot start within a window, carrying its
// computed end time. Times are "HH:MM".
type Candidate struct {
	Start string
	End   string
}

// Candidates returns a lazy, finite, restartable sequence of slot
// start candidates inside the (start, end) window, stepping by
// duration while start+duration still fits. Malformed window bounds
// yield an empty sequence.
func Candidates(start, end string, duration time.Duration) iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		startMin, ok := parseClock(start)
		if !ok {
			return
		}
		endMin, ok := parseClock(end)
		if !ok {
			return
		}
		step := int(duration.Minutes())
		if step <= 0 {
			return
		}
		for cur := startMin; cur+step <= endMin; cur += step {
			if !yield(Candidate{Start: formatClock(cur), End: formatClock(cur + step)}) {
				return
			}
		}
	}
}
