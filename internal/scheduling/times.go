package scheduling

import "fmt"

// parseClock converts "HH:MM" (or "HH:MM:SS") to minutes since
// midnight. Returns false for anything it cannot read.
func parseClock(s string) (int, bool) {
	var h, m, sec int
	if _, err := fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec); err != nil {
		if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
			return 0, false
		}
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

// formatClock renders minutes since midnight as "HH:MM".
func formatClock(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}
