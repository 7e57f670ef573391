package scheduling

import (
	"strings"

	"clinic-scheduling-api/internal/domain/entity"
)

// Fallback daily hours used when a doctor has no defaults configured.
const (
	fallbackDayStart = "09:00"
	fallbackDayEnd   = "19:00"
)

// Window is a (start, end) pair of "HH:MM" times.
type Window struct {
	Start string
	End   string
}

// WorkingDayWindows derives slot windows for a weekday from the
// doctor-level working-days fallback. Entries matching the weekday
// resolve their own times or inherit the doctor defaults; only
// strictly increasing windows survive. A matched weekday whose entries
// are all malformed still yields one window from the defaults, so a
// working day is never silently empty just because its times are bad.
// A weekday with no matching entry yields nothing.
func WorkingDayWindows(doctor *entity.DoctorProfile, dayOfWeek string) []Window {
	target := strings.ToLower(strings.TrimSpace(dayOfWeek))
	if doctor == nil || target == "" {
		return nil
	}

	defaultStart := doctor.DefaultStartTime
	if _, ok := parseClock(defaultStart); !ok {
		defaultStart = fallbackDayStart
	}
	defaultEnd := doctor.DefaultEndTime
	if _, ok := parseClock(defaultEnd); !ok {
		defaultEnd = fallbackDayEnd
	}

	var windows []Window
	matched := false

	for _, wd := range doctor.WorkingDays {
		if wd.NormalizedDay() != target {
			continue
		}
		if !wd.Available || !wd.Active {
			continue
		}
		matched = true

		start := wd.StartTime
		if _, ok := parseClock(start); !ok {
			start = defaultStart
		}
		end := wd.EndTime
		if _, ok := parseClock(end); !ok {
			end = defaultEnd
		}

		startMin, _ := parseClock(start)
		endMin, _ := parseClock(end)
		if startMin < endMin {
			windows = append(windows, Window{Start: start, End: end})
		}
	}

	if matched && len(windows) == 0 {
		startMin, _ := parseClock(defaultStart)
		endMin, _ := parseClock(defaultEnd)
		if startMin < endMin {
			return []Window{{Start: defaultStart, End: defaultEnd}}
		}
	}

	return windows
}
