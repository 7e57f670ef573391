package scheduling

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"clinic-scheduling-api/internal/domain/entity"
)

// Source identifies which configuration layer produced a slot.
type Source string

const (
	SourceExplicit    Source = "explicit"
	SourceWeekly      Source = "weekly"
	SourceWorkingDays Source = "working_days"
)

// ResolutionOrder is the precedence of slot sources, highest first.
// An explicit slot row overrides weekly-template capacity and
// availability for the same time key; weekly templates take precedence
// over the working-days fallback when both generate the same time.
var ResolutionOrder = []Source{SourceExplicit, SourceWeekly, SourceWorkingDays}

// Slot statuses reported in the day view.
const (
	StatusAvailable = "available"
	StatusBooked    = "booked"
)

// MinSlotMinutes is the enforced floor for the slot duration.
const MinSlotMinutes = 60

// Slot is one bookable time unit in the computed day view.
type Slot struct {
	ID                  string `json:"id"`
	Time                string `json:"time"`
	StartTime           string `json:"start_time"`
	EndTime             string `json:"end_time"`
	Status              string `json:"status"`
	IsAvailable         bool   `json:"is_available"`
	IsFullyBooked       bool   `json:"is_fully_booked"`
	CurrentAppointments int    `json:"current_appointments"`
	MaxAppointments     int    `json:"max_appointments"`
	RemainingCapacity   int    `json:"remaining_capacity"`
	Source              Source `json:"-"`
}

// DaySchedule is the merged, time-ordered slot view for one doctor on
// one date.
type DaySchedule struct {
	Date      string `json:"date"`
	DayOfWeek string `json:"day_of_week"`
	Slots     []Slot `json:"slots"`
}

// DayInput carries everything the engine needs, already loaded. The
// engine itself performs no I/O; the result is a best-effort snapshot
// and the booking path re-checks conflicts against the ledger.
type DayInput struct {
	Date          time.Time
	Doctor        *entity.DoctorProfile
	Windows       []entity.AvailabilityWindow
	ExplicitSlots []entity.AppointmentSlot
	BookedCounts  map[string]int
}

// Engine computes day slot views from layered availability
// configuration, merged per ResolutionOrder with first-writer-wins
// deduplication by time key.
type Engine struct {
	SlotDuration time.Duration
	Clock        Clock
}

// NewEngine builds an Engine with the duration floor applied.
func NewEngine(slotMinutes int, clock Clock) *Engine {
	if slotMinutes < MinSlotMinutes {
		slotMinutes = MinSlotMinutes
	}
	if clock == nil {
		clock = SystemClock()
	}
	return &Engine{
		SlotDuration: time.Duration(slotMinutes) * time.Minute,
		Clock:        clock,
	}
}

// ComputeDaySlots merges weekly windows, the working-days fallback and
// explicit slot overrides into one deduplicated, time-ordered view.
// Fully-booked and already-past slots are reported, never omitted.
func (e *Engine) ComputeDaySlots(in DayInput) DaySchedule {
	dayOfWeek := strings.ToLower(in.Date.Weekday().String())

	// -1 means the target date is not today, so no past cutoff applies.
	nowMin := -1
	now := e.Clock.Now()
	if sameDate(now, in.Date) {
		nowMin = now.Hour()*60 + now.Minute()
	}

	explicit := make(map[string]*entity.AppointmentSlot, len(in.ExplicitSlots))
	for i := range in.ExplicitSlots {
		s := &in.ExplicitSlots[i]
		explicit[timeKey(s.StartTime)] = s
	}

	doctorAvailable := in.Doctor == nil || in.Doctor.IsAvailable

	processed := make(map[string]bool)
	var slots []Slot

	emit := func(c Candidate, source Source, fallbackID string, defaultFlag bool) {
		key := c.Start
		if processed[key] {
			return
		}
		processed[key] = true

		capacity := 1
		availableFlag := defaultFlag
		id := fallbackID
		if override, ok := explicit[key]; ok {
			capacity = override.Capacity()
			availableFlag = override.IsAvailable
			id = override.ID.String()
		}

		booked := in.BookedCounts[key]
		remaining := capacity - booked
		if remaining < 0 {
			remaining = 0
		}

		isFuture := nowMin < 0 || minutesOf(key) > nowMin
		isAvailable := availableFlag && remaining > 0 && isFuture

		status := StatusBooked
		if isAvailable {
			status = StatusAvailable
		}

		slots = append(slots, Slot{
			ID:                  id,
			Time:                key,
			StartTime:           key,
			EndTime:             c.End,
			Status:              status,
			IsAvailable:         isAvailable,
			IsFullyBooked:       remaining <= 0 || !isFuture,
			CurrentAppointments: booked,
			MaxAppointments:     capacity,
			RemainingCapacity:   remaining,
			Source:              source,
		})
	}

	// Weekly template pass.
	for _, w := range in.Windows {
		if !w.IsAvailable || !strings.EqualFold(w.DayOfWeek, dayOfWeek) {
			continue
		}
		for c := range Candidates(w.StartTime, w.EndTime, e.SlotDuration) {
			emit(c, SourceWeekly, fmt.Sprintf("availability-%s-%s", w.ID, compactKey(c.Start)), true)
		}
	}

	// Working-days fallback pass. The emit dedup makes weekly windows
	// win when both generate the same time.
	for _, win := range WorkingDayWindows(in.Doctor, dayOfWeek) {
		for c := range Candidates(win.Start, win.End, e.SlotDuration) {
			emit(c, SourceWorkingDays, fmt.Sprintf("working-%s-%s", dayOfWeek, compactKey(c.Start)), doctorAvailable)
		}
	}

	// Explicit slots outside any generated window are emitted directly.
	for _, s := range in.ExplicitSlots {
		key := timeKey(s.StartTime)
		if processed[key] {
			continue
		}
		emit(Candidate{Start: key, End: timeKey(s.EndTime)}, SourceExplicit, s.ID.String(), s.IsAvailable)
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i].Time < slots[j].Time })

	return DaySchedule{
		Date:      in.Date.Format("2006-01-02"),
		DayOfWeek: dayOfWeek,
		Slots:     slots,
	}
}

// timeKey normalizes a stored time value ("HH:MM" or "HH:MM:SS") to
// the "HH:MM" dedup key.
func timeKey(s string) string {
	if min, ok := parseClock(s); ok {
		return formatClock(min)
	}
	return s
}

func minutesOf(key string) int {
	min, _ := parseClock(key)
	return min
}

func compactKey(key string) string {
	return strings.ReplaceAll(key, ":", "")
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
