package scheduling_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"clinic-scheduling-api/internal/domain/entity"
	"clinic-scheduling-api/internal/scheduling"
)

// ============================================================================
// Helpers
// ============================================================================

func newTestEngine(now time.Time) *scheduling.Engine {
	return scheduling.NewEngine(60, scheduling.FixedClock{Time: now})
}

func mondayDate() time.Time {
	// 2026-09-07 is a Monday.
	return time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
}

func weeklyWindow(day, start, end string) entity.AvailabilityWindow {
	return entity.AvailabilityWindow{
		ID:          uuid.New(),
		DoctorID:    uuid.New(),
		DayOfWeek:   day,
		StartTime:   start,
		EndTime:     end,
		IsAvailable: true,
	}
}

func slotByTime(t *testing.T, schedule scheduling.DaySchedule, key string) scheduling.Slot {
	t.Helper()
	for _, s := range schedule.Slots {
		if s.Time == key {
			return s
		}
	}
	t.Fatalf("schedule has no slot at %s, got %d slots", key, len(schedule.Slots))
	return scheduling.Slot{}
}

// ============================================================================
// Empty configuration
// ============================================================================

func TestComputeDaySlots_NoConfiguration(t *testing.T) {
	// GIVEN a doctor with no windows, no working days and no explicit slots
	engine := newTestEngine(mondayDate().AddDate(0, 0, -1))
	doctor := &entity.DoctorProfile{UserID: uuid.New(), IsAvailable: true}

	// WHEN computing the day view
	schedule := engine.ComputeDaySlots(scheduling.DayInput{
		Date:   mondayDate(),
		Doctor: doctor,
	})

	// THEN the view is empty but still describes the day
	if len(schedule.Slots) != 0 {
		t.Fatalf("expected no slots, got %d", len(schedule.Slots))
	}
	if schedule.Date != "2026-09-07" {
		t.Fatalf("unexpected date %q", schedule.Date)
	}
	if schedule.DayOfWeek != "monday" {
		t.Fatalf("unexpected day of week %q", schedule.DayOfWeek)
	}
}

// ============================================================================
// Weekly windows
// ============================================================================

func TestComputeDaySlots_WeeklyWindow(t *testing.T) {
	// GIVEN a Monday window 09:00-11:00 with 60-minute slots
	engine := newTestEngine(mondayDate().AddDate(0, 0, -1))

	// WHEN computing Monday's view
	schedule := engine.ComputeDaySlots(scheduling.DayInput{
		Date:    mondayDate(),
		Windows: []entity.AvailabilityWindow{weeklyWindow("monday", "09:00", "11:00")},
	})

	// THEN exactly two slots come out, in order, both available
	if len(schedule.Slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(schedule.Slots))
	}
	first, second := schedule.Slots[0], schedule.Slots[1]
	if first.StartTime != "09:00" || first.EndTime != "10:00" {
		t.Fatalf("unexpected first slot %s-%s", first.StartTime, first.EndTime)
	}
	if second.StartTime != "10:00" || second.EndTime != "11:00" {
		t.Fatalf("unexpected second slot %s-%s", second.StartTime, second.EndTime)
	}
	for _, s := range schedule.Slots {
		if !s.IsAvailable || s.Status != scheduling.StatusAvailable {
			t.Fatalf("slot %s should be available, got status %q", s.Time, s.Status)
		}
		if s.MaxAppointments != 1 || s.RemainingCapacity != 1 {
			t.Fatalf("slot %s should default to capacity 1, got max=%d remaining=%d",
				s.Time, s.MaxAppointments, s.RemainingCapacity)
		}
	}
}

func TestComputeDaySlots_WindowOnOtherDayIgnored(t *testing.T) {
	engine := newTestEngine(mondayDate().AddDate(0, 0, -1))

	schedule := engine.ComputeDaySlots(scheduling.DayInput{
		Date:    mondayDate(),
		Windows: []entity.AvailabilityWindow{weeklyWindow("tuesday", "09:00", "11:00")},
	})

	if len(schedule.Slots) != 0 {
		t.Fatalf("tuesday window must not produce monday slots, got %d", len(schedule.Slots))
	}
}

func TestComputeDaySlots_UnavailableWindowSkipped(t *testing.T) {
	engine := newTestEngine(mondayDate().AddDate(0, 0, -1))
	w := weeklyWindow("monday", "09:00", "11:00")
	w.IsAvailable = false

	schedule := engine.ComputeDaySlots(scheduling.DayInput{
		Date:    mondayDate(),
		Windows: []entity.AvailabilityWindow{w},
	})

	if len(schedule.Slots) != 0 {
		t.Fatalf("disabled window must not generate slots, got %d", len(schedule.Slots))
	}
}

// ============================================================================
// Booked counts and capacity
// ============================================================================

func TestComputeDaySlots_FullyBookedSlotReported(t *testing.T) {
	// GIVEN a window slot with one active booking against capacity 1
	engine := newTestEngine(mondayDate().AddDate(0, 0, -1))

	// WHEN computing the view
	schedule := engine.ComputeDaySlots(scheduling.DayInput{
		Date:         mondayDate(),
		Windows:      []entity.AvailabilityWindow{weeklyWindow("monday", "09:00", "11:00")},
		BookedCounts: map[string]int{"09:00": 1},
	})

	// THEN the full slot is present, marked booked, never omitted
	full := slotByTime(t, schedule, "09:00")
	if full.Status != scheduling.StatusBooked || full.IsAvailable {
		t.Fatalf("full slot should be booked, got status %q available=%v", full.Status, full.IsAvailable)
	}
	if !full.IsFullyBooked {
		t.Fatal("full slot should report is_fully_booked")
	}
	open := slotByTime(t, schedule, "10:00")
	if !open.IsAvailable {
		t.Fatal("untouched slot should remain available")
	}
}

func TestComputeDaySlots_CapacityArithmetic(t *testing.T) {
	// GIVEN an explicit slot with capacity 3 and varying booked counts
	engine := newTestEngine(mondayDate().AddDate(0, 0, -1))
	doctorID := uuid.New()

	for booked := 0; booked <= 3; booked++ {
		schedule := engine.ComputeDaySlots(scheduling.DayInput{
			Date: mondayDate(),
			ExplicitSlots: []entity.AppointmentSlot{{
				ID:              uuid.New(),
				DoctorID:        doctorID,
				Date:            mondayDate(),
				StartTime:       "09:00",
				EndTime:         "10:00",
				IsAvailable:     true,
				MaxAppointments: 3,
			}},
			BookedCounts: map[string]int{"09:00": booked},
		})

		// THEN current + remaining always equals max
		s := slotByTime(t, schedule, "09:00")
		if s.CurrentAppointments+s.RemainingCapacity != s.MaxAppointments {
			t.Fatalf("booked=%d: current(%d)+remaining(%d) != max(%d)",
				booked, s.CurrentAppointments, s.RemainingCapacity, s.MaxAppointments)
		}
		wantAvailable := booked < 3
		if s.IsAvailable != wantAvailable {
			t.Fatalf("booked=%d: expected available=%v", booked, wantAvailable)
		}
	}
}

func TestComputeDaySlots_PartiallyBookedExplicitSlot(t *testing.T) {
	// GIVEN an explicit slot allowing 2 appointments with 1 already booked
	engine := newTestEngine(mondayDate().AddDate(0, 0, -1))

	schedule := engine.ComputeDaySlots(scheduling.DayInput{
		Date: mondayDate(),
		ExplicitSlots: []entity.AppointmentSlot{{
			ID:              uuid.New(),
			Date:            mondayDate(),
			StartTime:       "14:00",
			EndTime:         "15:00",
			IsAvailable:     true,
			MaxAppointments: 2,
		}},
		BookedCounts: map[string]int{"14:00": 1},
	})

	// THEN the slot stays available with one seat left
	s := slotByTime(t, schedule, "14:00")
	if !s.IsAvailable || s.RemainingCapacity != 1 || s.CurrentAppointments != 1 {
		t.Fatalf("expected available with remaining=1, got available=%v remaining=%d current=%d",
			s.IsAvailable, s.RemainingCapacity, s.CurrentAppointments)
	}
}

// ============================================================================
// Precedence and deduplication
// ============================================================================

func TestComputeDaySlots_ExplicitOverridesWeekly(t *testing.T) {
	// GIVEN a weekly window and an explicit override for the same time key
	engine := newTestEngine(mondayDate().AddDate(0, 0, -1))
	override := entity.AppointmentSlot{
		ID:              uuid.New(),
		Date:            mondayDate(),
		StartTime:       "09:00:00",
		EndTime:         "10:00:00",
		IsAvailable:     false,
		MaxAppointments: 5,
	}

	schedule := engine.ComputeDaySlots(scheduling.DayInput{
		Date:          mondayDate(),
		Windows:       []entity.AvailabilityWindow{weeklyWindow("monday", "09:00", "11:00")},
		ExplicitSlots: []entity.AppointmentSlot{override},
	})

	// THEN there is one slot per time and 09:00 carries the override's
	// identity, capacity and availability
	if len(schedule.Slots) != 2 {
		t.Fatalf("expected 2 deduplicated slots, got %d", len(schedule.Slots))
	}
	s := slotByTime(t, schedule, "09:00")
	if s.ID != override.ID.String() {
		t.Fatalf("expected override id %s, got %s", override.ID, s.ID)
	}
	if s.MaxAppointments != 5 {
		t.Fatalf("expected override capacity 5, got %d", s.MaxAppointments)
	}
	if s.IsAvailable || s.Status != scheduling.StatusBooked {
		t.Fatal("blocked override must report the slot unavailable")
	}
}

func TestComputeDaySlots_WeeklyWinsOverWorkingDays(t *testing.T) {
	// GIVEN a weekly monday window and a working-days fallback covering
	// the same hours on an unavailable doctor
	engine := newTestEngine(mondayDate().AddDate(0, 0, -1))
	doctor := &entity.DoctorProfile{
		UserID:           uuid.New(),
		IsAvailable:      false,
		DefaultStartTime: "09:00",
		DefaultEndTime:   "11:00",
		WorkingDays: entity.WorkingDayList{
			{Day: "Monday", Available: true, Active: true},
		},
	}

	schedule := engine.ComputeDaySlots(scheduling.DayInput{
		Date:    mondayDate(),
		Doctor:  doctor,
		Windows: []entity.AvailabilityWindow{weeklyWindow("monday", "09:00", "11:00")},
	})

	// THEN the weekly layer's availability wins for the shared times
	if len(schedule.Slots) != 2 {
		t.Fatalf("expected 2 deduplicated slots, got %d", len(schedule.Slots))
	}
	for _, s := range schedule.Slots {
		if !s.IsAvailable {
			t.Fatalf("slot %s should take the weekly layer's availability", s.Time)
		}
	}
}

func TestComputeDaySlots_WorkingDaysFallback(t *testing.T) {
	// GIVEN only a working-days entry, no weekly windows
	engine := newTestEngine(mondayDate().AddDate(0, 0, -1))
	doctor := &entity.DoctorProfile{
		UserID:           uuid.New(),
		IsAvailable:      true,
		DefaultStartTime: "10:00",
		DefaultEndTime:   "13:00",
		WorkingDays: entity.WorkingDayList{
			{Day: "monday", Available: true, Active: true},
		},
	}

	schedule := engine.ComputeDaySlots(scheduling.DayInput{
		Date:   mondayDate(),
		Doctor: doctor,
	})

	// THEN the default hours generate the slots
	if len(schedule.Slots) != 3 {
		t.Fatalf("expected 3 fallback slots, got %d", len(schedule.Slots))
	}
	if schedule.Slots[0].Time != "10:00" || schedule.Slots[2].Time != "12:00" {
		t.Fatalf("unexpected fallback times %s..%s", schedule.Slots[0].Time, schedule.Slots[2].Time)
	}
}

func TestComputeDaySlots_ExplicitOutsideWindowsEmitted(t *testing.T) {
	// GIVEN an explicit evening slot outside the weekly window
	engine := newTestEngine(mondayDate().AddDate(0, 0, -1))
	extra := entity.AppointmentSlot{
		ID:              uuid.New(),
		Date:            mondayDate(),
		StartTime:       "20:00",
		EndTime:         "21:00",
		IsAvailable:     true,
		MaxAppointments: 1,
	}

	schedule := engine.ComputeDaySlots(scheduling.DayInput{
		Date:          mondayDate(),
		Windows:       []entity.AvailabilityWindow{weeklyWindow("monday", "09:00", "10:00")},
		ExplicitSlots: []entity.AppointmentSlot{extra},
	})

	// THEN it appears in the view, and the view stays sorted by time
	if len(schedule.Slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(schedule.Slots))
	}
	if schedule.Slots[0].Time != "09:00" || schedule.Slots[1].Time != "20:00" {
		t.Fatalf("slots out of order: %s, %s", schedule.Slots[0].Time, schedule.Slots[1].Time)
	}
	if schedule.Slots[1].ID != extra.ID.String() {
		t.Fatalf("expected explicit slot id, got %s", schedule.Slots[1].ID)
	}
}

// ============================================================================
// Past cutoff for same-day views
// ============================================================================

func TestComputeDaySlots_PastSlotsToday(t *testing.T) {
	// GIVEN the view is computed for today at 10:30
	day := mondayDate()
	engine := newTestEngine(time.Date(day.Year(), day.Month(), day.Day(), 10, 30, 0, 0, time.UTC))

	schedule := engine.ComputeDaySlots(scheduling.DayInput{
		Date:    day,
		Windows: []entity.AvailabilityWindow{weeklyWindow("monday", "09:00", "12:00")},
	})

	// THEN slots at or before now are reported but not bookable
	past := slotByTime(t, schedule, "09:00")
	if past.IsAvailable || past.Status != scheduling.StatusBooked {
		t.Fatal("09:00 already started and must not be available")
	}
	boundary := slotByTime(t, schedule, "10:00")
	if boundary.IsAvailable {
		t.Fatal("10:00 started before 10:30 and must not be available")
	}
	future := slotByTime(t, schedule, "11:00")
	if !future.IsAvailable {
		t.Fatal("11:00 is still in the future and must stay available")
	}
}

func TestComputeDaySlots_NoPastCutoffOnFutureDates(t *testing.T) {
	// GIVEN the target date is tomorrow relative to the clock
	day := mondayDate()
	engine := newTestEngine(day.AddDate(0, 0, -1).Add(23 * time.Hour))

	schedule := engine.ComputeDaySlots(scheduling.DayInput{
		Date:    day,
		Windows: []entity.AvailabilityWindow{weeklyWindow("monday", "09:00", "11:00")},
	})

	// THEN the wall clock does not mark anything past
	for _, s := range schedule.Slots {
		if !s.IsAvailable {
			t.Fatalf("slot %s on a future date should be available", s.Time)
		}
	}
}

// ============================================================================
// Determinism and configuration floors
// ============================================================================

func TestComputeDaySlots_Deterministic(t *testing.T) {
	// GIVEN a fixed input mixing all three layers
	engine := newTestEngine(mondayDate().AddDate(0, 0, -1))
	in := scheduling.DayInput{
		Date: mondayDate(),
		Doctor: &entity.DoctorProfile{
			UserID:           uuid.New(),
			IsAvailable:      true,
			DefaultStartTime: "08:00",
			DefaultEndTime:   "12:00",
			WorkingDays:      entity.WorkingDayList{{Day: "monday", Available: true, Active: true}},
		},
		Windows: []entity.AvailabilityWindow{weeklyWindow("monday", "10:00", "13:00")},
		ExplicitSlots: []entity.AppointmentSlot{{
			ID:              uuid.New(),
			Date:            mondayDate(),
			StartTime:       "11:00",
			EndTime:         "12:00",
			IsAvailable:     true,
			MaxAppointments: 4,
		}},
		BookedCounts: map[string]int{"10:00": 1, "11:00": 2},
	}

	// WHEN computing the same view twice
	first := engine.ComputeDaySlots(in)
	second := engine.ComputeDaySlots(in)

	// THEN the results are identical
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same input produced different views:\n%+v\n%+v", first, second)
	}
}

func TestNewEngine_DurationFloor(t *testing.T) {
	engine := scheduling.NewEngine(15, scheduling.FixedClock{Time: mondayDate()})
	if engine.SlotDuration != time.Hour {
		t.Fatalf("expected the 60-minute floor, got %s", engine.SlotDuration)
	}
}
