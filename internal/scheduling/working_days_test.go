package scheduling_test

import (
	"testing"

	"github.com/google/uuid"

	"clinic-scheduling-api/internal/domain/entity"
	"clinic-scheduling-api/internal/scheduling"
)

func testDoctor(days ...entity.WorkingDay) *entity.DoctorProfile {
	return &entity.DoctorProfile{
		UserID:           uuid.New(),
		IsAvailable:      true,
		DefaultStartTime: "09:00",
		DefaultEndTime:   "17:00",
		WorkingDays:      days,
	}
}

func TestWorkingDayWindows_NoMatchingDay(t *testing.T) {
	doctor := testDoctor(entity.WorkingDay{Day: "tuesday", Available: true, Active: true})

	if got := scheduling.WorkingDayWindows(doctor, "monday"); len(got) != 0 {
		t.Fatalf("expected no windows for an unmatched weekday, got %+v", got)
	}
}

func TestWorkingDayWindows_InheritsDoctorDefaults(t *testing.T) {
	// An entry without its own times takes the doctor's default hours.
	doctor := testDoctor(entity.WorkingDay{Day: "Monday", Available: true, Active: true})

	got := scheduling.WorkingDayWindows(doctor, "monday")
	if len(got) != 1 {
		t.Fatalf("expected one window, got %d", len(got))
	}
	if got[0].Start != "09:00" || got[0].End != "17:00" {
		t.Fatalf("expected default hours, got %s-%s", got[0].Start, got[0].End)
	}
}

func TestWorkingDayWindows_OwnTimesWin(t *testing.T) {
	doctor := testDoctor(entity.WorkingDay{
		Day:       "monday",
		StartTime: "13:00",
		EndTime:   "18:00",
		Available: true,
		Active:    true,
	})

	got := scheduling.WorkingDayWindows(doctor, "monday")
	if len(got) != 1 || got[0].Start != "13:00" || got[0].End != "18:00" {
		t.Fatalf("expected the entry's own hours, got %+v", got)
	}
}

func TestWorkingDayWindows_SkipsDisabledEntries(t *testing.T) {
	cases := []struct {
		name  string
		entry entity.WorkingDay
	}{
		{"not available", entity.WorkingDay{Day: "monday", Available: false, Active: true}},
		{"not active", entity.WorkingDay{Day: "monday", Available: true, Active: false}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doctor := testDoctor(tc.entry)
			if got := scheduling.WorkingDayWindows(doctor, "monday"); len(got) != 0 {
				t.Fatalf("disabled entry must yield no windows, got %+v", got)
			}
		})
	}
}

func TestWorkingDayWindows_MalformedTimesFallBackToDefaults(t *testing.T) {
	// A matched day whose own times cannot be parsed still yields the
	// doctor's default window instead of vanishing.
	doctor := testDoctor(entity.WorkingDay{
		Day:       "monday",
		StartTime: "late",
		EndTime:   "later",
		Available: true,
		Active:    true,
	})

	got := scheduling.WorkingDayWindows(doctor, "monday")
	if len(got) != 1 || got[0].Start != "09:00" || got[0].End != "17:00" {
		t.Fatalf("expected the default window, got %+v", got)
	}
}

func TestWorkingDayWindows_InvertedWindowDropped(t *testing.T) {
	doctor := testDoctor(entity.WorkingDay{
		Day:       "monday",
		StartTime: "18:00",
		EndTime:   "09:00",
		Available: true,
		Active:    true,
	})

	if got := scheduling.WorkingDayWindows(doctor, "monday"); len(got) != 0 {
		t.Fatalf("inverted hours must not produce a window, got %+v", got)
	}
}

func TestWorkingDayWindows_MissingDoctorDefaults(t *testing.T) {
	// With no defaults configured the clinic-wide fallback hours apply.
	doctor := &entity.DoctorProfile{
		UserID:      uuid.New(),
		IsAvailable: true,
		WorkingDays: entity.WorkingDayList{{Day: "friday", Available: true, Active: true}},
	}

	got := scheduling.WorkingDayWindows(doctor, "friday")
	if len(got) != 1 || got[0].Start != "09:00" || got[0].End != "19:00" {
		t.Fatalf("expected the 09:00-19:00 fallback, got %+v", got)
	}
}

func TestWorkingDayWindows_NilDoctor(t *testing.T) {
	if got := scheduling.WorkingDayWindows(nil, "monday"); got != nil {
		t.Fatalf("nil doctor must yield nothing, got %+v", got)
	}
}

func TestWorkingDayWindows_MultipleEntriesSameDay(t *testing.T) {
	doctor := testDoctor(
		entity.WorkingDay{Day: "monday", StartTime: "08:00", EndTime: "12:00", Available: true, Active: true},
		entity.WorkingDay{Day: "monday", StartTime: "14:00", EndTime: "18:00", Available: true, Active: true},
	)

	got := scheduling.WorkingDayWindows(doctor, "monday")
	if len(got) != 2 {
		t.Fatalf("expected both blocks, got %+v", got)
	}
}
