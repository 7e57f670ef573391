package entity_test

import (
	"errors"
	"testing"
	"time"

	"clinic-scheduling-api/internal/domain/entity"
)

// ============================================================================
// State machine
// ============================================================================

func TestTransitions_AllowedEdges(t *testing.T) {
	cases := []struct {
		from, to entity.AppointmentStatus
	}{
		{entity.AppointmentStatusScheduled, entity.AppointmentStatusConfirmed},
		{entity.AppointmentStatusScheduled, entity.AppointmentStatusInProgress},
		{entity.AppointmentStatusScheduled, entity.AppointmentStatusCancelled},
		{entity.AppointmentStatusScheduled, entity.AppointmentStatusNoShow},
		{entity.AppointmentStatusScheduled, entity.AppointmentStatusRescheduled},
		{entity.AppointmentStatusConfirmed, entity.AppointmentStatusInProgress},
		{entity.AppointmentStatusConfirmed, entity.AppointmentStatusCancelled},
		{entity.AppointmentStatusConfirmed, entity.AppointmentStatusRescheduled},
		{entity.AppointmentStatusRescheduled, entity.AppointmentStatusConfirmed},
		{entity.AppointmentStatusRescheduled, entity.AppointmentStatusRescheduled},
		{entity.AppointmentStatusInProgress, entity.AppointmentStatusCompleted},
		{entity.AppointmentStatusInProgress, entity.AppointmentStatusCancelled},
	}
	for _, tc := range cases {
		a := &entity.Appointment{Status: tc.from}
		if err := a.TransitionTo(tc.to); err != nil {
			t.Fatalf("%s -> %s should be allowed, got %v", tc.from, tc.to, err)
		}
		if a.Status != tc.to {
			t.Fatalf("%s -> %s did not update the status, still %s", tc.from, tc.to, a.Status)
		}
	}
}

func TestTransitions_ForbiddenEdges(t *testing.T) {
	cases := []struct {
		from, to entity.AppointmentStatus
	}{
		{entity.AppointmentStatusScheduled, entity.AppointmentStatusCompleted},
		{entity.AppointmentStatusConfirmed, entity.AppointmentStatusScheduled},
		{entity.AppointmentStatusInProgress, entity.AppointmentStatusRescheduled},
		{entity.AppointmentStatusInProgress, entity.AppointmentStatusNoShow},
	}
	for _, tc := range cases {
		a := &entity.Appointment{Status: tc.from}
		err := a.TransitionTo(tc.to)
		if err == nil {
			t.Fatalf("%s -> %s should be rejected", tc.from, tc.to)
		}
		if a.Status != tc.from {
			t.Fatalf("rejected transition must not change the status, got %s", a.Status)
		}
	}
}

func TestTransitions_TerminalStatesHaveNoExits(t *testing.T) {
	terminal := []entity.AppointmentStatus{
		entity.AppointmentStatusCompleted,
		entity.AppointmentStatusCancelled,
		entity.AppointmentStatusNoShow,
	}
	targets := []entity.AppointmentStatus{
		entity.AppointmentStatusScheduled,
		entity.AppointmentStatusConfirmed,
		entity.AppointmentStatusInProgress,
		entity.AppointmentStatusCompleted,
		entity.AppointmentStatusCancelled,
		entity.AppointmentStatusNoShow,
		entity.AppointmentStatusRescheduled,
	}
	for _, from := range terminal {
		a := &entity.Appointment{Status: from}
		if !a.IsTerminal() {
			t.Fatalf("%s should be terminal", from)
		}
		for _, to := range targets {
			if a.CanTransitionTo(to) {
				t.Fatalf("terminal %s must not allow a transition to %s", from, to)
			}
		}
	}
}

func TestTransitionTo_ErrorIdentifiesBothStates(t *testing.T) {
	a := &entity.Appointment{Status: entity.AppointmentStatusCompleted}

	err := a.TransitionTo(entity.AppointmentStatusCancelled)

	var transitionErr *entity.InvalidTransitionError
	if !errors.As(err, &transitionErr) {
		t.Fatalf("expected an InvalidTransitionError, got %T", err)
	}
	if transitionErr.From != entity.AppointmentStatusCompleted ||
		transitionErr.To != entity.AppointmentStatusCancelled {
		t.Fatalf("error carries wrong states: %+v", transitionErr)
	}
}

func TestIsValidStatus(t *testing.T) {
	if !entity.IsValidStatus(entity.AppointmentStatusNoShow) {
		t.Fatal("no_show is a known status")
	}
	if entity.IsValidStatus("archived") {
		t.Fatal("unknown statuses must be rejected")
	}
}

// ============================================================================
// Capacity occupancy
// ============================================================================

func TestIsActive(t *testing.T) {
	active := []entity.AppointmentStatus{
		entity.AppointmentStatusScheduled,
		entity.AppointmentStatusConfirmed,
		entity.AppointmentStatusInProgress,
	}
	inactive := []entity.AppointmentStatus{
		entity.AppointmentStatusCompleted,
		entity.AppointmentStatusCancelled,
		entity.AppointmentStatusNoShow,
		entity.AppointmentStatusRescheduled,
	}
	for _, s := range active {
		if a := (&entity.Appointment{Status: s}); !a.IsActive() {
			t.Fatalf("%s should occupy capacity", s)
		}
	}
	for _, s := range inactive {
		if a := (&entity.Appointment{Status: s}); a.IsActive() {
			t.Fatalf("%s should not occupy capacity", s)
		}
	}
}

// ============================================================================
// Cancellation window
// ============================================================================

func TestCanBeCancelled(t *testing.T) {
	now := time.Date(2026, 9, 7, 12, 0, 0, 0, time.UTC)
	deadline := 24 * time.Hour

	makeAppointment := func(status entity.AppointmentStatus, start time.Time) *entity.Appointment {
		return &entity.Appointment{
			Status:          status,
			AppointmentDate: time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC),
			AppointmentTime: start.Format("15:04"),
		}
	}

	// GIVEN an appointment starting well past the deadline
	early := makeAppointment(entity.AppointmentStatusScheduled, now.Add(48*time.Hour))
	if !early.CanBeCancelled(now, deadline) {
		t.Fatal("an appointment 48h out should be cancellable")
	}

	// GIVEN an appointment inside the deadline window
	late := makeAppointment(entity.AppointmentStatusScheduled, now.Add(2*time.Hour))
	if late.CanBeCancelled(now, deadline) {
		t.Fatal("an appointment 2h out is inside the 24h window")
	}

	// GIVEN an appointment starting exactly at the deadline boundary
	boundary := makeAppointment(entity.AppointmentStatusScheduled, now.Add(deadline))
	if boundary.CanBeCancelled(now, deadline) {
		t.Fatal("the boundary is exclusive, exactly 24h out is too late")
	}

	// GIVEN a terminal appointment far in the future
	done := makeAppointment(entity.AppointmentStatusCompleted, now.Add(48*time.Hour))
	if done.CanBeCancelled(now, deadline) {
		t.Fatal("terminal appointments are never cancellable")
	}
}

func TestDateTime_CombinesDateAndClock(t *testing.T) {
	a := &entity.Appointment{
		AppointmentDate: time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		AppointmentTime: "14:30",
	}

	got := a.DateTime(time.UTC)

	want := time.Date(2026, 9, 7, 14, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}
