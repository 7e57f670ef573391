package repository

import (
	"context"
	"errors"
	"time"

	"clinic-scheduling-api/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrSlotCapacityExceeded is returned by the booking ledger when a
// serialized check-then-insert (or reschedule) finds the target slot
// already at capacity.
var ErrSlotCapacityExceeded = errors.New("slot capacity exceeded")

// AppointmentRepository is the booking ledger: the single source of
// truth for booked counts and conflict checks.
//
// CreateScheduled and Reschedule must serialize the check-then-insert
// sequence per (doctor, date, time) key at the storage layer; callers
// must not rely on a prior read of the slot view.
type AppointmentRepository interface {
	// CreateScheduled inserts the appointment if fewer than capacity
	// active appointments exist for its (doctor, date, time) key,
	// returning ErrSlotCapacityExceeded otherwise.
	CreateScheduled(ctx context.Context, appointment *entity.Appointment, capacity int) error

	// Reschedule moves the appointment to a new (date, time) under the
	// same capacity check, excluding the moved record itself. The
	// stored record is left untouched on conflict.
	Reschedule(ctx context.Context, appointment *entity.Appointment, newDate time.Time, newTime string, capacity int) error

	Update(ctx context.Context, appointment *entity.Appointment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)
	FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.Appointment, error)
	FindByDoctorAndDate(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]entity.Appointment, error)

	// CountActiveByTime returns booked counts per "HH:MM" time key for
	// appointments in an active status on the given doctor/date.
	CountActiveByTime(ctx context.Context, doctorID uuid.UUID, date time.Time) (map[string]int, error)
}
