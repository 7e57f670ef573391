package repository

import (
	"context"

	"clinic-scheduling-api/internal/domain/entity"

	"github.com/google/uuid"
)

type AvailabilityWindowRepository interface {
	Create(ctx context.Context, window *entity.AvailabilityWindow) error
	FindByDoctorID(ctx context.Context, doctorID uuid.UUID) ([]entity.AvailabilityWindow, error)

	// FindAvailableByDoctorAndDay returns is_available windows for the
	// weekday, ordered by start time, as consumed by the slot engine.
	FindAvailableByDoctorAndDay(ctx context.Context, doctorID uuid.UUID, dayOfWeek string) ([]entity.AvailabilityWindow, error)

	// ReplaceForDoctor swaps the doctor's whole weekly template in one
	// transaction.
	ReplaceForDoctor(ctx context.Context, doctorID uuid.UUID, windows []entity.AvailabilityWindow) error

	// Delete removes one window scoped to the owning doctor. Returns
	// affected rows so callers can distinguish not-found.
	Delete(ctx context.Context, doctorID, windowID uuid.UUID) (int64, error)
}
