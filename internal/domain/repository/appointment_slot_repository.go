package repository

import (
	"context"
	"time"

	"clinic-scheduling-api/internal/domain/entity"

	"github.com/google/uuid"
)

type AppointmentSlotRepository interface {
	Create(ctx context.Context, slot *entity.AppointmentSlot) error
	Update(ctx context.Context, slot *entity.AppointmentSlot) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.AppointmentSlot, error)
	FindByDoctorAndDate(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]entity.AppointmentSlot, error)

	// FindByDoctorDateTime resolves the explicit override for one time
	// key, the authoritative capacity source for the booking path.
	FindByDoctorDateTime(ctx context.Context, doctorID uuid.UUID, date time.Time, startTime string) (*entity.AppointmentSlot, error)
}
