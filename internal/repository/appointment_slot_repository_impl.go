package repository

import (
	"context"
	"errors"
	"time"

	"clinic-scheduling-api/internal/domain/entity"
	domainRepo "clinic-scheduling-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentSlotRepository struct {
	db *gorm.DB
}

func NewAppointmentSlotRepository(db *gorm.DB) domainRepo.AppointmentSlotRepository {
	return &appointmentSlotRepository{db: db}
}

func (r *appointmentSlotRepository) Create(ctx context.Context, slot *entity.AppointmentSlot) error {
	return r.db.WithContext(ctx).Create(slot).Error
}

func (r *appointmentSlotRepository) Update(ctx context.Context, slot *entity.AppointmentSlot) error {
	return r.db.WithContext(ctx).Omit("Doctor").Save(slot).Error
}

func (r *appointmentSlotRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.AppointmentSlot{})
	return result.RowsAffected, result.Error
}

func (r *appointmentSlotRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.AppointmentSlot, error) {
	var slot entity.AppointmentSlot
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	normalizeSlotTimes(&slot)
	return &slot, nil
}

func (r *appointmentSlotRepository) FindByDoctorAndDate(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]entity.AppointmentSlot, error) {
	var slots []entity.AppointmentSlot
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND date = ?", doctorID, date.Format("2006-01-02")).
		Order("start_time").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	for i := range slots {
		normalizeSlotTimes(&slots[i])
	}
	return slots, nil
}

func (r *appointmentSlotRepository) FindByDoctorDateTime(ctx context.Context, doctorID uuid.UUID, date time.Time, startTime string) (*entity.AppointmentSlot, error) {
	var slot entity.AppointmentSlot
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND date = ? AND start_time = ?", doctorID, date.Format("2006-01-02"), startTime).
		First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	normalizeSlotTimes(&slot)
	return &slot, nil
}

func normalizeSlotTimes(slot *entity.AppointmentSlot) {
	slot.StartTime = normalizeTime(slot.StartTime)
	slot.EndTime = normalizeTime(slot.EndTime)
}
