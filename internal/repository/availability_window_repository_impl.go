package repository

import (
	"context"

	"clinic-scheduling-api/internal/domain/entity"
	domainRepo "clinic-scheduling-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type availabilityWindowRepository struct {
	db *gorm.DB
}

func NewAvailabilityWindowRepository(db *gorm.DB) domainRepo.AvailabilityWindowRepository {
	return &availabilityWindowRepository{db: db}
}

func (r *availabilityWindowRepository) Create(ctx context.Context, window *entity.AvailabilityWindow) error {
	return r.db.WithContext(ctx).Create(window).Error
}

func (r *availabilityWindowRepository) FindByDoctorID(ctx context.Context, doctorID uuid.UUID) ([]entity.AvailabilityWindow, error) {
	var windows []entity.AvailabilityWindow
	err := r.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("day_of_week, start_time").
		Find(&windows).Error
	if err != nil {
		return nil, err
	}
	normalizeWindowTimes(windows)
	return windows, nil
}

func (r *availabilityWindowRepository) FindAvailableByDoctorAndDay(ctx context.Context, doctorID uuid.UUID, dayOfWeek string) ([]entity.AvailabilityWindow, error) {
	var windows []entity.AvailabilityWindow
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND LOWER(day_of_week) = LOWER(?) AND is_available = ?", doctorID, dayOfWeek, true).
		Order("start_time").
		Find(&windows).Error
	if err != nil {
		return nil, err
	}
	normalizeWindowTimes(windows)
	return windows, nil
}

func (r *availabilityWindowRepository) ReplaceForDoctor(ctx context.Context, doctorID uuid.UUID, windows []entity.AvailabilityWindow) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("doctor_id = ?", doctorID).Delete(&entity.AvailabilityWindow{}).Error; err != nil {
			return err
		}
		if len(windows) == 0 {
			return nil
		}
		return tx.Create(&windows).Error
	})
}

func (r *availabilityWindowRepository) Delete(ctx context.Context, doctorID, windowID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND doctor_id = ?", windowID, doctorID).
		Delete(&entity.AvailabilityWindow{})
	return result.RowsAffected, result.Error
}

func normalizeWindowTimes(windows []entity.AvailabilityWindow) {
	for i := range windows {
		windows[i].StartTime = normalizeTime(windows[i].StartTime)
		windows[i].EndTime = normalizeTime(windows[i].EndTime)
	}
}
