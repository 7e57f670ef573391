package repository

import (
	"context"
	"errors"

	"clinic-scheduling-api/internal/domain/entity"
	domainRepo "clinic-scheduling-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorRepository struct {
	db *gorm.DB
}

func NewDoctorRepository(db *gorm.DB) domainRepo.DoctorRepository {
	return &doctorRepository{db: db}
}

func (r *doctorRepository) Create(db *gorm.DB, doctor *entity.DoctorProfile) error {
	return db.Create(doctor).Error
}

func (r *doctorRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.DoctorProfile, error) {
	var doctor entity.DoctorProfile
	err := r.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindFirstAvailableByDepartment(ctx context.Context, department string) (*entity.DoctorProfile, error) {
	var doctor entity.DoctorProfile
	err := r.db.WithContext(ctx).Preload("User").
		Where("department ILIKE ? AND is_available = ?", department, true).
		Order("user_id").
		First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) ListAvailableByDepartment(ctx context.Context, department string) ([]entity.DoctorProfile, error) {
	var doctors []entity.DoctorProfile
	query := r.db.WithContext(ctx).Preload("User").Where("is_available = ?", true)
	if department != "" {
		query = query.Where("department ILIKE ?", department)
	}
	if err := query.Order("department, user_id").Find(&doctors).Error; err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorRepository) ListDepartments(ctx context.Context) ([]domainRepo.DepartmentSummary, error) {
	var departments []domainRepo.DepartmentSummary
	err := r.db.WithContext(ctx).Model(&entity.DoctorProfile{}).
		Select("department, COUNT(*) as doctors_count").
		Where("is_available = ?", true).
		Group("department").
		Order("department").
		Scan(&departments).Error
	if err != nil {
		return nil, err
	}
	return departments, nil
}

func (r *doctorRepository) UpdateSchedule(ctx context.Context, doctor *entity.DoctorProfile) error {
	return r.db.WithContext(ctx).Model(&entity.DoctorProfile{}).
		Where("user_id = ?", doctor.UserID).
		Select("IsAvailable", "DefaultStartTime", "DefaultEndTime", "WorkingDays").
		Updates(doctor).Error
}
