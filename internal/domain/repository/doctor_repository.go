package repository

import (
	"context"

	"clinic-scheduling-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DepartmentSummary is one department with its available-doctor count.
type DepartmentSummary struct {
	Department   string `json:"department"`
	DoctorsCount int    `json:"doctors_count"`
}

type DoctorRepository interface {
	// Create participates in the registration transaction.
	Create(db *gorm.DB, doctor *entity.DoctorProfile) error

	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.DoctorProfile, error)
	FindFirstAvailableByDepartment(ctx context.Context, department string) (*entity.DoctorProfile, error)
	ListAvailableByDepartment(ctx context.Context, department string) ([]entity.DoctorProfile, error)
	ListDepartments(ctx context.Context) ([]DepartmentSummary, error)

	// UpdateSchedule persists availability-related doctor fields
	// (defaults, working days, availability flag).
	UpdateSchedule(ctx context.Context, doctor *entity.DoctorProfile) error
}
