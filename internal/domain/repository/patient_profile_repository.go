package repository

import (
	"context"

	"clinic-scheduling-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PatientProfileRepository interface {
	// Create participates in the registration transaction.
	Create(db *gorm.DB, profile *entity.PatientProfile) error

	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.PatientProfile, error)
}
