package repository

import (
	"context"

	"clinic-scheduling-api/internal/domain/entity"

	"gorm.io/gorm"
)

type AuditLogRepository interface {
	// Create accepts the caller's db handle so audit rows can ride an
	// enclosing transaction.
	Create(db *gorm.DB, log *entity.AuditLog) error

	List(ctx context.Context, action string, limit, offset int) ([]entity.AuditLog, int64, error)
}
