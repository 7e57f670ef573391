package service

import (
	"clinic-scheduling-api/internal/domain/entity"
	"clinic-scheduling-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuditService records audit trail entries. Audit failures are logged
// and swallowed so they never fail the business operation, except when
// the entry rides an enclosing transaction where the caller decides.
type AuditService interface {
	// Record writes an audit entry on the given db handle, which may
	// be a transaction.
	Record(tx *gorm.DB, userID *uuid.UUID, action string, metadata entity.JSON) error

	// RecordChange writes an update-style entry with old and new values.
	RecordChange(tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{}) error
}

type auditService struct {
	db        *gorm.DB
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(db *gorm.DB, log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		db:        db,
		log:       log,
		auditRepo: auditRepo,
	}
}

func (s *auditService) Record(tx *gorm.DB, userID *uuid.UUID, action string, metadata entity.JSON) error {
	if tx == nil {
		tx = s.db
	}

	auditLog := &entity.AuditLog{
		UserID:   userID,
		Action:   action,
		Metadata: metadata,
	}

	if err := s.auditRepo.Create(tx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log for action %s: %+v", action, err)
		return err
	}
	return nil
}

func (s *auditService) RecordChange(tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	return s.Record(tx, userID, action, entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": oldValue,
		"new_value": newValue,
	})
}
