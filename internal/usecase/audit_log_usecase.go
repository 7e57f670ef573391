package usecase

import (
	"context"

	"clinic-scheduling-api/internal/converter"
	"clinic-scheduling-api/internal/delivery/dto"
	"clinic-scheduling-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

const auditLogMaxPageSize = 100

type AuditLogUsecase interface {
	ListAuditLogs(ctx context.Context, action string, limit, offset int) (*dto.AuditLogListResponse, error)
}

type auditLogUsecase struct {
	log          *logrus.Logger
	auditLogRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(log *logrus.Logger, auditLogRepo repository.AuditLogRepository) AuditLogUsecase {
	return &auditLogUsecase{
		log:          log,
		auditLogRepo: auditLogRepo,
	}
}

func (u *auditLogUsecase) ListAuditLogs(ctx context.Context, action string, limit, offset int) (*dto.AuditLogListResponse, error) {
	if limit <= 0 || limit > auditLogMaxPageSize {
		limit = auditLogMaxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	logs, total, err := u.auditLogRepo.List(ctx, action, limit, offset)
	if err != nil {
		u.log.Warnf("Failed to list audit logs: %+v", err)
		return nil, err
	}

	return &dto.AuditLogListResponse{
		Logs:  converter.AuditLogsToResponses(logs),
		Total: int(total),
	}, nil
}
