package usecase

import (
	"context"
	"errors"
	"strings"

	"hospital-directory/internal/converter"
	"hospital-directory/internal/delivery/dto"
	"hospital-directory/internal/domain/entity"
	"hospital-directory/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

var (
	ErrAuditLogNotFound = errors.New("audit log not found")
)

type AuditLogUsecase interface {
	GetAllAuditLogs(ctx context.Context, req *dto.AuditLogFilterRequest) (*dto.AuditLogListResponse, error)
	GetAuditLog(ctx context.Context, id int64) (*dto.AuditLogResponse, error)
	GetRoleHistory(ctx context.Context, externalID string) (*dto.AuditLogListResponse, error)
}

type auditLogUsecase struct {
	log          *logrus.Logger
	auditLogRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(
	log *logrus.Logger,
	auditLogRepo repository.AuditLogRepository,
) AuditLogUsecase {
	return &auditLogUsecase{
		log:          log,
		auditLogRepo: auditLogRepo,
	}
}

func (u *auditLogUsecase) GetAllAuditLogs(ctx context.Context, req *dto.AuditLogFilterRequest) (*dto.AuditLogListResponse, error) {
	return u.list(ctx, entity.AuditLogFilter{
		ActionPrefix: strings.TrimSpace(req.Action),
		ExternalID:   strings.TrimSpace(req.ExternalID),
	})
}

// GetRoleHistory lists the role changes made to one account, newest first.
func (u *auditLogUsecase) GetRoleHistory(ctx context.Context, externalID string) (*dto.AuditLogListResponse, error) {
	return u.list(ctx, entity.AuditLogFilter{
		ActionPrefix: entity.AuditActionRolePrefix,
		ExternalID:   externalID,
	})
}

func (u *auditLogUsecase) list(ctx context.Context, filter entity.AuditLogFilter) (*dto.AuditLogListResponse, error) {
	logs, err := u.auditLogRepo.FindAll(ctx, filter)
	if err != nil {
		u.log.WithFields(logrus.Fields{
			"action":      filter.ActionPrefix,
			"external_id": filter.ExternalID,
		}).Warnf("Failed to list audit logs: %+v", err)
		return nil, err
	}

	return &dto.AuditLogListResponse{
		Logs:  converter.AuditLogsToResponses(logs),
		Total: len(logs),
	}, nil
}

func (u *auditLogUsecase) GetAuditLog(ctx context.Context, id int64) (*dto.AuditLogResponse, error) {
	auditLog, err := u.auditLogRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find audit log: %+v", err)
		return nil, err
	}
	if auditLog == nil {
		return nil, ErrAuditLogNotFound
	}

	return converter.AuditLogToResponse(auditLog), nil
}
