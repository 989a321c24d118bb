package repository

import (
	"context"

	"hospital-directory/internal/domain/entity"
)

type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	FindAll(ctx context.Context, filter entity.AuditLogFilter) ([]entity.AuditLog, error)
	FindByID(ctx context.Context, id int64) (*entity.AuditLog, error)
}
