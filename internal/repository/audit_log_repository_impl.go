package repository

import (
	"context"
	"errors"

	"hospital-directory/internal/domain/entity"
	domainRepo "hospital-directory/internal/domain/repository"

	"gorm.io/gorm"
)

type auditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) domainRepo.AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// FindAll lists audit rows newest first. ExternalID is matched against the
// entity_id recorded in the jsonb metadata.
func (r *auditLogRepository) FindAll(ctx context.Context, filter entity.AuditLogFilter) ([]entity.AuditLog, error) {
	var logs []entity.AuditLog
	q := r.db.WithContext(ctx).Preload("User")
	if filter.ActionPrefix != "" {
		q = q.Where("action LIKE ?", escapeLike(filter.ActionPrefix)+"%")
	}
	if filter.ExternalID != "" {
		q = q.Where("metadata->>'entity_id' = ?", filter.ExternalID)
	}
	err := q.Order("created_at DESC").Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *auditLogRepository) FindByID(ctx context.Context, id int64) (*entity.AuditLog, error) {
	var log entity.AuditLog
	err := r.db.WithContext(ctx).Preload("User").First(&log, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &log, nil
}
