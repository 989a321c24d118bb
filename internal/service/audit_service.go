package service

import (
	"context"

	"hospital-directory/internal/domain/entity"
	"hospital-directory/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type AuditService interface {
	LogCreate(ctx context.Context, userID *uuid.UUID, action string, entityName string, entityID string, newValue interface{}) error
	LogUpdate(ctx context.Context, userID *uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{}) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

// LogCreate logs a create action
func (s *auditService) LogCreate(ctx context.Context, userID *uuid.UUID, action string, entityName string, entityID string, newValue interface{}) error {
	return s.write(ctx, userID, action, entity.AuditMetadata{
		Entity:   entityName,
		EntityID: entityID,
		NewValue: newValue,
	})
}

// LogUpdate logs an update action with old and new values
func (s *auditService) LogUpdate(ctx context.Context, userID *uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	return s.write(ctx, userID, action, entity.AuditMetadata{
		Entity:   entityName,
		EntityID: entityID,
		OldValue: oldValue,
		NewValue: newValue,
	})
}

func (s *auditService) write(ctx context.Context, userID *uuid.UUID, action string, metadata entity.AuditMetadata) error {
	// uuid.Nil means the actor is unknown (public endpoints)
	if userID != nil && *userID == uuid.Nil {
		userID = nil
	}

	auditLog := &entity.AuditLog{
		UserID:   userID,
		Action:   action,
		Metadata: metadata,
	}

	if err := s.auditRepo.Create(ctx, auditLog); err != nil {
		s.log.WithFields(logrus.Fields{
			"action":    action,
			"entity_id": metadata.EntityID,
		}).Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}
