package service

import (
	"clinic-backoffice/internal/domain/entity"
	"clinic-backoffice/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuditService writes audit entries inside the caller's transaction so they commit or roll back with the change.
type AuditService interface {
	LogAction(tx *gorm.DB, actorID *uuid.UUID, action string, entityName string, entityID string, details entity.JSON) error
	LogUpdate(tx *gorm.DB, actorID *uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{}) error
	LogDelete(tx *gorm.DB, actorID *uuid.UUID, action string, entityName string, entityID string, oldValue interface{}) error
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

func (s *auditService) LogAction(tx *gorm.DB, actorID *uuid.UUID, action string, entityName string, entityID string, details entity.JSON) error {
	metadata := entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
	}
	for k, v := range details {
		metadata[k] = v
	}
	return s.write(tx, actorID, action, metadata)
}

func (s *auditService) LogUpdate(tx *gorm.DB, actorID *uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	return s.write(tx, actorID, action, entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": oldValue,
		"new_value": newValue,
	})
}

func (s *auditService) LogDelete(tx *gorm.DB, actorID *uuid.UUID, action string, entityName string, entityID string, oldValue interface{}) error {
	return s.write(tx, actorID, action, entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": oldValue,
	})
}

func (s *auditService) write(tx *gorm.DB, actorID *uuid.UUID, action string, metadata entity.JSON) error {
	auditLog := &entity.AuditLog{
		UserID:   actorID,
		Action:   action,
		Metadata: metadata,
	}

	if err := s.auditRepo.Create(tx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log %s: %+v", action, err)
		return err
	}

	return nil
}
