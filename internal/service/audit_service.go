package service

import (
	"context"

	"wmhn-clinic-api/internal/domain/entity"
	"wmhn-clinic-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

// AuditService records admin mutations. Writes are best-effort: failures are
// logged and returned, and callers never roll back a mutation because of them.
type AuditService interface {
	LogCreate(ctx context.Context, actor entity.Actor, action string, entityName string, entityID string, newValue interface{}) error
	LogUpdate(ctx context.Context, actor entity.Actor, action string, entityName string, entityID string, oldValue, newValue interface{}) error
	LogDelete(ctx context.Context, actor entity.Actor, action string, entityName string, entityID string, oldValue interface{}) error
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
func (s *auditService) LogCreate(ctx context.Context, actor entity.Actor, action string, entityName string, entityID string, newValue interface{}) error {
	return s.write(ctx, actor, action, entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": nil,
		"new_value": newValue,
	})
}

// LogUpdate logs an update action with old and new values
func (s *auditService) LogUpdate(ctx context.Context, actor entity.Actor, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	return s.write(ctx, actor, action, entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": oldValue,
		"new_value": newValue,
	})
}

// LogDelete logs a delete action with old value
func (s *auditService) LogDelete(ctx context.Context, actor entity.Actor, action string, entityName string, entityID string, oldValue interface{}) error {
	return s.write(ctx, actor, action, entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": oldValue,
		"new_value": nil,
	})
}

func (s *auditService) write(ctx context.Context, actor entity.Actor, action string, metadata entity.JSON) error {
	auditLog := &entity.AuditLog{
		AdminID:    actor.ID,
		AdminEmail: actor.Email,
		Action:     action,
		Metadata:   metadata,
	}

	// The mutation has already committed; a cancelled request must not drop its audit entry.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), auditWriteTimeout)
	defer cancel()

	if err := s.auditRepo.Create(ctx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}
