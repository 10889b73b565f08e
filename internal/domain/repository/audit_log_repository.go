package repository

import (
	"context"

	"wmhn-clinic-api/internal/domain/entity"
)

type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	// FindAll returns the newest entries first, at most limit of them.
	FindAll(ctx context.Context, limit int) ([]entity.AuditLog, error)
	FindByID(ctx context.Context, id int64) (*entity.AuditLog, error)
}
