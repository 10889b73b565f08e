package repository

import (
	"context"
	"sync"
	"time"

	"wmhn-clinic-api/internal/domain/entity"
	domainRepo "wmhn-clinic-api/internal/domain/repository"
)

type memoryAuditLogRepository struct {
	mu     sync.RWMutex
	logs   []entity.AuditLog
	nextID int64
}

func NewMemoryAuditLogRepository() domainRepo.AuditLogRepository {
	return &memoryAuditLogRepository{nextID: 1}
}

func (r *memoryAuditLogRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	log.ID = r.nextID
	log.CreatedAt = time.Now()
	r.nextID++
	r.logs = append(r.logs, *log)
	return nil
}

func (r *memoryAuditLogRepository) FindAll(ctx context.Context, limit int) ([]entity.AuditLog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	logs := []entity.AuditLog{}
	for i := len(r.logs) - 1; i >= 0 && len(logs) < limit; i-- {
		logs = append(logs, r.logs[i])
	}
	return logs, nil
}

func (r *memoryAuditLogRepository) FindByID(ctx context.Context, id int64) (*entity.AuditLog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, log := range r.logs {
		if log.ID == id {
			found := log
			return &found, nil
		}
	}
	return nil, nil
}
