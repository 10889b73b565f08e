package dto

import (
	"time"

	"wmhn-clinic-api/internal/domain/entity"

	"github.com/google/uuid"
)

// Response DTOs

type AuditLogResponse struct {
	ID         int64       `json:"id"`
	AdminID    *uuid.UUID  `json:"admin_id,omitempty"`
	AdminEmail string      `json:"admin_email,omitempty"`
	Action     string      `json:"action"`
	Entity     string      `json:"entity,omitempty"`
	EntityID   string      `json:"entity_id,omitempty"`
	Metadata   entity.JSON `json:"metadata"`
	CreatedAt  time.Time   `json:"created_at"`
}

type AuditLogListResponse struct {
	Logs  []AuditLogResponse `json:"logs"`
	Total int                `json:"total"`
}
