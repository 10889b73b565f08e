package converter

import (
	"wmhn-clinic-api/internal/delivery/dto"
	"wmhn-clinic-api/internal/domain/entity"
)

// AuditLogToResponse lifts the entity reference out of the metadata so the
// admin log view can link back to the doctor without digging into JSON.
func AuditLogToResponse(log *entity.AuditLog) *dto.AuditLogResponse {
	if log == nil {
		return nil
	}

	entityName, _ := log.Metadata["entity"].(string)
	entityID, _ := log.Metadata["entity_id"].(string)

	return &dto.AuditLogResponse{
		ID:         log.ID,
		AdminID:    log.AdminID,
		AdminEmail: log.AdminEmail,
		Action:     log.Action,
		Entity:     entityName,
		EntityID:   entityID,
		Metadata:   log.Metadata,
		CreatedAt:  log.CreatedAt,
	}
}

func AuditLogsToResponses(logs []entity.AuditLog) []dto.AuditLogResponse {
	responses := make([]dto.AuditLogResponse, 0, len(logs))
	for i := range logs {
		responses = append(responses, *AuditLogToResponse(&logs[i]))
	}
	return responses
}
