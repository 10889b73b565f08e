package converter

import (
	"testing"

	"wmhn-clinic-api/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditLogToResponse(t *testing.T) {
	assert.Nil(t, AuditLogToResponse(nil))

	resp := AuditLogToResponse(&entity.AuditLog{
		ID:     7,
		Action: entity.AuditActionDoctorDelete,
		Metadata: entity.JSON{
			"entity":    "doctor",
			"entity_id": "5f0c6c1e-7f5a-4d8e-9c3b-2a1d0e9f8b7a",
		},
	})
	require.NotNil(t, resp)
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "doctor", resp.Entity)
	assert.Equal(t, "5f0c6c1e-7f5a-4d8e-9c3b-2a1d0e9f8b7a", resp.EntityID)
}

func TestAuditLogsToResponses_EmptyMetadata(t *testing.T) {
	assert.Empty(t, AuditLogsToResponses(nil))

	resps := AuditLogsToResponses([]entity.AuditLog{{ID: 1, Action: entity.AuditActionAdminLogout}})
	require.Len(t, resps, 1)
	assert.Empty(t, resps[0].Entity)
	assert.Empty(t, resps[0].EntityID)
}
