package converter

import (
	"testing"

	"wmhn-clinic-api/internal/domain/entity"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestDoctorToAdminRow_ActiveWithFewInterests(t *testing.T) {
	row := DoctorToAdminRow(&entity.Doctor{
		Slug:      "emma-thompson",
		Interests: pq.StringArray{"Thrombosis", "Bleeding Disorders"},
		IsActive:  true,
	})

	assert.Equal(t, BadgeActive, row.Badge)
	assert.False(t, row.Dimmed)
	assert.Equal(t, []string{"Thrombosis", "Bleeding Disorders"}, row.TopInterests)
	assert.Zero(t, row.MoreInterests)
	assert.Empty(t, row.MoreLabel)
}

func TestDoctorToAdminRow_HiddenWithManyInterests(t *testing.T) {
	row := DoctorToAdminRow(&entity.Doctor{
		Interests: pq.StringArray{"A", "B", "C", "D", "E"},
		IsActive:  false,
	})

	assert.Equal(t, BadgeHidden, row.Badge)
	assert.True(t, row.Dimmed)
	assert.Equal(t, []string{"A", "B", "C"}, row.TopInterests)
	assert.Equal(t, 2, row.MoreInterests)
	assert.Equal(t, "+2 more", row.MoreLabel)
}

func TestDoctorToResponse_ListsAreNeverNull(t *testing.T) {
	resp := DoctorToResponse(&entity.Doctor{})
	assert.NotNil(t, resp.Interests)
	assert.NotNil(t, resp.Bio)
	assert.NotNil(t, resp.Qualifications)
	assert.Nil(t, DoctorToResponse(nil))
}
