package converter

import (
	"fmt"

	"wmhn-clinic-api/internal/delivery/dto"
	"wmhn-clinic-api/internal/domain/entity"
)

const (
	BadgeActive = "Active"
	BadgeHidden = "Hidden"

	adminTopInterests = 3
)

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:             doctor.ID,
		Slug:           doctor.Slug,
		Name:           doctor.Name,
		Title:          doctor.Title,
		PostNominals:   doctor.PostNominals,
		Role:           doctor.Role,
		Interests:      copyList(doctor.Interests),
		Snippet:        doctor.Snippet,
		Bio:            copyList(doctor.Bio),
		Qualifications: copyList(doctor.Qualifications),
		DisplayOrder:   doctor.DisplayOrder,
		IsActive:       doctor.IsActive,
		CreatedAt:      doctor.CreatedAt,
		UpdatedAt:      doctor.UpdatedAt,
	}
}

// DoctorsToResponses converts a slice of Doctor entities to slice of DoctorResponse DTOs
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = *DoctorToResponse(&doctors[i])
	}
	return responses
}

func DoctorsToListResponse(doctors []entity.Doctor) *dto.DoctorListResponse {
	return &dto.DoctorListResponse{
		Doctors: DoctorsToResponses(doctors),
		Total:   len(doctors),
	}
}

// DoctorToAdminRow adds the admin grid presentation: an Active/Hidden badge,
// dimming for hidden doctors and the first three interests with a "+N more"
// count for the rest.
func DoctorToAdminRow(doctor *entity.Doctor) dto.AdminDoctorRow {
	row := dto.AdminDoctorRow{
		DoctorResponse: *DoctorToResponse(doctor),
		Badge:          BadgeActive,
		TopInterests:   []string{},
	}
	if !doctor.IsActive {
		row.Badge = BadgeHidden
		row.Dimmed = true
	}

	for i, interest := range doctor.Interests {
		if i == adminTopInterests {
			break
		}
		row.TopInterests = append(row.TopInterests, interest)
	}
	if more := len(doctor.Interests) - adminTopInterests; more > 0 {
		row.MoreInterests = more
		row.MoreLabel = fmt.Sprintf("+%d more", more)
	}
	return row
}

func DoctorsToAdminRows(doctors []entity.Doctor) []dto.AdminDoctorRow {
	rows := make([]dto.AdminDoctorRow, len(doctors))
	for i := range doctors {
		rows[i] = DoctorToAdminRow(&doctors[i])
	}
	return rows
}

func copyList(list []string) []string {
	return append([]string{}, list...)
}
