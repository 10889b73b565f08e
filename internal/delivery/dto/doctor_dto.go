package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// DoctorFormRequest is the full doctor record as assembled by the admin form.
// List entries may still hold blank rows; they are dropped on submit.
type DoctorFormRequest struct {
	Name           string   `json:"name" validate:"required,notblank"`
	Title          string   `json:"title" validate:"required,notblank"`
	PostNominals   string   `json:"post_nominals"`
	Role           string   `json:"role" validate:"required,notblank"`
	Interests      []string `json:"interests"`
	Snippet        string   `json:"snippet" validate:"required,notblank"`
	Bio            []string `json:"bio"`
	Qualifications []string `json:"qualifications"`
	Slug           string   `json:"slug" validate:"required,notblank,slug"`
	DisplayOrder   int      `json:"display_order"`
	IsActive       *bool    `json:"is_active"`
}

// Response DTOs

type DoctorResponse struct {
	ID             uuid.UUID `json:"id"`
	Slug           string    `json:"slug"`
	Name           string    `json:"name"`
	Title          string    `json:"title"`
	PostNominals   string    `json:"post_nominals"`
	Role           string    `json:"role"`
	Interests      []string  `json:"interests"`
	Snippet        string    `json:"snippet"`
	Bio            []string  `json:"bio"`
	Qualifications []string  `json:"qualifications"`
	DisplayOrder   int       `json:"display_order"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}

// DoctorFormResponse is the editable state of a create or edit form.
type DoctorFormResponse struct {
	Mode           string     `json:"mode"`
	ID             *uuid.UUID `json:"id,omitempty"`
	Name           string     `json:"name"`
	Title          string     `json:"title"`
	PostNominals   string     `json:"post_nominals"`
	Role           string     `json:"role"`
	Interests      []string   `json:"interests"`
	Snippet        string     `json:"snippet"`
	Bio            []string   `json:"bio"`
	Qualifications []string   `json:"qualifications"`
	Slug           string     `json:"slug"`
	DisplayOrder   int        `json:"display_order"`
	IsActive       bool       `json:"is_active"`
}

type DoctorSubmitResponse struct {
	Doctor   DoctorResponse `json:"doctor"`
	Redirect string         `json:"redirect"`
}

// AdminDoctorRow is one row of the admin listing grid.
type AdminDoctorRow struct {
	DoctorResponse
	Badge         string   `json:"badge"`
	Dimmed        bool     `json:"dimmed"`
	TopInterests  []string `json:"top_interests"`
	MoreInterests int      `json:"more_interests"`
	MoreLabel     string   `json:"more_label,omitempty"`
}

type NoticeResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type AdminDoctorListResponse struct {
	State   string           `json:"state"`
	Doctors []AdminDoctorRow `json:"doctors"`
	Total   int              `json:"total"`
	Notice  *NoticeResponse  `json:"notice,omitempty"`
}
