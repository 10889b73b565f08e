package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Doctor is a clinician profile shown in the public directory
type Doctor struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Slug           string         `gorm:"type:varchar(150);uniqueIndex;not null" json:"slug"`
	Name           string         `gorm:"type:varchar(255);not null" json:"name"`
	Title          string         `gorm:"type:varchar(255);not null" json:"title"`
	PostNominals   string         `gorm:"column:post_nominals;type:varchar(255)" json:"post_nominals"`
	Role           string         `gorm:"type:varchar(255);not null" json:"role"`
	Interests      pq.StringArray `gorm:"type:text[];not null" json:"interests"`
	Snippet        string         `gorm:"type:text;not null" json:"snippet"`
	Bio            pq.StringArray `gorm:"type:text[];not null" json:"bio"`
	Qualifications pq.StringArray `gorm:"type:text[];not null" json:"qualifications"`
	DisplayOrder   int            `gorm:"not null;index" json:"display_order"`
	IsActive       bool           `gorm:"not null;index" json:"is_active"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// Columns returns every client-settable column keyed by its wire name.
// Store-managed columns (id, created_at, updated_at) are never included.
func (d *Doctor) Columns() map[string]interface{} {
	return map[string]interface{}{
		"slug":           d.Slug,
		"name":           d.Name,
		"title":          d.Title,
		"post_nominals":  d.PostNominals,
		"role":           d.Role,
		"interests":      d.Interests,
		"snippet":        d.Snippet,
		"bio":            d.Bio,
		"qualifications": d.Qualifications,
		"display_order":  d.DisplayOrder,
		"is_active":      d.IsActive,
	}
}

// Clone returns a deep copy; list fields do not share backing arrays.
func (d Doctor) Clone() Doctor {
	d.Interests = append(pq.StringArray{}, d.Interests...)
	d.Bio = append(pq.StringArray{}, d.Bio...)
	d.Qualifications = append(pq.StringArray{}, d.Qualifications...)
	return d
}
