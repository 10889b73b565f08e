package repository

import (
	"context"
	"errors"

	"wmhn-clinic-api/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrSlugExists is returned by Create/Update when another doctor owns the slug.
var ErrSlugExists = errors.New("slug already exists")

// DoctorRepository is the record store contract for the doctors table.
// Lookups return nil, nil when no row matches.
type DoctorRepository interface {
	// FindAll lists doctors ordered by display_order ascending.
	FindAll(ctx context.Context, filter entity.DoctorFilter) ([]entity.Doctor, error)
	FindBySlug(ctx context.Context, slug string, filter entity.DoctorFilter) (*entity.Doctor, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Doctor, error)
	Create(ctx context.Context, doctor *entity.Doctor) error
	// Update applies a partial record and returns the row as stored.
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*entity.Doctor, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}
