package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"wmhn-clinic-api/internal/domain/entity"
	domainRepo "wmhn-clinic-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// memoryDoctorRepository keeps doctors in process. It backs DB_DRIVER=memory
// and the test suites, and mirrors the Postgres semantics: unique slugs,
// store-managed ids and timestamps, display_order ordering.
type memoryDoctorRepository struct {
	mu      sync.RWMutex
	doctors map[uuid.UUID]entity.Doctor
	now     func() time.Time
}

func NewMemoryDoctorRepository(seed ...entity.Doctor) domainRepo.DoctorRepository {
	r := &memoryDoctorRepository{
		doctors: make(map[uuid.UUID]entity.Doctor, len(seed)),
		now:     time.Now,
	}
	for _, doctor := range seed {
		doctor := doctor.Clone()
		if doctor.ID == uuid.Nil {
			doctor.ID = uuid.New()
		}
		if doctor.CreatedAt.IsZero() {
			doctor.CreatedAt = r.now()
			doctor.UpdatedAt = doctor.CreatedAt
		}
		r.doctors[doctor.ID] = doctor
	}
	return r
}

func (r *memoryDoctorRepository) FindAll(ctx context.Context, filter entity.DoctorFilter) ([]entity.Doctor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	doctors := []entity.Doctor{}
	for _, doctor := range r.doctors {
		if filter.Matches(&doctor) {
			doctors = append(doctors, doctor.Clone())
		}
	}
	sort.SliceStable(doctors, func(i, j int) bool {
		if doctors[i].DisplayOrder != doctors[j].DisplayOrder {
			return doctors[i].DisplayOrder < doctors[j].DisplayOrder
		}
		return doctors[i].CreatedAt.Before(doctors[j].CreatedAt)
	})
	return doctors, nil
}

func (r *memoryDoctorRepository) FindBySlug(ctx context.Context, slug string, filter entity.DoctorFilter) (*entity.Doctor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, doctor := range r.doctors {
		if doctor.Slug == slug && filter.Matches(&doctor) {
			found := doctor.Clone()
			return &found, nil
		}
	}
	return nil, nil
}

func (r *memoryDoctorRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Doctor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	doctor, ok := r.doctors[id]
	if !ok {
		return nil, nil
	}
	found := doctor.Clone()
	return &found, nil
}

func (r *memoryDoctorRepository) Create(ctx context.Context, doctor *entity.Doctor) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.slugTaken(doctor.Slug, uuid.Nil) {
		return domainRepo.ErrSlugExists
	}

	stored := doctor.Clone()
	stored.ID = uuid.New()
	stored.Interests = toStringArray(stored.Interests)
	stored.Bio = toStringArray(stored.Bio)
	stored.Qualifications = toStringArray(stored.Qualifications)
	stored.CreatedAt = r.now()
	stored.UpdatedAt = stored.CreatedAt
	r.doctors[stored.ID] = stored

	*doctor = stored.Clone()
	return nil
}

func (r *memoryDoctorRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*entity.Doctor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.doctors[id]
	if !ok {
		return nil, nil
	}

	updated := current.Clone()
	if err := applyColumns(&updated, fields); err != nil {
		return nil, err
	}
	if updated.Slug != current.Slug && r.slugTaken(updated.Slug, id) {
		return nil, domainRepo.ErrSlugExists
	}
	updated.UpdatedAt = r.now()
	r.doctors[id] = updated

	result := updated.Clone()
	return &result, nil
}

func (r *memoryDoctorRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.doctors[id]; !ok {
		return 0, nil
	}
	delete(r.doctors, id)
	return 1, nil
}

func (r *memoryDoctorRepository) slugTaken(slug string, except uuid.UUID) bool {
	for id, doctor := range r.doctors {
		if id != except && doctor.Slug == slug {
			return true
		}
	}
	return false
}

// applyColumns copies a partial record onto the doctor, rejecting unknown
// columns and mistyped values the way the database would.
func applyColumns(d *entity.Doctor, fields map[string]interface{}) error {
	for column, value := range fields {
		var ok bool
		switch column {
		case "slug":
			d.Slug, ok = value.(string)
		case "name":
			d.Name, ok = value.(string)
		case "title":
			d.Title, ok = value.(string)
		case "post_nominals":
			d.PostNominals, ok = value.(string)
		case "role":
			d.Role, ok = value.(string)
		case "snippet":
			d.Snippet, ok = value.(string)
		case "interests":
			d.Interests, ok = toStringArray(value), isStringList(value)
		case "bio":
			d.Bio, ok = toStringArray(value), isStringList(value)
		case "qualifications":
			d.Qualifications, ok = toStringArray(value), isStringList(value)
		case "display_order":
			d.DisplayOrder, ok = value.(int)
		case "is_active":
			d.IsActive, ok = value.(bool)
		default:
			return fmt.Errorf("column %q does not exist on doctors", column)
		}
		if !ok {
			return fmt.Errorf("invalid value %v for column %q", value, column)
		}
	}
	return nil
}

func isStringList(value interface{}) bool {
	switch value.(type) {
	case pq.StringArray, []string, nil:
		return true
	}
	return false
}
