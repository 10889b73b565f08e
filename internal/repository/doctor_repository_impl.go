package repository

import (
	"context"
	"errors"

	"wmhn-clinic-api/internal/domain/entity"
	domainRepo "wmhn-clinic-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

var listColumns = []string{"interests", "bio", "qualifications"}

type doctorRepository struct {
	db *gorm.DB
}

func NewDoctorRepository(db *gorm.DB) domainRepo.DoctorRepository {
	return &doctorRepository{db: db}
}

func (r *doctorRepository) FindAll(ctx context.Context, filter entity.DoctorFilter) ([]entity.Doctor, error) {
	doctors := []entity.Doctor{}
	err := applyDoctorFilter(r.db.WithContext(ctx), filter).
		Order("display_order ASC").
		Order("created_at ASC").
		Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorRepository) FindBySlug(ctx context.Context, slug string, filter entity.DoctorFilter) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := applyDoctorFilter(r.db.WithContext(ctx), filter).
		Where("slug = ?", slug).
		First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) Create(ctx context.Context, doctor *entity.Doctor) error {
	// text[] columns are NOT NULL; a nil pq.StringArray would be sent as NULL
	doctor.Interests = toStringArray(doctor.Interests)
	doctor.Bio = toStringArray(doctor.Bio)
	doctor.Qualifications = toStringArray(doctor.Qualifications)

	if err := r.db.WithContext(ctx).Create(doctor).Error; err != nil {
		if isDuplicateKeyError(err, "slug") {
			return domainRepo.ErrSlugExists
		}
		return err
	}
	return nil
}

func (r *doctorRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*entity.Doctor, error) {
	for _, column := range listColumns {
		if value, ok := fields[column]; ok {
			fields[column] = toStringArray(value)
		}
	}

	result := r.db.WithContext(ctx).
		Model(&entity.Doctor{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		if isDuplicateKeyError(result.Error, "slug") {
			return nil, domainRepo.ErrSlugExists
		}
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	return r.FindByID(ctx, id)
}

func (r *doctorRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Doctor{})
	return result.RowsAffected, result.Error
}

func applyDoctorFilter(db *gorm.DB, filter entity.DoctorFilter) *gorm.DB {
	if filter.IsActive != nil {
		db = db.Where("is_active = ?", *filter.IsActive)
	}
	return db
}

// toStringArray normalises list column values to a non-nil pq.StringArray.
func toStringArray(value interface{}) pq.StringArray {
	switch v := value.(type) {
	case pq.StringArray:
		if v == nil {
			return pq.StringArray{}
		}
		return v
	case []string:
		if v == nil {
			return pq.StringArray{}
		}
		return pq.StringArray(v)
	default:
		return pq.StringArray{}
	}
}
