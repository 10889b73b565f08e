package usecase

import (
	"context"
	"strings"

	"wmhn-clinic-api/internal/converter"
	"wmhn-clinic-api/internal/delivery/dto"
	"wmhn-clinic-api/internal/domain/entity"
	"wmhn-clinic-api/internal/domain/repository"
	"wmhn-clinic-api/internal/infrastructure/search"
	"wmhn-clinic-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DoctorDirectoryUsecase serves the public, read-only directory. Hidden
// doctors never appear in any of its results.
type DoctorDirectoryUsecase interface {
	ListActive(ctx context.Context) (*dto.DoctorListResponse, error)
	GetBySlug(ctx context.Context, slug string) (*dto.DoctorResponse, error)
	Search(ctx context.Context, query string) (*dto.DoctorListResponse, error)
}

type doctorDirectoryUsecase struct {
	log        *logrus.Logger
	doctorRepo repository.DoctorRepository
	cache      service.DirectoryCache
	index      search.DoctorIndex
}

// NewDoctorDirectoryUsecase builds the public directory. index may be nil, in
// which case search matches in process over the active list.
func NewDoctorDirectoryUsecase(
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	cache service.DirectoryCache,
	index search.DoctorIndex,
) DoctorDirectoryUsecase {
	return &doctorDirectoryUsecase{
		log:        log,
		doctorRepo: doctorRepo,
		cache:      cache,
		index:      index,
	}
}

func (u *doctorDirectoryUsecase) ListActive(ctx context.Context) (*dto.DoctorListResponse, error) {
	doctors, err := u.activeDoctors(ctx)
	if err != nil {
		return nil, err
	}
	return converter.DoctorsToListResponse(doctors), nil
}

func (u *doctorDirectoryUsecase) GetBySlug(ctx context.Context, slug string) (*dto.DoctorResponse, error) {
	// The generation is taken before the store read so a write-back that
	// loses a race with an admin mutation lands in a retired generation.
	gen, cacheable := u.cache.Generation(ctx)
	if cacheable {
		if cached, ok := u.cache.GetDoctor(ctx, gen, slug); ok && cached.IsActive {
			return converter.DoctorToResponse(cached), nil
		}
	}

	doctor, err := u.doctorRepo.FindBySlug(ctx, slug, entity.ActiveOnly())
	if err != nil {
		u.log.Warnf("Failed to find doctor by slug %s: %+v", slug, err)
		return nil, &StoreError{Op: "get", Err: err}
	}
	if doctor == nil || !doctor.IsActive {
		return nil, ErrDoctorNotFound
	}

	if cacheable {
		u.cache.SetDoctor(ctx, gen, *doctor)
	}
	return converter.DoctorToResponse(doctor), nil
}

// Search matches name, title, role, interests and snippet. A blank query
// returns the whole active list. Index hits are only ranking: each is
// resolved against the active list, so a document the index failed to update
// never surfaces a hidden or deleted doctor.
func (u *doctorDirectoryUsecase) Search(ctx context.Context, query string) (*dto.DoctorListResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return u.ListActive(ctx)
	}

	active, err := u.activeDoctors(ctx)
	if err != nil {
		return nil, err
	}

	if u.index != nil {
		hits, err := u.index.Search(ctx, query)
		if err == nil {
			return converter.DoctorsToListResponse(resolveHits(hits, active)), nil
		}
		u.log.Warnf("Failed to search index, falling back to store: %+v", err)
	}

	terms := strings.Fields(strings.ToLower(query))
	matches := []entity.Doctor{}
	for _, doctor := range active {
		if matchesAll(&doctor, terms) {
			matches = append(matches, doctor)
		}
	}
	return converter.DoctorsToListResponse(matches), nil
}

func (u *doctorDirectoryUsecase) activeDoctors(ctx context.Context) ([]entity.Doctor, error) {
	gen, cacheable := u.cache.Generation(ctx)
	if cacheable {
		if cached, ok := u.cache.GetList(ctx, gen); ok {
			return onlyActive(cached), nil
		}
	}

	doctors, err := u.doctorRepo.FindAll(ctx, entity.ActiveOnly())
	if err != nil {
		u.log.Warnf("Failed to list active doctors: %+v", err)
		return nil, &StoreError{Op: "list", Err: err}
	}

	doctors = onlyActive(doctors)
	if cacheable {
		u.cache.SetList(ctx, gen, doctors)
	}
	return doctors, nil
}

// resolveHits keeps the index order but returns the active records, dropping
// hits that are no longer public.
func resolveHits(hits, active []entity.Doctor) []entity.Doctor {
	byID := make(map[uuid.UUID]entity.Doctor, len(active))
	for _, doctor := range active {
		byID[doctor.ID] = doctor
	}

	doctors := make([]entity.Doctor, 0, len(hits))
	for _, hit := range hits {
		if doctor, ok := byID[hit.ID]; ok {
			doctors = append(doctors, doctor)
			delete(byID, hit.ID)
		}
	}
	return doctors
}

func onlyActive(doctors []entity.Doctor) []entity.Doctor {
	active := make([]entity.Doctor, 0, len(doctors))
	for _, doctor := range doctors {
		if doctor.IsActive {
			active = append(active, doctor)
		}
	}
	return active
}

func matchesAll(doctor *entity.Doctor, terms []string) bool {
	text := strings.ToLower(strings.Join([]string{
		doctor.Name,
		doctor.Title,
		doctor.Role,
		doctor.Snippet,
		strings.Join(doctor.Interests, " "),
	}, " "))
	for _, term := range terms {
		if !strings.Contains(text, term) {
			return false
		}
	}
	return true
}
