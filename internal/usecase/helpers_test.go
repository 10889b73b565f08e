package usecase

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"wmhn-clinic-api/internal/domain/entity"
	domainRepo "wmhn-clinic-api/internal/domain/repository"
	"wmhn-clinic-api/internal/infrastructure/monitoring"
	"wmhn-clinic-api/internal/infrastructure/search"
	"wmhn-clinic-api/internal/repository"
	"wmhn-clinic-api/internal/service"
	"wmhn-clinic-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// recordingRepo counts store calls and can fail or stall them on demand.
type recordingRepo struct {
	domainRepo.DoctorRepository

	mu       sync.Mutex
	calls    map[string]int
	lastArgs map[string]interface{}
	failWith map[string]error
	gate     chan struct{}

	// afterFindBySlug runs once, after the store answered and before the
	// result is returned.
	afterFindBySlug func()
}

func newRecordingRepo(seed ...entity.Doctor) *recordingRepo {
	return &recordingRepo{
		DoctorRepository: repository.NewMemoryDoctorRepository(seed...),
		calls:            map[string]int{},
		lastArgs:         map[string]interface{}{},
		failWith:         map[string]error{},
	}
}

func (r *recordingRepo) record(op string, args interface{}) error {
	r.mu.Lock()
	r.calls[op]++
	r.lastArgs[op] = args
	err := r.failWith[op]
	gate := r.gate
	r.mu.Unlock()

	if gate != nil {
		<-gate
	}
	return err
}

func (r *recordingRepo) fail(op string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failWith[op] = err
}

func (r *recordingRepo) count(op string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[op]
}

func (r *recordingRepo) mutations() int {
	return r.count("Create") + r.count("Update") + r.count("Delete")
}

func (r *recordingRepo) FindAll(ctx context.Context, filter entity.DoctorFilter) ([]entity.Doctor, error) {
	if err := r.record("FindAll", filter); err != nil {
		return nil, err
	}
	return r.DoctorRepository.FindAll(ctx, filter)
}

func (r *recordingRepo) FindBySlug(ctx context.Context, slug string, filter entity.DoctorFilter) (*entity.Doctor, error) {
	if err := r.record("FindBySlug", slug); err != nil {
		return nil, err
	}
	found, err := r.DoctorRepository.FindBySlug(ctx, slug, filter)

	r.mu.Lock()
	hook := r.afterFindBySlug
	r.afterFindBySlug = nil
	r.mu.Unlock()
	if hook != nil {
		hook()
	}
	return found, err
}

func (r *recordingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Doctor, error) {
	if err := r.record("FindByID", id); err != nil {
		return nil, err
	}
	return r.DoctorRepository.FindByID(ctx, id)
}

func (r *recordingRepo) Create(ctx context.Context, doctor *entity.Doctor) error {
	if err := r.record("Create", doctor.Clone()); err != nil {
		return err
	}
	return r.DoctorRepository.Create(ctx, doctor)
}

func (r *recordingRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*entity.Doctor, error) {
	if err := r.record("Update", fields); err != nil {
		return nil, err
	}
	return r.DoctorRepository.Update(ctx, id, fields)
}

func (r *recordingRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	if err := r.record("Delete", id); err != nil {
		return 0, err
	}
	return r.DoctorRepository.Delete(ctx, id)
}

// countingCache is an in-process DirectoryCache that counts invalidations.
// Like the Redis cache, writes for a retired generation are discarded.
type countingCache struct {
	mu           sync.Mutex
	gen          int64
	list         []entity.Doctor
	doctors      map[string]entity.Doctor
	invalidation int
}

func newCountingCache() *countingCache {
	return &countingCache{doctors: map[string]entity.Doctor{}}
}

func (c *countingCache) Generation(ctx context.Context) (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen, true
}

func (c *countingCache) GetList(ctx context.Context, gen int64) ([]entity.Doctor, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return nil, false
	}
	return c.list, c.list != nil
}

func (c *countingCache) SetList(ctx context.Context, gen int64, doctors []entity.Doctor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen == c.gen {
		c.list = doctors
	}
}

func (c *countingCache) GetDoctor(ctx context.Context, gen int64, slug string) (*entity.Doctor, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return nil, false
	}
	doctor, ok := c.doctors[slug]
	return &doctor, ok
}

func (c *countingCache) SetDoctor(ctx context.Context, gen int64, doctor entity.Doctor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen == c.gen {
		c.doctors[doctor.Slug] = doctor
	}
}

func (c *countingCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.list = nil
	c.doctors = map[string]entity.Doctor{}
	c.invalidation++
	return nil
}

func (c *countingCache) invalidations() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.invalidation
}

type fixture struct {
	repo      *recordingRepo
	cache     *countingCache
	auditRepo domainRepo.AuditLogRepository
	forms     DoctorFormUsecase
	listings  DoctorListingUsecase
	directory DoctorDirectoryUsecase
}

func newFixture(seed ...entity.Doctor) *fixture {
	return newFixtureWithIndex(nil, seed...)
}

func newFixtureWithIndex(index search.DoctorIndex, seed ...entity.Doctor) *fixture {
	log := quietLogger()
	repo := newRecordingRepo(seed...)
	cache := newCountingCache()
	auditRepo := repository.NewMemoryAuditLogRepository()
	syncService := service.NewDirectorySyncService(cache, index, nil, monitoring.NewMetrics(), log)
	audit := service.NewAuditService(log, auditRepo)

	return &fixture{
		repo:      repo,
		cache:     cache,
		auditRepo: auditRepo,
		forms:     NewDoctorFormUsecase(log, repo, validator.NewValidator(), syncService, audit),
		listings:  NewDoctorListingUsecase(log, repo, syncService, audit),
		directory: NewDoctorDirectoryUsecase(log, repo, cache, index),
	}
}

func doctor(slug string, order int, active bool, interests ...string) entity.Doctor {
	return entity.Doctor{
		ID:             uuid.New(),
		Slug:           slug,
		Name:           "Dr " + slug,
		Title:          "Consultant Haematologist",
		Role:           "Consultant Haematologist",
		Snippet:        "Specialist in " + slug,
		Interests:      pq.StringArray(interests),
		Bio:            pq.StringArray{"Paragraph one.", "Paragraph two."},
		Qualifications: pq.StringArray{"MBBS"},
		DisplayOrder:   order,
		IsActive:       active,
	}
}

// stubIndex answers searches from whatever it last indexed and can be told to
// reject index updates.
type stubIndex struct {
	mu      sync.Mutex
	docs    map[uuid.UUID]entity.Doctor
	failing bool
}

func newStubIndex(seed ...entity.Doctor) *stubIndex {
	idx := &stubIndex{docs: map[uuid.UUID]entity.Doctor{}}
	for _, doctor := range seed {
		idx.docs[doctor.ID] = doctor
	}
	return idx
}

func (i *stubIndex) failUpdates() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.failing = true
}

func (i *stubIndex) EnsureIndex(ctx context.Context) error { return nil }

func (i *stubIndex) Index(ctx context.Context, doctor entity.Doctor) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.failing {
		return errors.New("index unavailable")
	}
	i.docs[doctor.ID] = doctor
	return nil
}

func (i *stubIndex) Delete(ctx context.Context, id uuid.UUID) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.failing {
		return errors.New("index unavailable")
	}
	delete(i.docs, id)
	return nil
}

func (i *stubIndex) Search(ctx context.Context, query string) ([]entity.Doctor, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	var hits []entity.Doctor
	for _, doctor := range i.docs {
		if doctor.IsActive && strings.Contains(strings.ToLower(doctor.Name), strings.ToLower(query)) {
			hits = append(hits, doctor)
		}
	}
	return hits, nil
}
