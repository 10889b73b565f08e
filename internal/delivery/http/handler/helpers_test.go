package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"wmhn-clinic-api/internal/domain/entity"
	domainRepo "wmhn-clinic-api/internal/domain/repository"
	"wmhn-clinic-api/internal/infrastructure/monitoring"
	"wmhn-clinic-api/internal/repository"
	"wmhn-clinic-api/internal/service"
	"wmhn-clinic-api/internal/usecase"
	"wmhn-clinic-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

var errStoreDown = errors.New("connection refused")

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

// flakyRepo fails the named operations and delegates the rest.
type flakyRepo struct {
	domainRepo.DoctorRepository
	failing map[string]bool
}

func (r *flakyRepo) FindAll(ctx context.Context, filter entity.DoctorFilter) ([]entity.Doctor, error) {
	if r.failing["list"] {
		return nil, errStoreDown
	}
	return r.DoctorRepository.FindAll(ctx, filter)
}

func (r *flakyRepo) FindBySlug(ctx context.Context, slug string, filter entity.DoctorFilter) (*entity.Doctor, error) {
	if r.failing["get"] {
		return nil, errStoreDown
	}
	return r.DoctorRepository.FindBySlug(ctx, slug, filter)
}

func (r *flakyRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*entity.Doctor, error) {
	if r.failing["update"] {
		return nil, errStoreDown
	}
	return r.DoctorRepository.Update(ctx, id, fields)
}

func (r *flakyRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	if r.failing["delete"] {
		return 0, errStoreDown
	}
	return r.DoctorRepository.Delete(ctx, id)
}

type testApp struct {
	router *mux.Router
	repo   *flakyRepo
	audits domainRepo.AuditLogRepository
}

func newTestApp(t *testing.T, seed ...entity.Doctor) *testApp {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	repo := &flakyRepo{DoctorRepository: repository.NewMemoryDoctorRepository(seed...), failing: map[string]bool{}}
	audits := repository.NewMemoryAuditLogRepository()
	metrics := monitoring.NewMetrics()
	cache := service.NewNoopDirectoryCache()
	syncService := service.NewDirectorySyncService(cache, nil, nil, metrics, log)
	auditService := service.NewAuditService(log, audits)

	doctorHandler := NewDoctorHandler(usecase.NewDoctorDirectoryUsecase(log, repo, cache, nil))
	adminHandler := NewAdminDoctorHandler(
		usecase.NewDoctorFormUsecase(log, repo, validator.NewValidator(), syncService, auditService),
		usecase.NewDoctorListingUsecase(log, repo, syncService, auditService),
	)
	submissionHandler := NewSubmissionHandler(usecase.NewSubmissionUsecase(log, metrics))
	auditLogHandler := NewAuditLogHandler(usecase.NewAuditLogUsecase(log, audits))

	r := mux.NewRouter()
	r.HandleFunc("/api/contact", submissionHandler.Contact).Methods(http.MethodPost)
	r.HandleFunc("/api/referral", submissionHandler.Referral).Methods(http.MethodPost)
	r.HandleFunc("/doctors", doctorHandler.ListDoctors).Methods(http.MethodGet)
	r.HandleFunc("/doctors/search", doctorHandler.SearchDoctors).Methods(http.MethodGet)
	r.HandleFunc("/doctors/{slug}", doctorHandler.GetDoctorBySlug).Methods(http.MethodGet)
	r.HandleFunc("/admin/doctors", adminHandler.ListDoctors).Methods(http.MethodGet)
	r.HandleFunc("/admin/doctors", adminHandler.CreateDoctor).Methods(http.MethodPost)
	r.HandleFunc("/admin/doctors/new", adminHandler.NewDoctorForm).Methods(http.MethodGet)
	r.HandleFunc("/admin/doctors/{id}", adminHandler.GetDoctorForm).Methods(http.MethodGet)
	r.HandleFunc("/admin/doctors/{id}", adminHandler.UpdateDoctor).Methods(http.MethodPut)
	r.HandleFunc("/admin/doctors/{id}/active", adminHandler.ToggleDoctorActive).Methods(http.MethodPatch)
	r.HandleFunc("/admin/doctors/{id}", adminHandler.DeleteDoctor).Methods(http.MethodDelete)
	r.HandleFunc("/admin/audit-logs", auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	r.HandleFunc("/admin/audit-logs/{id}", auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	return &testApp{router: r, repo: repo, audits: audits}
}

func (a *testApp) do(method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func doctor(slug string, order int, active bool, interests ...string) entity.Doctor {
	return entity.Doctor{
		ID:             uuid.New(),
		Slug:           slug,
		Name:           "Dr " + slug,
		Title:          "Consultant Haematologist",
		Role:           "Consultant",
		Snippet:        "Snippet for " + slug,
		Interests:      pq.StringArray(interests),
		Bio:            pq.StringArray{"Bio paragraph"},
		Qualifications: pq.StringArray{"MBBS"},
		DisplayOrder:   order,
		IsActive:       active,
	}
}
