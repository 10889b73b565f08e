package usecase

import (
	"context"
	"strings"

	"wmhn-clinic-api/internal/converter"
	"wmhn-clinic-api/internal/delivery/dto"
	"wmhn-clinic-api/internal/domain/entity"
	"wmhn-clinic-api/internal/domain/repository"
	"wmhn-clinic-api/internal/service"
	"wmhn-clinic-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

// AdminDoctorsPath is where the admin lands after a successful submit.
const AdminDoctorsPath = "/admin/doctors"

const (
	FormModeCreate = "create"
	FormModeEdit   = "edit"
)

// ListField names one of the three editable list fields of a doctor.
type ListField string

const (
	FieldInterests      ListField = "interests"
	FieldBio            ListField = "bio"
	FieldQualifications ListField = "qualifications"
)

// SubmitResult is the outcome of a successful form submit.
type SubmitResult struct {
	Doctor   entity.Doctor
	Created  bool
	Redirect string
}

type DoctorFormUsecase interface {
	NewForm() *DoctorForm
	EditForm(ctx context.Context, id uuid.UUID) (*DoctorForm, error)
}

type doctorFormUsecase struct {
	log          *logrus.Logger
	doctorRepo   repository.DoctorRepository
	validator    *validator.CustomValidator
	syncService  *service.DirectorySyncService
	auditService service.AuditService
}

func NewDoctorFormUsecase(
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	validator *validator.CustomValidator,
	syncService *service.DirectorySyncService,
	auditService service.AuditService,
) DoctorFormUsecase {
	return &doctorFormUsecase{
		log:          log,
		doctorRepo:   doctorRepo,
		validator:    validator,
		syncService:  syncService,
		auditService: auditService,
	}
}

// NewForm returns a create-mode form with the defaults the admin starts from:
// no interests, one empty bio paragraph, one empty qualification, visible,
// display order 0.
func (u *doctorFormUsecase) NewForm() *DoctorForm {
	return &DoctorForm{
		IsActive: true,
		lists: map[ListField][]string{
			FieldInterests:      {},
			FieldBio:            {""},
			FieldQualifications: {""},
		},
		u: u,
	}
}

// EditForm loads the doctor and returns a form pre-populated with every field,
// lists in their stored order.
func (u *doctorFormUsecase) EditForm(ctx context.Context, id uuid.UUID) (*DoctorForm, error) {
	doctor, err := u.doctorRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", id, err)
		return nil, &StoreError{Op: "load", Err: err}
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	original := doctor.Clone()
	return &DoctorForm{
		Name:         doctor.Name,
		Title:        doctor.Title,
		PostNominals: doctor.PostNominals,
		Role:         doctor.Role,
		Snippet:      doctor.Snippet,
		Slug:         doctor.Slug,
		DisplayOrder: doctor.DisplayOrder,
		IsActive:     doctor.IsActive,
		id:           &original.ID,
		original:     &original,
		lists: map[ListField][]string{
			FieldInterests:      copyEntries(doctor.Interests),
			FieldBio:            copyEntries(doctor.Bio),
			FieldQualifications: copyEntries(doctor.Qualifications),
		},
		u: u,
	}, nil
}

// DoctorForm is the editable state of one create or edit session. Scalar
// fields are set directly; list fields go through the entry operations.
// A form is not safe for concurrent use.
type DoctorForm struct {
	Name         string
	Title        string
	PostNominals string
	Role         string
	Snippet      string
	Slug         string
	DisplayOrder int
	IsActive     bool

	id       *uuid.UUID
	original *entity.Doctor
	lists    map[ListField][]string
	u        *doctorFormUsecase
}

// ID is the doctor being edited, or nil in create mode.
func (f *DoctorForm) ID() *uuid.UUID {
	return f.id
}

func (f *DoctorForm) Mode() string {
	if f.id != nil {
		return FormModeEdit
	}
	return FormModeCreate
}

// Entries returns a copy of the list, transient blank rows included.
func (f *DoctorForm) Entries(field ListField) ([]string, error) {
	entries, ok := f.lists[field]
	if !ok {
		return nil, ErrUnknownListField
	}
	return copyEntries(entries), nil
}

// AddEntry appends an empty entry.
func (f *DoctorForm) AddEntry(field ListField) error {
	entries, ok := f.lists[field]
	if !ok {
		return ErrUnknownListField
	}
	f.lists[field] = append(entries, "")
	return nil
}

// SetEntry replaces the entry at index.
func (f *DoctorForm) SetEntry(field ListField, index int, value string) error {
	entries, ok := f.lists[field]
	if !ok {
		return ErrUnknownListField
	}
	if index < 0 || index >= len(entries) {
		return ErrEntryIndex
	}
	entries[index] = value
	return nil
}

// RemoveEntry deletes the entry at index, shifting later entries down.
func (f *DoctorForm) RemoveEntry(field ListField, index int) error {
	entries, ok := f.lists[field]
	if !ok {
		return ErrUnknownListField
	}
	if index < 0 || index >= len(entries) {
		return ErrEntryIndex
	}
	f.lists[field] = append(entries[:index:index], entries[index+1:]...)
	return nil
}

// Apply overwrites the form with a submitted record. Nil lists and a nil
// is_active leave the current values in place.
func (f *DoctorForm) Apply(req *dto.DoctorFormRequest) {
	f.Name = req.Name
	f.Title = req.Title
	f.PostNominals = req.PostNominals
	f.Role = req.Role
	f.Snippet = req.Snippet
	f.Slug = req.Slug
	f.DisplayOrder = req.DisplayOrder
	if req.IsActive != nil {
		f.IsActive = *req.IsActive
	}
	if req.Interests != nil {
		f.lists[FieldInterests] = copyEntries(req.Interests)
	}
	if req.Bio != nil {
		f.lists[FieldBio] = copyEntries(req.Bio)
	}
	if req.Qualifications != nil {
		f.lists[FieldQualifications] = copyEntries(req.Qualifications)
	}
}

// Record assembles the record a submit would send. List entries are trimmed
// and blank ones dropped; the form itself keeps its blank rows.
func (f *DoctorForm) Record() dto.DoctorFormRequest {
	isActive := f.IsActive
	return dto.DoctorFormRequest{
		Name:           f.Name,
		Title:          f.Title,
		PostNominals:   f.PostNominals,
		Role:           f.Role,
		Interests:      cleanEntries(f.lists[FieldInterests]),
		Snippet:        f.Snippet,
		Bio:            cleanEntries(f.lists[FieldBio]),
		Qualifications: cleanEntries(f.lists[FieldQualifications]),
		Slug:           f.Slug,
		DisplayOrder:   f.DisplayOrder,
		IsActive:       &isActive,
	}
}

// State is the form as the admin UI renders it.
func (f *DoctorForm) State() *dto.DoctorFormResponse {
	return &dto.DoctorFormResponse{
		Mode:           f.Mode(),
		ID:             f.id,
		Name:           f.Name,
		Title:          f.Title,
		PostNominals:   f.PostNominals,
		Role:           f.Role,
		Interests:      copyEntries(f.lists[FieldInterests]),
		Snippet:        f.Snippet,
		Bio:            copyEntries(f.lists[FieldBio]),
		Qualifications: copyEntries(f.lists[FieldQualifications]),
		Slug:           f.Slug,
		DisplayOrder:   f.DisplayOrder,
		IsActive:       f.IsActive,
	}
}

// Submit validates the assembled record and, when valid, makes exactly one
// store mutation: a full-record update in edit mode, a create otherwise.
// A *ValidationError means nothing was sent. On a *StoreError the form is
// unchanged and may be submitted again.
func (f *DoctorForm) Submit(ctx context.Context, actor entity.Actor) (*SubmitResult, error) {
	record := f.Record()
	if err := f.u.validator.Validate(record); err != nil {
		return nil, &ValidationError{Fields: f.u.validator.FormatValidationErrors(err)}
	}

	doctor := doctorFromRecord(&record)

	if f.id == nil {
		if err := f.u.doctorRepo.Create(ctx, &doctor); err != nil {
			f.u.log.Warnf("Failed to create doctor: %+v", err)
			return nil, &StoreError{Op: "create", Err: err}
		}

		f.u.syncService.DoctorSaved(ctx, doctor, true)
		_ = f.u.auditService.LogCreate(ctx, actor, entity.AuditActionDoctorCreate, "doctor", doctor.ID.String(), converter.DoctorToResponse(&doctor))

		return &SubmitResult{Doctor: doctor, Created: true, Redirect: AdminDoctorsPath}, nil
	}

	updated, err := f.u.doctorRepo.Update(ctx, *f.id, doctor.Columns())
	if err != nil {
		f.u.log.Warnf("Failed to update doctor %s: %+v", *f.id, err)
		return nil, &StoreError{Op: "update", Err: err}
	}
	if updated == nil {
		return nil, ErrDoctorNotFound
	}

	f.u.syncService.DoctorSaved(ctx, *updated, false)
	_ = f.u.auditService.LogUpdate(ctx, actor, entity.AuditActionDoctorUpdate, "doctor", updated.ID.String(),
		converter.DoctorToResponse(f.original), converter.DoctorToResponse(updated))

	return &SubmitResult{Doctor: *updated, Redirect: AdminDoctorsPath}, nil
}

func doctorFromRecord(record *dto.DoctorFormRequest) entity.Doctor {
	isActive := true
	if record.IsActive != nil {
		isActive = *record.IsActive
	}
	return entity.Doctor{
		Slug:           record.Slug,
		Name:           record.Name,
		Title:          record.Title,
		PostNominals:   record.PostNominals,
		Role:           record.Role,
		Interests:      pq.StringArray(copyEntries(record.Interests)),
		Snippet:        record.Snippet,
		Bio:            pq.StringArray(copyEntries(record.Bio)),
		Qualifications: pq.StringArray(copyEntries(record.Qualifications)),
		DisplayOrder:   record.DisplayOrder,
		IsActive:       isActive,
	}
}

// cleanEntries trims every entry and drops the blank ones.
func cleanEntries(entries []string) []string {
	cleaned := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry = strings.TrimSpace(entry); entry != "" {
			cleaned = append(cleaned, entry)
		}
	}
	return cleaned
}

func copyEntries(entries []string) []string {
	return append([]string{}, entries...)
}
