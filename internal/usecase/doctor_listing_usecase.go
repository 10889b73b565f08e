package usecase

import (
	"context"
	"sync"

	"wmhn-clinic-api/internal/converter"
	"wmhn-clinic-api/internal/delivery/dto"
	"wmhn-clinic-api/internal/domain/entity"
	"wmhn-clinic-api/internal/domain/repository"
	"wmhn-clinic-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type ListingState string

const (
	ListingLoading ListingState = "loading"
	ListingLoaded  ListingState = "loaded"
)

const NoticeError = "error"

// Notice is a dismissable message shown above the admin grid.
type Notice struct {
	Kind    string
	Message string
}

// ConfirmFunc asks the admin to confirm a permanent delete.
type ConfirmFunc func(doctor entity.Doctor) bool

type DoctorListingUsecase interface {
	// OpenListing starts a listing whose store calls are bound to parent and
	// to the listing's own lifetime, ended by Close.
	OpenListing(parent context.Context) *DoctorListing
}

type doctorListingUsecase struct {
	log          *logrus.Logger
	doctorRepo   repository.DoctorRepository
	syncService  *service.DirectorySyncService
	auditService service.AuditService
}

func NewDoctorListingUsecase(
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	syncService *service.DirectorySyncService,
	auditService service.AuditService,
) DoctorListingUsecase {
	return &doctorListingUsecase{
		log:          log,
		doctorRepo:   doctorRepo,
		syncService:  syncService,
		auditService: auditService,
	}
}

func (u *doctorListingUsecase) OpenListing(parent context.Context) *DoctorListing {
	ctx, cancel := context.WithCancel(parent)
	return &DoctorListing{
		ctx:     ctx,
		cancel:  cancel,
		state:   ListingLoading,
		doctors: []entity.Doctor{},
		u:       u,
	}
}

// DoctorListing is the admin view over every doctor, visible or hidden.
// Mutations merge the record returned by the store into the loaded rows.
// Store failures are returned and also kept as a dismissable notice.
// Results that arrive after Close are discarded.
type DoctorListing struct {
	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	closed  bool
	state   ListingState
	doctors []entity.Doctor
	notice  *Notice
	u       *doctorListingUsecase
}

// Load fetches all doctors ordered by display order. On failure the list is
// left empty and an error notice is raised.
func (l *DoctorListing) Load() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrListingClosed
	}
	l.state = ListingLoading
	l.mu.Unlock()

	doctors, err := l.u.doctorRepo.FindAll(l.ctx, entity.DoctorFilter{})

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrListingClosed
	}

	l.state = ListingLoaded
	if err != nil {
		l.u.log.Warnf("Failed to load doctors: %+v", err)
		l.doctors = []entity.Doctor{}
		storeErr := &StoreError{Op: "list", Err: err}
		l.raise(storeErr)
		return storeErr
	}

	l.doctors = doctors
	return nil
}

// ToggleActive flips the doctor's visibility with a single-field update.
func (l *DoctorListing) ToggleActive(actor entity.Actor, id uuid.UUID) (*entity.Doctor, error) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil, ErrListingClosed
	}
	idx := l.indexOf(id)
	if idx < 0 {
		l.mu.Unlock()
		return nil, ErrDoctorNotFound
	}
	before := l.doctors[idx].Clone()
	l.mu.Unlock()

	updated, err := l.u.doctorRepo.Update(l.ctx, id, map[string]interface{}{"is_active": !before.IsActive})
	if err == nil && updated != nil {
		// Committed: the directory follows even if the listing has been closed meanwhile.
		l.u.syncService.DoctorSaved(l.ctx, *updated, false)
		_ = l.u.auditService.LogUpdate(l.ctx, actor, entity.AuditActionDoctorToggleActive, "doctor", id.String(),
			entity.JSON{"is_active": before.IsActive}, entity.JSON{"is_active": updated.IsActive})
	}
	if err := l.mergeToggle(id, updated, err); err != nil {
		return nil, err
	}

	result := updated.Clone()
	return &result, nil
}

// Delete permanently removes the doctor once confirm approves it. A declined
// confirmation makes no store call and returns ErrDeleteNotConfirmed.
func (l *DoctorListing) Delete(actor entity.Actor, id uuid.UUID, confirm ConfirmFunc) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrListingClosed
	}
	idx := l.indexOf(id)
	if idx < 0 {
		l.mu.Unlock()
		return ErrDoctorNotFound
	}
	target := l.doctors[idx].Clone()
	l.mu.Unlock()

	if confirm == nil || !confirm(target) {
		return ErrDeleteNotConfirmed
	}

	affected, err := l.u.doctorRepo.Delete(l.ctx, id)
	if err == nil && affected > 0 {
		l.u.syncService.DoctorDeleted(l.ctx, target)
		_ = l.u.auditService.LogDelete(l.ctx, actor, entity.AuditActionDoctorDelete, "doctor", id.String(), converter.DoctorToResponse(&target))
	}
	return l.mergeDelete(id, affected, err)
}

func (l *DoctorListing) State() ListingState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Doctors returns a copy of the loaded rows.
func (l *DoctorListing) Doctors() []entity.Doctor {
	l.mu.Lock()
	defer l.mu.Unlock()
	doctors := make([]entity.Doctor, len(l.doctors))
	for i := range l.doctors {
		doctors[i] = l.doctors[i].Clone()
	}
	return doctors
}

func (l *DoctorListing) Notice() *Notice {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.notice == nil {
		return nil
	}
	notice := *l.notice
	return &notice
}

func (l *DoctorListing) DismissNotice() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.notice = nil
}

// View is the listing as the admin grid renders it.
func (l *DoctorListing) View() *dto.AdminDoctorListResponse {
	doctors := l.Doctors()
	view := &dto.AdminDoctorListResponse{
		State:   string(l.State()),
		Doctors: converter.DoctorsToAdminRows(doctors),
		Total:   len(doctors),
	}
	if notice := l.Notice(); notice != nil {
		view.Notice = &dto.NoticeResponse{Kind: notice.Kind, Message: notice.Message}
	}
	return view
}

// Close cancels in-flight store calls. Safe to call more than once.
func (l *DoctorListing) Close() {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()
	l.cancel()
}

func (l *DoctorListing) mergeToggle(id uuid.UUID, updated *entity.Doctor, err error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrListingClosed
	}
	if err != nil {
		l.u.log.Warnf("Failed to toggle doctor %s: %+v", id, err)
		storeErr := &StoreError{Op: "toggle", Err: err}
		l.raise(storeErr)
		return storeErr
	}
	if updated == nil {
		l.remove(id)
		l.notice = &Notice{Kind: NoticeError, Message: ErrDoctorNotFound.Error()}
		return ErrDoctorNotFound
	}

	if idx := l.indexOf(id); idx >= 0 {
		l.doctors[idx] = updated.Clone()
	}
	return nil
}

func (l *DoctorListing) mergeDelete(id uuid.UUID, affected int64, err error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrListingClosed
	}
	if err != nil {
		l.u.log.Warnf("Failed to delete doctor %s: %+v", id, err)
		storeErr := &StoreError{Op: "delete", Err: err}
		l.raise(storeErr)
		return storeErr
	}

	l.remove(id)
	if affected == 0 {
		return ErrDoctorNotFound
	}
	return nil
}

func (l *DoctorListing) raise(err *StoreError) {
	l.notice = &Notice{Kind: NoticeError, Message: err.Message()}
}

func (l *DoctorListing) indexOf(id uuid.UUID) int {
	for i := range l.doctors {
		if l.doctors[i].ID == id {
			return i
		}
	}
	return -1
}

func (l *DoctorListing) remove(id uuid.UUID) {
	if idx := l.indexOf(id); idx >= 0 {
		l.doctors = append(l.doctors[:idx], l.doctors[idx+1:]...)
	}
}
