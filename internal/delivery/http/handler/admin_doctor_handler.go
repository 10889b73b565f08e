package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"wmhn-clinic-api/internal/converter"
	"wmhn-clinic-api/internal/delivery/dto"
	"wmhn-clinic-api/internal/delivery/http/middleware"
	"wmhn-clinic-api/internal/domain/entity"
	"wmhn-clinic-api/internal/domain/repository"
	"wmhn-clinic-api/internal/usecase"
	"wmhn-clinic-api/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AdminDoctorHandler struct {
	formUsecase    usecase.DoctorFormUsecase
	listingUsecase usecase.DoctorListingUsecase
}

func NewAdminDoctorHandler(formUsecase usecase.DoctorFormUsecase, listingUsecase usecase.DoctorListingUsecase) *AdminDoctorHandler {
	return &AdminDoctorHandler{
		formUsecase:    formUsecase,
		listingUsecase: listingUsecase,
	}
}

// ListDoctors returns every doctor, hidden ones included. A failed load is
// still a 200 carrying an empty grid and an error notice.
func (h *AdminDoctorHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	listing := h.listingUsecase.OpenListing(r.Context())
	defer listing.Close()

	_ = listing.Load()

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", listing.View())
}

func (h *AdminDoctorHandler) NewDoctorForm(w http.ResponseWriter, r *http.Request) {
	form := h.formUsecase.NewForm()
	response.Success(w, http.StatusOK, "Doctor form initialised", form.State())
}

func (h *AdminDoctorHandler) GetDoctorForm(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := parseDoctorID(w, r)
	if !ok {
		return
	}

	form, err := h.formUsecase.EditForm(r.Context(), doctorID)
	if err != nil {
		writeAdminError(w, err, "Failed to load doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", form.State())
}

func (h *AdminDoctorHandler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	var req dto.DoctorFormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	form := h.formUsecase.NewForm()
	form.Apply(&req)

	result, err := form.Submit(r.Context(), middleware.ActorFromContext(r.Context()))
	if err != nil {
		writeAdminError(w, err, "Failed to create doctor")
		return
	}

	response.Success(w, http.StatusCreated, "Doctor created successfully", submitResponse(result))
}

func (h *AdminDoctorHandler) UpdateDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := parseDoctorID(w, r)
	if !ok {
		return
	}

	var req dto.DoctorFormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	form, err := h.formUsecase.EditForm(r.Context(), doctorID)
	if err != nil {
		writeAdminError(w, err, "Failed to load doctor")
		return
	}
	form.Apply(&req)

	result, err := form.Submit(r.Context(), middleware.ActorFromContext(r.Context()))
	if err != nil {
		writeAdminError(w, err, "Failed to update doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor updated successfully", submitResponse(result))
}

func (h *AdminDoctorHandler) ToggleDoctorActive(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := parseDoctorID(w, r)
	if !ok {
		return
	}

	listing := h.listingUsecase.OpenListing(r.Context())
	defer listing.Close()

	if err := listing.Load(); err != nil {
		writeAdminError(w, err, "Failed to load doctors")
		return
	}

	doctor, err := listing.ToggleActive(middleware.ActorFromContext(r.Context()), doctorID)
	if err != nil {
		writeAdminError(w, err, "Failed to update doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor visibility updated", converter.DoctorToAdminRow(doctor))
}

// DeleteDoctor permanently removes a doctor. The caller confirms with
// ?confirm=true; without it nothing is deleted and 428 is returned.
func (h *AdminDoctorHandler) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := parseDoctorID(w, r)
	if !ok {
		return
	}
	confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))

	listing := h.listingUsecase.OpenListing(r.Context())
	defer listing.Close()

	if err := listing.Load(); err != nil {
		writeAdminError(w, err, "Failed to load doctors")
		return
	}

	err := listing.Delete(middleware.ActorFromContext(r.Context()), doctorID, func(entity.Doctor) bool {
		return confirmed
	})
	if err != nil {
		writeAdminError(w, err, "Failed to delete doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor deleted successfully", nil)
}

func parseDoctorID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	doctorID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return uuid.Nil, false
	}
	return doctorID, true
}

func submitResponse(result *usecase.SubmitResult) *dto.DoctorSubmitResponse {
	return &dto.DoctorSubmitResponse{
		Doctor:   *converter.DoctorToResponse(&result.Doctor),
		Redirect: result.Redirect,
	}
}

// writeAdminError maps admin usecase errors to responses. Store failures are
// reported as 502 with the store's own message.
func writeAdminError(w http.ResponseWriter, err error, fallback string) {
	var validationErr *usecase.ValidationError
	var storeErr *usecase.StoreError

	switch {
	case errors.As(err, &validationErr):
		response.ValidationError(w, validationErr.Fields)
	case errors.Is(err, usecase.ErrDoctorNotFound):
		response.NotFound(w, "Doctor not found")
	case errors.Is(err, usecase.ErrDeleteNotConfirmed):
		response.PreconditionRequired(w, "Delete must be confirmed with confirm=true")
	case errors.Is(err, repository.ErrSlugExists):
		response.Conflict(w, "Slug already exists")
	case errors.As(err, &storeErr):
		response.BadGateway(w, fallback, storeErr.Message())
	default:
		response.InternalServerError(w, fallback)
	}
}
