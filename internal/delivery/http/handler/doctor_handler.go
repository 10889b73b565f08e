package handler

import (
	"errors"
	"net/http"

	"wmhn-clinic-api/internal/usecase"
	"wmhn-clinic-api/pkg/response"

	"github.com/gorilla/mux"
)

// DoctorHandler serves the public doctor directory.
type DoctorHandler struct {
	directoryUsecase usecase.DoctorDirectoryUsecase
}

func NewDoctorHandler(directoryUsecase usecase.DoctorDirectoryUsecase) *DoctorHandler {
	return &DoctorHandler{
		directoryUsecase: directoryUsecase,
	}
}

// ListDoctors handles the public directory listing
// @Summary List visible doctors
// @Tags Doctors
// @Produce json
// @Success 200 {object} response.Response
// @Router /doctors [get]
func (h *DoctorHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.directoryUsecase.ListActive(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

// SearchDoctors handles the public directory search
// @Summary Search visible doctors by name, title, role or interest
// @Tags Doctors
// @Produce json
// @Param q query string false "Search terms"
// @Success 200 {object} response.Response
// @Router /doctors/search [get]
func (h *DoctorHandler) SearchDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.directoryUsecase.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		response.InternalServerError(w, "Failed to search doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

// GetDoctorBySlug handles a public doctor profile
// @Summary Get a visible doctor by slug
// @Tags Doctors
// @Produce json
// @Param slug path string true "Doctor slug"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctors/{slug} [get]
func (h *DoctorHandler) GetDoctorBySlug(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	doctor, err := h.directoryUsecase.GetBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, usecase.ErrDoctorNotFound) {
			response.NotFound(w, "Doctor not found")
			return
		}
		response.InternalServerError(w, "Failed to get doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", doctor)
}
