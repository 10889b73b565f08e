package handler

import (
	"encoding/json"
	"net/http"

	"wmhn-clinic-api/internal/delivery/dto"
	"wmhn-clinic-api/internal/usecase"
	"wmhn-clinic-api/pkg/response"
)

// SubmissionHandler acknowledges the public contact and referral forms.
// Bodies are not validated here; the site validates before posting.
type SubmissionHandler struct {
	submissionUsecase usecase.SubmissionUsecase
}

func NewSubmissionHandler(submissionUsecase usecase.SubmissionUsecase) *SubmissionHandler {
	return &SubmissionHandler{
		submissionUsecase: submissionUsecase,
	}
}

func (h *SubmissionHandler) Contact(w http.ResponseWriter, r *http.Request) {
	var req dto.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.JSON(w, http.StatusInternalServerError, h.submissionUsecase.ContactFailed(r.Context(), err))
		return
	}

	response.JSON(w, http.StatusOK, h.submissionUsecase.SubmitContact(r.Context(), &req))
}

func (h *SubmissionHandler) Referral(w http.ResponseWriter, r *http.Request) {
	var req dto.ReferralRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.JSON(w, http.StatusInternalServerError, h.submissionUsecase.ReferralFailed(r.Context(), err))
		return
	}

	response.JSON(w, http.StatusOK, h.submissionUsecase.SubmitReferral(r.Context(), &req))
}
