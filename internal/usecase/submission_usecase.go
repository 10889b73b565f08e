package usecase

import (
	"context"
	"time"

	"wmhn-clinic-api/internal/delivery/dto"
	"wmhn-clinic-api/internal/infrastructure/monitoring"

	"github.com/sirupsen/logrus"
)

const (
	FormContact  = "contact"
	FormReferral = "referral"

	ContactAcceptedMessage  = "Thank you for your message. We will respond within 1-2 business days."
	ContactFailedMessage    = "Failed to send message. Please try again or call us directly."
	ReferralAcceptedMessage = "Referral submitted successfully. We will contact the patient within 2-3 business days to schedule an appointment."
	ReferralFailedMessage   = "Failed to submit referral. Please try again or call us directly."
)

// SubmissionUsecase acknowledges contact and referral forms. Submissions are
// logged only; nothing is stored or forwarded.
type SubmissionUsecase interface {
	SubmitContact(ctx context.Context, req *dto.ContactRequest) *dto.SubmissionResponse
	SubmitReferral(ctx context.Context, req *dto.ReferralRequest) *dto.SubmissionResponse
	ContactFailed(ctx context.Context, err error) *dto.SubmissionResponse
	ReferralFailed(ctx context.Context, err error) *dto.SubmissionResponse
}

type submissionUsecase struct {
	log     *logrus.Logger
	metrics *monitoring.Metrics
}

func NewSubmissionUsecase(log *logrus.Logger, metrics *monitoring.Metrics) SubmissionUsecase {
	return &submissionUsecase{
		log:     log,
		metrics: metrics,
	}
}

func (u *submissionUsecase) SubmitContact(ctx context.Context, req *dto.ContactRequest) *dto.SubmissionResponse {
	u.log.WithFields(logrus.Fields{
		"form":                FormContact,
		"name":                req.Name,
		"email":               req.Email,
		"phone":               req.Phone,
		"user_type":           req.UserType,
		"message":             req.Message,
		"verification_answer": req.VerificationAnswer,
		"received_at":         time.Now().UTC().Format(time.RFC3339),
	}).Info("Contact form submission")

	u.metrics.SubmissionsTotal.WithLabelValues(FormContact, "accepted").Inc()
	return &dto.SubmissionResponse{Success: true, Message: ContactAcceptedMessage}
}

func (u *submissionUsecase) SubmitReferral(ctx context.Context, req *dto.ReferralRequest) *dto.SubmissionResponse {
	u.log.WithFields(logrus.Fields{
		"form":            FormReferral,
		"doctor_name":     req.DoctorName,
		"practice_name":   req.PracticeName,
		"provider_number": req.ProviderNumber,
		"doctor_phone":    req.DoctorPhone,
		"doctor_email":    req.DoctorEmail,
		"patient_name":    req.PatientName,
		"patient_dob":     req.PatientDob,
		"patient_phone":   req.PatientPhone,
		"patient_email":   req.PatientEmail,
		"medicare_number": req.MedicareNumber,
		"referral_reason": req.ReferralReason,
		"priority":        req.Priority,
		"received_at":     time.Now().UTC().Format(time.RFC3339),
	}).Info("Referral submission")

	u.metrics.SubmissionsTotal.WithLabelValues(FormReferral, "accepted").Inc()
	return &dto.SubmissionResponse{Success: true, Message: ReferralAcceptedMessage}
}

func (u *submissionUsecase) ContactFailed(ctx context.Context, err error) *dto.SubmissionResponse {
	u.log.Errorf("Error processing contact form: %+v", err)
	u.metrics.SubmissionsTotal.WithLabelValues(FormContact, "failed").Inc()
	return &dto.SubmissionResponse{Success: false, Message: ContactFailedMessage}
}

func (u *submissionUsecase) ReferralFailed(ctx context.Context, err error) *dto.SubmissionResponse {
	u.log.Errorf("Error processing referral: %+v", err)
	u.metrics.SubmissionsTotal.WithLabelValues(FormReferral, "failed").Inc()
	return &dto.SubmissionResponse{Success: false, Message: ReferralFailedMessage}
}
