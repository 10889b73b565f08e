package siteclient

// Form payloads keep the public site's camelCase wire names. The validate
// tags are checked by Client before anything is sent.

type ContactRequest struct {
	Name               string `json:"name" validate:"required,notblank"`
	Email              string `json:"email" validate:"required,email"`
	Phone              string `json:"phone,omitempty"`
	UserType           string `json:"userType" validate:"required,oneof=patient family gp other"`
	Message            string `json:"message" validate:"required,min=10"`
	VerificationAnswer string `json:"verificationAnswer" validate:"verification"`
}

type ReferralRequest struct {
	DoctorName     string `json:"doctorName" validate:"required,notblank"`
	PracticeName   string `json:"practiceName" validate:"required,notblank"`
	ProviderNumber string `json:"providerNumber,omitempty"`
	DoctorPhone    string `json:"doctorPhone" validate:"required,notblank"`
	DoctorEmail    string `json:"doctorEmail" validate:"required,email"`

	PatientName    string `json:"patientName" validate:"required,notblank"`
	PatientDob     string `json:"patientDob" validate:"required,notblank"`
	PatientPhone   string `json:"patientPhone" validate:"required,notblank"`
	PatientEmail   string `json:"patientEmail,omitempty" validate:"omitempty,email"`
	MedicareNumber string `json:"medicareNumber,omitempty"`

	ReferralReason string `json:"referralReason" validate:"required,min=10"`
	Priority       string `json:"priority" validate:"required,oneof=routine soon urgent"`
}

// SubmissionResponse is the acknowledgement both endpoints answer with.
type SubmissionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
