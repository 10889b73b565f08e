package dto

import "wmhn-clinic-api/pkg/siteclient"

// The form endpoints speak the same payloads the site client sends. The
// endpoints themselves accept whatever arrives; validation is client-side.
type (
	ContactRequest     = siteclient.ContactRequest
	ReferralRequest    = siteclient.ReferralRequest
	SubmissionResponse = siteclient.SubmissionResponse
)
