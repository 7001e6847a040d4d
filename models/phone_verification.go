package models

import (
	"time"
)

// PhoneVerification is the single live challenge for a phone number.
// At most one row exists per phone; issuing a new code replaces the old one.
type PhoneVerification struct {
	Phone     string    `json:"phone" bson:"phone"`
	Code      string    `json:"-" bson:"code"`
	ExpiresAt time.Time `json:"expiresAt" bson:"expiresAt"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// Expired reports whether the challenge can no longer be redeemed.
func (v *PhoneVerification) Expired() bool {
	return !time.Now().Before(v.ExpiresAt)
}

// CodeIssue is returned by the verification service after storing a code.
type CodeIssue struct {
	Phone     string    `json:"phone"`
	ExpiresAt time.Time `json:"expiresAt"`
	Delivered bool      `json:"delivered"`
	// DebugCode is only populated in the development environment.
	DebugCode string `json:"debugCode,omitempty"`
}

// SendCodeRequest is the request body for code issuance
type SendCodeRequest struct {
	Phone string `json:"phone"`
}

// VerifyCodeRequest is the request body for code verification
type VerifyCodeRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}
