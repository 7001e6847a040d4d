// models/buyer.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Buyer verification statuses
const (
	StatusIncomplete = "incomplete"
	StatusPending    = "pending"
	StatusApproved   = "approved"
	StatusRejected   = "rejected"
)

// Buyer model
type Buyer struct {
	ID                primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	FirstName         string             `json:"firstName" bson:"firstName"`
	LastName          string             `json:"lastName" bson:"lastName"`
	Email             string             `json:"email" bson:"email"`
	Phone             string             `json:"phone" bson:"phone"`
	Password          string             `json:"password,omitempty" bson:"password"`
	StreetAddress     string             `json:"streetAddress" bson:"streetAddress"`
	City              string             `json:"city" bson:"city"`
	State             string             `json:"state" bson:"state"`
	Province          string             `json:"province,omitempty" bson:"province,omitempty"`
	ZipCode           string             `json:"zipCode" bson:"zipCode"`
	Country           string             `json:"country" bson:"country"`
	IDType            string             `json:"idType,omitempty" bson:"idType,omitempty"`
	IDNumber          string             `json:"idNumber,omitempty" bson:"idNumber,omitempty"`
	IDFrontURL        string             `json:"idFrontUrl,omitempty" bson:"idFrontUrl,omitempty"`
	IDBackURL         string             `json:"idBackUrl,omitempty" bson:"idBackUrl,omitempty"`
	SelfieURL         string             `json:"selfieUrl,omitempty" bson:"selfieUrl,omitempty"`
	IsPhoneVerified   bool               `json:"isPhoneVerified" bson:"isPhoneVerified"`
	IsCaptchaVerified bool               `json:"isCaptchaVerified" bson:"isCaptchaVerified"`
	Status            string             `json:"status" bson:"status"` // "incomplete", "pending", "approved", "rejected"
	AdminNotes        string             `json:"adminNotes,omitempty" bson:"adminNotes,omitempty"`
	AcceptedTerms     bool               `json:"acceptedTerms" bson:"acceptedTerms"`
	PrivacyAccepted   bool               `json:"privacyAccepted" bson:"privacyAccepted"`
	MarketingAccepted bool               `json:"marketingAccepted" bson:"marketingAccepted"`
	CreatedAt         time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// HasAllDocuments reports whether all three verification images were uploaded.
func (b *Buyer) HasAllDocuments() bool {
	return b.IDFrontURL != "" && b.IDBackURL != "" && b.SelfieURL != ""
}

// SignupRequest is the request body for buyer registration
type SignupRequest struct {
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	Password          string `json:"password"`
	StreetAddress     string `json:"street_address"`
	City              string `json:"city"`
	State             string `json:"state"`
	Province          string `json:"province,omitempty"`
	ZipCode           string `json:"zip_code"`
	Country           string `json:"country"`
	IDType            string `json:"id_type,omitempty"`
	IDNumber          string `json:"id_number,omitempty"`
	IDFrontURL        string `json:"id_front_url,omitempty"`
	IDBackURL         string `json:"id_back_url,omitempty"`
	SelfieURL         string `json:"selfie_url,omitempty"`
	IsPhoneVerified   bool   `json:"is_phone_verified,omitempty"`
	IsCaptchaVerified bool   `json:"is_captcha_verified,omitempty"`
	AcceptedTerms     bool   `json:"accepted_terms"`
	PrivacyAccepted   bool   `json:"privacy_accepted"`
	MarketingAccepted bool   `json:"marketing_accepted,omitempty"`
}

// BuyerSummary is the public projection returned after signup.
// It never carries the password hash.
type BuyerSummary struct {
	ID              primitive.ObjectID `json:"id"`
	Email           string             `json:"email"`
	Name            string             `json:"name"`
	Status          string             `json:"status"`
	IsPhoneVerified bool               `json:"isPhoneVerified"`
}

// Phone verification states used in the admin listing summary
const (
	PhoneStatusVerified    = "verified"
	PhoneStatusCodeActive  = "code_active"
	PhoneStatusCodeExpired = "code_expired"
	PhoneStatusNotStarted  = "not_started"
)

// VerificationSummary is the derived per-buyer state shown to admins.
type VerificationSummary struct {
	PhoneStatus       string `json:"phoneStatus"`
	DocumentsUploaded bool   `json:"documentsUploaded"`
}

// BuyerWithSummary annotates a buyer projection with its verification summary.
type BuyerWithSummary struct {
	Buyer
	Verification VerificationSummary `json:"verification"`
}

// CheckEmailRequest is the request body for email availability checks
type CheckEmailRequest struct {
	Email string `json:"email"`
}

// CheckPhoneRequest is the request body for phone availability checks
type CheckPhoneRequest struct {
	Phone string `json:"phone"`
}
